// Package fff is a Go client for the fff native search engine.
//
// The engine ships as a shared library (libfff_c) inside a per-platform
// distribution package such as @ff-labs/fff-bun-linux-x64-gnu. New locates
// the library for the running host, loads it on first use and returns a
// FileFinder:
//
//	finder := fff.New(fff.Options{})
//	if err := finder.Init(ctx, fff.InitOptions{BasePath: root}); err != nil {
//		return err
//	}
//	defer finder.Destroy(ctx)
//
//	result, err := finder.Search(ctx, "main.go", fff.SearchOptions{PageSize: 20})
//
// Live grep pages through the index with cursors: pass the NextCursor of one
// GrepResult in the next GrepOptions to resume. A nil cursor starts at the
// beginning.
//
// Errors wrap the sentinels below and are matched with errors.Is.
package fff
