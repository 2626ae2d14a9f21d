// Command fff is the command line for the fff native search engine.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ff-labs/fff-go/cgo/fff"
	"github.com/ff-labs/fff-go/internal/adapters/driven/config/file"
	"github.com/ff-labs/fff-go/internal/adapters/driven/native"
	"github.com/ff-labs/fff-go/internal/adapters/driven/platform"
	"github.com/ff-labs/fff-go/internal/adapters/driven/storage/memory"
	"github.com/ff-labs/fff-go/internal/adapters/driven/storage/sqlite"
	"github.com/ff-labs/fff-go/internal/adapters/driving/cli"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/core/services"
	"github.com/ff-labs/fff-go/internal/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Load()

	resolver := platform.NewResolver()
	locator := platform.NewLocator(resolver, settings.LibraryPath)
	bridge := native.New(locator, fff.Opener)

	finder := services.NewFileFinder(bridge)
	session := services.NewSession(finder, settings)

	cursors, closeStore := openCursorStore(settings.DataDir)
	defer closeStore()

	cli.SetServices(&cli.Services{
		Finder:   finder,
		Session:  session,
		Settings: settingsService,
		Platform: services.NewPlatformService(resolver, locator, finder),
		Grep:     services.NewGrepPager(finder, session, cursors, settings.CursorTTL),
		MCPGrep:  services.NewGrepPager(finder, session, memory.NewCursorStore(), settings.CursorTTL),
	})
	cli.SetVersion(version)

	return cli.Execute(context.Background())
}

// openCursorStore opens the sqlite cursor store in dataDir. Grep paging
// still works within one process when the store cannot be opened.
func openCursorStore(dataDir string) (driven.CursorStore, func()) {
	if dataDir == "" {
		dir, err := sqlite.DefaultDataDir()
		if err != nil {
			logger.Warn("no data directory, grep cursors will not persist: %v", err)
			return memory.NewCursorStore(), func() {}
		}
		dataDir = dir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("failed to open cursor store, grep cursors will not persist: %v", err)
		return memory.NewCursorStore(), func() {}
	}
	return store.CursorStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("close cursor store: %v", err)
		}
	}
}
