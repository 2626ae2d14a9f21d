package domain

import (
	"fmt"
	"strconv"
	"time"
)

// GrepCursor is an opaque resume position in a live-grep stream.
//
// Cursors come from GrepResult.NextCursor and go back into
// GrepOptions.Cursor. Their offset is defined by the native engine and is not
// visible to callers. A nil cursor, or the zero value, starts the stream.
type GrepCursor struct {
	offset int64
}

// NewGrepCursor wraps a native file offset. It returns nil for offsets that
// are not strictly positive, which the engine uses to signal exhaustion.
func NewGrepCursor(offset int64) *GrepCursor {
	if offset <= 0 {
		return nil
	}
	return &GrepCursor{offset: offset}
}

// CursorOffset returns the wire offset for c, 0 when c is nil.
func CursorOffset(c *GrepCursor) int64 {
	if c == nil {
		return 0
	}
	return c.offset
}

// CursorEntry is a stored cursor handed out as an opaque token.
type CursorEntry struct {
	// ID is the token returned to the caller.
	ID string

	// Query and Mode identify the grep the cursor belongs to.
	Query string
	Mode  GrepMode

	// BasePath and Filters pin the indexed tree and the file filters the
	// offset was computed against.
	BasePath string
	Filters  string

	// Cursor is the resume position.
	Cursor *GrepCursor

	CreatedAt time.Time
}

// GrepPage is a live-grep page whose continuation is an opaque stored token.
type GrepPage struct {
	Result *GrepResult

	// NextToken resumes the stream; empty when it is exhausted.
	NextToken string
}

// Filters renders the options that decide which files a grep stream visits.
// A cursor is only meaningful while these stay the same.
func (o GrepOptions) Filters() string {
	perFile := "default"
	if o.MaxMatchesPerFile != nil {
		perFile = strconv.Itoa(*o.MaxMatchesPerFile)
	}
	smartCase := "default"
	if o.SmartCase != nil {
		smartCase = strconv.FormatBool(*o.SmartCase)
	}
	return fmt.Sprintf("max_file_size=%d;max_matches_per_file=%s;smart_case=%s",
		o.MaxFileSize, perFile, smartCase)
}
