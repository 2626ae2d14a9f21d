// Package mcp provides an MCP (Model Context Protocol) server adapter for fff.
// It lets AI assistants search file names and contents in the indexed tree.
package mcp

import "errors"

// ErrMissingFinder is returned when the file finder is not provided.
var ErrMissingFinder = errors.New("mcp: file finder is required")

// ErrMissingGrepPager is returned when the grep pager is not provided.
var ErrMissingGrepPager = errors.New("mcp: grep pager is required")
