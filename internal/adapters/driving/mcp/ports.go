package mcp

import (
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Finder runs searches. It must be initialized before serving.
	Finder driving.FileFinder

	// Grep pages live-grep results behind cursor tokens.
	Grep driving.GrepPager

	// Platform describes native library resolution. Optional.
	Platform driving.PlatformService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Finder == nil {
		return ErrMissingFinder
	}
	if p.Grep == nil {
		return ErrMissingGrepPager
	}
	return nil
}
