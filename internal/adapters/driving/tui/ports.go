package tui

import (
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
)

// Ports aggregates the driving ports the picker needs.
type Ports struct {
	// Session supplies completions and records selections. It must be
	// started before the picker runs.
	Session driving.Session
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
