package mcp

import (
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Querier runs verification queries over published tafsir.
	Querier driving.TafsirQuerier
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Querier == nil {
		return ErrMissingQuerier
	}
	return nil
}
