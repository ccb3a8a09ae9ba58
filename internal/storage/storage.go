// Package storage defines the persistence contract for chart session
// state. Backends persist user pins and the layer selection so a chart
// screen restores where it left off.
package storage

import "github.com/marinerstudio/chartsync/internal/model/core"

// Backend is the interface all storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Pin persistence
	SavePin(p *core.Pin) error
	DeletePin(id string) error
	LoadPins() ([]core.Pin, error)

	// Session state
	SaveSelection(layers []core.LayerID, style core.ChartStyle) error
	LoadSelection() ([]core.LayerID, core.ChartStyle, error)
}
