// Package memory stores session state in process memory. It is the
// default backend and the one used by tests and the daemon's dry-run
// mode.
package memory

import (
	"sync"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// Backend keeps pins and the layer selection in memory.
type Backend struct {
	mu        sync.RWMutex
	pins      []core.Pin
	selection []core.LayerID
	style     core.ChartStyle
}

// New creates a new memory backend.
func New() *Backend {
	return &Backend{}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// SavePin appends or replaces the pin with the same ID.
func (b *Backend) SavePin(p *core.Pin) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.pins {
		if b.pins[i].ID == p.ID {
			b.pins[i] = *p
			return nil
		}
	}
	b.pins = append(b.pins, *p)
	return nil
}

// DeletePin removes the pin with the given ID. Unknown IDs are a no-op.
func (b *Backend) DeletePin(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.pins {
		if b.pins[i].ID == id {
			b.pins = append(b.pins[:i], b.pins[i+1:]...)
			return nil
		}
	}
	return nil
}

// LoadPins returns all stored pins in insertion order.
func (b *Backend) LoadPins() ([]core.Pin, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.Pin, len(b.pins))
	copy(out, b.pins)
	return out, nil
}

// SaveSelection stores the active layer IDs and chart style.
func (b *Backend) SaveSelection(layers []core.LayerID, style core.ChartStyle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = make([]core.LayerID, len(layers))
	copy(b.selection, layers)
	b.style = style
	return nil
}

// LoadSelection returns the stored layer selection, or nil if none was
// ever saved.
func (b *Backend) LoadSelection() ([]core.LayerID, core.ChartStyle, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.selection == nil {
		return nil, "", nil
	}
	out := make([]core.LayerID, len(b.selection))
	copy(out, b.selection)
	return out, b.style, nil
}
