// Package pins owns the user-placed map annotations for one session.
// The store is the single source of truth; rendered annotations are
// disposable projections reconciled against it.
package pins

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marinerstudio/chartsync/internal/model/core"
	"github.com/marinerstudio/chartsync/internal/storage"
)

// Store is an insertion-ordered pin collection with stable UUID
// identities. Mutations never fail: persistence problems are logged
// and the in-memory state stays authoritative for the session.
type Store struct {
	mu      sync.RWMutex
	pins    []core.Pin
	backend storage.Backend
	logger  zerolog.Logger
	nowFunc func() time.Time
}

// NewStore creates a Store. backend may be nil for a purely in-memory
// session.
func NewStore(backend storage.Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Restore loads previously persisted pins into the store. Intended for
// session startup, before any mutation.
func (s *Store) Restore() error {
	if s.backend == nil {
		return nil
	}
	loaded, err := s.backend.LoadPins()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = loaded
	return nil
}

// Add creates and appends a new pin with a fresh ID. Existing pins are
// never mutated. Coordinates outside WGS84 bounds are refused with a
// false return, mirroring the silent no-op of an invalid layer toggle.
func (s *Store) Add(coord core.Coordinate, title, subtitle string) (core.Pin, bool) {
	if !coord.Valid() {
		s.logger.Debug().
			Float64("lat", coord.Lat).
			Float64("lon", coord.Lon).
			Msg("Pin rejected, coordinate out of bounds")
		return core.Pin{}, false
	}

	pin := core.Pin{
		ID:         uuid.NewString(),
		Coordinate: coord,
		Title:      title,
		Subtitle:   subtitle,
		CreatedAt:  s.nowFunc().UTC(),
	}

	s.mu.Lock()
	s.pins = append(s.pins, pin)
	s.mu.Unlock()

	if s.backend != nil {
		if err := s.backend.SavePin(&pin); err != nil {
			s.logger.Error().Err(err).Str("pinId", pin.ID).Msg("Failed to persist pin")
		}
	}
	return pin, true
}

// Remove deletes the pin with the given ID. Unknown IDs are a no-op:
// deletions may race with UI dismissal and must stay idempotent.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	removed := false
	for i := range s.pins {
		if s.pins[i].ID == id {
			s.pins = append(s.pins[:i], s.pins[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed && s.backend != nil {
		if err := s.backend.DeletePin(id); err != nil {
			s.logger.Error().Err(err).Str("pinId", id).Msg("Failed to delete persisted pin")
		}
	}
	return removed
}

// All returns the pins in insertion order.
func (s *Store) All() []core.Pin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Pin, len(s.pins))
	copy(out, s.pins)
	return out
}

// IDs returns the pin IDs in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.pins))
	for i, p := range s.pins {
		ids[i] = p.ID
	}
	return ids
}

// Count returns the number of pins.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pins)
}
