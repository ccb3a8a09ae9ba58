package pins

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinerstudio/chartsync/internal/model/core"
	"github.com/marinerstudio/chartsync/internal/storage/memory"
)

func newTestStore() *Store {
	return NewStore(nil, zerolog.Nop())
}

func mustAdd(t *testing.T, s *Store, coord core.Coordinate, title, subtitle string) core.Pin {
	t.Helper()
	pin, ok := s.Add(coord, title, subtitle)
	require.True(t, ok)
	return pin
}

func TestAdd_AssignsFreshIDs(t *testing.T) {
	s := newTestStore()

	a := mustAdd(t, s, core.Coordinate{Lat: 40.7, Lon: -74.0}, "Pin A", "")
	b := mustAdd(t, s, core.Coordinate{Lat: 40.7, Lon: -74.0}, "Pin B", "")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, s.Count())
}

func TestAdd_RejectsOutOfBoundsCoordinates(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, core.Coordinate{Lat: 40.7, Lon: -74.0}, "valid", "")

	cases := []core.Coordinate{
		{Lat: 200, Lon: 500},
		{Lat: 90.1, Lon: 0},
		{Lat: -90.1, Lon: 0},
		{Lat: 0, Lon: 180.1},
		{Lat: 0, Lon: -180.1},
	}
	for _, coord := range cases {
		pin, ok := s.Add(coord, "bad", "")
		assert.False(t, ok)
		assert.Empty(t, pin.ID)
	}

	// The rejected pins never entered the store.
	require.Equal(t, 1, s.Count())
	assert.True(t, s.All()[0].Coordinate.Valid())
}

func TestAdd_RejectedPinIsNotPersisted(t *testing.T) {
	backend := memory.New()
	s := NewStore(backend, zerolog.Nop())

	_, ok := s.Add(core.Coordinate{Lat: 91, Lon: 0}, "bad", "")
	require.False(t, ok)

	saved, err := backend.LoadPins()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestAddThenRemove_RestoresPriorState(t *testing.T) {
	s := newTestStore()
	mustAdd(t, s, core.Coordinate{Lat: 1, Lon: 1}, "keep", "")
	before := s.All()

	added := mustAdd(t, s, core.Coordinate{Lat: 2, Lon: 2}, "temp", "")
	require.True(t, s.Remove(added.ID))

	assert.Equal(t, before, s.All())
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore()
	pin := mustAdd(t, s, core.Coordinate{Lat: 40.7, Lon: -74.0}, "Pin A", "")

	assert.False(t, s.Remove("not-a-real-id"))
	assert.Equal(t, 1, s.Count())

	assert.True(t, s.Remove(pin.ID))
	assert.Equal(t, 0, s.Count())

	// Second removal of the same ID stays idempotent.
	assert.False(t, s.Remove(pin.ID))
}

func TestAll_InsertionOrder(t *testing.T) {
	s := newTestStore()

	first := mustAdd(t, s, core.Coordinate{Lat: 1, Lon: 1}, "first", "")
	second := mustAdd(t, s, core.Coordinate{Lat: 2, Lon: 2}, "second", "")
	third := mustAdd(t, s, core.Coordinate{Lat: 3, Lon: 3}, "third", "")
	s.Remove(second.ID)

	ids := s.IDs()
	require.Len(t, ids, 2)
	assert.Equal(t, first.ID, ids[0])
	assert.Equal(t, third.ID, ids[1])
}

func TestWriteThroughAndRestore(t *testing.T) {
	backend := memory.New()
	s := NewStore(backend, zerolog.Nop())

	pin := mustAdd(t, s, core.Coordinate{Lat: 38.9784, Lon: -76.4951}, "Harbor", "Annapolis")
	mustAdd(t, s, core.Coordinate{Lat: 40.7, Lon: -74.0}, "NYC", "")
	s.Remove(pin.ID)

	// A fresh store over the same backend sees the surviving pin.
	restored := NewStore(backend, zerolog.Nop())
	require.NoError(t, restored.Restore())

	require.Equal(t, 1, restored.Count())
	assert.Equal(t, "NYC", restored.All()[0].Title)
}
