package gormstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	b := New(db, "test-session")
	require.NoError(t, b.Init())
	return b
}

func TestSavePin_UpsertByID(t *testing.T) {
	b := newTestBackend(t)

	pin := core.Pin{
		ID:         "pin-1",
		Coordinate: core.Coordinate{Lat: 38.9784, Lon: -76.4951},
		Title:      "Harbor",
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, b.SavePin(&pin))

	pin.Title = "Annapolis Harbor"
	require.NoError(t, b.SavePin(&pin))

	pins, err := b.LoadPins()
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, "Annapolis Harbor", pins[0].Title)
	assert.InDelta(t, 38.9784, pins[0].Coordinate.Lat, 1e-9)
}

func TestDeletePin_UnknownIDIsNoop(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SavePin(&core.Pin{ID: "pin-1", CreatedAt: time.Now().UTC()}))
	require.NoError(t, b.DeletePin("does-not-exist"))

	pins, err := b.LoadPins()
	require.NoError(t, err)
	assert.Len(t, pins, 1)

	require.NoError(t, b.DeletePin("pin-1"))
	pins, err = b.LoadPins()
	require.NoError(t, err)
	assert.Empty(t, pins)
}

func TestLoadPins_CreationOrder(t *testing.T) {
	b := newTestBackend(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, b.SavePin(&core.Pin{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	pins, err := b.LoadPins()
	require.NoError(t, err)
	require.Len(t, pins, 3)
	assert.Equal(t, "c", pins[0].ID)
	assert.Equal(t, "a", pins[1].ID)
	assert.Equal(t, "b", pins[2].ID)
}

func TestSelection_RoundTripAndUpsert(t *testing.T) {
	b := newTestBackend(t)

	ids, style, err := b.LoadSelection()
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Empty(t, style)

	require.NoError(t, b.SaveSelection([]core.LayerID{0, 1, 2, 6}, core.StyleTraditional))
	require.NoError(t, b.SaveSelection([]core.LayerID{0, 3}, core.StyleECDIS))

	ids, style, err = b.LoadSelection()
	require.NoError(t, err)
	assert.Equal(t, []core.LayerID{0, 3}, ids)
	assert.Equal(t, core.StyleECDIS, style)
}
