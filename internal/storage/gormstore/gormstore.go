// Package gormstore implements the storage.Backend interface over a
// GORM database. It is shared by the SQLite and Postgres paths; the
// only driver-specific concern is how the *gorm.DB was opened, which
// the database manager handles.
package gormstore

import (
	"errors"
	"fmt"

	"github.com/marinerstudio/chartsync/internal/model"
	"github.com/marinerstudio/chartsync/internal/model/convert"
	"github.com/marinerstudio/chartsync/internal/model/core"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Backend persists pins and session state through GORM.
type Backend struct {
	db          *gorm.DB
	sessionName string
}

// New creates a backend bound to one named session.
func New(db *gorm.DB, sessionName string) *Backend {
	return &Backend{db: db, sessionName: sessionName}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}
	return nil
}

// Close is a no-op; the connection is owned by the database manager.
func (b *Backend) Close() error {
	return nil
}

// SavePin upserts the pin by ID.
func (b *Backend) SavePin(p *core.Pin) error {
	record := convert.PinToRecord(*p)
	err := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("error saving pin %s: %w", p.ID, err)
	}
	return nil
}

// DeletePin removes the pin by ID. Unknown IDs are a no-op.
func (b *Backend) DeletePin(id string) error {
	if err := b.db.Delete(&model.Pin{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("error deleting pin %s: %w", id, err)
	}
	return nil
}

// LoadPins returns all pins ordered by creation time.
func (b *Backend) LoadPins() ([]core.Pin, error) {
	var records []model.Pin
	if err := b.db.Order("created_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error loading pins: %w", err)
	}
	pins := make([]core.Pin, len(records))
	for i, r := range records {
		pins[i] = convert.PinFromRecord(r)
	}
	return pins, nil
}

// SaveSelection upserts the session's layer selection and style.
func (b *Backend) SaveSelection(layers []core.LayerID, style core.ChartStyle) error {
	raw, err := convert.SelectionToJSON(layers)
	if err != nil {
		return err
	}
	state := model.SessionState{
		SessionName: b.sessionName,
		Layers:      raw,
		ChartStyle:  string(style),
	}
	err = b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"layers", "chart_style", "updated_at"}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("error saving selection: %w", err)
	}
	return nil
}

// LoadSelection returns the stored selection, or nil if the session
// has no saved state yet.
func (b *Backend) LoadSelection() ([]core.LayerID, core.ChartStyle, error) {
	var state model.SessionState
	err := b.db.Where("session_name = ?", b.sessionName).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("error loading selection: %w", err)
	}
	ids, err := convert.SelectionFromJSON(state.Layers)
	if err != nil {
		return nil, "", err
	}
	return ids, core.ChartStyle(state.ChartStyle), nil
}
