package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels lists every struct here that maps to a table, for
// AutoMigrate.
var DatabaseModels = []interface{}{
	&Pin{},
	&SessionState{},
}

// Pin is the persisted form of a user-placed annotation.
type Pin struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	Title     string
	Subtitle  string
}

// SessionState is the persisted chart screen state: active layer IDs
// as a JSON array plus the chart style. One row per session name.
type SessionState struct {
	ID        uint `gorm:"primarykey"`
	UpdatedAt time.Time

	SessionName string         `gorm:"uniqueIndex;not null"`
	Layers      datatypes.JSON `gorm:"not null"`
	ChartStyle  string         `gorm:"not null"`
}
