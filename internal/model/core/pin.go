package core

import "time"

// Pin is a user-placed point annotation, independent of chart data.
// The rendered annotation on the map surface is a disposable
// projection of this record, never the source of truth.
type Pin struct {
	ID         string
	Coordinate Coordinate
	Title      string
	Subtitle   string
	CreatedAt  time.Time
}
