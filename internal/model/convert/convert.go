// Package convert maps between plain domain structs and their GORM
// persistence forms.
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/marinerstudio/chartsync/internal/model"
	"github.com/marinerstudio/chartsync/internal/model/core"

	"gorm.io/datatypes"
)

// PinToRecord converts a domain pin to its persisted form.
func PinToRecord(p core.Pin) model.Pin {
	return model.Pin{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Latitude:  p.Coordinate.Lat,
		Longitude: p.Coordinate.Lon,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
	}
}

// PinFromRecord converts a persisted pin back to the domain form.
func PinFromRecord(r model.Pin) core.Pin {
	return core.Pin{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Coordinate: core.Coordinate{
			Lat: r.Latitude,
			Lon: r.Longitude,
		},
		Title:    r.Title,
		Subtitle: r.Subtitle,
	}
}

// SelectionToJSON encodes a layer ID list as a JSON column value.
func SelectionToJSON(ids []core.LayerID) (datatypes.JSON, error) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("error encoding layer selection: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// SelectionFromJSON decodes a JSON column value into layer IDs.
func SelectionFromJSON(raw datatypes.JSON) ([]core.LayerID, error) {
	var ids []core.LayerID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("error decoding layer selection: %w", err)
	}
	return ids, nil
}
