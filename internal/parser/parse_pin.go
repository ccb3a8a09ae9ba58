package parser

import (
	"fmt"
	"strings"

	"github.com/marinerstudio/chartsync/internal/geo"
	"github.com/marinerstudio/chartsync/internal/model/core"
)

// PinAdd is a parsed pin creation request.
type PinAdd struct {
	Coordinate core.Coordinate
	Title      string
	Subtitle   string
}

// ParsePinAdd parses pin create data: a "lat,lon" position, an
// optional title and an optional subtitle. Missing title/subtitle are
// allowed; a bad position is not.
func (p *Parser) ParsePinAdd(data []string) (PinAdd, error) {
	var result PinAdd

	if len(data) < 1 {
		return result, fmt.Errorf("pin add requires a position")
	}

	pos := strings.TrimPrefix(data[0], "[")
	pos = strings.TrimSuffix(pos, "]")
	coord, err := geo.CoordinateFromString(pos)
	if err != nil {
		return result, fmt.Errorf("error parsing position: %w", err)
	}
	result.Coordinate = coord

	if len(data) > 1 {
		result.Title = data[1]
	}
	if len(data) > 2 {
		result.Subtitle = data[2]
	}

	return result, nil
}

// ParsePinRemove parses pin delete data: the pin ID.
func (p *Parser) ParsePinRemove(data []string) (string, error) {
	if len(data) < 1 || data[0] == "" {
		return "", fmt.Errorf("pin remove requires a pin id")
	}
	return data[0], nil
}
