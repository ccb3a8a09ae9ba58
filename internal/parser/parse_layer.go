package parser

import (
	"fmt"
	"strconv"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// ParseLayerToggle parses layer toggle data. The ID is parsed as-is;
// domain validation is the layer set's job, where out-of-range IDs are
// defined as no-ops rather than errors.
func (p *Parser) ParseLayerToggle(data []string) (core.LayerID, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("layer toggle requires a layer id")
	}

	id, err := strconv.Atoi(data[0])
	if err != nil {
		return 0, fmt.Errorf("error parsing layer id: %w", err)
	}

	return core.LayerID(id), nil
}

// ParseStyleSet parses a chart style change.
func (p *Parser) ParseStyleSet(data []string) (core.ChartStyle, error) {
	if len(data) < 1 {
		return "", fmt.Errorf("style set requires a style name")
	}

	switch core.ChartStyle(data[0]) {
	case core.StyleTraditional:
		return core.StyleTraditional, nil
	case core.StyleECDIS:
		return core.StyleECDIS, nil
	default:
		return "", fmt.Errorf("unknown chart style: %s", data[0])
	}
}
