package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marinerstudio/chartsync/internal/geo"
	"github.com/marinerstudio/chartsync/internal/model/core"
)

// defaultSpan is used when a region update omits or garbles its spans.
const defaultSpan = 0.5

// ParseRegionSet parses an observed-region update: "lat,lon" center
// plus latitude and longitude spans in degrees. Spans are cosmetic for
// diagnostics, so a bad span falls back to a default with a warning
// instead of failing the update.
func (p *Parser) ParseRegionSet(data []string) (core.Region, error) {
	var region core.Region

	if len(data) < 1 {
		return region, fmt.Errorf("region set requires a center position")
	}

	pos := strings.TrimPrefix(data[0], "[")
	pos = strings.TrimSuffix(pos, "]")
	center, err := geo.CoordinateFromString(pos)
	if err != nil {
		return region, fmt.Errorf("error parsing center: %w", err)
	}
	region.Center = center

	region.LatSpan = defaultSpan
	region.LonSpan = defaultSpan

	if len(data) > 1 {
		latSpan, err := strconv.ParseFloat(data[1], 64)
		if err != nil || latSpan <= 0 {
			p.logger.Warn().Str("latSpan", data[1]).Msg("Bad latitude span, using default")
		} else {
			region.LatSpan = latSpan
		}
	}
	if len(data) > 2 {
		lonSpan, err := strconv.ParseFloat(data[2], 64)
		if err != nil || lonSpan <= 0 {
			p.logger.Warn().Str("lonSpan", data[2]).Msg("Bad longitude span, using default")
		} else {
			region.LonSpan = lonSpan
		}
	}

	return region, nil
}
