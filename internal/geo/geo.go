package geo

import (
	"errors"
	"strconv"
	"strings"

	"github.com/marinerstudio/chartsync/internal/model/core"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Positions arrive from the wire as "lat,lon" strings in EPSG:4326.
// The chart tile provider works in EPSG:3857, so bbox math for overlay
// handles goes through Point3857 before it reaches the provider.

// ErrInvalidCoordinates is returned when a coordinate string cannot be
// parsed or falls outside WGS84 bounds.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// CoordinateFromString parses a "lat,lon" string into a core.Coordinate.
func CoordinateFromString(s string) (core.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	coord := core.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	return coord, nil
}

// Point3857 projects a WGS84 coordinate to a web-mercator point.
func Point3857(coord core.Coordinate) geom.Point {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(coord.Lon, coord.Lat, 0)
	return geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
		},
	)
}

// Envelope3857 projects a viewport region to a web-mercator envelope,
// suitable as a bbox parameter for the tile provider.
func Envelope3857(region core.Region) (geom.Envelope, error) {
	min := core.Coordinate{
		Lat: region.Center.Lat - region.LatSpan/2,
		Lon: region.Center.Lon - region.LonSpan/2,
	}
	max := core.Coordinate{
		Lat: region.Center.Lat + region.LatSpan/2,
		Lon: region.Center.Lon + region.LonSpan/2,
	}
	if !min.Valid() || !max.Valid() {
		return geom.Envelope{}, ErrInvalidCoordinates
	}
	minPt := Point3857(min)
	maxPt := Point3857(max)
	minXY, ok := minPt.XY()
	if !ok {
		return geom.Envelope{}, ErrInvalidCoordinates
	}
	maxXY, ok := maxPt.XY()
	if !ok {
		return geom.Envelope{}, ErrInvalidCoordinates
	}
	return geom.NewEnvelope(minXY, maxXY), nil
}
