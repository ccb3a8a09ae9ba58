package core

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Region is a rectangular viewport: a center plus spans in degrees.
type Region struct {
	Center  Coordinate
	LatSpan float64
	LonSpan float64
}

// ChartStyle selects the symbology used by the tile provider.
type ChartStyle string

const (
	StyleTraditional ChartStyle = "traditional"
	StyleECDIS       ChartStyle = "ecdis"
)

// RenderContext identifies which screen an overlay is composited on.
// The primary chart map renders fully opaque; the single-unit detail
// map composites the same overlay at reduced opacity.
type RenderContext string

const (
	ContextPrimary RenderContext = "primary"
	ContextDetail  RenderContext = "detail"
)
