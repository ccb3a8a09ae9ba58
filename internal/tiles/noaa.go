package tiles

import (
	"fmt"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/marinerstudio/chartsync/internal/geo"
	"github.com/marinerstudio/chartsync/internal/model/core"
)

// DefaultNOAABaseURL is the NOAA ENC tile service.
const DefaultNOAABaseURL = "https://gis.charttools.noaa.gov/arcgis/rest/services/MCS/ENCOnline/MapServer/exts/MaritimeChartService/tile"

// NOAAProvider builds XYZ overlay handles against the NOAA ENC
// maritime chart service. The layer query is derived from the
// descriptor's sorted layer list, so equal descriptors always yield
// identical templates.
type NOAAProvider struct {
	BaseURL  string
	TileSize int
	MaxZoom  int
}

// NewNOAAProvider creates a provider with stock service parameters.
func NewNOAAProvider() *NOAAProvider {
	return &NOAAProvider{
		BaseURL:  DefaultNOAABaseURL,
		TileSize: 256,
		MaxZoom:  16,
	}
}

// CreateOverlay builds the handle for the given descriptor.
func (p *NOAAProvider) CreateOverlay(desc core.OverlayDescriptor) OverlayHandle {
	template := fmt.Sprintf(
		"%s/{z}/{y}/{x}?layers=%s&display=%s",
		p.BaseURL, layerQuery(desc), displayParam(desc),
	)

	return OverlayHandle{
		URLTemplate: template,
		TileSize:    p.TileSize,
		MaxZoom:     p.MaxZoom,
		Opacity:     desc.Opacity,
	}
}

// ExportURL builds a single-image export request for the descriptor
// over the given viewport. The chart service's export endpoint takes
// its bbox in web mercator, so the region is projected here.
func (p *NOAAProvider) ExportURL(desc core.OverlayDescriptor, region core.Region, width, height int) (string, error) {
	env, err := geo.Envelope3857(region)
	if err != nil {
		return "", err
	}
	min, max, ok := env.MinMaxXYs()
	if !ok {
		return "", geo.ErrInvalidCoordinates
	}

	base := strings.TrimSuffix(p.BaseURL, "/tile")
	return fmt.Sprintf(
		"%s/export?bbox=%.2f,%.2f,%.2f,%.2f&bboxSR=3857&imageSR=3857&size=%d,%d&layers=show:%s&display=%s&format=png&f=image",
		base, min.X, min.Y, max.X, max.Y, width, height,
		layerQuery(desc), displayParam(desc),
	), nil
}

func layerQuery(desc core.OverlayDescriptor) string {
	ids := make([]string, len(desc.Layers))
	for i, id := range desc.Layers {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(ids, ",")
}

// displayParam maps symbology to the service's display parameter:
// 1 is traditional paper-chart, 2 is ECDIS.
func displayParam(desc core.OverlayDescriptor) string {
	if desc.Style == core.StyleECDIS {
		return "2"
	}
	return "1"
}

// BBox3857 projects a viewport region into the web-mercator bbox the
// chart service expects for export-style requests.
func BBox3857(region core.Region) (geom.Envelope, error) {
	return geo.Envelope3857(region)
}
