// Package tiles produces overlay handles for the map surface. Tile
// fetching and caching are the rendering platform's responsibility;
// this package only describes where tiles come from and how to
// composite them.
package tiles

import (
	"github.com/marinerstudio/chartsync/internal/model/core"
)

// OverlayHandle is the opaque description handed to the map surface.
type OverlayHandle struct {
	URLTemplate string // XYZ template with {z}/{y}/{x} placeholders
	TileSize    int
	MaxZoom     int
	Opacity     float64
}

// Provider turns an overlay descriptor into a renderable handle.
type Provider interface {
	CreateOverlay(desc core.OverlayDescriptor) OverlayHandle
}
