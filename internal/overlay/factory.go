// Package overlay builds chart overlay descriptors from a layer
// selection and a symbology style.
package overlay

import (
	"github.com/marinerstudio/chartsync/internal/layers"
	"github.com/marinerstudio/chartsync/internal/model/core"
)

// Factory produces OverlayDescriptors. Opacity is fixed per render
// context: the primary chart map is fully opaque, the single-unit
// detail map composites the same overlay at reduced opacity. The two
// values are distinct on purpose and configured separately.
type Factory struct {
	primaryOpacity float64
	detailOpacity  float64
}

// NewFactory creates a Factory with the given per-context opacities.
func NewFactory(primaryOpacity, detailOpacity float64) *Factory {
	return &Factory{
		primaryOpacity: clampOpacity(primaryOpacity),
		detailOpacity:  clampOpacity(detailOpacity),
	}
}

// NewDefaultFactory uses the stock opacities: 1.0 primary, 0.7 detail.
func NewDefaultFactory() *Factory {
	return NewFactory(1.0, 0.7)
}

// Build derives a descriptor from the current layer selection. Pure:
// no side effects, no I/O, and equal inputs always produce descriptors
// equal by value.
func (f *Factory) Build(set *layers.LayerSet, style core.ChartStyle, ctx core.RenderContext) core.OverlayDescriptor {
	opacity := f.primaryOpacity
	if ctx == core.ContextDetail {
		opacity = f.detailOpacity
	}
	return core.OverlayDescriptor{
		Style:   style,
		Layers:  set.SortedIDs(),
		Opacity: opacity,
	}
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
