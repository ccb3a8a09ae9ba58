package core

import (
	"fmt"
	"strings"
)

// OverlayDescriptor describes one chart tile overlay: which style,
// which display categories, and how opaque. Two descriptors with equal
// Key() are interchangeable and must never both be rendered.
type OverlayDescriptor struct {
	Style   ChartStyle
	Layers  []LayerID // ascending, as produced by LayerSet.SortedIDs
	Opacity float64
}

// Key returns the identity the reconciler compares: style plus the
// sorted layer list. Opacity is a render attribute, not identity.
func (d OverlayDescriptor) Key() string {
	parts := make([]string, len(d.Layers))
	for i, id := range d.Layers {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s:%s", d.Style, strings.Join(parts, ","))
}

// Equal reports value equality of (style, layers).
func (d OverlayDescriptor) Equal(other OverlayDescriptor) bool {
	return d.Key() == other.Key()
}
