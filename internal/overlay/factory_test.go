package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marinerstudio/chartsync/internal/layers"
	"github.com/marinerstudio/chartsync/internal/model/core"
)

func TestBuild_Deterministic(t *testing.T) {
	f := NewDefaultFactory()
	set := layers.NewDefault()

	first := f.Build(set, core.StyleTraditional, core.ContextPrimary)
	second := f.Build(set, core.StyleTraditional, core.ContextPrimary)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Key(), second.Key())
	assert.Equal(t, first.Opacity, second.Opacity)
}

func TestBuild_IndependentOfPriorCalls(t *testing.T) {
	f := NewDefaultFactory()
	set := layers.NewDefault()

	want := f.Build(set, core.StyleECDIS, core.ContextPrimary)

	// Interleave unrelated builds, then rebuild the original input.
	other := layers.New([]core.LayerID{core.LayerServices})
	f.Build(other, core.StyleTraditional, core.ContextDetail)
	f.Build(other, core.StyleECDIS, core.ContextPrimary)

	got := f.Build(set, core.StyleECDIS, core.ContextPrimary)
	assert.True(t, want.Equal(got))
}

func TestBuild_OpacityPerContext(t *testing.T) {
	f := NewDefaultFactory()
	set := layers.NewDefault()

	primary := f.Build(set, core.StyleTraditional, core.ContextPrimary)
	detail := f.Build(set, core.StyleTraditional, core.ContextDetail)

	assert.Equal(t, 1.0, primary.Opacity)
	assert.Equal(t, 0.7, detail.Opacity)

	// Opacity is a render attribute, not identity: the two descriptors
	// are still interchangeable for the installed-overlay check.
	assert.True(t, primary.Equal(detail))
}

func TestBuild_KeyReflectsStyleAndLayers(t *testing.T) {
	f := NewDefaultFactory()
	set := layers.NewDefault()

	traditional := f.Build(set, core.StyleTraditional, core.ContextPrimary)
	ecdis := f.Build(set, core.StyleECDIS, core.ContextPrimary)
	assert.False(t, traditional.Equal(ecdis))

	set.Toggle(core.LayerDepthsCurrents)
	changed := f.Build(set, core.StyleTraditional, core.ContextPrimary)
	assert.False(t, traditional.Equal(changed))
}

func TestNewFactory_ClampsOpacity(t *testing.T) {
	f := NewFactory(1.5, -0.2)
	set := layers.NewDefault()

	assert.Equal(t, 1.0, f.Build(set, core.StyleTraditional, core.ContextPrimary).Opacity)
	assert.Equal(t, 0.0, f.Build(set, core.StyleTraditional, core.ContextDetail).Opacity)
}
