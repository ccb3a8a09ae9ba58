// Package session owns the chart screen's mutable state and is the
// only code allowed to drive the map surface, via its reconciler. The
// hosting view calls the small synchronous API here and re-renders
// from CurrentDescriptor/CurrentPins.
package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marinerstudio/chartsync/internal/layers"
	"github.com/marinerstudio/chartsync/internal/location"
	"github.com/marinerstudio/chartsync/internal/model/core"
	"github.com/marinerstudio/chartsync/internal/overlay"
	"github.com/marinerstudio/chartsync/internal/pins"
	"github.com/marinerstudio/chartsync/internal/queue"
	"github.com/marinerstudio/chartsync/internal/reconcile"
	"github.com/marinerstudio/chartsync/internal/storage"
)

// InitialSpan is the lat/lon span of the startup viewport in degrees.
const InitialSpan = 0.5

// Mutation records one state change pending reconciliation, kept for
// diagnostics. Rapid mutations coalesce: one Flush drains them all and
// runs a single pass over the latest state.
type Mutation struct {
	Kind   string
	Detail string
}

// Dependencies holds everything a session needs.
type Dependencies struct {
	Layers     *layers.LayerSet
	Pins       *pins.Store
	Factory    *overlay.Factory
	Reconciler *reconcile.Reconciler
	Surface    reconcile.MapSurface
	Backend    storage.Backend // may be nil
	Logger     zerolog.Logger
}

// Session wires the layer set, pin store, factory and reconciler for
// one chart screen. All mutation funnels through it; callers on other
// goroutines must marshal onto the owner's loop.
type Session struct {
	deps    Dependencies
	style   core.ChartStyle
	renderC core.RenderContext
	pending *queue.Queue[Mutation]
}

// New creates a session rendering the primary chart context in the
// given style.
func New(deps Dependencies, style core.ChartStyle, renderContext core.RenderContext) *Session {
	return &Session{
		deps:    deps,
		style:   style,
		renderC: renderContext,
		pending: queue.New[Mutation](),
	}
}

// Start restores persisted state, resolves the initial viewport and
// runs the first reconciliation pass.
func (s *Session) Start(ctx context.Context, resolver *location.Resolver) error {
	if s.deps.Backend != nil {
		saved, style, err := s.deps.Backend.LoadSelection()
		if err != nil {
			return err
		}
		if saved != nil {
			s.deps.Layers = layers.New(saved)
			s.style = style
		}
		if err := s.deps.Pins.Restore(); err != nil {
			return err
		}
	}

	center := resolver.Resolve(ctx)
	s.deps.Surface.SetRegion(core.Region{
		Center:  center,
		LatSpan: InitialSpan,
		LonSpan: InitialSpan,
	})
	if resolver.UsedFallback() {
		s.deps.Logger.Info().
			Float64("lat", center.Lat).
			Float64("lon", center.Lon).
			Msg("Centered on fallback harbor")
	}

	s.Flush()
	return nil
}

// ToggleLayer flips a chart layer. Invalid toggles are silent no-ops,
// matching the always-valid control surface.
func (s *Session) ToggleLayer(id core.LayerID) bool {
	changed := s.deps.Layers.Toggle(id)
	if !changed {
		s.deps.Logger.Debug().Int("layerId", int(id)).Msg("Layer toggle rejected")
		return false
	}
	s.pending.Push(Mutation{Kind: "layer.toggle", Detail: id.Name()})
	s.persistSelection()
	return true
}

// SetStyle switches chart symbology.
func (s *Session) SetStyle(style core.ChartStyle) {
	if style == s.style {
		return
	}
	s.style = style
	s.pending.Push(Mutation{Kind: "style.set", Detail: string(style)})
	s.persistSelection()
}

// AddPin creates a pin at the given coordinate. Out-of-bounds
// coordinates are refused silently, like an invalid layer toggle.
func (s *Session) AddPin(coord core.Coordinate, title, subtitle string) (core.Pin, bool) {
	pin, ok := s.deps.Pins.Add(coord, title, subtitle)
	if !ok {
		return core.Pin{}, false
	}
	s.pending.Push(Mutation{Kind: "pin.add", Detail: pin.ID})
	return pin, true
}

// RemovePin deletes a pin by ID; unknown IDs are a no-op.
func (s *Session) RemovePin(id string) bool {
	removed := s.deps.Pins.Remove(id)
	if removed {
		s.pending.Push(Mutation{Kind: "pin.remove", Detail: id})
	}
	return removed
}

// CurrentDescriptor derives the desired overlay for the present state.
func (s *Session) CurrentDescriptor() core.OverlayDescriptor {
	return s.deps.Factory.Build(s.deps.Layers, s.style, s.renderC)
}

// CurrentPins returns the pins in insertion order.
func (s *Session) CurrentPins() []core.Pin {
	return s.deps.Pins.All()
}

// ObservedRegion reports the surface's current viewport. Region flows
// out of the map only; it never schedules a reconcile.
func (s *Session) ObservedRegion() core.Region {
	return s.deps.Surface.Region()
}

// Dirty reports whether mutations are awaiting a Flush.
func (s *Session) Dirty() bool {
	return !s.pending.Empty()
}

// Flush drains all pending mutations and runs one reconciliation pass
// over the latest desired state. Intermediate states are never
// rendered.
func (s *Session) Flush() reconcile.Ops {
	drained := s.pending.Drain()
	ops := s.deps.Reconciler.Sync(s.CurrentDescriptor(), s.CurrentPins())
	if len(drained) > 1 {
		s.deps.Logger.Debug().Int("coalesced", len(drained)).Msg("Coalesced mutations into one pass")
	}
	return ops
}

func (s *Session) persistSelection() {
	if s.deps.Backend == nil {
		return
	}
	if err := s.deps.Backend.SaveSelection(s.deps.Layers.SortedIDs(), s.style); err != nil {
		s.deps.Logger.Error().Err(err).Msg("Failed to persist layer selection")
	}
}
