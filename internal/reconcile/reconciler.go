// Package reconcile converges a map surface's rendered state onto the
// session's desired state: one overlay descriptor plus the pin store
// contents. It computes the minimal add/remove set instead of
// re-adding everything, so unchanged tiles are not refetched and open
// callouts on unchanged annotations survive a pass.
package reconcile

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Ops summarizes what one reconciliation pass changed.
type Ops struct {
	OverlayRemoved     bool
	OverlayInstalled   bool
	AnnotationsAdded   int
	AnnotationsRemoved int
}

// Changed reports whether the pass touched the surface at all.
func (o Ops) Changed() bool {
	return o.OverlayRemoved || o.OverlayInstalled ||
		o.AnnotationsAdded > 0 || o.AnnotationsRemoved > 0
}

// Reconciler diffs desired state against a surface and applies the
// minimal operations. No operation here can fail: inputs are
// pre-validated by LayerSet and the pin store, and divergence is
// self-healing on the next pass.
type Reconciler struct {
	surface MapSurface
	logger  Logger

	// NudgeAfterInstall re-sets the region with identical bounds after
	// installing a new overlay. Some tile surfaces apply overlays
	// asynchronously and need the repaint kick; it is a workaround,
	// not a correctness requirement.
	NudgeAfterInstall bool

	overlaySwaps  metric.Int64Counter
	annotationOps metric.Int64Counter
}

// New creates a Reconciler for the given surface.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(surface MapSurface, logger Logger) (*Reconciler, error) {
	r := &Reconciler{
		surface: surface,
		logger:  logger,
	}

	m := meter()

	var err error
	r.overlaySwaps, err = m.Int64Counter(
		"chartsync.reconcile.overlay.swaps",
		metric.WithDescription("Overlay install/remove operations applied"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating overlay swap counter: %w", err)
	}

	r.annotationOps, err = m.Int64Counter(
		"chartsync.reconcile.annotation.ops",
		metric.WithDescription("Annotation add/remove operations applied"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating annotation op counter: %w", err)
	}

	return r, nil
}

// Sync converges the surface onto the desired overlay and pin set.
// After it returns, the surface renders exactly {desired} as its
// overlay and exactly the given pins as annotations.
func (r *Reconciler) Sync(desired core.OverlayDescriptor, pins []core.Pin) Ops {
	var ops Ops

	ops.OverlayRemoved, ops.OverlayInstalled = r.syncOverlay(desired)
	ops.AnnotationsAdded, ops.AnnotationsRemoved = r.syncAnnotations(pins)

	if ops.Changed() {
		r.logger.Debug("reconcile pass applied",
			"overlayInstalled", ops.OverlayInstalled,
			"annotationsAdded", ops.AnnotationsAdded,
			"annotationsRemoved", ops.AnnotationsRemoved,
		)
	}
	return ops
}

// syncOverlay swaps the rendered overlay only when (style, layers)
// differ. The old overlay is always torn down before the replacement
// is installed so two live overlays never coexist.
func (r *Reconciler) syncOverlay(desired core.OverlayDescriptor) (removed, installed bool) {
	installedDesc, has := r.surface.InstalledOverlay()
	if has && installedDesc.Equal(desired) {
		return false, false
	}

	if has {
		r.surface.RemoveOverlay()
		removed = true
		r.overlaySwaps.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("op", "remove")))
	}

	r.surface.InstallOverlay(desired)
	installed = true
	r.overlaySwaps.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("op", "install")))

	if r.NudgeAfterInstall {
		// Identical-bounds region re-set to force a repaint.
		r.surface.SetRegion(r.surface.Region())
	}

	return removed, installed
}

// syncAnnotations diffs by pin ID. Removals are applied before
// additions to avoid transient duplicate-ID states, and pins whose ID
// is already rendered are never recreated.
func (r *Reconciler) syncAnnotations(pins []core.Pin) (added, removed int) {
	desired := make(map[string]core.Pin, len(pins))
	for _, p := range pins {
		desired[p.ID] = p
	}

	rendered := make(map[string]struct{})
	for _, id := range r.surface.AnnotationIDs() {
		rendered[id] = struct{}{}
		if _, keep := desired[id]; !keep {
			r.surface.RemoveAnnotation(id)
			removed++
		}
	}

	for _, p := range pins {
		if _, ok := rendered[p.ID]; !ok {
			r.surface.AddAnnotation(p)
			added++
		}
	}

	if added > 0 || removed > 0 {
		r.annotationOps.Add(context.Background(), int64(added+removed))
	}
	return added, removed
}
