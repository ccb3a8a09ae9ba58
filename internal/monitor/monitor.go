// Package monitor periodically compares the rendered surface against
// desired chart state and reports divergence. It is diagnostic only:
// healing is the reconciler's job, on the next sync pass.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marinerstudio/chartsync/internal/influx"
	"github.com/marinerstudio/chartsync/internal/model/core"
	"github.com/marinerstudio/chartsync/internal/reconcile"
)

// StateSource exposes the desired chart state the monitor checks the
// surface against.
type StateSource interface {
	CurrentDescriptor() core.OverlayDescriptor
	CurrentPins() []core.Pin
}

// Drift is one observation of surface divergence.
type Drift struct {
	Time               time.Time
	MissingAnnotations []string // desired pins absent from the surface
	StrayAnnotations   []string // surface annotations with no backing pin
	OverlayStale       bool     // rendered overlay differs from desired
}

// Detected reports whether the observation found any divergence.
func (d Drift) Detected() bool {
	return d.OverlayStale || len(d.MissingAnnotations) > 0 || len(d.StrayAnnotations) > 0
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Surface     reconcile.MapSurface
	State       StateSource
	Logger      zerolog.Logger
	Influx      *influx.Manager // optional
	SessionName string
	Interval    time.Duration
}

// Service runs the periodic drift check.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service. A zero Interval defaults
// to one second.
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the drift monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Snapshot takes a single drift observation without starting the
// background loop.
func (s *Service) Snapshot() Drift {
	d := Drift{Time: time.Now()}

	desired := s.deps.State.CurrentDescriptor()
	if rendered, has := s.deps.Surface.InstalledOverlay(); !has || !rendered.Equal(desired) {
		d.OverlayStale = true
	}

	onSurface := make(map[string]bool)
	for _, id := range s.deps.Surface.AnnotationIDs() {
		onSurface[id] = true
	}

	wanted := make(map[string]bool)
	for _, pin := range s.deps.State.CurrentPins() {
		wanted[pin.ID] = true
		if !onSurface[pin.ID] {
			d.MissingAnnotations = append(d.MissingAnnotations, pin.ID)
		}
	}
	for id := range onSurface {
		if !wanted[id] {
			d.StrayAnnotations = append(d.StrayAnnotations, id)
		}
	}

	return d
}

// Start starts the drift monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		s.deps.Logger.Debug().Msg("Starting drift monitor goroutine")

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.observe()
			}
		}
	}()

	return nil
}

func (s *Service) observe() {
	d := s.Snapshot()
	if !d.Detected() {
		return
	}

	s.deps.Logger.Warn().
		Bool("overlayStale", d.OverlayStale).
		Strs("missingAnnotations", d.MissingAnnotations).
		Strs("strayAnnotations", d.StrayAnnotations).
		Msg("Surface drift detected, next sync pass will converge")

	if s.deps.Influx != nil {
		point := influx.DriftPoint(
			s.deps.SessionName,
			len(d.MissingAnnotations),
			len(d.StrayAnnotations),
			d.OverlayStale,
		)
		if err := s.deps.Influx.WritePoint(context.Background(), influx.BucketTelemetry, point); err != nil {
			s.deps.Logger.Error().Err(err).Msg("Error writing drift point")
		}
	}
}

// Stop stops the drift monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
