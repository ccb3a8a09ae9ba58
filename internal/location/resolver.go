// Package location resolves the initial chart viewport center. It
// always terminates with a coordinate: a cached fix, a fresh fix
// obtained within a bounded wait, or the configured fallback harbor.
package location

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// Service is the location collaborator. Polled, not pushed.
type Service interface {
	RequestPermission() bool
	StartUpdating()
	CurrentLocation() (core.Coordinate, bool)
}

// Clock abstracts time so the bounded wait and advisory expiry are
// testable against a simulated clock.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// State names the resolver's position in its lifecycle.
type State string

const (
	StateUnresolved         State = "unresolved"
	StateAwaitingPermission State = "awaitingPermission"
	StateDenied             State = "denied"
	StateResolved           State = "resolved"
)

// DefaultFallback is the harbor coordinate used when no live fix is
// available (Annapolis, MD).
var DefaultFallback = core.Coordinate{Lat: 38.9784, Lon: -76.4951}

// Config tunes the resolver's waits.
type Config struct {
	Timeout          time.Duration // bounded wait for a fresh fix
	PollInterval     time.Duration
	AdvisoryDuration time.Duration // how long the fallback advisory stays up
	Fallback         core.Coordinate
}

// DefaultConfig matches the product behavior: ~2s fix window, 5s
// advisory.
func DefaultConfig() Config {
	return Config{
		Timeout:          2 * time.Second,
		PollInterval:     250 * time.Millisecond,
		AdvisoryDuration: 5 * time.Second,
		Fallback:         DefaultFallback,
	}
}

// Resolver runs the Unresolved -> AwaitingPermission ->
// (Resolved | Denied) -> Resolved(fallback) state machine.
type Resolver struct {
	svc    Service
	clock  Clock
	cfg    Config
	logger zerolog.Logger

	mu           sync.RWMutex
	state        State
	usedFallback bool
	advisory     bool
}

// NewResolver creates a Resolver with the real clock.
func NewResolver(svc Service, cfg Config, logger zerolog.Logger) *Resolver {
	return NewResolverWithClock(svc, cfg, logger, realClock{})
}

// NewResolverWithClock injects a clock, for tests.
func NewResolverWithClock(svc Service, cfg Config, logger zerolog.Logger, clock Clock) *Resolver {
	return &Resolver{
		svc:    svc,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
		state:  StateUnresolved,
	}
}

// State returns the resolver's current lifecycle state.
func (r *Resolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// UsedFallback reports whether the last resolution fell back.
func (r *Resolver) UsedFallback() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.usedFallback
}

// AdvisoryActive reports whether the fallback advisory is showing.
// The advisory auto-clears after the configured duration.
func (r *Resolver) AdvisoryActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.advisory
}

// Resolve returns a coordinate for the initial viewport. It never
// returns an absent result and always terminates within the bounded
// wait plus fallback assembly.
func (r *Resolver) Resolve(ctx context.Context) core.Coordinate {
	// (a) already-cached fix
	if loc, ok := r.svc.CurrentLocation(); ok {
		r.setResolved(false)
		return loc
	}

	// (b) request permission and poll briefly
	r.setState(StateAwaitingPermission)
	if !r.svc.RequestPermission() {
		r.setState(StateDenied)
		r.logger.Info().Msg("Location permission denied, using fallback")
		return r.resolveFallback()
	}

	r.svc.StartUpdating()

	attempts := int(r.cfg.Timeout / r.cfg.PollInterval)
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if loc, ok := r.svc.CurrentLocation(); ok {
			r.setResolved(false)
			return loc
		}
		select {
		case <-ctx.Done():
			return r.resolveFallback()
		case <-r.clock.After(r.cfg.PollInterval):
		}
	}

	// (c) no fix within the window; the wait is abandoned, not
	// cancelled, and the fallback proceeds unconditionally.
	r.logger.Info().Dur("timeout", r.cfg.Timeout).Msg("No location fix within window, using fallback")
	return r.resolveFallback()
}

func (r *Resolver) resolveFallback() core.Coordinate {
	r.mu.Lock()
	r.state = StateResolved
	r.usedFallback = true
	r.advisory = true
	r.mu.Unlock()

	go func() {
		<-r.clock.After(r.cfg.AdvisoryDuration)
		r.mu.Lock()
		r.advisory = false
		r.mu.Unlock()
	}()

	return r.cfg.Fallback
}

func (r *Resolver) setResolved(fallback bool) {
	r.mu.Lock()
	r.state = StateResolved
	r.usedFallback = fallback
	r.mu.Unlock()
}

func (r *Resolver) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}
