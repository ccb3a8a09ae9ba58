package location

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// fakeClock fires every After immediately and records requested
// durations, so polls and advisory expiry run without real waiting.
type fakeClock struct {
	mu        sync.Mutex
	requested []time.Duration
}

func (c *fakeClock) Now() time.Time { return time.Unix(0, 0) }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.requested = append(c.requested, d)
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Unix(0, 0)
	return ch
}

func (c *fakeClock) requestedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requested)
}

// fakeService scripts the location collaborator.
type fakeService struct {
	mu            sync.Mutex
	cached        *core.Coordinate
	permission    bool
	updating      bool
	fixAfterPolls int // deliver a fix after this many CurrentLocation calls post-start
	polls         int
	fix           core.Coordinate
}

func (s *fakeService) RequestPermission() bool { return s.permission }

func (s *fakeService) StartUpdating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = true
}

func (s *fakeService) CurrentLocation() (core.Coordinate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return *s.cached, true
	}
	if !s.updating {
		return core.Coordinate{}, false
	}
	s.polls++
	if s.fixAfterPolls > 0 && s.polls >= s.fixAfterPolls {
		return s.fix, true
	}
	return core.Coordinate{}, false
}

func newTestResolver(svc Service, clock Clock) *Resolver {
	return NewResolverWithClock(svc, DefaultConfig(), zerolog.Nop(), clock)
}

func waitForAdvisoryClear(t *testing.T, r *Resolver) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for r.AdvisoryActive() {
		select {
		case <-deadline:
			t.Fatal("advisory never cleared")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestResolve_CachedLocation(t *testing.T) {
	cached := core.Coordinate{Lat: 40.7, Lon: -74.0}
	svc := &fakeService{cached: &cached}
	r := newTestResolver(svc, &fakeClock{})

	got := r.Resolve(context.Background())

	assert.Equal(t, cached, got)
	assert.Equal(t, StateResolved, r.State())
	assert.False(t, r.UsedFallback())
	assert.False(t, r.AdvisoryActive())
}

func TestResolve_PermissionDeniedFallsBack(t *testing.T) {
	svc := &fakeService{permission: false}
	r := newTestResolver(svc, &fakeClock{})

	got := r.Resolve(context.Background())

	assert.Equal(t, DefaultFallback, got)
	assert.Equal(t, StateResolved, r.State())
	assert.True(t, r.UsedFallback())

	waitForAdvisoryClear(t, r)
	assert.False(t, r.AdvisoryActive())
}

func TestResolve_FixArrivesDuringPolling(t *testing.T) {
	fix := core.Coordinate{Lat: 38.9, Lon: -76.5}
	svc := &fakeService{permission: true, fixAfterPolls: 3, fix: fix}
	r := newTestResolver(svc, &fakeClock{})

	got := r.Resolve(context.Background())

	assert.Equal(t, fix, got)
	assert.False(t, r.UsedFallback())
	assert.Equal(t, StateResolved, r.State())
}

func TestResolve_TimeoutFallsBack(t *testing.T) {
	svc := &fakeService{permission: true} // never delivers a fix
	clock := &fakeClock{}
	r := newTestResolver(svc, clock)

	got := r.Resolve(context.Background())

	assert.Equal(t, DefaultFallback, got)
	assert.True(t, r.UsedFallback())

	// Exactly timeout/pollInterval polls were waited out, plus the
	// advisory expiry wait.
	cfg := DefaultConfig()
	wantPolls := int(cfg.Timeout / cfg.PollInterval)
	require.GreaterOrEqual(t, clock.requestedCount(), wantPolls)

	waitForAdvisoryClear(t, r)
}

func TestResolve_ContextCancelledFallsBack(t *testing.T) {
	svc := &fakeService{permission: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A clock that never fires forces the select onto ctx.Done.
	r := NewResolverWithClock(svc, DefaultConfig(), zerolog.Nop(), &stalledClock{})

	got := r.Resolve(ctx)
	assert.Equal(t, DefaultFallback, got)
	assert.True(t, r.UsedFallback())
}

func TestResolve_CustomFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fallback = core.Coordinate{Lat: 25.76, Lon: -80.19}
	svc := &fakeService{permission: false}
	r := NewResolverWithClock(svc, cfg, zerolog.Nop(), &fakeClock{})

	got := r.Resolve(context.Background())
	assert.Equal(t, cfg.Fallback, got)
}

// stalledClock never fires; only usable where ctx cancellation wins.
type stalledClock struct{}

func (stalledClock) Now() time.Time { return time.Unix(0, 0) }
func (stalledClock) After(d time.Duration) <-chan time.Time {
	return make(chan time.Time)
}
