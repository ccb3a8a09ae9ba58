// Package layers holds the active chart display categories for one
// map session. Toggles that would violate the set's invariants are
// silent no-ops: the control surface is meant to be impossible to get
// into an invalid state, so there is no error to report.
package layers

import (
	"sort"
	"sync"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// DefaultLayers is the initial selection for a new chart screen.
var DefaultLayers = []core.LayerID{
	core.LayerChartFramework,
	core.LayerNaturalFeatures,
	core.LayerManMadeFeatures,
	core.LayerSpecialAreas,
}

// LayerSet is the set of active chart layers. It always contains at
// least one and at most core.LayerCount members, all within the
// catalog domain.
type LayerSet struct {
	mu     sync.RWMutex
	active map[core.LayerID]struct{}
}

// New creates a LayerSet seeded with the given layers. Out-of-domain
// IDs are dropped; an empty or fully-invalid seed falls back to
// DefaultLayers so the invariant holds from construction.
func New(seed []core.LayerID) *LayerSet {
	s := &LayerSet{active: make(map[core.LayerID]struct{})}
	for _, id := range seed {
		if id.InDomain() {
			s.active[id] = struct{}{}
		}
	}
	if len(s.active) == 0 {
		for _, id := range DefaultLayers {
			s.active[id] = struct{}{}
		}
	}
	return s
}

// NewDefault creates a LayerSet with the default selection.
func NewDefault() *LayerSet {
	return New(DefaultLayers)
}

// Toggle flips membership of the given layer. Removing the last
// remaining layer, adding an out-of-domain ID, and adding to a full
// set are all rejected as no-ops. Returns true if the set changed.
func (s *LayerSet) Toggle(id core.LayerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[id]; ok {
		if len(s.active) <= 1 {
			return false
		}
		delete(s.active, id)
		return true
	}

	if !id.InDomain() {
		return false
	}
	if len(s.active) >= core.LayerCount {
		return false
	}
	s.active[id] = struct{}{}
	return true
}

// Contains reports whether the layer is active.
func (s *LayerSet) Contains(id core.LayerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[id]
	return ok
}

// Count returns the number of active layers.
func (s *LayerSet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

// SortedIDs returns the active layers ascending. Descriptor
// construction and display both depend on this ordering being stable.
func (s *LayerSet) SortedIDs() []core.LayerID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]core.LayerID, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
