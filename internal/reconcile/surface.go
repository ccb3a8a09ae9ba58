package reconcile

import (
	"sync"

	"github.com/marinerstudio/chartsync/internal/model/core"
)

// MapSurface is the rendered map the reconciler drives. It is the one
// external mutable resource in the system and is only ever mutated
// through a Reconciler, never by view code directly.
type MapSurface interface {
	// InstalledOverlay returns the currently rendered overlay, if any.
	InstalledOverlay() (core.OverlayDescriptor, bool)
	InstallOverlay(desc core.OverlayDescriptor)
	RemoveOverlay()

	// AnnotationIDs returns the IDs of all rendered annotations.
	AnnotationIDs() []string
	AddAnnotation(pin core.Pin)
	RemoveAnnotation(id string)

	// Region is observed, never reconciled: pan/zoom flows out of the
	// surface only.
	Region() core.Region
	SetRegion(region core.Region)
}

// MemorySurface is an in-process MapSurface. The daemon renders into
// it and tests inspect it.
type MemorySurface struct {
	mu          sync.RWMutex
	overlay     core.OverlayDescriptor
	hasOverlay  bool
	annotations map[string]core.Pin
	order       []string
	region      core.Region

	// operation counts, for drift diagnostics and tests
	installs      int
	removals      int
	regionSets    int
	annotationOps int
}

// NewMemorySurface creates an empty surface centered on the given
// region.
func NewMemorySurface(region core.Region) *MemorySurface {
	return &MemorySurface{
		annotations: make(map[string]core.Pin),
		region:      region,
	}
}

func (s *MemorySurface) InstalledOverlay() (core.OverlayDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay, s.hasOverlay
}

func (s *MemorySurface) InstallOverlay(desc core.OverlayDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = desc
	s.hasOverlay = true
	s.installs++
}

func (s *MemorySurface) RemoveOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = core.OverlayDescriptor{}
	s.hasOverlay = false
	s.removals++
}

func (s *MemorySurface) AnnotationIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

func (s *MemorySurface) AddAnnotation(pin core.Pin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.annotations[pin.ID]; !ok {
		s.order = append(s.order, pin.ID)
	}
	s.annotations[pin.ID] = pin
	s.annotationOps++
}

func (s *MemorySurface) RemoveAnnotation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.annotations[id]; !ok {
		return
	}
	delete(s.annotations, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.annotationOps++
}

func (s *MemorySurface) Region() core.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.region
}

func (s *MemorySurface) SetRegion(region core.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.region = region
	s.regionSets++
}

// Annotation returns the rendered pin for an ID, for inspection.
func (s *MemorySurface) Annotation(id string) (core.Pin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pin, ok := s.annotations[id]
	return pin, ok
}

// Stats reports operation counts since creation.
func (s *MemorySurface) Stats() (installs, removals, annotationOps, regionSets int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.installs, s.removals, s.annotationOps, s.regionSets
}
