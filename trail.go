package torchlight

import "time"

// TrailPoint is a pointer position snapshot.
type TrailPoint struct {
	Position Vec2
	Time     time.Duration
}

// TrailHistory is a fixed-capacity, newest-first list of recent pointer
// positions. Index 0 is the most recent sample.
type TrailHistory struct {
	points   []TrailPoint
	capacity int
}

// NewTrailHistory creates an empty history holding at most capacity points.
func NewTrailHistory(capacity int) *TrailHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &TrailHistory{
		points:   make([]TrailPoint, 0, capacity),
		capacity: capacity,
	}
}

// Push inserts p at the front, evicting the oldest point when full.
func (h *TrailHistory) Push(p TrailPoint) {
	if len(h.points) < h.capacity {
		h.points = append(h.points, TrailPoint{})
	}
	copy(h.points[1:], h.points[:len(h.points)-1])
	h.points[0] = p
}

// Len returns the number of stored points.
func (h *TrailHistory) Len() int { return len(h.points) }

// Cap returns the capacity.
func (h *TrailHistory) Cap() int { return h.capacity }

// At returns the point at index i (0 = newest).
func (h *TrailHistory) At(i int) TrailPoint { return h.points[i] }

// Points returns the stored points, newest first. The returned slice MUST NOT
// be mutated.
func (h *TrailHistory) Points() []TrailPoint { return h.points }

// Clear removes all points.
func (h *TrailHistory) Clear() { h.points = h.points[:0] }

// SpawnProbability returns the chance that a particle spawns at index i.
// It falls linearly from the head of the trail to zero at the capacity.
func (h *TrailHistory) SpawnProbability(i int, density float64) float64 {
	if i < 0 || i >= h.capacity {
		return 0
	}
	return float64(h.capacity-i) / float64(h.capacity) * density
}
