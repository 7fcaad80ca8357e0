package torchlight

import "time"

// PointerTracker holds the pointer's current and previous positions and a
// velocity estimate derived from consecutive move samples.
//
// Velocity is expressed in pixels per millisecond multiplied by the trail's
// velocity scale, so a 100px move over 10ms with scale 10 yields speed 100.
type PointerTracker struct {
	current  Vec2
	previous Vec2
	velocity Vec2
	last     time.Duration
	active   bool
	scale    float64
}

// NewPointerTracker creates a tracker at the origin with zero velocity.
func NewPointerTracker(velocityScale float64) *PointerTracker {
	return &PointerTracker{scale: velocityScale}
}

// Move records a pointer sample at time now. When now does not advance past
// the previous sample the prior velocity is kept.
func (t *PointerTracker) Move(pos Vec2, now time.Duration) {
	elapsed := now - t.last

	t.previous = t.current
	t.current = pos

	if elapsed > 0 {
		ms := float64(elapsed) / float64(time.Millisecond)
		t.velocity = t.current.Sub(t.previous).Scale(t.scale / ms)
	}

	t.last = now
	t.active = true
}

// Leave marks the pointer as off the tracked surface. Position and velocity
// keep their last values.
func (t *PointerTracker) Leave() {
	t.active = false
}

// Position returns the current pointer position.
func (t *PointerTracker) Position() Vec2 { return t.current }

// Previous returns the position before the most recent move.
func (t *PointerTracker) Previous() Vec2 { return t.previous }

// Velocity returns the current velocity estimate.
func (t *PointerTracker) Velocity() Vec2 { return t.velocity }

// Speed returns the Euclidean norm of the velocity.
func (t *PointerTracker) Speed() float64 { return t.velocity.Len() }

// LastUpdate returns the timestamp of the most recent move.
func (t *PointerTracker) LastUpdate() time.Duration { return t.last }

// Active reports whether the pointer is on the tracked surface.
func (t *PointerTracker) Active() bool { return t.active }
