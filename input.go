package torchlight

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hover regions on an Element.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in element coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in element coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in element coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// The point must be on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1, y1 := p.Points[i].X, p.Points[i].Y
		j := (i + 1) % n
		x2, y2 := p.Points[j].X, p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Pointer state ---

type pointerState struct {
	inside  bool     // pointer is on the tracked surface
	hasLast bool     // last holds a real sample
	last    Vec2     // last position fed to the trail
	hover   *Element // element currently hovered (for enter/leave)
}

// hitTest finds the topmost element at (x, y). Later elements are on top.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(x, y float64) *Element {
	for i := len(s.elements) - 1; i >= 0; i-- {
		if s.elements[i].contains(x, y) {
			return s.elements[i]
		}
	}
	return nil
}

// processInput is called from Scene.Update to feed one pointer sample per
// frame. Injected events take precedence over the real cursor.
func (s *Scene) processInput() {
	if s.processInjectedInput() || s.synthetic {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	s.processPointer(x, y, s.onSurface(x, y))
}

// onSurface reports whether (x, y) lies on the tracked surface. A scene with
// no surface size tracks every position.
func (s *Scene) onSurface(x, y float64) bool {
	if s.surface.Width <= 0 || s.surface.Height <= 0 {
		return true
	}
	return s.surface.Contains(x, y)
}

// processPointer runs the pointer state machine for a single sample.
func (s *Scene) processPointer(x, y float64, onSurface bool) {
	ps := &s.pointer

	if !onSurface {
		if ps.inside {
			ps.inside = false
			if ps.hover != nil {
				s.glow.Leave(ps.hover)
				ps.hover = nil
			}
			s.trail.Leave()
			s.emit(EffectEvent{Type: EventPointerOut, Time: s.now, Position: Vec2{x, y}})
		}
		return
	}
	reentered := !ps.inside
	ps.inside = true

	pos := Vec2{x, y}
	moved := reentered || !ps.hasLast || pos != ps.last
	ps.hasLast = true
	ps.last = pos
	target := s.hitTest(x, y)

	// Fire hover enter/leave when the hovered element changes.
	if target != ps.hover {
		if ps.hover != nil {
			s.glow.Leave(ps.hover)
		}
		if target != nil {
			s.glow.Enter(target)
			s.glow.Move(target, pos)
		}
		ps.hover = target
	}

	if !moved {
		return
	}
	s.trail.Move(pos, s.now)
	if target != nil {
		s.glow.Move(target, pos)
	}
}

// Hovered returns the element under the pointer, or nil.
func (s *Scene) Hovered() *Element {
	return s.pointer.hover
}
