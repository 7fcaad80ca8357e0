package torchlight

import (
	"github.com/tanema/gween/ease"
)

// Element is an interactive rectangle that shows a torchlight glow while the
// pointer hovers it.
type Element struct {
	Name   string
	Bounds Rect
	// HitShape, if set, replaces Bounds for hover testing. Coordinates are
	// relative to Bounds' top-left corner.
	HitShape HitShape
	// UserData is carried through to EffectEvent for the host's use.
	UserData any
}

// NewElement creates an element covering bounds.
func NewElement(name string, bounds Rect) *Element {
	return &Element{Name: name, Bounds: bounds}
}

// contains reports whether the world point (x, y) hovers the element.
func (e *Element) contains(x, y float64) bool {
	if e.HitShape != nil {
		return e.HitShape.Contains(x-e.Bounds.X, y-e.Bounds.Y)
	}
	return e.Bounds.Contains(x, y)
}

// GlowState is the presentation state of one element's overlay.
type GlowState struct {
	// Offset is the glow center relative to the element's top-left corner.
	Offset  Vec2
	Visible bool
	Opacity float64
	Blur    float64

	fade         *TweenGroup
	leaving      bool
	leaveElapsed float64
	removed      bool
}

// Leaving reports whether the overlay is fading out after a hover-leave.
func (st *GlowState) Leaving() bool { return st.leaving }

// GlowController owns the overlay of every glow-tracked element.
type GlowController struct {
	cfg      GlowConfig
	overlays map[*Element]*GlowState
	order    []*Element
	onEvent  func(EventType, *Element)
}

// NewGlowController creates a controller with no overlays.
func NewGlowController(cfg GlowConfig) *GlowController {
	return &GlowController{
		cfg:      cfg,
		overlays: make(map[*Element]*GlowState),
	}
}

// Config returns a pointer to the controller's config for live tuning.
func (c *GlowController) Config() *GlowConfig { return &c.cfg }

// Overlay returns el's overlay, creating a hidden one on first use.
func (c *GlowController) Overlay(el *Element) *GlowState {
	if el == nil {
		panic("torchlight: nil element")
	}
	if st, ok := c.overlays[el]; ok {
		return st
	}
	st := &GlowState{}
	c.overlays[el] = st
	c.order = append(c.order, el)
	return st
}

// State returns el's overlay without creating one.
func (c *GlowController) State(el *Element) (*GlowState, bool) {
	st, ok := c.overlays[el]
	return st, ok
}

// Len returns the number of overlays.
func (c *GlowController) Len() int { return len(c.order) }

// Elements returns tracked elements in creation order. The returned slice
// MUST NOT be mutated.
func (c *GlowController) Elements() []*Element { return c.order }

// Remove discards el's overlay. In-flight tweens stop.
func (c *GlowController) Remove(el *Element) {
	st, ok := c.overlays[el]
	if !ok {
		return
	}
	st.removed = true
	delete(c.overlays, el)
	for i, e := range c.order {
		if e == el {
			copy(c.order[i:], c.order[i+1:])
			c.order[len(c.order)-1] = nil
			c.order = c.order[:len(c.order)-1]
			break
		}
	}
}

// Enter shows el's overlay and fades it in. Any blur left over from a
// previous leave is cleared.
func (c *GlowController) Enter(el *Element) {
	st := c.Overlay(el)
	st.Visible = true
	st.leaving = false
	st.leaveElapsed = 0
	st.Blur = 0
	st.fade = TweenOpacity(st, 1, float32(c.cfg.FadeIn.Seconds()), ease.InQuad)
	c.emit(EventGlowEnter, el)
}

// Move places el's glow under the pointer, biased right by OffsetX. The
// offset applies immediately.
func (c *GlowController) Move(el *Element, pointer Vec2) {
	st := c.Overlay(el)
	st.Offset = pointer.Sub(el.Bounds.Min()).Add(Vec2{X: c.cfg.OffsetX})
}

// Leave fades el's overlay out while blurring it. Blur resets to zero once
// the fade-out duration has passed.
func (c *GlowController) Leave(el *Element) {
	st := c.Overlay(el)
	st.leaving = true
	st.leaveElapsed = 0
	st.fade = TweenOpacityBlur(st, 0, c.cfg.LeaveBlur, float32(c.cfg.FadeOut.Seconds()), ease.OutQuad)
	c.emit(EventGlowLeave, el)
}

// Update advances every overlay's transitions by dt seconds.
func (c *GlowController) Update(dt float64) {
	fadeOut := c.cfg.FadeOut.Seconds()
	for _, el := range c.order {
		st := c.overlays[el]
		if st.fade != nil {
			st.fade.Update(float32(dt))
			if st.fade.Done {
				st.fade = nil
			}
		}
		if st.leaving {
			st.leaveElapsed += dt
			if st.leaveElapsed > fadeOut {
				st.Blur = 0
				st.Visible = false
				st.leaving = false
			}
		}
	}
}

func (c *GlowController) emit(t EventType, el *Element) {
	if c.onEvent != nil {
		c.onEvent(t, el)
	}
}
