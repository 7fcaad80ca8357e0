package torchlight

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a GlowState simultaneously.
// Create one via the convenience constructors (TweenOpacity, TweenOpacityBlur)
// and call Update(dt) each frame. If the target overlay is removed, the group
// stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *GlowState
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target overlay has been removed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.removed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// add appends a tween of *field toward to.
func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenOpacity creates a TweenGroup that animates st.Opacity to the target
// value over duration seconds.
func TweenOpacity(st *GlowState, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: st}
	g.add(&st.Opacity, to, duration, fn)
	return g
}

// TweenOpacityBlur creates a TweenGroup that animates st.Opacity and st.Blur
// together over duration seconds.
func TweenOpacityBlur(st *GlowState, toOpacity, toBlur float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: st}
	g.add(&st.Opacity, toOpacity, duration, fn)
	g.add(&st.Blur, toBlur, duration, fn)
	return g
}
