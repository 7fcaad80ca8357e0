package torchlight

import (
	"image"
	"math/bits"

	"github.com/hajimehoshi/ebiten/v2"
)

// scratchSize is a power-of-two texture size used as a pool bucket.
type scratchSize struct{ w, h int }

// scratchPool recycles the offscreen images that blurred glows and fading
// particles are drawn through. Sizes are rounded up to powers of two so a
// handful of buckets serve every blur radius; callers draw into a SubImage of
// the size they asked for.
type scratchPool struct {
	free map[scratchSize][]*ebiten.Image
}

// get returns a cleared image at least w x h pixels.
func (p *scratchPool) get(w, h int) *ebiten.Image {
	key := scratchSize{pow2Ceil(w), pow2Ceil(h)}
	if stack := p.free[key]; len(stack) > 0 {
		img := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		p.free[key] = stack[:len(stack)-1]
		img.Clear()
		return img
	}
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, key.w, key.h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// put hands img back for a later get. Clearing happens on reuse.
func (p *scratchPool) put(img *ebiten.Image) {
	if img == nil {
		return
	}
	if p.free == nil {
		p.free = make(map[scratchSize][]*ebiten.Image)
	}
	b := img.Bounds()
	key := scratchSize{b.Dx(), b.Dy()}
	p.free[key] = append(p.free[key], img)
}

// idle returns how many images are waiting in the bucket that serves w x h.
func (p *scratchPool) idle(w, h int) int {
	return len(p.free[scratchSize{pow2Ceil(w), pow2Ceil(h)}])
}

// dispose frees every idle image.
func (p *scratchPool) dispose() {
	for key, stack := range p.free {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.free, key)
	}
}

// pow2Ceil rounds n up to a power of two; anything below 2 becomes 1.
func pow2Ceil(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
