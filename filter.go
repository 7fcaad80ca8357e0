package torchlight

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No Kage shader needed; bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// blurPasses returns the number of downscale passes for a radius.
func blurPasses(radius int) int {
	if radius <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(radius))))
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	if f.Radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	passes := blurPasses(f.Radius)
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Downscale: each pass halves the size.
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.drawScaled(f.temps[i], current)
		current = f.temps[i]
	}

	// Upscale back through the chain.
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.drawScaled(f.temps[i], current)
		current = f.temps[i]
	}

	f.drawScaled(dst, current)
}

// drawScaled draws src stretched over dst with bilinear filtering.
func (f *BlurFilter) drawScaled(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the margin the scratch buffer needs on each side so the
// blurred edge is not clipped. Kawase passes spread roughly twice the radius.
func (f *BlurFilter) Padding() int { return f.Radius * 2 }

// Dispose releases the intermediate textures.
func (f *BlurFilter) Dispose() {
	for _, img := range f.temps {
		if img != nil {
			img.Deallocate()
		}
	}
	f.temps = nil
}
