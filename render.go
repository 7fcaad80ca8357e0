package torchlight

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// renderer draws glow overlays and trail particles. Textures are generated on
// demand and cached by quantized radius.
type renderer struct {
	circleCache map[int]*ebiten.Image
	pool        scratchPool
	blur        *BlurFilter
	imgOp       ebiten.DrawImageOptions
}

func newRenderer() *renderer {
	return &renderer{
		circleCache: make(map[int]*ebiten.Image),
		blur:        NewBlurFilter(0),
	}
}

// circle returns a cached feathered circle texture. Radius is quantized to
// the nearest integer above to avoid generating textures for tiny differences.
func (r *renderer) circle(radius float64) *ebiten.Image {
	key := int(math.Ceil(radius))
	if key < 1 {
		key = 1
	}
	if img, ok := r.circleCache[key]; ok {
		return img
	}
	img := generateCircle(float64(key))
	r.circleCache[key] = img
	return img
}

// draw renders every visible overlay, then every live particle, onto screen.
func (r *renderer) draw(screen *ebiten.Image, s *Scene) {
	glowCfg := s.glow.Config()
	for _, el := range s.glow.Elements() {
		st := s.glow.overlays[el]
		if !st.Visible || st.Opacity <= 0 {
			continue
		}
		clip := image.Rect(
			int(el.Bounds.X), int(el.Bounds.Y),
			int(math.Ceil(el.Bounds.X+el.Bounds.Width)), int(math.Ceil(el.Bounds.Y+el.Bounds.Height)),
		).Intersect(screen.Bounds())
		if clip.Empty() {
			continue
		}
		target := screen.SubImage(clip).(*ebiten.Image)
		center := el.Bounds.Min().Add(st.Offset)
		r.drawSoft(target, r.circle(glowCfg.Radius), center, glowCfg.Color, st.Opacity, st.Blur, BlendAdd)
	}

	pcfg := s.trail.Simulation().Config()
	for _, p := range s.trail.Simulation().Particles() {
		if p.handle == nil {
			continue
		}
		r.drawSoft(screen, p.handle, p.Position, pcfg.Color, p.Opacity, p.Blur, BlendNormal)
	}
}

// drawSoft draws src centered on center, tinted by c and opacity, blurred by
// blur pixels when blur is at least one pixel.
func (r *renderer) drawSoft(dst, src *ebiten.Image, center Vec2, c Color, opacity, blur float64, blend BlendMode) {
	a := float32(clamp01(c.A * opacity))
	if a == 0 {
		return
	}
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())

	radius := int(math.Round(blur))
	op := &r.imgOp
	if radius < 1 {
		op.GeoM.Reset()
		op.GeoM.Translate(center.X-sw/2, center.Y-sh/2)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
		op.Blend = blend.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(src, op)
		return
	}

	// Render into a padded scratch buffer, blur it, then composite.
	r.blur.Radius = radius
	pad := r.blur.Padding()
	w, h := int(sw)+pad*2, int(sh)+pad*2
	scratchA := r.pool.get(w, h)
	scratchB := r.pool.get(w, h)
	srcRegion := scratchA.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	dstRegion := scratchB.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)

	op.GeoM.Reset()
	op.GeoM.Translate(float64(pad), float64(pad))
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	op.Blend = ebiten.BlendSourceOver
	op.Filter = ebiten.FilterLinear
	srcRegion.DrawImage(src, op)

	r.blur.Apply(srcRegion, dstRegion)

	op.GeoM.Reset()
	op.GeoM.Translate(center.X-sw/2-float64(pad), center.Y-sh/2-float64(pad))
	op.ColorScale.Reset()
	op.Blend = blend.EbitenBlend()
	dst.DrawImage(dstRegion, op)

	r.pool.put(scratchA)
	r.pool.put(scratchB)
}

// dispose releases all cached textures.
func (r *renderer) dispose() {
	for _, img := range r.circleCache {
		img.Deallocate()
	}
	r.circleCache = nil
	r.pool.dispose()
	r.blur.Dispose()
}

// generateCircle creates a feathered white circle image with the given radius.
// Uses smoothstep falloff and premultiplied alpha.
func generateCircle(radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	img := ebiten.NewImage(size, size)
	img.WritePixels(circlePixels(radius, size))
	return img
}

// circlePixels returns premultiplied RGBA pixels for a feathered circle
// centered in a size x size square.
func circlePixels(radius float64, size int) []byte {
	pix := make([]byte, size*size*4)
	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				// smoothstep: 1 at center, 0 at edge
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}

			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix
}
