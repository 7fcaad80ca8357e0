package torchlight

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// EventSink is the interface for optional event forwarding. When set on a
// Scene, particle and glow lifecycle events are delivered to it.
type EventSink interface {
	EmitEvent(event EffectEvent)
}

// EffectEvent carries lifecycle data for an EventSink.
type EffectEvent struct {
	Type     EventType
	Time     time.Duration
	Position Vec2
	// Particle fields (EventParticleSpawned, EventParticleRetired)
	Size SizeClass
	Age  time.Duration
	// Glow fields (EventGlowEnter, EventGlowLeave)
	Element  string
	UserData any
}

// Scene is the top-level object that owns the star trail, the glow
// controller, the pointer state, and the simulation clock.
//
// A Scene is single-threaded: call every method from the game's update and
// draw callbacks.
type Scene struct {
	cfg      Config
	trail    *StarTrail
	glow     *GlowController
	elements []*Element
	now      time.Duration

	// Input state
	pointer     pointerState
	surface     Rect
	injectQueue []syntheticPointerEvent
	synthetic   bool // real cursor ignored while set
	testRunner  *TestRunner

	screenshotQueue []string

	// Diagnostics
	sink   EventSink
	logger zerolog.Logger
	debug  bool
	frame  uint64

	renderer   *renderer
	updateFunc func() error

	// ClearColor fills the screen before the effects are drawn. The zero
	// value leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots" in the working directory.
	ScreenshotDir string
}

// NewScene creates a scene from cfg with its frame driver started. A nil rng
// uses the process-wide generator.
func NewScene(cfg Config, rng RandSource) *Scene {
	s := &Scene{
		cfg:    cfg,
		trail:  NewStarTrail(cfg, rng),
		glow:   NewGlowController(cfg.Glow),
		logger: zerolog.Nop(),
	}
	sim := s.trail.Simulation()
	sim.SetHandleProvider(s.particleTexture)
	sim.onEvent = s.particleEvent
	s.glow.onEvent = s.glowEvent
	sim.Start()
	return s
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config { return s.cfg }

// Now returns the simulation clock.
func (s *Scene) Now() time.Duration { return s.now }

// Trail returns the star trail.
func (s *Scene) Trail() *StarTrail { return s.trail }

// Glow returns the glow controller.
func (s *Scene) Glow() *GlowController { return s.glow }

// Start resumes the particle frame driver.
func (s *Scene) Start() { s.trail.Simulation().Start() }

// Stop pauses the particle frame driver. Pointer input and glow transitions
// keep running; particles freeze until Start.
func (s *Scene) Stop() { s.trail.Simulation().Stop() }

// SetSurface sets the tracked surface. Pointer samples outside it count as
// the pointer leaving.
func (s *Scene) SetSurface(r Rect) { s.surface = r }

// AddElement registers a glow-tracked element. Elements added later are
// hit-tested first. Adding an element twice is a no-op.
func (s *Scene) AddElement(el *Element) {
	if el == nil {
		panic("torchlight: cannot add nil element")
	}
	for _, e := range s.elements {
		if e == el {
			return
		}
	}
	s.elements = append(s.elements, el)
	s.glow.Overlay(el)
}

// RemoveElement unregisters el and discards its overlay.
func (s *Scene) RemoveElement(el *Element) {
	for i, e := range s.elements {
		if e == el {
			copy(s.elements[i:], s.elements[i+1:])
			s.elements[len(s.elements)-1] = nil
			s.elements = s.elements[:len(s.elements)-1]
			break
		}
	}
	if s.pointer.hover == el {
		s.pointer.hover = nil
	}
	s.glow.Remove(el)
}

// Elements returns the registered elements. The returned slice MUST NOT be
// mutated.
func (s *Scene) Elements() []*Element { return s.elements }

// SetEventSink sets the optional event forwarding target.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

// SetLogger sets the logger used for debug output.
func (s *Scene) SetLogger(l zerolog.Logger) { s.logger = l }

// SetDebugMode enables or disables periodic frame statistics in the log.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) { s.updateFunc = fn }

// Update advances the scene by one frame of 1/TPS seconds. When TPS is synced
// with the display (ebiten.SyncWithFPS) the frame length follows the measured
// FPS instead.
func (s *Scene) Update() error {
	return s.Advance(frameDuration(ebiten.TPS(), ebiten.ActualFPS()))
}

// frameDuration returns the length of one update. tps <= 0 means updates are
// tied to the display, so the measured fps is used, falling back to 60.
func frameDuration(tps int, fps float64) time.Duration {
	if tps > 0 {
		return time.Second / time.Duration(tps)
	}
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// Advance moves the clock forward by dt, consumes one pointer sample, and
// advances glow transitions and the particle simulation. A negative dt is
// treated as zero; the clock never runs backwards.
func (s *Scene) Advance(dt time.Duration) error {
	if dt < 0 {
		dt = 0
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.now += dt
	s.frame++

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.glow.Update(dt.Seconds())
	s.trail.Simulation().Tick(s.now)

	if s.debug {
		s.debugLog(time.Since(t0))
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw renders glow overlays and particles onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor != (Color{}) {
		screen.Fill(s.ClearColor.toRGBA())
	}
	if s.renderer == nil {
		s.renderer = newRenderer()
	}
	s.renderer.draw(screen, s)
	s.flushScreenshots(screen)
}

// Dispose retires every particle and releases cached textures.
func (s *Scene) Dispose() {
	s.trail.Simulation().Reset(s.now)
	if s.renderer != nil {
		s.renderer.dispose()
		s.renderer = nil
	}
}

// particleTexture is the simulation's HandleProvider.
func (s *Scene) particleTexture(size SizeClass) *ebiten.Image {
	if s.renderer == nil {
		s.renderer = newRenderer()
	}
	radius := s.cfg.Particle.SizeSmall
	if size == SizeMedium {
		radius = s.cfg.Particle.SizeMedium
	}
	return s.renderer.circle(radius)
}

func (s *Scene) particleEvent(t EventType, p *Particle) {
	s.emit(EffectEvent{
		Type:     t,
		Time:     s.now,
		Position: p.Position,
		Size:     p.Size,
		Age:      p.Age(s.now),
	})
}

func (s *Scene) glowEvent(t EventType, el *Element) {
	s.emit(EffectEvent{
		Type:     t,
		Time:     s.now,
		Position: s.pointer.last,
		Element:  el.Name,
		UserData: el.UserData,
	})
}

func (s *Scene) emit(evt EffectEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(evt)
	}
}
