package torchlight

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Particle is a single trail star. Particles are created by a Simulation and
// owned by it until retirement; callers may read them but must not keep them
// after they are retired.
type Particle struct {
	Position Vec2
	Velocity Vec2
	Created  time.Duration
	Size     SizeClass
	Opacity  float64
	Blur     float64

	fadeStart time.Duration
	fading    bool
	handle    *ebiten.Image // dot texture; nil when rendering is detached
}

// Age returns the particle's age at time now.
func (p *Particle) Age(now time.Duration) time.Duration {
	return now - p.Created
}

// FadeStart returns the time the fade began and whether it has begun.
func (p *Particle) FadeStart() (time.Duration, bool) {
	return p.fadeStart, p.fading
}

// Fading reports whether the particle has begun its terminal fade.
func (p *Particle) Fading() bool { return p.fading }

// Handle returns the particle's rendering handle, or nil once released.
func (p *Particle) Handle() *ebiten.Image { return p.handle }

// release detaches the rendering handle. Safe to call when none is attached.
func (p *Particle) release() {
	p.handle = nil
}

// HandleProvider returns the texture a new particle of the given size draws
// with. A nil provider leaves particles without a rendering handle.
type HandleProvider func(SizeClass) *ebiten.Image

// Simulation owns the live particle list and advances it once per frame.
//
// All methods must be called from the game's update goroutine.
type Simulation struct {
	cfg       ParticleConfig
	pointer   *PointerTracker
	rng       RandSource
	particles []*Particle
	running   bool
	handles   HandleProvider
	onEvent   func(EventType, *Particle)
	stats     residencyStats

	stepping bool        // inside Step's sweep
	deferred []*Particle // removals requested during the sweep
}

// NewSimulation creates a stopped simulation that repels particles from the
// given pointer. A nil rng uses the process-wide generator.
func NewSimulation(cfg ParticleConfig, pointer *PointerTracker, rng RandSource) *Simulation {
	if rng == nil {
		rng = globalRand{}
	}
	return &Simulation{
		cfg:     cfg,
		pointer: pointer,
		rng:     rng,
		stats:   newResidencyStats(defaultResidencyWindow),
	}
}

// SetHandleProvider sets the texture source for newly spawned particles.
func (s *Simulation) SetHandleProvider(fn HandleProvider) {
	s.handles = fn
}

// Start enables Tick. Step is unaffected.
func (s *Simulation) Start() { s.running = true }

// Stop disables Tick. Live particles stay where they are until restarted.
func (s *Simulation) Stop() { s.running = false }

// Running reports whether Tick advances the simulation.
func (s *Simulation) Running() bool { return s.running }

// Len returns the number of live particles.
func (s *Simulation) Len() int { return len(s.particles) }

// Particles returns the live particle list. The returned slice MUST NOT be
// mutated.
func (s *Simulation) Particles() []*Particle { return s.particles }

// Config returns a pointer to the simulation's config for live tuning.
func (s *Simulation) Config() *ParticleConfig { return &s.cfg }

// Spawn creates a particle near at and appends it to the live list.
func (s *Simulation) Spawn(at Vec2, now time.Duration) *Particle {
	cfg := &s.cfg
	var pv Vec2
	if s.pointer != nil {
		pv = s.pointer.Velocity()
	}

	p := &Particle{
		Position: Vec2{
			X: at.X + centered(s.rng, cfg.Jitter),
			Y: at.Y + centered(s.rng, cfg.Jitter),
		},
		Velocity: Vec2{
			X: -pv.X*cfg.InheritVelocity + centered(s.rng, cfg.Drift),
			Y: -pv.Y*cfg.InheritVelocity + centered(s.rng, cfg.Drift),
		},
		Created: now,
		Opacity: cfg.StartOpacity,
	}
	if s.rng.Float64() < 0.5 {
		p.Size = SizeMedium
	}
	if s.handles != nil {
		p.handle = s.handles(p.Size)
	}

	s.particles = append(s.particles, p)
	s.stats.spawned++
	if len(s.particles) > s.stats.peak {
		s.stats.peak = len(s.particles)
	}
	s.emit(EventParticleSpawned, p)
	return p
}

// Tick advances one frame when the simulation is running.
func (s *Simulation) Tick(now time.Duration) {
	if s.running {
		s.Step(now)
	}
}

// Step advances every live particle by one frame at time now and retires
// particles whose fade has completed.
//
// Event callbacks run inside the sweep. Remove and Reset called from them
// take effect once the sweep has finished.
func (s *Simulation) Step(now time.Duration) {
	cfg := &s.cfg
	s.stepping = true

	// Reverse order so removal at i leaves unvisited indices intact.
	for i := len(s.particles) - 1; i >= 0; i-- {
		p := s.particles[i]

		if p.fading {
			elapsed := now - p.fadeStart
			if elapsed >= cfg.FadeDuration {
				s.retireAt(i, now)
				continue
			}
			s.updateFade(p, elapsed)
			continue
		}

		p.Velocity = p.Velocity.Scale(cfg.Friction)
		p.Velocity = p.Velocity.Add(s.repulsion(p.Position))
		p.Position = p.Position.Add(p.Velocity)

		if p.Age(now) >= cfg.FadeAfter {
			p.fading = true
			p.fadeStart = now
			s.updateFade(p, 0)
		}
	}

	s.stepping = false
	s.flushDeferred(now)
}

// flushDeferred applies removals requested while the sweep was running.
func (s *Simulation) flushDeferred(now time.Duration) {
	for i, p := range s.deferred {
		s.deferred[i] = nil
		for j, q := range s.particles {
			if q == p {
				s.retireAt(j, now)
				break
			}
		}
	}
	s.deferred = s.deferred[:0]
}

// repulsion returns the velocity impulse the pointer applies to a particle at
// pos. The impulse has constant magnitude PushForce inside PushRadius and is
// zero when the pointer is inactive or exactly on the particle.
func (s *Simulation) repulsion(pos Vec2) Vec2 {
	if s.pointer == nil || !s.pointer.Active() {
		return Vec2{}
	}
	d := pos.Sub(s.pointer.Position())
	dist := d.Len()
	if dist == 0 || dist >= s.cfg.PushRadius {
		return Vec2{}
	}
	return d.Scale(s.cfg.PushForce / dist)
}

// updateFade sets the fade presentation for elapsed time into the fade.
func (s *Simulation) updateFade(p *Particle, elapsed time.Duration) {
	cfg := &s.cfg
	d := float32(cfg.FadeDuration.Seconds())
	if d <= 0 {
		p.Opacity = cfg.FadeOpacity
		p.Blur = cfg.FadeBlur
		return
	}
	t := float32(elapsed.Seconds())
	if t > d {
		t = d
	}
	p.Opacity = float64(ease.OutQuad(t, float32(cfg.StartOpacity), float32(cfg.FadeOpacity-cfg.StartOpacity), d))
	p.Blur = float64(ease.OutQuad(t, 0, float32(cfg.FadeBlur), d))
}

// Remove retires p immediately, or at the end of the current Step when
// called from an event callback. Returns false if p is not live or is
// already queued for removal.
func (s *Simulation) Remove(p *Particle, now time.Duration) bool {
	for i, q := range s.particles {
		if q != p {
			continue
		}
		if s.stepping {
			return s.deferRemove(p)
		}
		s.retireAt(i, now)
		return true
	}
	return false
}

// deferRemove queues p for retirement after the sweep.
func (s *Simulation) deferRemove(p *Particle) bool {
	for _, q := range s.deferred {
		if q == p {
			return false
		}
	}
	s.deferred = append(s.deferred, p)
	return true
}

// Reset retires every live particle.
func (s *Simulation) Reset(now time.Duration) {
	if s.stepping {
		for _, p := range s.particles {
			s.deferRemove(p)
		}
		return
	}
	for i := len(s.particles) - 1; i >= 0; i-- {
		s.retireAt(i, now)
	}
}

// retireAt releases the particle at index i and removes it, preserving the
// order of the remaining particles.
func (s *Simulation) retireAt(i int, now time.Duration) {
	p := s.particles[i]
	p.release()
	copy(s.particles[i:], s.particles[i+1:])
	s.particles[len(s.particles)-1] = nil
	s.particles = s.particles[:len(s.particles)-1]

	s.stats.record(p.Age(now))
	s.emit(EventParticleRetired, p)
}

func (s *Simulation) emit(t EventType, p *Particle) {
	if s.onEvent != nil {
		s.onEvent(t, p)
	}
}
