package torchlight

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fixedRand always returns the same sample.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// stillParticleConfig returns the default particle parameters with jitter
// and drift disabled so spawns land exactly where requested.
func stillParticleConfig() ParticleConfig {
	cfg := DefaultConfig().Particle
	cfg.Jitter = 0
	cfg.Drift = 0
	return cfg
}

func TestSpawnDefaults(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{10, 20}, 5*time.Millisecond)

	if p.Position != (Vec2{10, 20}) {
		t.Errorf("Position = %v, want {10 20}", p.Position)
	}
	if p.Velocity != (Vec2{}) {
		t.Errorf("Velocity = %v, want zero", p.Velocity)
	}
	if p.Created != 5*time.Millisecond {
		t.Errorf("Created = %v, want 5ms", p.Created)
	}
	if p.Opacity != 0.9 {
		t.Errorf("Opacity = %v, want 0.9", p.Opacity)
	}
	if p.Size != SizeSmall {
		t.Errorf("Size = %v, want small", p.Size)
	}
	if p.Fading() {
		t.Error("new particle should not be fading")
	}
	if sim.Len() != 1 {
		t.Errorf("Len = %d, want 1", sim.Len())
	}
}

func TestSpawnJitterAndSize(t *testing.T) {
	cfg := DefaultConfig().Particle
	sim := NewSimulation(cfg, NewPointerTracker(10), fixedRand(0))
	p := sim.Spawn(Vec2{100, 100}, 0)

	// centered(0) is -half on both axes.
	if p.Position != (Vec2{95, 95}) {
		t.Errorf("Position = %v, want {95 95}", p.Position)
	}
	if p.Velocity != (Vec2{-0.5, -0.5}) {
		t.Errorf("Velocity = %v, want {-0.5 -0.5}", p.Velocity)
	}
	if p.Size != SizeMedium {
		t.Errorf("Size = %v, want medium", p.Size)
	}
}

func TestSpawnJitterBounded(t *testing.T) {
	cfg := DefaultConfig().Particle
	sim := NewSimulation(cfg, NewPointerTracker(10), NewSeededRand(7))
	for i := 0; i < 500; i++ {
		p := sim.Spawn(Vec2{0, 0}, 0)
		if math.Abs(p.Position.X) > cfg.Jitter || math.Abs(p.Position.Y) > cfg.Jitter {
			t.Fatalf("spawn %d outside jitter box: %v", i, p.Position)
		}
		if math.Abs(p.Velocity.X) > cfg.Drift || math.Abs(p.Velocity.Y) > cfg.Drift {
			t.Fatalf("spawn %d drift too large: %v", i, p.Velocity)
		}
	}
}

func TestSpawnInheritsPointerVelocity(t *testing.T) {
	pointer := NewPointerTracker(10)
	pointer.Move(Vec2{0, 0}, 0)
	pointer.Move(Vec2{100, 0}, 10*time.Millisecond) // velocity {100, 0}

	sim := NewSimulation(stillParticleConfig(), pointer, fixedRand(0.5))
	p := sim.Spawn(Vec2{0, 0}, 10*time.Millisecond)

	// Opposite the pointer, scaled by InheritVelocity.
	if math.Abs(p.Velocity.X+5) > 1e-9 || p.Velocity.Y != 0 {
		t.Errorf("Velocity = %v, want {-5 0}", p.Velocity)
	}
}

func TestStepFrictionDecay(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{0, 0}, 0)
	p.Velocity = Vec2{10, -4}

	for n := 1; n <= 10; n++ {
		sim.Step(time.Duration(n) * time.Millisecond)
		want := math.Pow(0.95, float64(n))
		if math.Abs(p.Velocity.X-10*want) > 1e-9 || math.Abs(p.Velocity.Y+4*want) > 1e-9 {
			t.Fatalf("step %d: Velocity = %v, want {%v %v}", n, p.Velocity, 10*want, -4*want)
		}
	}
}

func TestStepIntegratesPosition(t *testing.T) {
	cfg := stillParticleConfig()
	cfg.Friction = 1
	sim := NewSimulation(cfg, NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{0, 0}, 0)
	p.Velocity = Vec2{2, 3}

	sim.Step(time.Millisecond)
	sim.Step(2 * time.Millisecond)
	if p.Position != (Vec2{4, 6}) {
		t.Errorf("Position = %v, want {4 6}", p.Position)
	}
}

func TestRepulsion(t *testing.T) {
	pointer := NewPointerTracker(10)
	pointer.Move(Vec2{0, 0}, time.Millisecond)
	sim := NewSimulation(stillParticleConfig(), pointer, fixedRand(0.5))

	tests := []struct {
		name string
		at   Vec2
		want Vec2
	}{
		{"inside radius", Vec2{10, 0}, Vec2{0.3, 0}},
		{"diagonal", Vec2{-3, 4}, Vec2{-0.18, 0.24}},
		{"on the pointer", Vec2{0, 0}, Vec2{}},
		{"at the radius", Vec2{50, 0}, Vec2{}},
		{"outside radius", Vec2{80, 0}, Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sim.repulsion(tt.at)
			if !got.IsFinite() {
				t.Fatalf("repulsion not finite: %v", got)
			}
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("repulsion(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestRepulsionMagnitudeConstant(t *testing.T) {
	pointer := NewPointerTracker(10)
	pointer.Move(Vec2{100, 100}, time.Millisecond)
	sim := NewSimulation(stillParticleConfig(), pointer, fixedRand(0.5))

	for _, d := range []float64{0.5, 1, 10, 25, 49.9} {
		got := sim.repulsion(Vec2{100 + d, 100}).Len()
		if math.Abs(got-0.3) > 1e-9 {
			t.Errorf("distance %v: magnitude = %v, want 0.3", d, got)
		}
	}
}

func TestRepulsionInactivePointer(t *testing.T) {
	pointer := NewPointerTracker(10)
	pointer.Move(Vec2{0, 0}, time.Millisecond)
	pointer.Leave()
	sim := NewSimulation(stillParticleConfig(), pointer, fixedRand(0.5))

	if got := sim.repulsion(Vec2{10, 0}); got != (Vec2{}) {
		t.Errorf("repulsion with inactive pointer = %v, want zero", got)
	}
}

func TestStepPushesParticleAway(t *testing.T) {
	pointer := NewPointerTracker(10)
	pointer.Move(Vec2{0, 0}, time.Millisecond)
	sim := NewSimulation(stillParticleConfig(), pointer, fixedRand(0.5))
	p := sim.Spawn(Vec2{10, 0}, 0)

	sim.Step(16 * time.Millisecond)
	if math.Abs(p.Velocity.X-0.3) > 1e-9 {
		t.Errorf("Velocity.X = %v, want 0.3", p.Velocity.X)
	}
	if math.Abs(p.Position.X-10.3) > 1e-9 {
		t.Errorf("Position.X = %v, want 10.3", p.Position.X)
	}
}

func TestParticleFadeAndRemovalTiming(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{0, 0}, 0)

	sim.Step(499 * time.Millisecond)
	if p.Fading() {
		t.Fatal("particle fading before 500ms")
	}

	sim.Step(500 * time.Millisecond)
	start, ok := p.FadeStart()
	if !ok || start != 500*time.Millisecond {
		t.Fatalf("FadeStart = %v, %v; want 500ms, true", start, ok)
	}
	if math.Abs(p.Opacity-0.9) > 1e-6 || p.Blur != 0 {
		t.Errorf("at fade start Opacity, Blur = %v, %v; want 0.9, 0", p.Opacity, p.Blur)
	}

	sim.Step(600 * time.Millisecond)
	if p.Opacity >= 0.9 || p.Opacity <= 0.1 {
		t.Errorf("mid-fade Opacity = %v, want between 0.1 and 0.9", p.Opacity)
	}
	if p.Blur <= 0 || p.Blur >= 4 {
		t.Errorf("mid-fade Blur = %v, want between 0 and 4", p.Blur)
	}

	sim.Step(699 * time.Millisecond)
	if sim.Len() != 1 {
		t.Fatal("particle removed before fade completed")
	}

	sim.Step(700 * time.Millisecond)
	if sim.Len() != 0 {
		t.Fatalf("Len = %d after fade completed, want 0", sim.Len())
	}
}

func TestFadingParticleSkipsPhysics(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{0, 0}, 0)
	p.Velocity = Vec2{1, 0}

	sim.Step(500 * time.Millisecond) // moves once, then begins fading
	pos := p.Position
	sim.Step(550 * time.Millisecond)
	if p.Position != pos {
		t.Errorf("fading particle moved from %v to %v", pos, p.Position)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	a := sim.Spawn(Vec2{1, 0}, 0)
	b := sim.Spawn(Vec2{2, 0}, 0)

	if !sim.Remove(a, time.Millisecond) {
		t.Fatal("first Remove should report true")
	}
	if sim.Remove(a, time.Millisecond) {
		t.Error("second Remove should report false")
	}
	if sim.Len() != 1 || sim.Particles()[0] != b {
		t.Errorf("live list = %v, want only b", sim.Particles())
	}
	if st := sim.Stats(); st.Retired != 1 {
		t.Errorf("Retired = %d, want 1", st.Retired)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	var ps []*Particle
	for i := 0; i < 5; i++ {
		ps = append(ps, sim.Spawn(Vec2{float64(i), 0}, 0))
	}
	sim.Remove(ps[2], 0)

	want := []*Particle{ps[0], ps[1], ps[3], ps[4]}
	got := sim.Particles()
	if len(got) != len(want) {
		t.Fatalf("Len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("particle %d out of order", i)
		}
	}
}

func TestRetireReleasesHandle(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	var sizes []SizeClass
	sim.SetHandleProvider(func(s SizeClass) *ebiten.Image {
		sizes = append(sizes, s)
		return img
	})

	p := sim.Spawn(Vec2{}, 0)
	if p.Handle() != img {
		t.Fatal("expected handle from provider")
	}
	if len(sizes) != 1 || sizes[0] != SizeSmall {
		t.Errorf("provider sizes = %v, want [small]", sizes)
	}
	sim.Remove(p, 0)
	if p.Handle() != nil {
		t.Error("handle not released on retirement")
	}
}

func TestNoParticleLeak(t *testing.T) {
	sim := NewSimulation(DefaultConfig().Particle, NewPointerTracker(10), NewSeededRand(3))
	const frame = 16 * time.Millisecond
	now := time.Duration(0)

	// Spawn a burst every frame for one second, then let everything expire.
	for i := 0; i < 60; i++ {
		now += frame
		for j := 0; j < 5; j++ {
			sim.Spawn(Vec2{float64(i), float64(j)}, now)
		}
		sim.Step(now)
	}
	for i := 0; i < 60; i++ {
		now += frame
		sim.Step(now)
	}

	if sim.Len() != 0 {
		t.Fatalf("Len = %d after all lifetimes elapsed, want 0", sim.Len())
	}
	st := sim.Stats()
	if st.Spawned != 300 || st.Retired != 300 {
		t.Errorf("Spawned, Retired = %d, %d; want 300, 300", st.Spawned, st.Retired)
	}
	// Fade start and fade end each land on the first frame at or past
	// their deadline.
	limit := 700*time.Millisecond + 2*frame
	if st.MaxResidency > limit {
		t.Errorf("MaxResidency = %v, want at most %v", st.MaxResidency, limit)
	}
}

func TestTickRespectsRunning(t *testing.T) {
	cfg := stillParticleConfig()
	cfg.Friction = 1
	sim := NewSimulation(cfg, NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{}, 0)
	p.Velocity = Vec2{1, 0}

	if sim.Running() {
		t.Fatal("new simulation should be stopped")
	}
	sim.Tick(time.Millisecond)
	if p.Position.X != 0 {
		t.Errorf("stopped Tick moved particle to %v", p.Position)
	}

	sim.Start()
	sim.Tick(2 * time.Millisecond)
	if p.Position.X != 1 {
		t.Errorf("running Tick: Position.X = %v, want 1", p.Position.X)
	}

	sim.Stop()
	sim.Tick(3 * time.Millisecond)
	if p.Position.X != 1 {
		t.Errorf("Tick after Stop moved particle to %v", p.Position)
	}
}

func TestSimulationEvents(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	var got []EventType
	sim.onEvent = func(e EventType, p *Particle) { got = append(got, e) }

	sim.Spawn(Vec2{}, 0)
	sim.Spawn(Vec2{}, 0)
	sim.Reset(time.Millisecond)

	want := []EventType{EventParticleSpawned, EventParticleSpawned, EventParticleRetired, EventParticleRetired}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if sim.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", sim.Len())
	}
}

func TestZeroFadeDurationSnapsToEnd(t *testing.T) {
	cfg := stillParticleConfig()
	cfg.FadeDuration = 0
	sim := NewSimulation(cfg, NewPointerTracker(10), fixedRand(0.5))
	p := sim.Spawn(Vec2{}, 0)

	sim.Step(500 * time.Millisecond)
	if math.IsNaN(p.Opacity) || math.IsNaN(p.Blur) {
		t.Fatalf("Opacity, Blur = %v, %v; want finite values", p.Opacity, p.Blur)
	}
	if p.Opacity != cfg.FadeOpacity || p.Blur != cfg.FadeBlur {
		t.Errorf("Opacity, Blur = %v, %v; want %v, %v", p.Opacity, p.Blur, cfg.FadeOpacity, cfg.FadeBlur)
	}

	sim.Step(516 * time.Millisecond)
	if sim.Len() != 0 {
		t.Errorf("Len = %d, want 0", sim.Len())
	}
}

func TestRemoveFromRetireCallbackIsDeferred(t *testing.T) {
	cfg := stillParticleConfig()
	sim := NewSimulation(cfg, NewPointerTracker(10), fixedRand(0.5))
	victim := sim.Spawn(Vec2{}, 300*time.Millisecond)
	old := sim.Spawn(Vec2{}, 0)

	sim.Step(500 * time.Millisecond) // old starts fading
	if !old.Fading() || victim.Fading() {
		t.Fatal("expected only the older particle to be fading")
	}
	victim.Velocity = Vec2{1, 0}
	x0 := victim.Position.X

	var removed bool
	var retired int
	sim.onEvent = func(e EventType, p *Particle) {
		if e != EventParticleRetired {
			return
		}
		retired++
		if p == old {
			removed = sim.Remove(victim, 700*time.Millisecond)
			if sim.Remove(victim, 700*time.Millisecond) {
				t.Error("second Remove during the sweep should report false")
			}
		}
	}

	sim.Step(700 * time.Millisecond)
	if !removed {
		t.Fatal("Remove from the callback should report true")
	}
	if got, want := victim.Position.X, x0+cfg.Friction; math.Abs(got-want) > 1e-9 {
		t.Errorf("victim X = %v, want %v (stepped exactly once)", got, want)
	}
	if sim.Len() != 0 || retired != 2 {
		t.Errorf("Len = %d, retired = %d; want 0, 2", sim.Len(), retired)
	}
	if victim.Handle() != nil {
		t.Error("deferred removal should release the handle")
	}
}

func TestResetFromCallbackIsDeferred(t *testing.T) {
	sim := NewSimulation(stillParticleConfig(), NewPointerTracker(10), fixedRand(0.5))
	sim.Spawn(Vec2{}, 400*time.Millisecond)
	sim.Spawn(Vec2{}, 0)
	sim.Spawn(Vec2{}, 450*time.Millisecond)
	sim.Step(500 * time.Millisecond)

	sim.onEvent = func(e EventType, p *Particle) {
		if e == EventParticleRetired && sim.Len() == 2 {
			sim.Reset(700 * time.Millisecond)
		}
	}
	sim.Step(700 * time.Millisecond)
	if sim.Len() != 0 {
		t.Errorf("Len = %d, want 0", sim.Len())
	}
}
