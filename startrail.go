package torchlight

import "time"

// StarTrail turns pointer movement into particles spawned behind the cursor.
// It owns the pointer tracker, the trail history, and the simulation the
// particles live in.
type StarTrail struct {
	cfg     TrailConfig
	pointer *PointerTracker
	history *TrailHistory
	sim     *Simulation
	rng     RandSource
}

// NewStarTrail creates a star trail from cfg. A nil rng uses the process-wide
// generator.
func NewStarTrail(cfg Config, rng RandSource) *StarTrail {
	if rng == nil {
		rng = globalRand{}
	}
	pointer := NewPointerTracker(cfg.Trail.VelocityScale)
	sim := NewSimulation(cfg.Particle, pointer, rng)
	if cfg.Debug.ResidencyWindow > 0 {
		sim.SetResidencyWindow(cfg.Debug.ResidencyWindow)
	}
	return &StarTrail{
		cfg:     cfg.Trail,
		pointer: pointer,
		history: NewTrailHistory(cfg.Trail.Capacity),
		sim:     sim,
		rng:     rng,
	}
}

// Pointer returns the tracker fed by Move.
func (st *StarTrail) Pointer() *PointerTracker { return st.pointer }

// History returns the trail history fed by Move.
func (st *StarTrail) History() *TrailHistory { return st.history }

// Simulation returns the simulation owning the spawned particles.
func (st *StarTrail) Simulation() *Simulation { return st.sim }

// Move records a pointer sample and spawns particles along the trail when
// the pointer moves fast enough. Returns the number of particles spawned.
func (st *StarTrail) Move(pos Vec2, now time.Duration) int {
	st.pointer.Move(pos, now)
	st.history.Push(TrailPoint{Position: pos, Time: now})

	if st.pointer.Speed() > st.cfg.ActivitySpeed {
		return st.spawnAlongTrail(now)
	}
	return 0
}

// Leave marks the pointer as off the tracked surface.
func (st *StarTrail) Leave() {
	st.pointer.Leave()
}

// spawnAlongTrail rolls once per trail point behind the cursor. Index 0 is
// the cursor itself and never spawns.
func (st *StarTrail) spawnAlongTrail(now time.Duration) int {
	if st.pointer.Speed() < st.cfg.SpawnGateSpeed {
		return 0
	}
	spawned := 0
	for i := 1; i < st.history.Len(); i++ {
		p := st.history.SpawnProbability(i, st.cfg.SpawnDensity)
		if st.rng.Float64() < p {
			st.sim.Spawn(st.history.At(i).Position, now)
			spawned++
		}
	}
	return spawned
}
