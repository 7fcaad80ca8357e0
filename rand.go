package torchlight

import "math/rand/v2"

// RandSource supplies uniform samples in [0, 1). Spawn decisions, jitter, and
// size selection all draw from the scene's RandSource, so a seeded source
// makes a run reproducible.
type RandSource interface {
	Float64() float64
}

// NewSeededRand returns a deterministic RandSource backed by a PCG generator.
func NewSeededRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalRand draws from the process-wide generator.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// centered returns a sample in [-half, half).
func centered(r RandSource, half float64) float64 {
	return (r.Float64() - 0.5) * 2 * half
}
