package torchlight

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const defaultResidencyWindow = 256

// Stats summarizes particle turnover for diagnostics.
type Stats struct {
	Live    int
	Peak    int
	Spawned int
	Retired int
	// Residency figures cover the most recent retirements only.
	MeanResidency time.Duration
	StdResidency  time.Duration
	MaxResidency  time.Duration
}

// residencyStats keeps a ring of recent particle lifetimes in milliseconds.
type residencyStats struct {
	window  []float64
	next    int
	full    bool
	spawned int
	retired int
	peak    int
}

func newResidencyStats(size int) residencyStats {
	if size <= 0 {
		size = defaultResidencyWindow
	}
	return residencyStats{window: make([]float64, size)}
}

func (r *residencyStats) record(age time.Duration) {
	r.retired++
	r.window[r.next] = float64(age) / float64(time.Millisecond)
	r.next++
	if r.next == len(r.window) {
		r.next = 0
		r.full = true
	}
}

func (r *residencyStats) samples() []float64 {
	if r.full {
		return r.window
	}
	return r.window[:r.next]
}

// Stats returns turnover counts and residency figures for retired particles.
func (s *Simulation) Stats() Stats {
	st := Stats{
		Live:    len(s.particles),
		Peak:    s.stats.peak,
		Spawned: s.stats.spawned,
		Retired: s.stats.retired,
	}
	xs := s.stats.samples()
	if len(xs) == 0 {
		return st
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		std = 0
	}
	st.MeanResidency = msDuration(mean)
	st.StdResidency = msDuration(std)
	st.MaxResidency = msDuration(floats.Max(xs))
	return st
}

// SetResidencyWindow resizes the residency window, discarding recorded samples.
func (s *Simulation) SetResidencyWindow(size int) {
	spawned, retired, peak := s.stats.spawned, s.stats.retired, s.stats.peak
	s.stats = newResidencyStats(size)
	s.stats.spawned, s.stats.retired, s.stats.peak = spawned, retired, peak
}

func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
