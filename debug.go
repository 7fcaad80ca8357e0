package torchlight

import (
	"time"
)

// debugLog writes frame timing and particle turnover every Debug.Interval
// frames. Only called when debug mode is on.
func (s *Scene) debugLog(updateTime time.Duration) {
	interval := s.cfg.Debug.Interval
	if interval <= 0 {
		interval = 1
	}
	if s.frame%uint64(interval) != 0 {
		return
	}

	st := s.trail.Simulation().Stats()
	s.logger.Debug().
		Uint64("frame", s.frame).
		Dur("sim_time", s.now).
		Dur("update", updateTime).
		Int("live", st.Live).
		Int("peak", st.Peak).
		Int("spawned", st.Spawned).
		Int("retired", st.Retired).
		Dur("residency_mean", st.MeanResidency).
		Dur("residency_max", st.MaxResidency).
		Float64("pointer_speed", s.trail.Pointer().Speed()).
		Int("overlays", s.glow.Len()).
		Msg("frame stats")

	if st.Live > debugMaxLiveParticles {
		s.logger.Warn().
			Int("live", st.Live).
			Int("threshold", debugMaxLiveParticles).
			Msg("live particle count is unusually high; check retirement")
	}
}

// debugMaxLiveParticles is the live count above which debug mode warns.
// With default parameters a fast pointer keeps well under a hundred alive.
const debugMaxLiveParticles = 1000
