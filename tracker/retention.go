package tracker

import "github.com/banshee-data/geotrack/geo"

// pruneSamples applies the motion-adaptive retention window after a
// sample has been appended. A substantial displacement across the
// retained history, or a high estimated speed, arms an aggressive
// pruning deadline during which the shorter window applies; fast-moving
// tracks forget stale context sooner. The window computation reads from
// the very history it prunes, forming a self-stabilising feedback loop.
//
// Only fused observations arm the deadline: a rejected outlier says
// nothing trustworthy about motion and must not flush history.
// The newest sample always survives, however stale.
func pruneSamples(tr *track, nowMillis int64, cfg Config, fused bool) {
	if len(tr.samples) == 0 {
		return
	}
	newest := tr.samples[len(tr.samples)-1].Estimate

	if fused {
		oldest := tr.samples[0].Estimate
		movement := geo.Distance(oldest.Position, newest.Position)
		if movement >= cfg.SubstantialMovementMeters || newest.SpeedMps >= cfg.HighSpeedMetersPerSecond {
			tr.aggressivePruneUntilMillis = nowMillis + cfg.FastMovementWindowMillis
		}
	}

	window := cfg.TimeWindowMillis
	if nowMillis <= tr.aggressivePruneUntilMillis {
		window = cfg.FastMovementWindowMillis
	}

	cutoff := nowMillis - window
	for len(tr.samples) > 1 && tr.samples[0].TimestampMillis < cutoff {
		tr.samples = tr.samples[1:]
	}
}
