package tracker

import "github.com/banshee-data/geotrack/geo"

// track is the filter state for one id. Tracks are owned exclusively by
// the Tracker and mutated only inside Record; origin never changes after
// creation and lastTimestampMillis is non-decreasing across calls.
type track struct {
	id     string
	origin geo.Point

	// Kalman state [east, north, vEast, vNorth] in metres and m/s
	// relative to origin, with 4x4 row-major covariance.
	x vec4
	p mat4

	lastTimestampMillis        int64
	aggressivePruneUntilMillis int64
	samples                    []Sample
}

func newTrack(id string, origin geo.Point, timestampMillis int64, cfg Config) *track {
	tr := &track{
		id:                  id,
		origin:              origin,
		lastTimestampMillis: timestampMillis,
	}
	pu := cfg.InitialPositionUncertaintyMeters
	vu := cfg.InitialVelocityUncertainty
	tr.p[0] = pu * pu
	tr.p[5] = pu * pu
	tr.p[10] = vu * vu
	tr.p[15] = vu * vu
	return tr
}

// Sample is the immutable record of one raw observation together with
// the estimate it produced. Samples are ordered by non-decreasing
// timestamp and pruned only from the front.
type Sample struct {
	TimestampMillis int64     `json:"timestamp_millis"`
	Position        geo.Point `json:"position"`
	AccuracyMeters  float64   `json:"accuracy_meters,omitempty"`
	Fused           bool      `json:"fused"`
	Estimate        Estimate  `json:"estimate"`
}

// TrackSnapshot exposes a track's internal filter state for diagnostics:
// the full state vector and row-major covariance, the anchor origin, and
// bookkeeping counters.
type TrackSnapshot struct {
	ID                  string      `json:"id"`
	Origin              geo.Point   `json:"origin"`
	State               [4]float64  `json:"state"`
	Covariance          [16]float64 `json:"covariance"`
	LastTimestampMillis int64       `json:"last_timestamp_millis"`
	SampleCount         int         `json:"sample_count"`
}
