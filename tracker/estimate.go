package tracker

import (
	"math"

	"github.com/banshee-data/geotrack/geo"
	"github.com/banshee-data/geotrack/internal/units"
)

// Estimate is the externally visible view of a track's filter state at
// one instant. Heading is degrees clockwise from north and is nil (not
// zero) while motion is negligible.
type Estimate struct {
	TimestampMillis int64     `json:"timestamp_millis"`
	Position        geo.Point `json:"position"`
	EastVelocity    float64   `json:"east_velocity_mps"`
	NorthVelocity   float64   `json:"north_velocity_mps"`
	SpeedMps        float64   `json:"speed_mps"`
	HeadingDeg      *float64  `json:"heading_deg,omitempty"`
}

// SpeedIn returns the estimate's speed converted to the given unit
// (mps, mph, kmph or kph).
func (e Estimate) SpeedIn(unit string) (float64, error) {
	return units.ConvertSpeed(e.SpeedMps, unit)
}

// estimateFrom derives the visible estimate from the track's internal
// state at the given timestamp.
func estimateFrom(tr *track, timestampMillis int64, cfg Config) Estimate {
	ve, vn := tr.x[2], tr.x[3]
	est := Estimate{
		TimestampMillis: timestampMillis,
		Position:        unprojectLocal(tr.origin, tr.x[0], tr.x[1]),
		EastVelocity:    ve,
		NorthVelocity:   vn,
		SpeedMps:        math.Hypot(ve, vn),
	}
	if est.SpeedMps >= cfg.MinSpeedForHeading {
		// Bearing is measured clockwise from north, so the east
		// component goes first in atan2.
		deg := math.Atan2(ve, vn) * radToDeg
		if deg < 0 {
			deg += 360
		}
		est.HeadingDeg = &deg
	}
	return est
}
