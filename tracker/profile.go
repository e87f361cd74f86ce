package tracker

import "fmt"

// MeasurementProfile is an optional per-observation override of the
// measurement-noise parameters. Fields left nil fall back to the
// tracker's Config; set fields win, merged field by field at the point
// of use.
type MeasurementProfile struct {
	BaseNoiseMeters  *float64 `json:"base_noise_meters,omitempty"`
	MinNoiseMeters   *float64 `json:"min_noise_meters,omitempty"`
	MaxNoiseMeters   *float64 `json:"max_noise_meters,omitempty"`
	OutlierThreshold *float64 `json:"outlier_threshold,omitempty"`
}

// Validate rejects non-positive values in any set field.
func (p *MeasurementProfile) Validate() error {
	if p == nil {
		return nil
	}
	fields := []struct {
		name  string
		value *float64
	}{
		{"BaseNoiseMeters", p.BaseNoiseMeters},
		{"MinNoiseMeters", p.MinNoiseMeters},
		{"MaxNoiseMeters", p.MaxNoiseMeters},
		{"OutlierThreshold", p.OutlierThreshold},
	}
	for _, f := range fields {
		if f.value != nil && !(*f.value > 0) {
			return fmt.Errorf("%w: measurement profile %s must be positive, got %v", ErrInvalidConfig, f.name, *f.value)
		}
	}
	if p.MinNoiseMeters != nil && p.MaxNoiseMeters != nil && *p.MinNoiseMeters > *p.MaxNoiseMeters {
		return fmt.Errorf("%w: measurement profile MinNoiseMeters (%v) exceeds MaxNoiseMeters (%v)",
			ErrInvalidConfig, *p.MinNoiseMeters, *p.MaxNoiseMeters)
	}
	return nil
}

// resolveMeasurement merges the profile over cfg and folds in the
// per-observation accuracy hint, returning the effective measurement
// standard deviation (metres) and the squared-Mahalanobis gate.
func resolveMeasurement(cfg Config, p *MeasurementProfile, accuracyMeters float64) (sigma, gate float64) {
	base := cfg.BaseMeasurementNoiseMeters
	minNoise := cfg.MinMeasurementNoiseMeters
	maxNoise := cfg.MaxMeasurementNoiseMeters
	gate = cfg.OutlierThreshold
	if p != nil {
		if p.BaseNoiseMeters != nil {
			base = *p.BaseNoiseMeters
		}
		if p.MinNoiseMeters != nil {
			minNoise = *p.MinNoiseMeters
		}
		if p.MaxNoiseMeters != nil {
			maxNoise = *p.MaxNoiseMeters
		}
		if p.OutlierThreshold != nil {
			gate = *p.OutlierThreshold
		}
	}

	sigma = base
	if accuracyMeters > 0 {
		sigma = accuracyMeters
	}
	if sigma < minNoise {
		sigma = minNoise
	}
	if sigma > maxNoise {
		sigma = maxNoise
	}
	return sigma, gate
}
