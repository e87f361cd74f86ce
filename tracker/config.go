package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the numeric tunables of the tracker. All values must be
// positive and mutually consistent; Validate is called by New so a
// running Tracker always carries a vetted configuration.
//
// Measurement noise values are standard deviations in metres; the filter
// squares them into variances at the point of use. Process noise values
// are variance growth rates (see the field comments).
type Config struct {
	// Retention
	TimeWindowMillis          int64   // nominal sample-history window
	FastMovementWindowMillis  int64   // window while aggressive pruning is armed
	SubstantialMovementMeters float64 // displacement across history that arms aggressive pruning
	HighSpeedMetersPerSecond  float64 // estimated speed that arms aggressive pruning

	// Estimate extraction
	MinSpeedForHeading float64 // m/s below which heading is reported absent

	// Initial uncertainty for new tracks (standard deviations)
	InitialPositionUncertaintyMeters float64
	InitialVelocityUncertainty       float64 // m/s

	// Process noise. ProcessNoisePosition is the random-walk position
	// variance growth in m²/s; ProcessNoiseAcceleration is the spectral
	// density of the white-acceleration model in m²/s³.
	ProcessNoisePosition     float64
	ProcessNoiseAcceleration float64

	// ProcessNoiseFloorMillis floors the dt used inside the process-noise
	// computation (never the mean update) so back-to-back same-timestamp
	// samples still receive nonzero injected uncertainty.
	ProcessNoiseFloorMillis int64

	// Measurement noise bounds (standard deviations, metres). An explicit
	// per-observation accuracy hint replaces the base value; the result is
	// always clamped into [min, max].
	BaseMeasurementNoiseMeters float64
	MinMeasurementNoiseMeters  float64
	MaxMeasurementNoiseMeters  float64

	// Gating and adaptive reweighting. OutlierThreshold gates on squared
	// Mahalanobis distance; AdaptiveNoiseScale inflates the measurement
	// variance of accepted-but-surprising innovations.
	OutlierThreshold   float64
	AdaptiveNoiseScale float64
}

// DefaultConfig returns tuning for consumer GNSS receivers (phone or
// vehicle grade, a few metres of jitter).
func DefaultConfig() Config {
	return Config{
		TimeWindowMillis:                 40_000,
		FastMovementWindowMillis:         5_000,
		SubstantialMovementMeters:        50,
		HighSpeedMetersPerSecond:         8,
		MinSpeedForHeading:               0.2,
		InitialPositionUncertaintyMeters: 10,
		InitialVelocityUncertainty:       10,
		ProcessNoisePosition:             0.1,
		ProcessNoiseAcceleration:         0.5,
		ProcessNoiseFloorMillis:          1,
		BaseMeasurementNoiseMeters:       5,
		MinMeasurementNoiseMeters:        1,
		MaxMeasurementNoiseMeters:        50,
		OutlierThreshold:                 16,
		AdaptiveNoiseScale:               0.05,
	}
}

// HighAccuracyConfig returns tuning for survey or RTK-grade receivers
// with centimetre-to-decimetre jitter. The tighter gate reflects the
// much smaller expected innovations.
func HighAccuracyConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialPositionUncertaintyMeters = 2
	cfg.InitialVelocityUncertainty = 5
	cfg.BaseMeasurementNoiseMeters = 0.5
	cfg.MinMeasurementNoiseMeters = 0.05
	cfg.MaxMeasurementNoiseMeters = 5
	cfg.ProcessNoisePosition = 0.01
	return cfg
}

// NetworkLocationConfig returns tuning for coarse cell/wifi positioning:
// large measurement noise, a wide gate, and a longer retention window to
// compensate for the sparse, jumpy fixes such sources deliver.
func NetworkLocationConfig() Config {
	cfg := DefaultConfig()
	cfg.TimeWindowMillis = 120_000
	cfg.SubstantialMovementMeters = 200
	cfg.InitialPositionUncertaintyMeters = 50
	cfg.BaseMeasurementNoiseMeters = 50
	cfg.MinMeasurementNoiseMeters = 10
	cfg.MaxMeasurementNoiseMeters = 500
	cfg.OutlierThreshold = 25
	return cfg
}

// Validate checks that the configuration values are positive and
// mutually consistent.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"TimeWindowMillis", float64(c.TimeWindowMillis)},
		{"FastMovementWindowMillis", float64(c.FastMovementWindowMillis)},
		{"SubstantialMovementMeters", c.SubstantialMovementMeters},
		{"HighSpeedMetersPerSecond", c.HighSpeedMetersPerSecond},
		{"MinSpeedForHeading", c.MinSpeedForHeading},
		{"InitialPositionUncertaintyMeters", c.InitialPositionUncertaintyMeters},
		{"InitialVelocityUncertainty", c.InitialVelocityUncertainty},
		{"ProcessNoisePosition", c.ProcessNoisePosition},
		{"ProcessNoiseAcceleration", c.ProcessNoiseAcceleration},
		{"BaseMeasurementNoiseMeters", c.BaseMeasurementNoiseMeters},
		{"MinMeasurementNoiseMeters", c.MinMeasurementNoiseMeters},
		{"MaxMeasurementNoiseMeters", c.MaxMeasurementNoiseMeters},
		{"OutlierThreshold", c.OutlierThreshold},
		{"AdaptiveNoiseScale", c.AdaptiveNoiseScale},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.ProcessNoiseFloorMillis < 0 {
		return fmt.Errorf("%w: ProcessNoiseFloorMillis must be non-negative, got %d", ErrInvalidConfig, c.ProcessNoiseFloorMillis)
	}
	if c.MinMeasurementNoiseMeters > c.BaseMeasurementNoiseMeters {
		return fmt.Errorf("%w: MinMeasurementNoiseMeters (%v) exceeds BaseMeasurementNoiseMeters (%v)",
			ErrInvalidConfig, c.MinMeasurementNoiseMeters, c.BaseMeasurementNoiseMeters)
	}
	if c.BaseMeasurementNoiseMeters > c.MaxMeasurementNoiseMeters {
		return fmt.Errorf("%w: BaseMeasurementNoiseMeters (%v) exceeds MaxMeasurementNoiseMeters (%v)",
			ErrInvalidConfig, c.BaseMeasurementNoiseMeters, c.MaxMeasurementNoiseMeters)
	}
	if c.FastMovementWindowMillis > c.TimeWindowMillis {
		return fmt.Errorf("%w: FastMovementWindowMillis (%d) exceeds TimeWindowMillis (%d)",
			ErrInvalidConfig, c.FastMovementWindowMillis, c.TimeWindowMillis)
	}
	return nil
}

// ConfigOverrides is a partial configuration for layering site-specific
// tuning over a preset. Fields left nil keep the preset value, so a JSON
// file naming a single parameter is safe.
type ConfigOverrides struct {
	TimeWindowMillis                 *int64   `json:"time_window_millis,omitempty"`
	FastMovementWindowMillis         *int64   `json:"fast_movement_window_millis,omitempty"`
	SubstantialMovementMeters        *float64 `json:"substantial_movement_meters,omitempty"`
	HighSpeedMetersPerSecond         *float64 `json:"high_speed_mps,omitempty"`
	MinSpeedForHeading               *float64 `json:"min_speed_for_heading_mps,omitempty"`
	InitialPositionUncertaintyMeters *float64 `json:"initial_position_uncertainty_meters,omitempty"`
	InitialVelocityUncertainty       *float64 `json:"initial_velocity_uncertainty_mps,omitempty"`
	ProcessNoisePosition             *float64 `json:"process_noise_position,omitempty"`
	ProcessNoiseAcceleration         *float64 `json:"process_noise_acceleration,omitempty"`
	ProcessNoiseFloorMillis          *int64   `json:"process_noise_floor_millis,omitempty"`
	BaseMeasurementNoiseMeters       *float64 `json:"base_measurement_noise_meters,omitempty"`
	MinMeasurementNoiseMeters        *float64 `json:"min_measurement_noise_meters,omitempty"`
	MaxMeasurementNoiseMeters        *float64 `json:"max_measurement_noise_meters,omitempty"`
	OutlierThreshold                 *float64 `json:"outlier_threshold,omitempty"`
	AdaptiveNoiseScale               *float64 `json:"adaptive_noise_scale,omitempty"`
}

// LoadConfigOverrides loads a partial configuration from a JSON file.
// The file must have a .json extension and stay under the max file size.
func LoadConfigOverrides(path string) (*ConfigOverrides, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	overrides := &ConfigOverrides{}
	if err := json.Unmarshal(data, overrides); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return overrides, nil
}

// WithOverrides returns a copy of c with every non-nil override applied.
// The result is not validated; pass it to New (or call Validate) before
// use.
func (c Config) WithOverrides(o *ConfigOverrides) Config {
	if o == nil {
		return c
	}
	if o.TimeWindowMillis != nil {
		c.TimeWindowMillis = *o.TimeWindowMillis
	}
	if o.FastMovementWindowMillis != nil {
		c.FastMovementWindowMillis = *o.FastMovementWindowMillis
	}
	if o.SubstantialMovementMeters != nil {
		c.SubstantialMovementMeters = *o.SubstantialMovementMeters
	}
	if o.HighSpeedMetersPerSecond != nil {
		c.HighSpeedMetersPerSecond = *o.HighSpeedMetersPerSecond
	}
	if o.MinSpeedForHeading != nil {
		c.MinSpeedForHeading = *o.MinSpeedForHeading
	}
	if o.InitialPositionUncertaintyMeters != nil {
		c.InitialPositionUncertaintyMeters = *o.InitialPositionUncertaintyMeters
	}
	if o.InitialVelocityUncertainty != nil {
		c.InitialVelocityUncertainty = *o.InitialVelocityUncertainty
	}
	if o.ProcessNoisePosition != nil {
		c.ProcessNoisePosition = *o.ProcessNoisePosition
	}
	if o.ProcessNoiseAcceleration != nil {
		c.ProcessNoiseAcceleration = *o.ProcessNoiseAcceleration
	}
	if o.ProcessNoiseFloorMillis != nil {
		c.ProcessNoiseFloorMillis = *o.ProcessNoiseFloorMillis
	}
	if o.BaseMeasurementNoiseMeters != nil {
		c.BaseMeasurementNoiseMeters = *o.BaseMeasurementNoiseMeters
	}
	if o.MinMeasurementNoiseMeters != nil {
		c.MinMeasurementNoiseMeters = *o.MinMeasurementNoiseMeters
	}
	if o.MaxMeasurementNoiseMeters != nil {
		c.MaxMeasurementNoiseMeters = *o.MaxMeasurementNoiseMeters
	}
	if o.OutlierThreshold != nil {
		c.OutlierThreshold = *o.OutlierThreshold
	}
	if o.AdaptiveNoiseScale != nil {
		c.AdaptiveNoiseScale = *o.AdaptiveNoiseScale
	}
	return c
}
