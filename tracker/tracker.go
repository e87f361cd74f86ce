package tracker

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/banshee-data/geotrack/geo"
	"github.com/banshee-data/geotrack/internal/timeutil"
)

// Observation is one raw position fix for a track.
type Observation struct {
	// ID identifies the track. Must not be blank; association is the
	// caller's job, ids are never inferred.
	ID string

	// Position is the observed coordinate. It is normalised into
	// canonical [lon, lat] form before use.
	Position geo.Point

	// TimestampMillis is the observation time in Unix milliseconds.
	// Must be non-negative and non-decreasing per id.
	TimestampMillis int64

	// AccuracyMeters is an optional sensor accuracy hint (one standard
	// deviation). Zero means unknown; the configured base noise applies.
	AccuracyMeters float64

	// Profile optionally overrides the measurement-noise parameters for
	// this observation only.
	Profile *MeasurementProfile
}

// TrackerStats are aggregate counters across the tracker's lifetime.
type TrackerStats struct {
	Tracks   int   `json:"tracks"`
	Samples  int   `json:"samples"`
	Fused    int64 `json:"fused"`
	Rejected int64 `json:"rejected"`
}

// Tracker owns the id→track mapping and runs the record pipeline:
// project, predict, correct, extract, prune. The map is guarded by a
// mutex so calls for distinct ids may arrive from different goroutines;
// timestamp ordering per id remains a caller contract.
type Tracker struct {
	mu     sync.RWMutex
	cfg    Config
	clock  timeutil.Clock
	tracks map[string]*track

	fused    int64
	rejected int64
}

// New creates a Tracker with the given configuration. The configuration
// is validated; an invalid one is a usage error, not a runtime surprise.
func New(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		cfg:    cfg,
		clock:  timeutil.RealClock{},
		tracks: make(map[string]*track),
	}, nil
}

// Config returns the tracker's (immutable) configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

// SetClock replaces the wall clock used by RecordNow. Intended for tests.
func (t *Tracker) SetClock(c timeutil.Clock) {
	if c == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clock = c
}

// NewTrackID returns a globally unique track id for callers that have no
// natural identifier of their own.
func NewTrackID() string {
	return "trk_" + uuid.NewString()
}

// Record applies one observation and returns the smoothed estimate for
// its track. A track is created lazily on the first observation for an
// id and destroyed only by Remove or Clear. Usage errors leave a known
// track's applied state unchanged; numerical edge cases (degenerate
// innovation covariance, rejected outliers) are not errors and yield a
// best-effort estimate from the unfused state.
func (t *Tracker) Record(obs Observation) (Estimate, error) {
	if strings.TrimSpace(obs.ID) == "" {
		return Estimate{}, ErrEmptyID
	}
	if !obs.Position.Valid() {
		return Estimate{}, fmt.Errorf("%w: lon=%v lat=%v", ErrInvalidPosition, obs.Position.Lon, obs.Position.Lat)
	}
	if obs.TimestampMillis < 0 {
		return Estimate{}, fmt.Errorf("%w: %d", ErrInvalidTimestamp, obs.TimestampMillis)
	}
	if obs.AccuracyMeters < 0 || math.IsNaN(obs.AccuracyMeters) || math.IsInf(obs.AccuracyMeters, 0) {
		return Estimate{}, fmt.Errorf("%w: %v", ErrInvalidAccuracy, obs.AccuracyMeters)
	}
	if err := obs.Profile.Validate(); err != nil {
		return Estimate{}, err
	}
	pos := geo.Normalize(obs.Position)

	t.mu.Lock()
	defer t.mu.Unlock()

	tr, ok := t.tracks[obs.ID]
	if !ok {
		tr = newTrack(obs.ID, pos, obs.TimestampMillis, t.cfg)
		t.tracks[obs.ID] = tr
	} else {
		if obs.TimestampMillis < tr.lastTimestampMillis {
			return Estimate{}, fmt.Errorf("%w: %d < %d on track %s",
				ErrStaleTimestamp, obs.TimestampMillis, tr.lastTimestampMillis, obs.ID)
		}
		dt := float64(obs.TimestampMillis-tr.lastTimestampMillis) / 1000
		predict(tr, dt, t.cfg) // skipped entirely at dt == 0
		tr.lastTimestampMillis = obs.TimestampMillis
	}

	mx, my := projectLocal(tr.origin, pos)
	sigma, gate := resolveMeasurement(t.cfg, obs.Profile, obs.AccuracyMeters)
	fused := correct(tr, mx, my, sigma, gate, t.cfg.AdaptiveNoiseScale)
	if fused {
		t.fused++
	} else {
		t.rejected++
	}

	est := estimateFrom(tr, obs.TimestampMillis, t.cfg)
	tr.samples = append(tr.samples, Sample{
		TimestampMillis: obs.TimestampMillis,
		Position:        pos,
		AccuracyMeters:  obs.AccuracyMeters,
		Fused:           fused,
		Estimate:        est,
	})
	pruneSamples(tr, obs.TimestampMillis, t.cfg, fused)

	return est, nil
}

// RecordPosition is shorthand for Record with only the required inputs.
func (t *Tracker) RecordPosition(id string, lon, lat float64, timestampMillis int64) (Estimate, error) {
	return t.Record(Observation{
		ID:              id,
		Position:        geo.Point{Lon: lon, Lat: lat},
		TimestampMillis: timestampMillis,
	})
}

// RecordNow records a position stamped with the tracker's clock.
func (t *Tracker) RecordNow(id string, lon, lat float64) (Estimate, error) {
	t.mu.RLock()
	clock := t.clock
	t.mu.RUnlock()
	return t.RecordPosition(id, lon, lat, clock.Now().UnixMilli())
}

// Remove destroys a track and reports whether it existed. Tracks are
// never expired automatically.
func (t *Tracker) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.tracks[id]
	delete(t.tracks, id)
	return ok
}

// Clear destroys all tracks. Lifetime counters are preserved.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracks = make(map[string]*track)
}

// TrackedIDs returns the ids of all live tracks in sorted order.
func (t *Tracker) TrackedIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.tracks))
	for id := range t.tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EstimateFor returns the most recent estimate for a track, if any.
func (t *Tracker) EstimateFor(id string) (Estimate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tr, ok := t.tracks[id]
	if !ok || len(tr.samples) == 0 {
		return Estimate{}, false
	}
	return tr.samples[len(tr.samples)-1].Estimate, true
}

// SampleCount returns the number of retained samples for a track, or
// zero for an unknown id.
func (t *Tracker) SampleCount(id string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tr, ok := t.tracks[id]
	if !ok {
		return 0
	}
	return len(tr.samples)
}

// Samples returns a defensive copy of a track's retained sample history,
// oldest first, or nil for an unknown id.
func (t *Tracker) Samples(id string) []Sample {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tr, ok := t.tracks[id]
	if !ok {
		return nil
	}
	out := make([]Sample, len(tr.samples))
	copy(out, tr.samples)
	return out
}

// Snapshot returns a diagnostic view of a track's internal filter state.
func (t *Tracker) Snapshot(id string) (TrackSnapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tr, ok := t.tracks[id]
	if !ok {
		return TrackSnapshot{}, false
	}
	return TrackSnapshot{
		ID:                  tr.id,
		Origin:              tr.origin,
		State:               tr.x,
		Covariance:          tr.p,
		LastTimestampMillis: tr.lastTimestampMillis,
		SampleCount:         len(tr.samples),
	}, true
}

// Stats returns aggregate counters: live tracks, retained samples, and
// fused/rejected observation totals since the tracker was created.
func (t *Tracker) Stats() TrackerStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stats := TrackerStats{
		Tracks:   len(t.tracks),
		Fused:    t.fused,
		Rejected: t.rejected,
	}
	for _, tr := range t.tracks {
		stats.Samples += len(tr.samples)
	}
	return stats
}
