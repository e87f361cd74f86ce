// Package tracker smooths noisy, irregularly timed geographic position
// observations into position, velocity, speed and heading estimates, one
// filter per caller-supplied track id.
//
// Each track runs a numerically stabilised constant-velocity Kalman
// filter on a local tangent plane anchored at the track's first
// observation. Measurements are gated on squared Mahalanobis distance,
// adaptively down-weighted when surprising, and fused with the
// Joseph-form covariance update so the covariance stays symmetric and
// positive semi-definite under rounding. Per-track sample history is
// bounded by a motion-adaptive retention window.
//
// Typical use:
//
//	trk, err := tracker.New(tracker.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	est, err := trk.Record(tracker.Observation{
//		ID:              "vehicle-17",
//		Position:        geo.Point{Lon: 13.388, Lat: 52.517},
//		TimestampMillis: time.Now().UnixMilli(),
//		AccuracyMeters:  4.2,
//	})
//
// Ordering is a per-id contract: calls for the same id must carry
// non-decreasing timestamps and, when issued from multiple goroutines,
// must be serialised by the caller. Calls for distinct ids are
// independent; the id lookup itself is internally locked.
package tracker
