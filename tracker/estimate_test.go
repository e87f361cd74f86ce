package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/geotrack/geo"
	"github.com/banshee-data/geotrack/internal/units"
)

func TestEstimateHeading(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	origin := geo.Point{Lon: 13.4, Lat: 52.5}

	headingFor := func(ve, vn float64) *float64 {
		tr := newTrack("t1", origin, 0, cfg)
		tr.x[2] = ve
		tr.x[3] = vn
		return estimateFrom(tr, 0, cfg).HeadingDeg
	}

	t.Run("compass quadrants, clockwise from north", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			ve, vn float64
			want   float64
		}{
			{0, 5, 0},    // due north
			{5, 0, 90},   // due east
			{0, -5, 180}, // due south
			{-5, 0, 270}, // due west
			{5, 5, 45},   // north-east
			{-5, 5, 315}, // north-west
		}
		for _, tc := range cases {
			h := headingFor(tc.ve, tc.vn)
			require.NotNil(t, h, "ve=%v vn=%v", tc.ve, tc.vn)
			assert.InDelta(t, tc.want, *h, 1e-9, "ve=%v vn=%v", tc.ve, tc.vn)
		}
	})

	t.Run("heading range is [0, 360)", func(t *testing.T) {
		t.Parallel()
		h := headingFor(-0.3, 5)
		require.NotNil(t, h)
		assert.GreaterOrEqual(t, *h, 0.0)
		assert.Less(t, *h, 360.0)
	})

	t.Run("absent below the speed threshold", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, headingFor(0.05, 0.05))
		assert.Nil(t, headingFor(0, 0))
	})
}

func TestEstimateSpeedAndPosition(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	origin := geo.Point{Lon: 13.4, Lat: 52.5}

	tr := newTrack("t1", origin, 0, cfg)
	tr.x = vec4{300, -400, 3, -4}
	est := estimateFrom(tr, 7_000, cfg)

	assert.Equal(t, int64(7_000), est.TimestampMillis)
	assert.Equal(t, 3.0, est.EastVelocity)
	assert.Equal(t, -4.0, est.NorthVelocity)
	assert.InDelta(t, 5.0, est.SpeedMps, 1e-12)
	assert.InDelta(t, 500, geo.Distance(origin, est.Position), 1)
}

func TestEstimateSpeedIn(t *testing.T) {
	t.Parallel()

	est := Estimate{SpeedMps: 10}

	kmh, err := est.SpeedIn(units.KPH)
	require.NoError(t, err)
	assert.InDelta(t, 36, kmh, 1e-9)

	mph, err := est.SpeedIn(units.MPH)
	require.NoError(t, err)
	assert.InDelta(t, 22.37, mph, 0.01)

	_, err = est.SpeedIn("parsecs")
	require.Error(t, err)
}
