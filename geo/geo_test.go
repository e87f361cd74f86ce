package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLonLat(t *testing.T) {
	t.Parallel()

	t.Run("lon lat order", func(t *testing.T) {
		t.Parallel()
		p, err := FromLonLat([]float64{13.4, 52.5})
		require.NoError(t, err)
		assert.Equal(t, Point{Lon: 13.4, Lat: 52.5}, p)
	})

	t.Run("altitude ignored", func(t *testing.T) {
		t.Parallel()
		p, err := FromLonLat([]float64{13.4, 52.5, 120.0})
		require.NoError(t, err)
		assert.Equal(t, Point{Lon: 13.4, Lat: 52.5}, p)
	})

	t.Run("too few components", func(t *testing.T) {
		t.Parallel()
		_, err := FromLonLat([]float64{13.4})
		require.Error(t, err)
	})

	t.Run("non-finite coordinates", func(t *testing.T) {
		t.Parallel()
		_, err := FromLonLat([]float64{math.NaN(), 52.5})
		require.Error(t, err)
		_, err = FromLonLat([]float64{13.4, math.Inf(1)})
		require.Error(t, err)
	})

	t.Run("normalised on the way in", func(t *testing.T) {
		t.Parallel()
		p, err := FromLonLat([]float64{190, 45})
		require.NoError(t, err)
		assert.InDelta(t, -170, p.Lon, 1e-9)
		assert.InDelta(t, 45, p.Lat, 1e-9)
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("canonical points unchanged", func(t *testing.T) {
		t.Parallel()
		p := Normalize(Point{Lon: -73.97, Lat: 40.78})
		assert.Equal(t, Point{Lon: -73.97, Lat: 40.78}, p)
	})

	t.Run("longitude wraps", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, -170, Normalize(Point{Lon: 190, Lat: 0}).Lon, 1e-9)
		assert.InDelta(t, 170, Normalize(Point{Lon: -190, Lat: 0}).Lon, 1e-9)
		assert.InDelta(t, -180, Normalize(Point{Lon: 180, Lat: 0}).Lon, 1e-9)
	})

	t.Run("latitude folds over the pole", func(t *testing.T) {
		t.Parallel()
		p := Normalize(Point{Lon: 10, Lat: 100})
		assert.InDelta(t, 80, p.Lat, 1e-9)
		assert.InDelta(t, -170, p.Lon, 1e-9)

		p = Normalize(Point{Lon: 10, Lat: -100})
		assert.InDelta(t, -80, p.Lat, 1e-9)
		assert.InDelta(t, -170, p.Lon, 1e-9)
	})
}

func TestLongitudeDelta(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, LongitudeDelta(13.0, 14.0), 1e-12)
	assert.InDelta(t, -1.0, LongitudeDelta(14.0, 13.0), 1e-12)
	// across the antimeridian the short way
	assert.InDelta(t, 0.2, LongitudeDelta(179.9, -179.9), 1e-9)
	assert.InDelta(t, -0.2, LongitudeDelta(-179.9, 179.9), 1e-9)
}

func TestDistance(t *testing.T) {
	t.Parallel()

	t.Run("zero for identical points", func(t *testing.T) {
		t.Parallel()
		p := Point{Lon: 13.4, Lat: 52.5}
		assert.Equal(t, 0.0, Distance(p, p))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		t.Parallel()
		a := Point{Lon: 13, Lat: 52}
		b := Point{Lon: 13, Lat: 53}
		// ~111.19 km per degree on a 6371 km sphere
		assert.InDelta(t, 111195, Distance(a, b), 10)
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		a := Point{Lon: 13.4, Lat: 52.5}
		b := Point{Lon: 2.35, Lat: 48.86}
		assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	})

	t.Run("short antimeridian hop stays short", func(t *testing.T) {
		t.Parallel()
		a := Point{Lon: 179.9995, Lat: 0}
		b := Point{Lon: -179.9995, Lat: 0}
		assert.Less(t, Distance(a, b), 200.0)
	})
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	origin := Point{Lon: 13.4, Lat: 52.5}

	t.Run("north offset moves latitude only", func(t *testing.T) {
		t.Parallel()
		p := Translate(origin, 0, 1000)
		assert.InDelta(t, origin.Lon, p.Lon, 1e-9)
		assert.Greater(t, p.Lat, origin.Lat)
		assert.InDelta(t, 1000, Distance(origin, p), 1)
	})

	t.Run("east offset at latitude", func(t *testing.T) {
		t.Parallel()
		p := Translate(origin, 1000, 0)
		assert.InDelta(t, origin.Lat, p.Lat, 1e-9)
		assert.InDelta(t, 1000, Distance(origin, p), 1)
	})

	t.Run("diagonal round trip", func(t *testing.T) {
		t.Parallel()
		p := Translate(origin, 300, -400)
		assert.InDelta(t, 500, Distance(origin, p), 1)
	})

	t.Run("crosses the antimeridian cleanly", func(t *testing.T) {
		t.Parallel()
		p := Translate(Point{Lon: 179.9999, Lat: 10}, 500, 0)
		assert.Less(t, p.Lon, 0.0)
	})
}
