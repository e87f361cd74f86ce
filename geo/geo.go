// Package geo provides the coordinate-geometry primitives the tracker
// consumes: canonical point normalisation, great-circle distance, and
// translation of a point by metre offsets. All functions are pure and
// operate on degrees.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean earth radius used for spherical math.
const EarthRadiusMeters = 6371000.0

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// FromLonLat builds a normalised Point from a raw coordinate slice in
// [longitude, latitude(, altitude...)] order. Components beyond the
// second (altitude etc.) are ignored. Non-finite coordinates are
// rejected.
func FromLonLat(coords []float64) (Point, error) {
	if len(coords) < 2 {
		return Point{}, fmt.Errorf("coordinate slice needs at least [lon, lat], got %d components", len(coords))
	}
	p := Point{Lon: coords[0], Lat: coords[1]}
	if !p.Valid() {
		return Point{}, fmt.Errorf("coordinates must be finite, got lon=%v lat=%v", p.Lon, p.Lat)
	}
	return Normalize(p), nil
}

// Valid reports whether both coordinates are finite numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0) &&
		!math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0)
}

// Normalize folds a point into canonical ranges: latitude in [-90, 90]
// (folding over the poles, shifting longitude by 180 when it does) and
// longitude in [-180, 180).
func Normalize(p Point) Point {
	lat := wrapDegrees(p.Lat)
	lon := p.Lon
	if lat > 90 {
		lat = 180 - lat
		lon += 180
	} else if lat < -90 {
		lat = -180 - lat
		lon += 180
	}
	return Point{Lon: wrapDegrees(lon), Lat: lat}
}

// wrapDegrees wraps an angle into [-180, 180).
func wrapDegrees(deg float64) float64 {
	d := math.Mod(deg+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// LongitudeDelta returns to-from in degrees, wrapped into [-180, 180)
// so spans across the antimeridian stay small.
func LongitudeDelta(from, to float64) float64 {
	return wrapDegrees(to - from)
}

// Distance returns the great-circle (haversine) distance between two
// points in metres.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := LongitudeDelta(a.Lon, b.Lon) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Translate moves origin by the given metre offsets (east positive,
// north positive) on the local tangent plane and returns the resulting
// normalised point. Accuracy degrades for offsets that are a large
// fraction of the earth radius.
func Translate(origin Point, eastMeters, northMeters float64) Point {
	lat := origin.Lat + (northMeters/EarthRadiusMeters)*radToDeg
	cosLat := math.Cos(origin.Lat * degToRad)
	lon := origin.Lon
	if cosLat != 0 {
		lon += (eastMeters / (EarthRadiusMeters * cosLat)) * radToDeg
	}
	return Normalize(Point{Lon: lon, Lat: lat})
}
