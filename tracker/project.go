package tracker

import (
	"math"

	"github.com/banshee-data/geotrack/geo"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// projectLocal maps p onto the local tangent plane anchored at origin,
// returning east/north offsets in metres. The longitude delta is wrapped
// into [-180, 180) before scaling so tracks straddling the antimeridian
// do not blow up. Accuracy intentionally degrades far from origin;
// tracks are expected to stay within tens of kilometres of it.
func projectLocal(origin, p geo.Point) (x, y float64) {
	meanLat := (origin.Lat + p.Lat) / 2 * degToRad
	x = geo.LongitudeDelta(origin.Lon, p.Lon) * degToRad * geo.EarthRadiusMeters * math.Cos(meanLat)
	y = (p.Lat - origin.Lat) * degToRad * geo.EarthRadiusMeters
	return x, y
}

// unprojectLocal is the inverse of projectLocal, via the translation
// collaborator.
func unprojectLocal(origin geo.Point, x, y float64) geo.Point {
	return geo.Translate(origin, x, y)
}
