package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// Point is a geographic coordinate (WGS-84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine great-circle distance in meters between
// two points. Symmetric, and exactly zero for identical points.
func Distance(a, b Point) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Midpoint returns the arithmetic mean of two coordinates. Good enough for
// short road segments; not a great-circle midpoint.
func Midpoint(a, b Point) Point {
	return Point{
		Lat: (a.Lat + b.Lat) / 2,
		Lng: (a.Lng + b.Lng) / 2,
	}
}

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd ray-casting rule. Polygons with fewer than 3 vertices contain
// nothing. Horizontal polygon edges are skipped by the strict/non-strict
// latitude comparison, which also keeps shared vertices from being
// counted twice.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		a := polygon[i]
		b := polygon[j]
		if (a.Lat > p.Lat) == (b.Lat > p.Lat) {
			continue
		}
		// Longitude where the edge crosses the ray's latitude.
		crossLng := (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lng
		if p.Lng < crossLng {
			inside = !inside
		}
	}
	return inside
}
