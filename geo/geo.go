// Package geo holds the geographic coordinate value type and
// spherical-angle helpers shared by the projection, illumination and
// compositing packages.
package geo

import "math"

// Point is a geographic coordinate in degrees.
// Latitude is in [-90, 90], longitude in [-180, 180].
type Point struct {
	Lat float64
	Lon float64
}

// NewPoint returns a Point with latitude clamped and longitude wrapped
// into their canonical ranges.
func NewPoint(lat, lon float64) Point {
	return Point{Lat: ClampLat(lat), Lon: WrapLon(lon)}
}

// ClampLat clamps a latitude into [-90, 90].
func ClampLat(lat float64) float64 {
	if lat > 90 {
		return 90
	}
	if lat < -90 {
		return -90
	}
	return lat
}

// WrapLon wraps a longitude into [-180, 180].
func WrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// NormalizeDeg wraps an angle into [0, 360). Negative inputs are
// shifted up before the floor-mod so -1 maps to 359, not -1.
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngularDistance returns the great-circle central angle between two
// points in degrees, in [0, 180]. Uses the haversine form, which stays
// numerically stable for nearby and antipodal pairs alike.
func AngularDistance(p1, p2 Point) float64 {
	φ1 := Radians(p1.Lat)
	φ2 := Radians(p2.Lat)
	Δφ := Radians(p2.Lat - p1.Lat)
	Δλ := Radians(p2.Lon - p1.Lon)

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Degrees(c)
}

// Antipode returns the point diametrically opposite p.
func Antipode(p Point) Point {
	return Point{Lat: -p.Lat, Lon: WrapLon(p.Lon + 180)}
}
