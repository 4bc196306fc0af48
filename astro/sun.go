// Package astro computes the sub-solar point on Earth for a given UTC
// instant. Two models are provided: a low-order closed-form model good
// to roughly a quarter degree, and a meeus-backed apparent model for
// callers that want more.
package astro

import (
	"math"
	"time"

	"github.com/LeromX/geochron/geo"
)

// j2000 is the Julian Date of the J2000.0 epoch (January 1, 2000, 12:00 TT).
const j2000 = 2451545.0

// SunPosition is the sub-solar geographic point and solar declination
// derived from a single UTC timestamp. Values are never mutated after
// construction; callers recompute as time advances.
type SunPosition struct {
	SubSolar    geo.Point
	Declination float64 // degrees, within ±23.44
	At          time.Time
}

// ComputeSunPosition returns the sub-solar point for t using the
// low-order solar model (mean longitude + equation-of-center terms,
// see Astronomical Almanac C24). Accuracy is about 0.25°, which is far
// below one pixel at any practical map resolution. Pure and
// deterministic for a given timestamp.
func ComputeSunPosition(t time.Time) SunPosition {
	t = t.UTC()
	n := JulianDate(t) - j2000

	// Mean longitude and mean anomaly of the Sun, degrees.
	L := geo.NormalizeDeg(280.460 + 0.9856474*n)
	g := geo.NormalizeDeg(357.528 + 0.9856003*n)

	// Ecliptic longitude with the two largest equation-of-center terms.
	gRad := geo.Radians(g)
	λ := L + 1.915*math.Sin(gRad) + 0.020*math.Sin(2*gRad)

	// Obliquity of the ecliptic, slowly decreasing.
	ε := 23.439 - 0.0000004*n

	decl := geo.Degrees(math.Asin(math.Sin(geo.Radians(ε)) * math.Sin(geo.Radians(λ))))

	// The sub-solar meridian is wherever local apparent noon is; the
	// mean-sun approximation ties it directly to the UTC clock.
	hours := float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3.6e12
	lon := geo.WrapLon((12 - hours) * 15)

	return SunPosition{
		SubSolar:    geo.Point{Lat: decl, Lon: lon},
		Declination: decl,
		At:          t,
	}
}

// JulianDate converts a UTC time to Julian Date, including the
// fractional day. Standard Gregorian algorithm: January and February
// count as months 13 and 14 of the previous year.
func JulianDate(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	if m <= 2 {
		y--
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + B - 1524.5

	h := float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3.6e12
	return jd + h/24
}
