package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/LeromX/geochron/geo"
	"github.com/LeromX/geochron/vectors"
)

// Model selects which solar model computes the sub-solar point.
type Model int

const (
	// ModelLowOrder is the closed-form mean-sun model (~0.25° accuracy).
	ModelLowOrder Model = iota
	// ModelPrecise uses meeus apparent solar coordinates (~0.01°).
	ModelPrecise
)

// Compute returns the sun position for t under the selected model.
// Unknown model values fall back to the low-order model.
func Compute(t time.Time, m Model) SunPosition {
	if m == ModelPrecise {
		return ComputeSunPositionPrecise(t)
	}
	return ComputeSunPosition(t)
}

// ComputeSunPositionPrecise returns the sub-solar point from the
// apparent equatorial coordinates of the Sun. Declination maps
// directly to latitude; the sub-solar meridian is the apparent right
// ascension measured from Greenwich, i.e. RA minus apparent sidereal
// time at 0° longitude.
func ComputeSunPositionPrecise(t time.Time) SunPosition {
	t = t.UTC()
	jd := julian.TimeToJD(t)

	ra, dec := solar.ApparentEquatorial(jd)
	gmst := sidereal.Apparent0UT(jd)

	lat := dec.Deg()
	lon := geo.WrapLon(geo.Degrees(ra.Rad() - gmst.Angle().Rad()))

	return SunPosition{
		SubSolar:    geo.Point{Lat: lat, Lon: lon},
		Declination: lat,
		At:          t,
	}
}

// SunDirectionECEF returns the unit vector from Earth's center toward
// the Sun in the Earth-fixed frame, for shading a 3D globe. The vector
// points at the sub-solar point, so it is just that point lifted onto
// the unit sphere.
func SunDirectionECEF(t time.Time) vectors.Vec3 {
	sun := ComputeSunPositionPrecise(t)
	return vectors.FromLatLon(sun.SubSolar.Lat, sun.SubSolar.Lon)
}
