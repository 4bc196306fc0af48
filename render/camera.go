package render

import (
	"math"

	"github.com/LeromX/geochron/vectors"
)

// EarthRadiusKm is the spherical-Earth radius used by the globe
// renderer.
const EarthRadiusKm = 6371.0

// Camera is a pinhole camera in the Earth-fixed frame, positioned
// above a geographic point and aimed at the planet's center.
type Camera struct {
	Position   vectors.Vec3
	Forward    vectors.Vec3
	Right      vectors.Vec3
	Up         vectors.Vec3
	TanHalfFOV float64
}

// NewCamera places a camera at the given geodetic latitude/longitude
// (degrees) and altitude (km), looking at the Earth's center with the
// given field of view (degrees).
func NewCamera(latDeg, lonDeg, altKm, fovDeg float64) Camera {
	pos := vectors.FromLatLon(latDeg, lonDeg).Scale(EarthRadiusKm + altKm)

	fwd := pos.Normalize().Scale(-1)
	globalUp := vectors.Vec3{Z: 1}
	right := fwd.Cross(globalUp)
	if right.Norm() < 1e-6 {
		// Directly over a pole: any horizontal axis works.
		right = vectors.Vec3{X: 1}
	}
	right = right.Normalize()
	up := right.Cross(fwd).Normalize()

	return Camera{
		Position:   pos,
		Forward:    fwd,
		Right:      right,
		Up:         up,
		TanHalfFOV: math.Tan(fovDeg * math.Pi / 360),
	}
}

// Ray returns the normalized view direction through pixel (i, j) of a
// size×size viewport. Fractional coordinates are allowed for
// supersampling.
func (c Camera) Ray(i, j float64, size int) vectors.Vec3 {
	half := (float64(size) - 1) / 2
	if half == 0 {
		return c.Forward
	}

	xNDC := (i - half) / half
	yNDC := -((j - half) / half)

	return c.Right.Scale(xNDC * c.TanHalfFOV).
		Add(c.Up.Scale(yNDC * c.TanHalfFOV)).
		Add(c.Forward).
		Normalize()
}

// intersectSphere solves the ray/sphere intersection for a sphere of
// radius r centered at the origin, returning the nearest positive t or
// -1 when the ray misses.
func intersectSphere(origin, dir vectors.Vec3, r float64) float64 {
	b := 2 * origin.Dot(dir)
	cc := origin.Dot(origin) - r*r

	disc := b*b - 4*cc
	if disc < 0 {
		return -1
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / 2
	t2 := (-b + sqrtDisc) / 2

	if t1 > 0 {
		return t1
	}
	if t2 > 0 {
		return t2
	}
	return -1
}
