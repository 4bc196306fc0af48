// Package light models surface illumination: how bright a geographic
// point is given the current sub-solar point, with a smooth twilight
// band around the terminator.
package light

import (
	"math"

	"github.com/LeromX/geochron/astro"
	"github.com/LeromX/geochron/geo"
)

// DefaultTransitionWidth is the half-width of the twilight band in
// degrees of angular distance. Sensible values run 2–15.
const DefaultTransitionWidth = 5.0

// Brightness returns the illumination factor for a point: 1 in full
// day, 0 in full night, eased through the twilight band of the given
// half-width (degrees) centered on the 90° terminator circle.
//
// The easing is a raised cosine, so brightness has zero slope at both
// band edges and the terminator shows no visible seam.
func Brightness(p geo.Point, sun astro.SunPosition, transitionWidth float64) float64 {
	dist := geo.AngularDistance(p, sun.SubSolar)

	switch {
	case dist < 90-transitionWidth:
		return 1
	case dist > 90+transitionWidth:
		return 0
	}

	t := (dist - (90 - transitionWidth)) / (2 * transitionWidth)
	return (math.Cos(t*math.Pi) + 1) / 2
}

// IsDaylight reports whether the point is on the day side of the
// terminator, ignoring the twilight gradient.
func IsDaylight(p geo.Point, sun astro.SunPosition) bool {
	return geo.AngularDistance(p, sun.SubSolar) < 90
}
