// Package project maps geographic coordinates onto pixel grids and
// back. Two cylindrical projections are provided; both are stateless
// and safe for concurrent use.
package project

import (
	"math"

	"github.com/LeromX/geochron/geo"
)

// MercatorMaxLat is the latitude bound of the Mercator projection.
// Beyond it the projection diverges, so inputs are clamped.
const MercatorMaxLat = 85.05112878

// Projection converts between geographic coordinates and screen
// coordinates for a raster of the given dimensions. Implementations
// clamp and wrap out-of-domain inputs rather than erroring; the
// round trip ToGeo(ToScreen(p)) recovers p within float tolerance for
// points inside the projection's valid domain.
type Projection interface {
	// ToScreen maps a geographic point to fractional pixel coordinates,
	// x in [0, width], y in [0, height]. (0,0) is the north-west corner.
	ToScreen(p geo.Point, width, height int) (x, y float64)
	// ToGeo maps fractional pixel coordinates back to geography.
	ToGeo(x, y float64, width, height int) geo.Point
	// Name identifies the projection family in config and logs.
	Name() string
}

// Equirectangular maps longitude and latitude linearly to x and y.
type Equirectangular struct{}

func (Equirectangular) Name() string { return "equirectangular" }

func (Equirectangular) ToScreen(p geo.Point, width, height int) (float64, float64) {
	lat := geo.ClampLat(p.Lat)
	lon := geo.WrapLon(p.Lon)
	x := (lon + 180) / 360 * float64(width)
	y := (90 - lat) / 180 * float64(height)
	return x, y
}

func (Equirectangular) ToGeo(x, y float64, width, height int) geo.Point {
	lon := x/float64(width)*360 - 180
	lat := 90 - y/float64(height)*180
	return geo.Point{Lat: geo.ClampLat(lat), Lon: geo.WrapLon(lon)}
}

// Mercator is the conformal cylindrical projection, vertically bounded
// at ±85.05° where the full world map becomes square.
type Mercator struct{}

func (Mercator) Name() string { return "mercator" }

func (Mercator) ToScreen(p geo.Point, width, height int) (float64, float64) {
	lat := clampMercator(p.Lat)
	lon := geo.WrapLon(p.Lon)

	x := (lon + 180) / 360 * float64(width)

	mercY := math.Log(math.Tan(math.Pi/4 + geo.Radians(lat)/2))
	y := (math.Pi - mercY) / (2 * math.Pi) * float64(height)
	return x, y
}

func (Mercator) ToGeo(x, y float64, width, height int) geo.Point {
	lon := x/float64(width)*360 - 180

	mercY := math.Pi - y/float64(height)*2*math.Pi
	lat := geo.Degrees(2*math.Atan(math.Exp(mercY)) - math.Pi/2)

	return geo.Point{Lat: clampMercator(lat), Lon: geo.WrapLon(lon)}
}

func clampMercator(lat float64) float64 {
	if lat > MercatorMaxLat {
		return MercatorMaxLat
	}
	if lat < -MercatorMaxLat {
		return -MercatorMaxLat
	}
	return lat
}

// ByName returns the projection for a config name, defaulting to
// equirectangular for anything unrecognized.
func ByName(name string) Projection {
	if name == "mercator" {
		return Mercator{}
	}
	return Equirectangular{}
}
