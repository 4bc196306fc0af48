package render

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/LeromX/geochron/astro"
	"github.com/LeromX/geochron/colors"
	"github.com/LeromX/geochron/geo"
	"github.com/LeromX/geochron/light"
	"github.com/LeromX/geochron/texture"
)

// RenderGlobe ray-casts a size×size snapshot of the globe from the
// camera's viewpoint. Each ray that hits the sphere is shaded by the
// geographic day/night blend at the hit point; rays that miss are left
// transparent so the caller can compose the globe over any background.
func (c *Compositor) RenderGlobe(day, night *texture.Raster, sun astro.SunPosition, cam Camera, size int) (*image.NRGBA, error) {
	if day == nil || night == nil {
		return nil, ErrMissingTexture
	}
	if size <= 0 {
		return nil, fmt.Errorf("render: invalid globe size %d", size)
	}

	day, night = matchDimensions(day, night, !c.opts.Bilinear)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	renderRows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < size; x++ {
				dir := cam.Ray(float64(x), float64(y), size)

				t := intersectSphere(cam.Position, dir, EarthRadiusKm)
				if t < 0 {
					continue
				}

				hit := cam.Position.Add(dir.Scale(t))
				lat, lon := hit.ToLatLon()
				p := geo.Point{Lat: lat, Lon: lon}

				b := light.Brightness(p, sun, c.opts.TransitionWidth)

				var cd, cn colors.Color4
				if c.opts.Bilinear {
					u, v := equirectUV(lat, lon)
					cd = day.SampleUVBilinear(u, v)
					cn = night.SampleUVBilinear(u, v)
				} else {
					cd = day.SampleGeo(p)
					cn = night.SampleGeo(p)
				}

				img.SetNRGBA(x, y, cn.Mix(cd, b).WithAlpha(1).Clamp01().ToNRGBA())
			}
		}
	}

	if c.opts.Workers < 2 {
		renderRows(0, size)
		return img, nil
	}

	var g errgroup.Group
	for _, band := range rowBands(size, c.opts.Workers, 1) {
		g.Go(func() error {
			renderRows(band[0], band[1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// BakeGlobeTexture renders the blended frame in the plain
// equirectangular unwrap used by the sphere mesh: texel (u, v) maps to
// lat = 90 - v·180, lon = u·360 - 180. The result can be uploaded
// directly as the globe material regardless of the compositor's
// configured display projection.
func (c *Compositor) BakeGlobeTexture(day, night *texture.Raster, sun astro.SunPosition, w, h int) (*image.NRGBA, error) {
	baked := *c
	baked.opts.Projection = equirectForBake
	return baked.RenderBlended(day, night, sun, w, h)
}

var equirectForBake = bakeProjection{}

// bakeProjection is the fixed UV unwrap used for sphere textures. It
// is its own type so baked frames get their own cache entries and
// never collide with display-projection frames of the same size.
type bakeProjection struct{}

func (bakeProjection) Name() string { return "globe-bake" }

func (bakeProjection) ToScreen(p geo.Point, width, height int) (float64, float64) {
	u, v := equirectUV(geo.ClampLat(p.Lat), geo.WrapLon(p.Lon))
	return u * float64(width), v * float64(height)
}

func (bakeProjection) ToGeo(x, y float64, width, height int) geo.Point {
	u := x / float64(width)
	v := y / float64(height)
	return geo.Point{
		Lat: geo.ClampLat(90 - v*180),
		Lon: geo.WrapLon(u*360 - 180),
	}
}
