// Package texture loads equirectangular Earth imagery and samples it
// by UV or geographic coordinate. TIFF is tried first since the NASA
// Blue Marble sources ship as TIFF; everything else falls through to
// the stdlib image codecs.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode
	"math"
	"os"

	"github.com/echoflaresat/tiff"
	xdraw "golang.org/x/image/draw"

	"github.com/LeromX/geochron/colors"
	"github.com/LeromX/geochron/geo"
)

// Raster is an immutable RGB(A) image with bounds-checked access.
// Pixels are stored non-premultiplied, row-major, 4 bytes per pixel.
type Raster struct {
	Width  int
	Height int
	pix    []uint8 // NRGBA, stride Width*4
}

// Load reads and decodes an image file into a Raster.
func Load(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		// fallback to stdlib codecs
		if _, serr := f.Seek(0, 0); serr != nil {
			return nil, fmt.Errorf("rewinding %s: %w", path, serr)
		}
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	return FromImage(img), nil
}

// FromImage copies an image into a Raster.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
	}
	return &Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
		pix:    nrgba.Pix,
	}
}

// Uniform returns a w×h raster filled with a single color. Handy for
// tests and as a fallback texture.
func Uniform(w, h int, c colors.Color4) *Raster {
	r := &Raster{Width: w, Height: h, pix: make([]uint8, w*h*4)}
	n := c.ToNRGBA()
	for i := 0; i < len(r.pix); i += 4 {
		r.pix[i] = n.R
		r.pix[i+1] = n.G
		r.pix[i+2] = n.B
		r.pix[i+3] = n.A
	}
	return r
}

// At returns the pixel at (x, y), clamping coordinates to the edges.
func (r *Raster) At(x, y int) colors.Color4 {
	if x < 0 {
		x = 0
	} else if x >= r.Width {
		x = r.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.Height {
		y = r.Height - 1
	}
	i := (y*r.Width + x) * 4
	return colors.Color4{
		R: float64(r.pix[i]) / 255,
		G: float64(r.pix[i+1]) / 255,
		B: float64(r.pix[i+2]) / 255,
		A: float64(r.pix[i+3]) / 255,
	}
}

// SampleUV samples at normalized coordinates with nearest-neighbor
// lookup. u wraps around the antimeridian, v clamps at the poles.
func (r *Raster) SampleUV(u, v float64) colors.Color4 {
	u = wrap01(u)
	x := int(u * float64(r.Width))
	y := int(v * float64(r.Height))
	return r.At(x, y)
}

// SampleUVBilinear samples at normalized coordinates, blending the
// four surrounding texels.
func (r *Raster) SampleUVBilinear(u, v float64) colors.Color4 {
	u = wrap01(u)
	fx := u*float64(r.Width) - 0.5
	fy := v*float64(r.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := r.At(x0, y0).Mix(r.At(x0+1, y0), tx)
	bot := r.At(x0, y0+1).Mix(r.At(x0+1, y0+1), tx)
	return top.Mix(bot, ty)
}

// SampleGeo samples the equirectangular raster at a geographic point.
// u grows eastward from the antimeridian, v southward from the north
// pole; the same convention the compositor and sphere mesh use.
func (r *Raster) SampleGeo(p geo.Point) colors.Color4 {
	u := (geo.WrapLon(p.Lon) + 180) / 360
	v := (90 - geo.ClampLat(p.Lat)) / 180
	return r.SampleUV(u, v)
}

// Resample returns a copy scaled to w×h. Bilinear filtering is used
// unless nearest is requested. Returns r unchanged when the size
// already matches.
func (r *Raster) Resample(w, h int, nearest bool) *Raster {
	if w == r.Width && h == r.Height {
		return r
	}
	src := r.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	scaler := xdraw.Scaler(xdraw.ApproxBiLinear)
	if nearest {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return &Raster{Width: w, Height: h, pix: dst.Pix}
}

// ToImage returns the raster as an NRGBA image sharing pixel storage.
func (r *Raster) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

func wrap01(u float64) float64 {
	u = math.Mod(u, 1)
	if u < 0 {
		u++
	}
	return u
}
