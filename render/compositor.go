// Package render composites day and night Earth imagery into frames:
// flat map blends, night-side darkening overlays, and software-rendered
// globe snapshots.
package render

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/LeromX/geochron/astro"
	"github.com/LeromX/geochron/colors"
	"github.com/LeromX/geochron/light"
	"github.com/LeromX/geochron/project"
	"github.com/LeromX/geochron/texture"
)

// ErrMissingTexture is returned when blend mode is invoked without
// both source textures. The caller substitutes a fallback; the
// compositor never blends against undefined data.
var ErrMissingTexture = errors.New("render: day and night textures are both required")

// Options configures a Compositor. Zero values are replaced with
// defaults by New.
type Options struct {
	Projection project.Projection

	// TransitionWidth is the twilight half-width in degrees [2,15].
	TransitionWidth float64

	// NightOpacity scales the overlay darkening in [0.3,1.0].
	NightOpacity float64

	// Stride samples every Nth pixel per axis and fills the N×N block,
	// trading gradient smoothness for throughput. Default 2.
	Stride int

	// RefreshInterval is the minimum solar-time advance before a cached
	// frame is recomputed. Default one minute: the terminator moves
	// about a quarter degree per minute, under a pixel at typical sizes.
	RefreshInterval time.Duration

	// Workers is the number of row partitions rendered concurrently.
	// Values below 2 render on the calling goroutine.
	Workers int

	// Bilinear enables bilinear texture sampling.
	Bilinear bool
}

func (o Options) withDefaults() Options {
	if o.Projection == nil {
		o.Projection = project.Equirectangular{}
	}
	if o.TransitionWidth == 0 {
		o.TransitionWidth = light.DefaultTransitionWidth
	}
	if o.NightOpacity == 0 {
		o.NightOpacity = 0.7
	}
	if o.Stride < 1 {
		o.Stride = 2
	}
	if o.RefreshInterval == 0 {
		o.RefreshInterval = time.Minute
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

type frameKey struct {
	w, h int
	mode string
}

type frame struct {
	img *image.NRGBA
	at  time.Time // solar timestamp the frame was rendered for
}

// Compositor renders day/night frames, reusing one output buffer per
// distinct target dimension. It is owned by a single render loop; the
// internal row parallelism never outlives a render call.
type Compositor struct {
	opts   Options
	frames *lru.Cache
}

// New returns a Compositor with the given options.
func New(opts Options) *Compositor {
	// A handful of live dimensions covers resize thrash without
	// letting abandoned buffers accumulate.
	cache, _ := lru.New(4)
	return &Compositor{opts: opts.withDefaults(), frames: cache}
}

// RenderBlended produces a w×h frame where every pixel is the day
// texture blended toward the night texture by that pixel's darkness.
// Source rasters may differ in size; the smaller is resampled to the
// larger before blending. The returned image is owned by the
// compositor and valid until the next render at the same dimensions.
func (c *Compositor) RenderBlended(day, night *texture.Raster, sun astro.SunPosition, w, h int) (*image.NRGBA, error) {
	if day == nil || night == nil {
		return nil, ErrMissingTexture
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid frame dimensions %dx%d", w, h)
	}

	img, fresh := c.buffer(frameKey{w, h, "blend:" + c.opts.Projection.Name()}, sun.At)
	if fresh {
		return img, nil
	}

	day, night = matchDimensions(day, night, !c.opts.Bilinear)

	err := c.forEachBlock(w, h, func(x, y int) colors.Color4 {
		p := c.opts.Projection.ToGeo(float64(x)+0.5, float64(y)+0.5, w, h)
		b := light.Brightness(p, sun, c.opts.TransitionWidth)

		var cd, cn colors.Color4
		if c.opts.Bilinear {
			u, v := equirectUV(p.Lat, p.Lon)
			cd = day.SampleUVBilinear(u, v)
			cn = night.SampleUVBilinear(u, v)
		} else {
			cd = day.SampleGeo(p)
			cn = night.SampleGeo(p)
		}
		return cn.Mix(cd, b).WithAlpha(1)
	}, img)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// RenderOverlay produces a w×h mask that darkens an independently
// drawn base map: color is black everywhere and alpha is
// (1-brightness)·nightOpacity, so composing it over the base dims the
// night side and leaves the day side untouched.
func (c *Compositor) RenderOverlay(sun astro.SunPosition, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid frame dimensions %dx%d", w, h)
	}

	img, fresh := c.buffer(frameKey{w, h, "overlay:" + c.opts.Projection.Name()}, sun.At)
	if fresh {
		return img, nil
	}

	err := c.forEachBlock(w, h, func(x, y int) colors.Color4 {
		p := c.opts.Projection.ToGeo(float64(x)+0.5, float64(y)+0.5, w, h)
		b := light.Brightness(p, sun, c.opts.TransitionWidth)
		return colors.Color4{A: (1 - b) * c.opts.NightOpacity}
	}, img)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// buffer returns the reusable output buffer for key, reallocating only
// when the dimensions change. fresh is true when the cached frame is
// recent enough (within RefreshInterval of solar time) to serve as-is.
func (c *Compositor) buffer(key frameKey, at time.Time) (*image.NRGBA, bool) {
	if v, ok := c.frames.Get(key); ok {
		f := v.(*frame)
		age := at.Sub(f.at)
		if age < 0 {
			age = -age
		}
		if age < c.opts.RefreshInterval {
			return f.img, true
		}
		f.at = at
		return f.img, false
	}

	f := &frame{
		img: image.NewNRGBA(image.Rect(0, 0, key.w, key.h)),
		at:  at,
	}
	c.frames.Add(key, f)
	return f.img, false
}

// forEachBlock walks the frame at the configured stride, invoking fill
// once per block and flooding the block with the returned color. Rows
// are partitioned across workers; partitions never share pixels.
func (c *Compositor) forEachBlock(w, h int, fill func(x, y int) colors.Color4, dst *image.NRGBA) error {
	stride := c.opts.Stride

	renderRows := func(y0, y1 int) {
		for y := y0; y < y1; y += stride {
			for x := 0; x < w; x += stride {
				px := fill(x, y).Clamp01().ToNRGBA()
				for dy := 0; dy < stride && y+dy < y1; dy++ {
					for dx := 0; dx < stride && x+dx < w; dx++ {
						dst.SetNRGBA(x+dx, y+dy, px)
					}
				}
			}
		}
	}

	if c.opts.Workers < 2 {
		renderRows(0, h)
		return nil
	}

	var g errgroup.Group
	for _, band := range rowBands(h, c.opts.Workers, stride) {
		g.Go(func() error {
			renderRows(band[0], band[1])
			return nil
		})
	}
	return g.Wait()
}

// rowBands splits h rows into at most n disjoint [start, end) bands,
// each starting on a stride boundary so block fills stay in-band.
func rowBands(h, n, stride int) [][2]int {
	blocks := (h + stride - 1) / stride
	if n > blocks {
		n = blocks
	}
	bands := make([][2]int, 0, n)
	per := blocks / n
	extra := blocks % n

	y := 0
	for i := 0; i < n; i++ {
		take := per
		if i < extra {
			take++
		}
		end := y + take*stride
		if end > h {
			end = h
		}
		bands = append(bands, [2]int{y, end})
		y = end
	}
	return bands
}

// equirectUV maps geographic coordinates to normalized equirectangular
// texture coordinates: u east from the antimeridian, v south from the
// north pole.
func equirectUV(lat, lon float64) (u, v float64) {
	return (lon + 180) / 360, (90 - lat) / 180
}

// matchDimensions resamples the smaller of the two rasters to the
// larger's size so the blend never mixes mismatched strides.
func matchDimensions(day, night *texture.Raster, nearest bool) (*texture.Raster, *texture.Raster) {
	da := day.Width * day.Height
	na := night.Width * night.Height
	switch {
	case da > na:
		night = night.Resample(day.Width, day.Height, nearest)
	case na > da:
		day = day.Resample(night.Width, night.Height, nearest)
	}
	return day, night
}
