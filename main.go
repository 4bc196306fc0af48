package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/LeromX/geochron/astro"
	"github.com/LeromX/geochron/clock"
	"github.com/LeromX/geochron/config"
	"github.com/LeromX/geochron/logger"
	"github.com/LeromX/geochron/mesh"
	"github.com/LeromX/geochron/project"
	"github.com/LeromX/geochron/render"
	"github.com/LeromX/geochron/texture"
)

type flags struct {
	configPath *string
	mode       *string
	out        *string
	timeStr    *string

	width, height *int
	projection    *string
	model         *string
	stride        *int
	transition    *float64
	opacity       *float64
	bilinear      *bool

	day, night *string

	lat, lon, alt, fov *float64
	size               *int

	radius         *float64
	latDiv, lonDiv *int

	frames     *int
	interval   *time.Duration
	multiplier *float64

	showHelp *bool
}

func defineFlags() flags {
	return flags{
		configPath: flag.String("config", "", "Path to YAML config file (optional)"),
		mode:       flag.String("mode", "map", "Render mode: map, overlay, globe, or mesh"),
		out:        flag.String("out", "geochron.png", "Output file path (.png, or .obj for mesh mode)"),
		timeStr:    flag.String("time", "", "Time in RFC3339 format (e.g., 2024-03-20T12:00:00Z); defaults to now"),

		width:      flag.Int("width", 0, "Output width in pixels (0 = config value)"),
		height:     flag.Int("height", 0, "Output height in pixels (0 = config value)"),
		projection: flag.String("projection", "", "Map projection: equirectangular or mercator"),
		model:      flag.String("model", "", "Solar model: loworder or precise"),
		stride:     flag.Int("stride", 0, "Pixel sampling stride (1 = every pixel)"),
		transition: flag.Float64("transition", 0, "Twilight band half-width in degrees [2,15]"),
		opacity:    flag.Float64("opacity", 0, "Night overlay opacity [0.3,1.0]"),
		bilinear:   flag.Bool("bilinear", false, "Use bilinear texture sampling"),

		day:   flag.String("day", "", "Day texture path"),
		night: flag.String("night", "", "Night texture path"),

		lat:  flag.Float64("lat", 0.0, "Globe camera latitude in degrees"),
		lon:  flag.Float64("lon", 0.0, "Globe camera longitude in degrees"),
		alt:  flag.Float64("alt", 12000.0, "Globe camera altitude in kilometers"),
		fov:  flag.Float64("fov", 50.0, "Globe camera field of view in degrees"),
		size: flag.Int("size", 640, "Globe output size (width/height in pixels)"),

		radius: flag.Float64("radius", 1.0, "Mesh sphere radius"),
		latDiv: flag.Int("latdiv", 32, "Mesh latitude subdivisions"),
		lonDiv: flag.Int("londiv", 64, "Mesh longitude subdivisions"),

		frames:     flag.Int("frames", 1, "Number of frames to render; >1 produces a numbered sequence"),
		interval:   flag.Duration("interval", time.Second, "Wall-clock delay between frames"),
		multiplier: flag.Float64("multiplier", 0, "Simulated-time speed multiplier; advances the sun between frames"),

		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `geochron - Day/Night Earth Renderer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("General", []string{"config", "mode", "out", "time", "h"})
	printGroup("Map Options", []string{"width", "height", "projection", "model", "stride", "transition", "opacity", "bilinear"})
	printGroup("Assets", []string{"day", "night"})
	printGroup("Globe Options", []string{"lat", "lon", "alt", "fov", "size"})
	printGroup("Mesh Options", []string{"radius", "latdiv", "londiv"})
	printGroup("Time-lapse", []string{"frames", "interval", "multiplier"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-11s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	fl := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *fl.showHelp {
		printHelp()
		return
	}

	cfg, err := config.Load(*fl.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, fl, set)

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer log.Sync()

	clk, err := effectiveClock(*fl.timeStr, cfg.Time.Multiplier)
	if err != nil {
		log.Fatal("invalid -time value", zap.Error(err))
	}

	if err := run(cfg, fl, clk, log); err != nil {
		log.Fatal("render failed", zap.Error(err))
	}
}

// applyFlags overlays explicitly set CLI flags onto the config; flags
// have the highest priority. set holds the names of flags the user
// actually passed, so an explicit -bilinear=false can override a
// config file that enables it.
func applyFlags(cfg *config.Config, fl flags, set map[string]bool) {
	if set["width"] {
		cfg.Render.Width = *fl.width
	}
	if set["height"] {
		cfg.Render.Height = *fl.height
	}
	if set["projection"] {
		cfg.Render.Projection = *fl.projection
	}
	if set["model"] {
		cfg.Render.SolarModel = *fl.model
	}
	if set["stride"] {
		cfg.Render.Stride = *fl.stride
	}
	if set["transition"] {
		cfg.Render.TransitionWidth = *fl.transition
	}
	if set["opacity"] {
		cfg.Render.NightOpacity = *fl.opacity
	}
	if set["bilinear"] {
		cfg.Render.Bilinear = *fl.bilinear
	}
	if set["day"] {
		cfg.Textures.Day = *fl.day
	}
	if set["night"] {
		cfg.Textures.Night = *fl.night
	}
	if set["multiplier"] {
		cfg.Time.Multiplier = *fl.multiplier
	}
	cfg.Clamp()
}

// effectiveClock resolves the clock driving render times. An explicit
// -time value anchors the simulation at that instant; a multiplier
// other than 1 makes simulated time advance faster (or slower) than
// wall time between frames.
func effectiveClock(timeStr string, multiplier float64) (clock.Clock, error) {
	var epoch time.Time
	if timeStr != "" {
		t, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			return nil, err
		}
		epoch = t.UTC()
	}

	if multiplier != 1 {
		if epoch.IsZero() {
			return clock.NewAccelerated(multiplier), nil
		}
		return &clock.Accelerated{
			Epoch:      epoch,
			Started:    time.Now().UTC(),
			Multiplier: multiplier,
		}, nil
	}
	if !epoch.IsZero() {
		return clock.Fixed{At: epoch}, nil
	}
	return clock.System{}, nil
}

func run(cfg *config.Config, fl flags, clk clock.Clock, log *zap.Logger) error {
	if *fl.mode == "mesh" {
		return runMesh(fl, log)
	}

	model := astro.ModelLowOrder
	if cfg.Render.SolarModel == "precise" {
		model = astro.ModelPrecise
	}

	comp := render.New(render.Options{
		Projection:      project.ByName(cfg.Render.Projection),
		TransitionWidth: cfg.Render.TransitionWidth,
		NightOpacity:    cfg.Render.NightOpacity,
		Stride:          cfg.Render.Stride,
		RefreshInterval: cfg.Render.RefreshInterval,
		Workers:         cfg.Render.Workers,
		Bilinear:        cfg.Render.Bilinear,
	})

	var day, night *texture.Raster
	var err error
	switch *fl.mode {
	case "overlay":
	case "map", "globe":
		if day, night, err = loadTextures(cfg, log); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode %q", *fl.mode)
	}

	frames := *fl.frames
	if frames < 1 {
		frames = 1
	}

	for i := 0; i < frames; i++ {
		sun := astro.Compute(clk.Now(), model)
		log.Info("sun position",
			zap.Time("at", sun.At),
			zap.Float64("subsolar_lat", sun.SubSolar.Lat),
			zap.Float64("subsolar_lon", sun.SubSolar.Lon),
		)

		var img *image.NRGBA
		switch *fl.mode {
		case "overlay":
			img, err = comp.RenderOverlay(sun, cfg.Render.Width, cfg.Render.Height)
		case "map":
			img, err = comp.RenderBlended(day, night, sun, cfg.Render.Width, cfg.Render.Height)
		case "globe":
			cam := render.NewCamera(*fl.lat, *fl.lon, *fl.alt, *fl.fov)
			img, err = comp.RenderGlobe(day, night, sun, cam, *fl.size)
		}
		if err != nil {
			return err
		}

		path := outPath(*fl.out, i, frames)
		if err := writePNG(path, img); err != nil {
			return err
		}
		log.Info("wrote frame", zap.String("path", path), zap.String("mode", *fl.mode))

		if i+1 < frames {
			time.Sleep(*fl.interval)
		}
	}
	return nil
}

// outPath numbers the output file when rendering a sequence:
// "geochron.png" becomes "geochron_0001.png" and so on. A single
// frame keeps the path as given.
func outPath(base string, i, frames int) string {
	if frames <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(base, ext), i+1, ext)
}

func runMesh(fl flags, log *zap.Logger) error {
	m, err := mesh.GenerateSphere(*fl.radius, *fl.latDiv, *fl.lonDiv)
	if err != nil {
		return err
	}
	if err := m.SaveOBJ(*fl.out); err != nil {
		return err
	}
	log.Info("wrote mesh",
		zap.String("path", *fl.out),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
	)
	return nil
}

func loadTextures(cfg *config.Config, log *zap.Logger) (*texture.Raster, *texture.Raster, error) {
	day, err := texture.Load(cfg.Textures.Day)
	if err != nil {
		return nil, nil, fmt.Errorf("day texture: %w", err)
	}
	night, err := texture.Load(cfg.Textures.Night)
	if err != nil {
		return nil, nil, fmt.Errorf("night texture: %w", err)
	}
	log.Debug("textures loaded",
		zap.Int("day_w", day.Width), zap.Int("day_h", day.Height),
		zap.Int("night_w", night.Width), zap.Int("night_h", night.Height),
	)
	return day, night, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
}
