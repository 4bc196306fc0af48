package render

import (
	"math"
	"testing"

	"github.com/LeromX/geochron/colors"
	"github.com/LeromX/geochron/texture"
	"github.com/LeromX/geochron/vectors"
)

func TestNewCamera_LooksAtCenter(t *testing.T) {
	cam := NewCamera(30, 45, 8800, 60)

	wantDist := EarthRadiusKm + 8800
	if math.Abs(cam.Position.Norm()-wantDist) > 1e-6 {
		t.Errorf("camera distance = %v, want %v", cam.Position.Norm(), wantDist)
	}

	// Forward must point straight back at the origin.
	if d := cam.Forward.Add(cam.Position.Normalize()).Norm(); d > 1e-9 {
		t.Errorf("forward not toward center, residual %v", d)
	}

	// Orthonormal basis.
	if math.Abs(cam.Forward.Dot(cam.Right)) > 1e-9 ||
		math.Abs(cam.Forward.Dot(cam.Up)) > 1e-9 ||
		math.Abs(cam.Right.Dot(cam.Up)) > 1e-9 {
		t.Error("camera basis not orthogonal")
	}
}

func TestNewCamera_PolarFallback(t *testing.T) {
	cam := NewCamera(90, 0, 1000, 60)
	if cam.Right.Norm() == 0 || cam.Up.Norm() == 0 {
		t.Error("degenerate basis over the pole")
	}
}

func TestIntersectSphere(t *testing.T) {
	origin := vectors.Vec3{X: 10}
	toward := vectors.Vec3{X: -1}
	away := vectors.Vec3{X: 1}

	if tt := intersectSphere(origin, toward, 1); math.Abs(tt-9) > 1e-9 {
		t.Errorf("head-on intersection t = %v, want 9", tt)
	}
	if tt := intersectSphere(origin, away, 1); tt != -1 {
		t.Errorf("receding ray t = %v, want -1", tt)
	}
	if tt := intersectSphere(origin, vectors.Vec3{Y: 1}, 1); tt != -1 {
		t.Errorf("tangent miss t = %v, want -1", tt)
	}
}

func TestRenderGlobe_CenterHitAndCornerMiss(t *testing.T) {
	c := New(Options{Workers: 1})
	day := texture.Uniform(8, 8, colors.White())
	night := texture.Uniform(8, 8, colors.Black())

	// Camera over the sub-solar point: the visible disk center is full
	// day.
	sun := sunAt(0, 0, testEpoch)
	cam := NewCamera(0, 0, 8800, 60)

	img, err := c.RenderGlobe(day, night, sun, cam, 64)
	if err != nil {
		t.Fatal(err)
	}

	center := img.NRGBAAt(32, 32)
	if center.A != 255 || center.R < 250 {
		t.Errorf("disk center = %+v, want opaque white", center)
	}

	// The corner rays miss the sphere and stay transparent.
	if corner := img.NRGBAAt(0, 0); corner.A != 0 {
		t.Errorf("corner = %+v, want transparent", corner)
	}
}

func TestRenderGlobe_NightSide(t *testing.T) {
	c := New(Options{Workers: 1})
	day := texture.Uniform(8, 8, colors.White())
	night := texture.Uniform(8, 8, colors.Black())

	// Camera over the antipode of the sub-solar point.
	sun := sunAt(0, 0, testEpoch)
	cam := NewCamera(0, 180, 8800, 60)

	img, err := c.RenderGlobe(day, night, sun, cam, 64)
	if err != nil {
		t.Fatal(err)
	}

	center := img.NRGBAAt(32, 32)
	if center.A != 255 || center.R > 5 {
		t.Errorf("night disk center = %+v, want opaque black", center)
	}
}

func TestRenderGlobe_Validation(t *testing.T) {
	c := New(Options{Workers: 1})
	day := texture.Uniform(4, 4, colors.White())
	cam := NewCamera(0, 0, 8800, 60)
	sun := sunAt(0, 0, testEpoch)

	if _, err := c.RenderGlobe(day, nil, sun, cam, 64); err != ErrMissingTexture {
		t.Errorf("missing night texture: err = %v, want ErrMissingTexture", err)
	}
	if _, err := c.RenderGlobe(day, day, sun, cam, 0); err == nil {
		t.Error("zero size accepted")
	}
}

func TestRenderGlobe_ParallelMatchesSerial(t *testing.T) {
	day := texture.Uniform(16, 8, colors.New(0.8, 0.7, 0.3, 1))
	night := texture.Uniform(16, 8, colors.New(0.1, 0.1, 0.3, 1))
	sun := sunAt(20, -40, testEpoch)
	cam := NewCamera(10, 10, 12000, 50)

	a, err := New(Options{Workers: 1}).RenderGlobe(day, night, sun, cam, 48)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Options{Workers: 6}).RenderGlobe(day, night, sun, cam, 48)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				t.Fatalf("serial and parallel globes differ at (%d,%d)", x, y)
			}
		}
	}
}
