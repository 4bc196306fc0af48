package geo

import (
	"math"
	"testing"
)

func TestWrapLon(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, -180}, // wraps to the negative edge of the canonical range
		{-180, -180},
		{190, -170},
		{-190, 170},
		{540, -180},
		{359, -1},
		{-359, 1},
		{720, 0},
	}
	for _, tt := range tests {
		got := WrapLon(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapLon(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-1, 359},
		{-361, 359},
		{725, 5},
	}
	for _, tt := range tests {
		got := NormalizeDeg(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampLat(t *testing.T) {
	if got := ClampLat(91); got != 90 {
		t.Errorf("ClampLat(91) = %v, want 90", got)
	}
	if got := ClampLat(-93); got != -90 {
		t.Errorf("ClampLat(-93) = %v, want -90", got)
	}
	if got := ClampLat(45.5); got != 45.5 {
		t.Errorf("ClampLat(45.5) = %v, want 45.5", got)
	}
}

func TestAngularDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   float64
	}{
		{"same point", Point{51.5, 0}, Point{51.5, 0}, 0},
		{"equator quarter turn", Point{0, 0}, Point{0, 90}, 90},
		{"pole to pole", Point{90, 0}, Point{-90, 0}, 180},
		{"antipodal on equator", Point{0, 0}, Point{0, 180}, 180},
		{"equator to pole", Point{0, 30}, Point{90, 30}, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularDistance(tt.p1, tt.p2)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("AngularDistance = %.8f deg, want %.8f", got, tt.want)
			}
		})
	}
}

func TestAngularDistance_Symmetric(t *testing.T) {
	p1 := Point{40.7, -74.0}
	p2 := Point{35.7, 139.7}
	d12 := AngularDistance(p1, p2)
	d21 := AngularDistance(p2, p1)
	if math.Abs(d12-d21) > 1e-12 {
		t.Errorf("distance not symmetric: %v vs %v", d12, d21)
	}
}

func TestAntipode(t *testing.T) {
	p := Point{48.85, 2.35}
	a := Antipode(p)
	if a.Lat != -p.Lat {
		t.Errorf("antipode latitude = %v, want %v", a.Lat, -p.Lat)
	}
	if d := AngularDistance(p, a); math.Abs(d-180) > 1e-6 {
		t.Errorf("antipodal distance = %v deg, want 180", d)
	}
}
