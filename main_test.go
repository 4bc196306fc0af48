package main

import (
	"testing"
	"time"

	"github.com/LeromX/geochron/clock"
	"github.com/LeromX/geochron/config"
)

func TestEffectiveClock(t *testing.T) {
	clk, err := effectiveClock("", 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := clk.(clock.System); !ok {
		t.Errorf("no time, multiplier 1: got %T, want clock.System", clk)
	}

	clk, err = effectiveClock("2024-03-20T12:00:00Z", 1)
	if err != nil {
		t.Fatal(err)
	}
	fixed, ok := clk.(clock.Fixed)
	if !ok {
		t.Fatalf("explicit time, multiplier 1: got %T, want clock.Fixed", clk)
	}
	want := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	if !fixed.At.Equal(want) {
		t.Errorf("fixed clock at %v, want %v", fixed.At, want)
	}

	clk, err = effectiveClock("", 60)
	if err != nil {
		t.Fatal(err)
	}
	acc, ok := clk.(*clock.Accelerated)
	if !ok {
		t.Fatalf("no time, multiplier 60: got %T, want *clock.Accelerated", clk)
	}
	if acc.Multiplier != 60 {
		t.Errorf("multiplier %v, want 60", acc.Multiplier)
	}

	// An explicit time anchors the accelerated simulation at that
	// epoch instead of at the wall clock.
	clk, err = effectiveClock("2024-03-20T12:00:00Z", 3600)
	if err != nil {
		t.Fatal(err)
	}
	acc, ok = clk.(*clock.Accelerated)
	if !ok {
		t.Fatalf("explicit time, multiplier 3600: got %T, want *clock.Accelerated", clk)
	}
	if !acc.Epoch.Equal(want) {
		t.Errorf("accelerated epoch %v, want %v", acc.Epoch, want)
	}
	if d := acc.Now().Sub(want); d < 0 || d > time.Minute {
		t.Errorf("simulated time drifted %v from epoch immediately after start", d)
	}

	if _, err := effectiveClock("not-a-time", 1); err == nil {
		t.Error("malformed time accepted")
	}
}

func TestOutPath(t *testing.T) {
	tests := []struct {
		base   string
		i      int
		frames int
		want   string
	}{
		{"geochron.png", 0, 1, "geochron.png"},
		{"geochron.png", 0, 3, "geochron_0001.png"},
		{"geochron.png", 2, 3, "geochron_0003.png"},
		{"out/frame.png", 9, 20, "out/frame_0010.png"},
		{"noext", 0, 2, "noext_0001"},
	}
	for _, tt := range tests {
		if got := outPath(tt.base, tt.i, tt.frames); got != tt.want {
			t.Errorf("outPath(%q, %d, %d) = %q, want %q",
				tt.base, tt.i, tt.frames, got, tt.want)
		}
	}
}

func TestApplyFlags_BilinearOverride(t *testing.T) {
	off := false

	// An explicit -bilinear=false wins over a config file that
	// enables bilinear sampling.
	cfg := config.Default()
	cfg.Render.Bilinear = true
	applyFlags(cfg, flags{bilinear: &off}, map[string]bool{"bilinear": true})
	if cfg.Render.Bilinear {
		t.Error("explicit -bilinear=false did not override config")
	}

	// Without the flag on the command line the config value stands.
	cfg = config.Default()
	cfg.Render.Bilinear = true
	applyFlags(cfg, flags{bilinear: &off}, map[string]bool{})
	if !cfg.Render.Bilinear {
		t.Error("config bilinear lost without an explicit flag")
	}
}
