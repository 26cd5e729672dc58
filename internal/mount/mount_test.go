package mount

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/morphfield/internal/assets"
	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/scene"
)

func TestParsePalette(t *testing.T) {
	cfg := config.Default()
	p, err := ParsePalette(cfg)
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	if got := p.Base.Hex(); got != "#6366f1" {
		t.Errorf("base: got %s, want #6366f1", got)
	}
	if got := p.Terminal.Hex(); got != "#f59e0b" {
		t.Errorf("terminal: got %s, want #f59e0b", got)
	}

	cfg.Color.Base = "blue"
	if _, err := ParsePalette(cfg); err == nil {
		t.Error("expected error for non-hex base colour")
	}
}

func TestNewRandSeed(t *testing.T) {
	a, seedA := NewRand(42)
	b, seedB := NewRand(42)
	if seedA != 42 || seedB != 42 {
		t.Fatalf("explicit seed changed: %d, %d", seedA, seedB)
	}
	for i := 0; i < 8; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d differs with equal seeds: %d vs %d", i, x, y)
		}
	}

	if _, seed := NewRand(0); seed == 0 {
		t.Error("seed 0 should be replaced by a fresh seed")
	}
}

func TestNewController(t *testing.T) {
	cfg := config.Default()
	cfg.Morph.PointCount = 500
	cfg.Morph.Seed = 1

	palette, err := ParsePalette(cfg)
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	c, err := NewController(cfg, assets.NewManager(), palette)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if c.Len() != 500 {
		t.Errorf("Len: got %d, want 500", c.Len())
	}
	if f := c.Frame(1); !f.Terminal || f.Color != palette.Terminal {
		t.Errorf("progress 1 should be terminal with the terminal colour, got %+v", f.Color)
	}
}

func TestNewControllerErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing silhouette file", func(c *config.Config) { c.Morph.Silhouette.Path = "/nonexistent/shape.yaml" }},
		{"unknown target", func(c *config.Config) { c.Morph.Phases[0].From = "torus" }},
		{"unknown ease", func(c *config.Config) { c.Morph.Ease = "bounce" }},
		{"gap in phases", func(c *config.Config) { c.Morph.Phases[1].Start = 0.4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Morph.PointCount = 10
			tt.mutate(cfg)
			palette, _ := ParsePalette(cfg)
			if _, err := NewController(cfg, assets.NewManager(), palette); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoopConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.FovDegrees = 60
	cfg.Pointer.VelocityDecay = 0.9

	lc := LoopConfig(cfg, 800, 600)
	if lc.Width != 800 || lc.Height != 600 {
		t.Errorf("size: got %dx%d", lc.Width, lc.Height)
	}
	if lc.Camera.FovDegrees != 60 {
		t.Errorf("fov: got %f, want 60", lc.Camera.FovDegrees)
	}
	if lc.Camera.Distance != cfg.Render.CameraDistance {
		t.Errorf("distance: got %f, want %f", lc.Camera.Distance, cfg.Render.CameraDistance)
	}
	if lc.Pointer.Decay != 0.9 {
		t.Errorf("decay: got %f, want 0.9", lc.Pointer.Decay)
	}
}

func TestFeedScroll(t *testing.T) {
	input := strings.Join([]string{
		"0.1",
		"",
		"# comment",
		"abc",
		"  0.5  ",
		"7",
	}, "\n")

	var slot scene.ScrollSlot
	n, err := FeedScroll(context.Background(), strings.NewReader(input), &slot)
	if err != nil {
		t.Fatalf("FeedScroll: %v", err)
	}
	if n != 3 {
		t.Errorf("stored %d values, want 3", n)
	}
	// Last value wins and is clamped.
	if got := slot.Load(); got != 1 {
		t.Errorf("slot: got %f, want 1", got)
	}
}

func TestFeedScrollCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var slot scene.ScrollSlot
	n, err := FeedScroll(ctx, strings.NewReader("0.3\n0.4\n"), &slot)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 0 || slot.Load() != 0 {
		t.Errorf("cancelled feed stored values: n=%d slot=%f", n, slot.Load())
	}
}
