// Package mount builds the per-mount state shared by the window and the
// terminal hosts.
package mount

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/assets"
	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/camera"
	"github.com/Faultbox/morphfield/internal/engine/pointer"
	"github.com/Faultbox/morphfield/internal/engine/scene"
	"github.com/Faultbox/morphfield/internal/geometry"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/internal/morph"
)

// Palette holds the parsed colours of a config.
type Palette struct {
	Base       colorful.Color
	Terminal   colorful.Color
	Background colorful.Color
}

// ParsePalette decodes the hex colours of cfg.
func ParsePalette(cfg *config.Config) (Palette, error) {
	var p Palette
	var err error
	if p.Base, err = colorful.Hex(cfg.Color.Base); err != nil {
		return p, fmt.Errorf("base color: %w", err)
	}
	if p.Terminal, err = colorful.Hex(cfg.Color.Terminal); err != nil {
		return p, fmt.Errorf("terminal color: %w", err)
	}
	if p.Background, err = colorful.Hex(cfg.Render.Background); err != nil {
		return p, fmt.Errorf("background color: %w", err)
	}
	return p, nil
}

// NewRand returns the random source for target generation. Seed 0 picks a
// new seed from the clock, so every mount gets different targets.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// NewController builds every morph target named by the phase table of cfg.
// Target generation is the only expensive step of a mount and runs once.
func NewController(cfg *config.Config, shapes *assets.Manager, palette Palette) (*morph.Controller, error) {
	silhouette, err := shapes.Silhouette(cfg.Morph.Silhouette.Path)
	if err != nil {
		return nil, fmt.Errorf("loading silhouette: %w", err)
	}

	registry := geometry.DefaultRegistry(geometry.Params{
		SphereRadius: cfg.Morph.SphereRadius,
		Hypercube: geometry.HypercubeParams{
			HalfWidth: cfg.Morph.Hypercube.HalfWidth,
			Scale:     cfg.Morph.Hypercube.Scale,
			Distance:  cfg.Morph.Hypercube.Distance,
			W:         cfg.Morph.Hypercube.W,
		},
		Silhouette: silhouette,
		Jitter:     cfg.Morph.Silhouette.Jitter,
	})

	phases := make([]morph.Phase, len(cfg.Morph.Phases))
	for i, p := range cfg.Morph.Phases {
		phases[i] = morph.Phase{Start: p.Start, End: p.End, From: p.From, To: p.To}
	}

	rng, seed := NewRand(cfg.Morph.Seed)

	start := time.Now()
	c, err := morph.NewController(morph.Config{
		PointCount:    cfg.Morph.PointCount,
		Phases:        phases,
		Ease:          cfg.Morph.Ease,
		BaseColor:     palette.Base,
		TerminalColor: palette.Terminal,
	}, registry, rng)
	if err != nil {
		return nil, err
	}

	logger.Info("morph targets built",
		zap.Int("points", cfg.Morph.PointCount),
		zap.Strings("targets", c.Phases().Targets()),
		zap.Uint64("seed", seed),
		zap.Duration("took", time.Since(start)),
	)
	return c, nil
}

// LoopConfig maps cfg onto the loop settings for a viewport of the given
// size.
func LoopConfig(cfg *config.Config, width, height int) scene.Config {
	return scene.Config{
		Width:  width,
		Height: height,
		Pointer: pointer.Config{
			Smoothing:     cfg.Pointer.Smoothing,
			VelocityScale: cfg.Pointer.VelocityScale,
			Decay:         cfg.Pointer.VelocityDecay,
		},
		Camera: camera.Config{
			Sensitivity:      cfg.Camera.Sensitivity,
			Distance:         cfg.Render.CameraDistance,
			FovDegrees:       cfg.Render.FovDegrees,
			Near:             cfg.Render.Near,
			Far:              cfg.Render.Far,
			ScaleSmoothing:   cfg.Camera.ScaleSmoothing,
			ScaleGain:        cfg.Camera.ScaleGain,
			MaxScaleBoost:    cfg.Camera.MaxScaleBoost,
			RotationRate:     cfg.Camera.RotationRate,
			VelocityRotation: cfg.Camera.VelocityRotation,
			TiltAmplitude:    cfg.Camera.TiltAmplitude,
			TiltRate:         cfg.Camera.TiltRate,
		},
	}
}
