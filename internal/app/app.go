// Package app mounts the visualisation in an SDL2 window and runs the host
// loop around it.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/assets"
	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/debug"
	"github.com/Faultbox/morphfield/internal/engine/input"
	"github.com/Faultbox/morphfield/internal/engine/renderer"
	"github.com/Faultbox/morphfield/internal/engine/scene"
	"github.com/Faultbox/morphfield/internal/engine/window"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/internal/mount"
)

// App is one mounted visualisation.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	loop     *scene.Loop
	scroll   *scene.ScrollSlot

	screenshots *debug.Screenshots
	capture     bool // capture the next drawn frame

	closed bool
	log    *zap.Logger
}

// New acquires the window, the GL context, the renderer and the morph
// targets in that order. On failure everything acquired so far is released.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		scroll: &scene.ScrollSlot{},
		input:  input.New(),
		log:    logger.Named("app"),

		screenshots: debug.NewScreenshots(cfg.Window.ScreenshotDir, "morphfield"),
	}
	ready := false
	defer func() {
		if !ready {
			a.Close()
		}
	}()

	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("points", cfg.Morph.PointCount),
	)

	palette, err := mount.ParsePalette(cfg)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		Borderless: cfg.Window.Borderless,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The window may not get the requested size (fullscreen, tiling WMs).
	width, height := a.window.Size()

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		PointCount: cfg.Morph.PointCount,
		PointSize:  cfg.Render.PointSize,
		Opacity:    cfg.Render.Opacity,
		Additive:   cfg.Render.Additive,
		Background: palette.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.updatePixelRatio(width)

	controller, err := mount.NewController(cfg, assets.NewManager(), palette)
	if err != nil {
		return nil, fmt.Errorf("failed to build morph targets: %w", err)
	}

	// The loop owns the renderer from here on.
	a.loop = scene.New(mount.LoopConfig(cfg, width, height), controller, a.renderer, a.scroll)
	a.scroll.Store(cfg.Scroll.Initial)

	ready = true
	a.log.Info("initialized successfully")
	return a, nil
}

// Scroll returns the slot the host writes scroll progress into.
func (a *App) Scroll() *scene.ScrollSlot {
	return a.scroll
}

// Run drives the loop until a quit event, Escape, or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	var frameBudget time.Duration
	if a.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting loop")

	for {
		if err := ctx.Err(); err != nil {
			a.log.Info("context done, stopping loop", zap.Error(err))
			return nil
		}

		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			return nil
		}
		if a.handleEvents() {
			return nil
		}

		// 2. Tick and present
		if err := a.loop.Tick(); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		if a.capture {
			a.capture = false
			a.saveScreenshot()
		}
		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			f := a.loop.Frame()
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt.Seconds()*1000)),
				zap.Float64("progress", a.scroll.Load()),
				zap.Int("phase", f.Phase),
				zap.Bool("terminal", f.Terminal),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
}

// handleEvents routes the events of the last input update. It returns true
// when the app should quit.
func (a *App) handleEvents() bool {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.loop.Resize(event.Width, event.Height)
			a.updatePixelRatio(event.Width)

		case input.EventMouseMove:
			a.loop.PointerMove(float32(event.MouseX), float32(event.MouseY))

		case input.EventWheel:
			a.scroll.Add(a.cfg.Scroll.WheelStep * float64(event.WheelY))

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_DOWN:
				a.scroll.Add(a.cfg.Scroll.KeyStep)
			case sdl.SCANCODE_PAGEUP, sdl.SCANCODE_UP:
				a.scroll.Add(-a.cfg.Scroll.KeyStep)
			case sdl.SCANCODE_HOME:
				a.scroll.Store(0)
			case sdl.SCANCODE_END:
				a.scroll.Store(1)
			case sdl.SCANCODE_F12:
				a.capture = true
			}
		}
	}
	return false
}

func (a *App) saveScreenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.screenshots.Save(pixels, width, height, a.scroll.Load())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// updatePixelRatio syncs the renderer with the drawable size on high-DPI
// displays. The renderer caps the ratio at renderer.MaxPixelRatio.
func (a *App) updatePixelRatio(width int) {
	if width <= 0 {
		return
	}
	fbWidth, _ := a.window.DrawableSize()
	if err := a.renderer.SetPixelRatio(float32(fbWidth) / float32(width)); err != nil {
		a.log.Warn("pixel ratio cap unavailable, rendering at full resolution", zap.Error(err))
	}
}

// Close releases the loop (and with it the renderer) and the window. Safe
// to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.log.Info("closing")

	if a.loop != nil {
		a.loop.Close()
	} else if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
