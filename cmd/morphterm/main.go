// Package main runs the morphing point cloud in a terminal.
//
// The mouse steers the camera, the wheel and PageUp/PageDown scroll through
// the phases, Home/End jump to either end and Escape or q quits. Logs go to
// the configured log file only, since the screen belongs to the renderer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/assets"
	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/scene"
	"github.com/Faultbox/morphfield/internal/engine/terminal"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/internal/mount"
)

// Terminal pixels are coarse, so far fewer points are needed than in the
// window.
const maxTerminalPoints = 8000

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	if config.WriteRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		fmt.Printf("Config written to %s\n", path)
		return 0
	}

	cfg.Morph.PointCount = min(cfg.Morph.PointCount, maxTerminalPoints)

	opts := logger.Options{Level: cfg.Logging.Level}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	palette, err := mount.ParsePalette(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	controller, err := mount.NewController(cfg, assets.NewManager(), palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Mount error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		return 1
	}
	screen.EnableMouse()
	screen.HideCursor()

	// The loop owns the surface, and the surface owns the screen.
	surface := terminal.New(screen, cfg.Morph.PointCount, palette.Background)
	cols, rows := screen.Size()
	width, height := terminal.PixelSize(cols, rows)

	scroll := &scene.ScrollSlot{}
	scroll.Store(cfg.Scroll.Initial)
	loop := scene.New(mount.LoopConfig(cfg, width, height), controller, surface, scroll)
	defer loop.Close()

	if cfg.Scroll.Stdin {
		go func() {
			if _, err := mount.FeedScroll(ctx, os.Stdin, scroll); err != nil {
				logger.Warn("stdin scroll feed stopped", zap.Error(err))
			}
		}()
	}

	if err := drive(ctx, cfg, screen, loop, scroll); err != nil {
		loop.Close()
		fmt.Fprintf(os.Stderr, "Loop error: %v\n", err)
		return 1
	}
	return 0
}

// drive ticks the loop at about 60 Hz and routes terminal events to it
// until the user quits or ctx is done.
func drive(ctx context.Context, cfg *config.Config, screen tcell.Screen, loop *scene.Loop, scroll *scene.ScrollSlot) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if quit := handle(ev, cfg, screen, loop, scroll); quit {
				return nil
			}

		case <-ticker.C:
			if err := loop.Tick(); err != nil {
				return err
			}
		}
	}
}

func handle(ev tcell.Event, cfg *config.Config, screen tcell.Screen, loop *scene.Loop, scroll *scene.ScrollSlot) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
		loop.Resize(terminal.PixelSize(ev.Size()))

	case *tcell.EventMouse:
		loop.PointerMove(terminal.CellToPixel(ev.Position()))
		buttons := ev.Buttons()
		if buttons&tcell.WheelDown != 0 {
			scroll.Add(cfg.Scroll.WheelStep)
		}
		if buttons&tcell.WheelUp != 0 {
			scroll.Add(-cfg.Scroll.WheelStep)
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyPgDn, tcell.KeyDown:
			scroll.Add(cfg.Scroll.KeyStep)
		case tcell.KeyPgUp, tcell.KeyUp:
			scroll.Add(-cfg.Scroll.KeyStep)
		case tcell.KeyHome:
			scroll.Store(0)
		case tcell.KeyEnd:
			scroll.Store(1)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
		}
	}
	return false
}
