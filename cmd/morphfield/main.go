// Package main is the entry point for the morphfield window.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/app"
	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/internal/mount"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
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

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== morphfield ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to mount", zap.Error(err))
		return 1
	}
	defer a.Close()

	if cfg.Scroll.Stdin {
		go func() {
			n, err := mount.FeedScroll(ctx, os.Stdin, a.Scroll())
			if err != nil {
				logger.Warn("stdin scroll feed stopped", zap.Error(err))
				return
			}
			logger.Debug("stdin scroll feed finished", zap.Int("values", n))
		}()
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("loop error", zap.Error(err))
		return 1
	}

	logger.Info("closed normally")
	return 0
}
