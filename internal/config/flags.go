package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagPoints      = flag.Int("points", 0, "Number of points in the cloud")
	flagSeed        = flag.Uint64("seed", 0, "Random seed for target generation (0 = new seed per run)")
	flagProgress    = flag.Float64("progress", -1, "Initial scroll progress in [0,1]")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagScrollStdin = flag.Bool("scroll-stdin", false, "Read scroll progress values from stdin, one per line")
	flagWriteConfig = flag.Bool("write-config", false, "Write the effective config to --config or the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteRequested reports whether --write-config was given.
func WriteRequested() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPoints > 0 {
		cfg.Morph.PointCount = *flagPoints
	}
	if *flagSeed != 0 {
		cfg.Morph.Seed = *flagSeed
	}
	if *flagProgress >= 0 {
		cfg.Scroll.Initial = *flagProgress
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagScrollStdin {
		cfg.Scroll.Stdin = true
	}
}
