package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test morph defaults
	if cfg.Morph.PointCount != 40000 {
		t.Errorf("expected 40000 points, got %d", cfg.Morph.PointCount)
	}
	if cfg.Morph.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Morph.Seed)
	}
	if len(cfg.Morph.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(cfg.Morph.Phases))
	}
	if last := cfg.Morph.Phases[2]; last.From != "silhouette" || last.To != "silhouette" || last.End != 1 {
		t.Errorf("unexpected terminal phase %+v", last)
	}

	// Test pointer defaults
	if cfg.Pointer.VelocityDecay != 0.95 {
		t.Errorf("expected velocity decay 0.95, got %f", cfg.Pointer.VelocityDecay)
	}

	// Test color defaults
	if cfg.Color.Base != "#6366f1" {
		t.Errorf("expected base color #6366f1, got %s", cfg.Color.Base)
	}
	if cfg.Color.Terminal != "#f59e0b" {
		t.Errorf("expected terminal color #f59e0b, got %s", cfg.Color.Terminal)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

render:
  point_size: 0.05
  additive: false

morph:
  point_count: 5000
  seed: 42
  ease: smoothstep
  phases:
    - {start: 0, end: 0.5, from: sphere, to: silhouette}
    - {start: 0.5, end: 1, from: silhouette, to: silhouette}
  silhouette:
    path: shapes/star.yaml

color:
  base: "#ffffff"

logging:
  level: debug
  log_file: morph.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Render.PointSize != 0.05 {
		t.Errorf("expected point size 0.05, got %f", cfg.Render.PointSize)
	}
	if cfg.Render.Additive {
		t.Error("expected additive to be false")
	}
	// Unset keys keep their defaults.
	if cfg.Render.Opacity != 0.6 {
		t.Errorf("expected default opacity 0.6, got %f", cfg.Render.Opacity)
	}
	if cfg.Morph.PointCount != 5000 || cfg.Morph.Seed != 42 {
		t.Errorf("expected 5000 points seed 42, got %d seed %d", cfg.Morph.PointCount, cfg.Morph.Seed)
	}
	if cfg.Morph.Ease != "smoothstep" {
		t.Errorf("expected ease smoothstep, got %s", cfg.Morph.Ease)
	}
	if len(cfg.Morph.Phases) != 2 {
		t.Fatalf("expected phase table to be replaced with 2 rows, got %d", len(cfg.Morph.Phases))
	}
	if cfg.Morph.Phases[0].To != "silhouette" {
		t.Errorf("unexpected first phase %+v", cfg.Morph.Phases[0])
	}
	if cfg.Morph.Silhouette.Path != "shapes/star.yaml" {
		t.Errorf("expected silhouette path, got %q", cfg.Morph.Silhouette.Path)
	}
	if cfg.Morph.Silhouette.Jitter != 0.01 {
		t.Errorf("expected default jitter 0.01, got %f", cfg.Morph.Silhouette.Jitter)
	}
	if cfg.Color.Base != "#ffffff" || cfg.Color.Terminal != "#f59e0b" {
		t.Errorf("unexpected colors %+v", cfg.Color)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "morph.log" {
		t.Errorf("expected log file 'morph.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window: size"},
		{"zero points", func(c *Config) { c.Morph.PointCount = 0 }, "point_count"},
		{"no phases", func(c *Config) { c.Morph.Phases = nil }, "no phases"},
		{"opacity above one", func(c *Config) { c.Render.Opacity = 1.5 }, "opacity"},
		{"near beyond far", func(c *Config) { c.Render.Near = 2000 }, "near < far"},
		{"decay of one", func(c *Config) { c.Pointer.VelocityDecay = 1 }, "velocity_decay"},
		{"initial progress", func(c *Config) { c.Scroll.Initial = 1.2 }, "scroll: initial"},
		{"zero wheel step", func(c *Config) { c.Scroll.WheelStep = 0 }, "wheel_step"},
		{"negative key step", func(c *Config) { c.Scroll.KeyStep = -0.1 }, "key_step"},
		{"bad color", func(c *Config) { c.Color.Terminal = "orange" }, "color.terminal"},
		{"negative jitter", func(c *Config) { c.Morph.Silhouette.Jitter = -0.1 }, "jitter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = -1
	cfg.Morph.PointCount = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "window") || !strings.Contains(msg, "point_count") {
		t.Errorf("expected both problems reported, got %q", msg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	if err := os.WriteFile("config.yaml", []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Morph.PointCount = 1234
	cfg.Color.Base = "#112233"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Morph.PointCount != 1234 || loaded.Color.Base != "#112233" {
		t.Errorf("round trip lost values: points %d base %s", loaded.Morph.PointCount, loaded.Color.Base)
	}
	if len(loaded.Morph.Phases) != len(cfg.Morph.Phases) {
		t.Errorf("round trip changed phase count to %d", len(loaded.Morph.Phases))
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "points flag",
			setup: func() { *flagPoints = 2000 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Morph.PointCount != 2000 {
					t.Errorf("expected 2000 points, got %d", cfg.Morph.PointCount)
				}
			},
			teardown: func() { *flagPoints = 0 },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Morph.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Morph.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "progress flag",
			setup: func() { *flagProgress = 0.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scroll.Initial != 0.5 {
					t.Errorf("expected initial progress 0.5, got %f", cfg.Scroll.Initial)
				}
			},
			teardown: func() { *flagProgress = -1 },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "scroll stdin flag",
			setup: func() { *flagScrollStdin = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Scroll.Stdin {
					t.Error("expected stdin scrolling to be enabled")
				}
			},
			teardown: func() { *flagScrollStdin = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("morph:\n  point_count: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject negative point count")
	}
}

func TestWriteConfigToNewPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "fresh", "config.yaml")

	*flagConfig = configPath
	*flagWriteConfig = true
	*flagPoints = 777
	defer func() {
		*flagConfig = ""
		*flagWriteConfig = false
		*flagPoints = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with missing file and --write-config: %v", err)
	}
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != configPath {
		t.Errorf("Save wrote %s, want %s", path, configPath)
	}

	*flagWriteConfig = false
	*flagPoints = 0
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Morph.PointCount != 777 {
		t.Errorf("point count = %d, want 777", loaded.Morph.PointCount)
	}
}

func TestLoadMissingFileWithoutWrite(t *testing.T) {
	*flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
