// Package config handles configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Morph   MorphConfig   `yaml:"morph"`
	Pointer PointerConfig `yaml:"pointer"`
	Camera  CameraConfig  `yaml:"camera"`
	Color   ColorConfig   `yaml:"color"`
	Scroll  ScrollConfig  `yaml:"scroll"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Borderless bool   `yaml:"borderless"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"` // 0 = unlimited (vsync paced)

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures
}

// RenderConfig holds point and projection settings.
type RenderConfig struct {
	PointSize      float32 `yaml:"point_size"`
	Opacity        float32 `yaml:"opacity"`
	Additive       bool    `yaml:"additive"`
	Background     string  `yaml:"background"`
	FovDegrees     float32 `yaml:"fov_degrees"`
	CameraDistance float32 `yaml:"camera_distance"`
	Near           float32 `yaml:"near"`
	Far            float32 `yaml:"far"`
}

// PhaseConfig is one row of the phase table.
type PhaseConfig struct {
	Start float32 `yaml:"start"`
	End   float32 `yaml:"end"`
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
}

// HypercubeConfig holds the 4D sampling and projection parameters.
type HypercubeConfig struct {
	HalfWidth float64 `yaml:"half_width"`
	Scale     float64 `yaml:"projection_scale"`
	Distance  float64 `yaml:"projection_distance"`
	W         float64 `yaml:"projection_w"`
}

// SilhouetteConfig selects the reveal shape.
type SilhouetteConfig struct {
	Path   string  `yaml:"path"`   // empty = embedded dragon curve
	Jitter float64 `yaml:"jitter"` // fraction of the shape extent
}

// MorphConfig holds the point cloud and transition settings.
type MorphConfig struct {
	PointCount   int              `yaml:"point_count"`
	Seed         uint64           `yaml:"seed"` // 0 = new seed per run
	Ease         string           `yaml:"ease"`
	Phases       []PhaseConfig    `yaml:"phases"`
	SphereRadius float64          `yaml:"sphere_radius"`
	Hypercube    HypercubeConfig  `yaml:"hypercube"`
	Silhouette   SilhouetteConfig `yaml:"silhouette"`
}

// PointerConfig holds the pointer smoothing coefficients (per ~60 Hz tick).
type PointerConfig struct {
	Smoothing     float32 `yaml:"smoothing"`
	VelocityScale float32 `yaml:"velocity_scale"`
	VelocityDecay float32 `yaml:"velocity_decay"`
}

// CameraConfig holds the camera rig coefficients (per ~60 Hz tick).
type CameraConfig struct {
	Sensitivity      float32 `yaml:"sensitivity"`
	ScaleSmoothing   float32 `yaml:"scale_smoothing"`
	ScaleGain        float32 `yaml:"scale_gain"`
	MaxScaleBoost    float32 `yaml:"max_scale_boost"`
	RotationRate     float32 `yaml:"rotation_rate"`
	VelocityRotation float32 `yaml:"velocity_rotation"`
	TiltAmplitude    float32 `yaml:"tilt_amplitude"`
	TiltRate         float32 `yaml:"tilt_rate"`
}

// ColorConfig holds the base and terminal point colours as hex strings.
type ColorConfig struct {
	Base     string `yaml:"base"`
	Terminal string `yaml:"terminal"`
}

// ScrollConfig controls how scroll progress is driven.
type ScrollConfig struct {
	Initial   float64 `yaml:"initial"`
	WheelStep float64 `yaml:"wheel_step"` // progress per wheel notch
	KeyStep   float64 `yaml:"key_step"`   // progress per PageUp/PageDown
	Stdin     bool    `yaml:"stdin"`      // read progress values from stdin
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "morphfield",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			Borderless: false,
			VSync:      true,
			FPSLimit:   0,

			ScreenshotDir: "screenshots",
		},
		Render: RenderConfig{
			PointSize:      0.02,
			Opacity:        0.6,
			Additive:       true,
			Background:     "#0a0a12",
			FovDegrees:     75,
			CameraDistance: 5,
			Near:           0.1,
			Far:            1000,
		},
		Morph: MorphConfig{
			PointCount: 40000,
			Seed:       0,
			Ease:       "in_out_quad",
			Phases: []PhaseConfig{
				{Start: 0, End: 0.33, From: "sphere", To: "hypercube"},
				{Start: 0.33, End: 0.66, From: "hypercube", To: "silhouette"},
				{Start: 0.66, End: 1, From: "silhouette", To: "silhouette"},
			},
			SphereRadius: 2,
			Hypercube: HypercubeConfig{
				HalfWidth: 1.5,
				Scale:     2,
				Distance:  3,
				W:         0.5,
			},
			Silhouette: SilhouetteConfig{
				Path:   "",
				Jitter: 0.01,
			},
		},
		Pointer: PointerConfig{
			Smoothing:     0.05,
			VelocityScale: 10,
			VelocityDecay: 0.95,
		},
		Camera: CameraConfig{
			Sensitivity:      0.5,
			ScaleSmoothing:   0.1,
			ScaleGain:        0.5,
			MaxScaleBoost:    0.3,
			RotationRate:     0.001,
			VelocityRotation: 0.01,
			TiltAmplitude:    0.2,
			TiltRate:         0.0017,
		},
		Color: ColorConfig{
			Base:     "#6366f1",
			Terminal: "#f59e0b",
		},
		Scroll: ScrollConfig{
			Initial:   0,
			WheelStep: 0.02,
			KeyStep:   0.1,
			Stdin:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
