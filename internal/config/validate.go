package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Validate reports every out-of-range setting. Phase table shape and target
// names are checked later, when the morph controller is built.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.FPSLimit >= 0, "window: fps_limit %d must not be negative", c.Window.FPSLimit)

	check(c.Render.PointSize > 0, "render: point_size %g must be positive", c.Render.PointSize)
	check(c.Render.Opacity > 0 && c.Render.Opacity <= 1, "render: opacity %g must be in (0,1]", c.Render.Opacity)
	check(c.Render.FovDegrees > 0 && c.Render.FovDegrees < 180, "render: fov_degrees %g must be in (0,180)", c.Render.FovDegrees)
	check(c.Render.Near > 0 && c.Render.Far > c.Render.Near, "render: need 0 < near < far, got %g / %g", c.Render.Near, c.Render.Far)
	check(c.Render.CameraDistance > 0, "render: camera_distance %g must be positive", c.Render.CameraDistance)

	check(c.Morph.PointCount > 0, "morph: point_count %d must be positive", c.Morph.PointCount)
	check(len(c.Morph.Phases) > 0, "morph: no phases")
	check(c.Morph.SphereRadius > 0, "morph: sphere_radius %g must be positive", c.Morph.SphereRadius)
	check(c.Morph.Silhouette.Jitter >= 0, "morph: silhouette jitter %g must not be negative", c.Morph.Silhouette.Jitter)

	check(inUnit(c.Pointer.Smoothing), "pointer: smoothing %g must be in (0,1]", c.Pointer.Smoothing)
	check(c.Pointer.VelocityDecay >= 0 && c.Pointer.VelocityDecay < 1, "pointer: velocity_decay %g must be in [0,1)", c.Pointer.VelocityDecay)
	check(c.Pointer.VelocityScale >= 0, "pointer: velocity_scale %g must not be negative", c.Pointer.VelocityScale)

	check(inUnit(c.Camera.ScaleSmoothing), "camera: scale_smoothing %g must be in (0,1]", c.Camera.ScaleSmoothing)
	check(c.Camera.MaxScaleBoost >= 0, "camera: max_scale_boost %g must not be negative", c.Camera.MaxScaleBoost)

	check(c.Scroll.Initial >= 0 && c.Scroll.Initial <= 1, "scroll: initial %g must be in [0,1]", c.Scroll.Initial)
	check(c.Scroll.WheelStep > 0, "scroll: wheel_step %g must be positive", c.Scroll.WheelStep)
	check(c.Scroll.KeyStep > 0, "scroll: key_step %g must be positive", c.Scroll.KeyStep)

	for name, hex := range map[string]string{
		"color.base":        c.Color.Base,
		"color.terminal":    c.Color.Terminal,
		"render.background": c.Render.Background,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a #rrggbb colour", name, hex))
		}
	}

	return errors.Join(errs...)
}

func inUnit(v float32) bool {
	return v > 0 && v <= 1
}
