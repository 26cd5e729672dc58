// Package scene drives the per-frame update of the morphing point cloud.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/engine/camera"
	"github.com/Faultbox/morphfield/internal/engine/pointer"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/internal/morph"
)

// Config contains loop configuration.
type Config struct {
	Width   int
	Height  int
	Pointer pointer.Config
	Camera  camera.Config
}

// Loop is the single frame driver of one mounted visualisation. It owns the
// pointer tracker, the camera rig and the surface; none of them may be used
// from another goroutine. Only the ScrollSlot is shared.
type Loop struct {
	config Config

	morph   *morph.Controller
	pointer *pointer.Tracker
	rig     *camera.Rig
	surface Surface
	scroll  *ScrollSlot

	frame  morph.Frame
	frames uint64
	closed bool

	log *zap.Logger
}

// New creates a loop. The loop takes ownership of surface and closes it in
// Close.
func New(cfg Config, controller *morph.Controller, surface Surface, scroll *ScrollSlot) *Loop {
	l := &Loop{
		config:  cfg,
		morph:   controller,
		pointer: pointer.New(cfg.Pointer, cfg.Width, cfg.Height),
		rig:     camera.New(cfg.Camera, cfg.Width, cfg.Height),
		surface: surface,
		scroll:  scroll,
		log:     logger.Named("scene"),
	}
	surface.Resize(cfg.Width, cfg.Height)

	l.log.Debug("loop created",
		zap.Int("points", controller.Len()),
		zap.Int("phases", len(controller.Phases())),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return l
}

// Tick runs one frame. After Close it returns immediately without touching
// any resource.
func (l *Loop) Tick() error {
	if l.closed {
		return nil
	}

	// 1. Pointer smoothing and velocity decay
	l.pointer.Step()
	speed := l.pointer.Speed()

	// 2. Camera position and orientation
	l.rig.UpdateCamera(l.pointer.Smoothed())

	// 3. Cloud scale
	l.rig.UpdateScale(speed)

	// 4. Blended geometry and colour
	l.frame = l.morph.Frame(float32(l.scroll.Load()))

	// 5. Buffer upload
	l.surface.Upload(l.frame.Positions)

	// 6. Rotation, damped into the terminal phase
	l.rig.UpdateRotation(speed, l.frame.Damping, l.frame.Terminal)

	// 7. Draw
	st := l.rig.State()
	if err := l.surface.Draw(DrawState{
		View:       st.View,
		Projection: st.Projection,
		Model:      l.rig.Model(),
		Color:      l.frame.Color,
		Points:     l.morph.Len(),
	}); err != nil {
		return fmt.Errorf("draw frame %d: %w", l.frames, err)
	}

	l.frames++
	return nil
}

// PointerMove records a pointer event in viewport pixels.
func (l *Loop) PointerMove(px, py float32) {
	if l.closed {
		return
	}
	l.pointer.Move(px, py)
}

// Resize updates the viewport of the tracker, the rig and the surface
// without resetting any accumulated state.
func (l *Loop) Resize(width, height int) {
	if l.closed {
		return
	}
	l.config.Width = width
	l.config.Height = height
	l.pointer.Resize(width, height)
	l.rig.SetViewport(width, height)
	l.surface.Resize(width, height)
	l.log.Debug("loop resized", zap.Int("width", width), zap.Int("height", height))
}

// Close releases the surface. It is safe to call more than once and before
// the first Tick.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.surface.Close()
	l.log.Debug("loop closed", zap.Uint64("frames", l.frames))
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool { return l.closed }

// Frames returns the number of frames drawn.
func (l *Loop) Frames() uint64 { return l.frames }

// Frame returns the morph output of the last tick.
func (l *Loop) Frame() morph.Frame { return l.frame }

// Camera returns the rig state after the last tick.
func (l *Loop) Camera() camera.State { return l.rig.State() }

// Pointer returns the pointer tracker.
func (l *Loop) Pointer() *pointer.Tracker { return l.pointer }
