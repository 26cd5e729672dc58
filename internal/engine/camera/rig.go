// Package camera derives the camera and the cloud transform from pointer
// state.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Config holds the rig coefficients. Per-tick rates assume ~60 Hz.
type Config struct {
	// Camera placement
	Sensitivity float32 // smoothed pointer -> camera x/y offset
	Distance    float32 // camera z
	FovDegrees  float32
	Near, Far   float32

	// Cloud scale
	ScaleSmoothing float32 // low-pass factor per tick
	ScaleGain      float32 // speed -> scale boost
	MaxScaleBoost  float32

	// Cloud rotation, radians per tick
	RotationRate     float32
	VelocityRotation float32 // extra yaw per unit of pointer speed
	TiltAmplitude    float32 // x-axis wobble amplitude, radians
	TiltRate         float32 // wobble phase advance per tick
}

// DefaultConfig returns the default rig coefficients.
func DefaultConfig() Config {
	return Config{
		Sensitivity:      0.5,
		Distance:         5,
		FovDegrees:       75,
		Near:             0.1,
		Far:              1000,
		ScaleSmoothing:   0.1,
		ScaleGain:        0.5,
		MaxScaleBoost:    0.3,
		RotationRate:     0.001,
		VelocityRotation: 0.01,
		TiltAmplitude:    0.2,
		TiltRate:         0.0017,
	}
}

// State is a snapshot of the rig after the current tick.
type State struct {
	Position   mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Scale      float32
	Rotation   mgl32.Vec2 // (pitch, yaw) applied to the cloud
	Locked     bool
}

// Rig owns camera and cloud transform state for one mounted scene.
type Rig struct {
	cfg Config

	position   mgl32.Vec3
	view       mgl32.Mat4
	projection mgl32.Mat4

	scale float32

	yaw      float32 // free-running accumulator
	ticks    uint64
	rotation mgl32.Vec2
	locked   bool
}

// New creates a rig for a viewport of the given size.
func New(cfg Config, width, height int) *Rig {
	r := &Rig{
		cfg:   cfg,
		scale: 1,
	}
	r.SetViewport(width, height)
	r.UpdateCamera(mgl32.Vec2{})
	return r
}

// SetViewport recomputes the projection. Accumulated state is untouched.
func (r *Rig) SetViewport(width, height int) {
	aspect := float32(max(width, 1)) / float32(max(height, 1))
	r.projection = mgl32.Perspective(mgl32.DegToRad(r.cfg.FovDegrees), aspect, r.cfg.Near, r.cfg.Far)
}

// UpdateCamera places the camera from the smoothed pointer position and
// re-aims it at the origin.
func (r *Rig) UpdateCamera(smoothed mgl32.Vec2) {
	r.position = mgl32.Vec3{
		smoothed.X() * r.cfg.Sensitivity,
		smoothed.Y() * r.cfg.Sensitivity,
		r.cfg.Distance,
	}
	r.view = mgl32.LookAtV(r.position, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// UpdateScale eases the cloud scale toward 1 + min(speed*gain, maxBoost).
func (r *Rig) UpdateScale(speed float32) {
	target := 1 + min(speed*r.cfg.ScaleGain, r.cfg.MaxScaleBoost)
	r.scale += (target - r.scale) * r.cfg.ScaleSmoothing
}

// UpdateRotation advances the cloud rotation by one tick.
//
// damping in [0,1] scales both the yaw increment and the published
// rotation. While damping is below 1 the accumulator is clamped to
// [-pi, pi] instead of wrapped, so the published angle shrinks
// continuously to zero. locked pins the rotation to identity.
func (r *Rig) UpdateRotation(speed, damping float32, locked bool) {
	r.ticks++
	r.locked = locked
	if locked {
		r.rotation = mgl32.Vec2{}
		return
	}

	damping = min(max(damping, 0), 1)
	r.yaw += (r.cfg.RotationRate + speed*r.cfg.VelocityRotation) * damping
	if damping >= 1 {
		r.yaw = wrapAngle(r.yaw)
	} else {
		r.yaw = min(max(r.yaw, -math.Pi), math.Pi)
	}

	tilt := float32(math.Sin(float64(r.ticks)*float64(r.cfg.TiltRate))) * r.cfg.TiltAmplitude
	r.rotation = mgl32.Vec2{tilt * damping, r.yaw * damping}
}

// Model returns the cloud transform: yaw, then pitch, then uniform scale.
func (r *Rig) Model() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(r.rotation.Y()).
		Mul4(mgl32.HomogRotate3DX(r.rotation.X())).
		Mul4(mgl32.Scale3D(r.scale, r.scale, r.scale))
}

// State returns the current rig snapshot.
func (r *Rig) State() State {
	return State{
		Position:   r.position,
		View:       r.view,
		Projection: r.projection,
		Scale:      r.scale,
		Rotation:   r.rotation,
		Locked:     r.locked,
	}
}

// wrapAngle maps a into (-pi, pi].
func wrapAngle(a float32) float32 {
	w := float32(math.Remainder(float64(a), 2*math.Pi))
	if w <= -math.Pi {
		w += 2 * math.Pi
	}
	return w
}
