// Package pointer turns raw pointer positions into a smoothed position and
// an inertial velocity.
//
// All coefficients are applied once per tick and assume a tick rate of about
// 60 Hz; running the loop faster makes the smoothing and decay faster too.
package pointer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Config holds the tracker coefficients.
type Config struct {
	Smoothing     float32 // low-pass factor per tick, (0,1]
	VelocityScale float32 // multiplier on the per-event position delta
	Decay         float32 // velocity multiplier per tick, [0,1)
}

// DefaultConfig returns the default coefficients.
func DefaultConfig() Config {
	return Config{
		Smoothing:     0.05,
		VelocityScale: 10,
		Decay:         0.95,
	}
}

// Tracker holds pointer state in normalised device coordinates: x to the
// right, y up, both in [-1,1].
type Tracker struct {
	cfg Config

	width, height float32

	target   mgl32.Vec2
	smoothed mgl32.Vec2
	velocity mgl32.Vec2
}

// New creates a tracker for a viewport of the given size.
func New(cfg Config, width, height int) *Tracker {
	t := &Tracker{cfg: cfg}
	t.Resize(width, height)
	return t
}

// Resize sets the viewport used to normalise pixel coordinates.
func (t *Tracker) Resize(width, height int) {
	t.width = float32(max(width, 1))
	t.height = float32(max(height, 1))
}

// Normalize maps pixel coordinates to [-1,1] with y pointing up.
func (t *Tracker) Normalize(px, py float32) mgl32.Vec2 {
	return mgl32.Vec2{
		clamp(px/t.width*2-1, -1, 1),
		clamp(-(py/t.height*2 - 1), -1, 1),
	}
}

// Move records a pointer event at pixel coordinates (px, py). The velocity
// is the change since the previous event times VelocityScale.
func (t *Tracker) Move(px, py float32) {
	next := t.Normalize(px, py)
	t.velocity = next.Sub(t.target).Mul(t.cfg.VelocityScale)
	t.target = next
}

// Step advances smoothing and velocity decay by one tick.
func (t *Tracker) Step() {
	t.smoothed = t.smoothed.Add(t.target.Sub(t.smoothed).Mul(t.cfg.Smoothing))
	t.velocity = t.velocity.Mul(t.cfg.Decay)
}

// Target returns the latest normalised pointer position.
func (t *Tracker) Target() mgl32.Vec2 { return t.target }

// Smoothed returns the low-pass filtered position.
func (t *Tracker) Smoothed() mgl32.Vec2 { return t.smoothed }

// Velocity returns the current velocity estimate.
func (t *Tracker) Velocity() mgl32.Vec2 { return t.velocity }

// Speed returns the velocity magnitude.
func (t *Tracker) Speed() float32 {
	return t.velocity.Len()
}

// TicksToSettle returns how many ticks of pure decay bring speed v0 below
// eps: the smallest t with v0*d^t < eps.
func TicksToSettle(v0, decay, eps float32) int {
	if v0 < eps {
		return 0
	}
	if decay <= 0 {
		return 1
	}
	t := math.Log(float64(eps/v0)) / math.Log(float64(decay))
	return int(math.Floor(t)) + 1
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
