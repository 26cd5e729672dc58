package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUpdateCameraLooksAtOrigin(t *testing.T) {
	r := New(DefaultConfig(), 800, 600)
	r.UpdateCamera(mgl32.Vec2{1, -1})

	st := r.State()
	want := mgl32.Vec3{0.5, -0.5, 5}
	if !st.Position.ApproxEqual(want) {
		t.Errorf("position = %v, want %v", st.Position, want)
	}

	// The origin projects onto the view axis.
	origin := st.View.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(origin.X())) > 1e-5 || math.Abs(float64(origin.Y())) > 1e-5 {
		t.Errorf("origin in view space = %v, want on the -z axis", origin)
	}
	if origin.Z() >= 0 {
		t.Errorf("origin should be in front of the camera, got z=%f", origin.Z())
	}
}

func TestUpdateCameraNotAccumulated(t *testing.T) {
	r := New(DefaultConfig(), 800, 600)
	for i := 0; i < 10; i++ {
		r.UpdateCamera(mgl32.Vec2{0.2, 0.4})
	}
	if !r.State().Position.ApproxEqual(mgl32.Vec3{0.1, 0.2, 5}) {
		t.Errorf("position drifted: %v", r.State().Position)
	}
}

func TestScaleBoostBounded(t *testing.T) {
	cfg := DefaultConfig()
	r := New(cfg, 800, 600)

	for i := 0; i < 500; i++ {
		r.UpdateScale(100)
	}
	if got := r.State().Scale; math.Abs(float64(got-(1+cfg.MaxScaleBoost))) > 1e-4 {
		t.Errorf("scale under fast movement = %f, want %f", got, 1+cfg.MaxScaleBoost)
	}

	for i := 0; i < 500; i++ {
		r.UpdateScale(0)
	}
	if got := r.State().Scale; math.Abs(float64(got-1)) > 1e-4 {
		t.Errorf("scale at rest = %f, want 1", got)
	}
}

func TestScaleSmoothed(t *testing.T) {
	cfg := DefaultConfig()
	r := New(cfg, 800, 600)
	r.UpdateScale(0.2) // target 1.1

	want := 1 + 0.1*cfg.ScaleSmoothing
	if got := r.State().Scale; math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("scale after one tick = %f, want %f", got, want)
	}
}

func TestRotationAccumulates(t *testing.T) {
	cfg := DefaultConfig()
	r := New(cfg, 800, 600)

	for i := 0; i < 100; i++ {
		r.UpdateRotation(0, 1, false)
	}
	want := 100 * cfg.RotationRate
	if got := r.State().Rotation.Y(); math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("yaw = %f, want %f", got, want)
	}

	r.UpdateRotation(1, 1, false)
	want += cfg.RotationRate + cfg.VelocityRotation
	if got := r.State().Rotation.Y(); math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("yaw with velocity = %f, want %f", got, want)
	}
}

func TestRotationDampsToZeroWithoutSnap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationRate = 0.05
	r := New(cfg, 800, 600)

	// Spin long enough to wrap several times.
	for i := 0; i < 1000; i++ {
		r.UpdateRotation(0, 1, false)
	}

	prev := r.State().Rotation
	for i := 1; i <= 200; i++ {
		damping := 1 - float32(i)/200
		r.UpdateRotation(0, damping, false)
		cur := r.State().Rotation
		if d := math.Abs(float64(cur.Y() - prev.Y())); d > 0.1 {
			t.Fatalf("yaw jumped by %f at damping %f", d, damping)
		}
		if d := math.Abs(float64(cur.X() - prev.X())); d > 0.1 {
			t.Fatalf("pitch jumped by %f at damping %f", d, damping)
		}
		prev = cur
	}

	if prev.X() != 0 || prev.Y() != 0 {
		t.Errorf("rotation at zero damping = %v, want (0, 0)", prev)
	}
}

func TestRotationLocked(t *testing.T) {
	r := New(DefaultConfig(), 800, 600)
	for i := 0; i < 50; i++ {
		r.UpdateRotation(5, 1, false)
	}

	for i := 0; i < 50; i++ {
		r.UpdateRotation(float32(i), 1, true)
		st := r.State()
		if !st.Locked || st.Rotation != (mgl32.Vec2{}) {
			t.Fatalf("locked tick %d: rotation %v locked=%v", i, st.Rotation, st.Locked)
		}
	}

	// Identity rotation: model is pure scale.
	m := r.Model()
	s := r.State().Scale
	if !m.ApproxEqual(mgl32.Scale3D(s, s, s)) {
		t.Errorf("locked model = %v, want uniform scale %f", m, s)
	}
}

func TestSetViewportKeepsState(t *testing.T) {
	r := New(DefaultConfig(), 800, 600)
	for i := 0; i < 30; i++ {
		r.UpdateScale(1)
		r.UpdateRotation(1, 1, false)
	}
	before := r.State()

	r.SetViewport(1920, 1080)
	after := r.State()
	if after.Scale != before.Scale || after.Rotation != before.Rotation {
		t.Error("viewport change altered accumulated state")
	}
	if after.Projection == before.Projection {
		t.Error("expected projection to change with aspect ratio")
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{1, 1},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5*math.Pi + 0.5, -math.Pi + 0.5},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("wrapAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
