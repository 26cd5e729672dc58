package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/morphfield/internal/geometry"
)

// DrawState is everything a surface needs to draw the uploaded cloud.
type DrawState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Model      mgl32.Mat4
	Color      colorful.Color
	Points     int
}

// MVP returns Projection * View * Model.
func (d DrawState) MVP() mgl32.Mat4 {
	return d.Projection.Mul4(d.View).Mul4(d.Model)
}

// Surface is a render target owning a point buffer.
type Surface interface {
	// Resize updates the viewport.
	Resize(width, height int)

	// Upload copies positions into the surface buffer and marks it dirty.
	// The slice is reused by the caller after Upload returns.
	Upload(positions geometry.PointCloud)

	// Draw renders the last uploaded buffer.
	Draw(d DrawState) error

	// Close releases every resource held by the surface.
	Close()
}
