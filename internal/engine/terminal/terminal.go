// Package terminal draws the point cloud into a tcell screen.
//
// Each character cell holds two vertically stacked pixels rendered with the
// upper half block: the foreground colours the top pixel and the background
// the bottom one. Pixel brightness follows the number of points that land
// on it.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/morphfield/internal/engine/scene"
	"github.com/Faultbox/morphfield/internal/geometry"
)

const halfBlock = '▀'

// Surface is a scene.Surface rendering to a terminal. The pixel grid is
// width x height where height is twice the number of cell rows.
type Surface struct {
	screen     tcell.Screen
	background colorful.Color

	width, height int

	points  geometry.PointCloud // staging copy of the last upload
	count   int
	density []uint32 // per pixel, reused across frames

	closed bool
}

var _ scene.Surface = (*Surface)(nil)

// New creates a surface for up to pointCount points. The surface takes
// ownership of screen and finalises it in Close.
func New(screen tcell.Screen, pointCount int, background colorful.Color) *Surface {
	s := &Surface{
		screen:     screen,
		background: background,
		points:     geometry.NewPointCloud(pointCount),
	}
	cols, rows := screen.Size()
	s.Resize(cols, rows*2)
	return s
}

// PixelSize converts a terminal size in cells to the pixel grid size.
func PixelSize(cols, rows int) (int, int) {
	return cols, rows * 2
}

// CellToPixel maps the centre of a cell to pixel coordinates.
func CellToPixel(x, y int) (float32, float32) {
	return float32(x) + 0.5, float32(y)*2 + 1
}

// Resize sets the pixel grid size. The density grid only grows.
func (s *Surface) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
	if n := s.width * s.height; n > cap(s.density) {
		s.density = make([]uint32, n)
	}
	s.density = s.density[:s.width*s.height]
}

// Upload copies positions into the staging buffer. The buffer was sized
// at creation; a larger cloud is a programming error.
func (s *Surface) Upload(positions geometry.PointCloud) {
	if capacity := len(s.points) / 3; positions.Len() > capacity {
		panic(fmt.Sprintf("terminal: upload of %d points exceeds buffer of %d", positions.Len(), capacity))
	}
	s.count = copy(s.points, positions) / 3
}

// Draw projects the uploaded points, accumulates per-pixel density and
// paints the screen.
func (s *Surface) Draw(d scene.DrawState) error {
	if s.closed || s.width == 0 || s.height == 0 {
		return nil
	}

	clear(s.density)
	mvp := d.MVP()
	w, h := float32(s.width), float32(s.height)

	var peak uint32
	n := min(s.count, d.Points)
	for i := 0; i < n; i++ {
		x, y, z := s.points.At(i)
		clip := mvp.Mul4x1(mgl32.Vec4{x, y, z, 1})
		if clip.W() <= 0 {
			continue
		}
		ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
		px := int(math.Floor(float64((ndcX + 1) * 0.5 * w)))
		py := int(math.Floor(float64((1 - ndcY) * 0.5 * h)))
		if px < 0 || px >= s.width || py < 0 || py >= s.height {
			continue
		}
		idx := py*s.width + px
		s.density[idx]++
		peak = max(peak, s.density[idx])
	}

	scale := math.Log1p(float64(peak))
	for row := 0; row*2 < s.height; row++ {
		for col := 0; col < s.width; col++ {
			top := s.shade(d.Color, s.density[row*2*s.width+col], scale)
			bottom := s.shade(d.Color, 0, scale)
			if row*2+1 < s.height {
				bottom = s.shade(d.Color, s.density[(row*2+1)*s.width+col], scale)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}

	s.screen.Show()
	return nil
}

// shade maps a pixel density onto the background -> point colour ramp.
func (s *Surface) shade(c colorful.Color, density uint32, scale float64) tcell.Color {
	t := 0.0
	if density > 0 && scale > 0 {
		// Any hit is visible; brightness grows logarithmically.
		t = 0.35 + 0.65*math.Log1p(float64(density))/scale
	}
	r, g, b := s.background.BlendRgb(c, min(t, 1)).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Close finalises the screen. Safe to call more than once.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.screen.Fini()
}
