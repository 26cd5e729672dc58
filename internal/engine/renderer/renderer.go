// Package renderer draws the point cloud with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/engine/framebuffer"
	"github.com/Faultbox/morphfield/internal/engine/renderer/shaders"
	"github.com/Faultbox/morphfield/internal/engine/scene"
	"github.com/Faultbox/morphfield/internal/engine/shader"
	"github.com/Faultbox/morphfield/internal/geometry"
	"github.com/Faultbox/morphfield/internal/logger"
)

// Uniform names used by the point shaders.
const (
	uniformMVP            = "uMVP"
	uniformPointSize      = "uPointSize"
	uniformViewportHeight = "uViewportHeight"
	uniformColor          = "uColor"
	uniformOpacity        = "uOpacity"
	uniformFrame          = "uFrame"
)

// MaxPixelRatio caps the render resolution per window unit. Displays with a
// higher ratio get a frame rendered at this ratio and stretched to fit.
const MaxPixelRatio = 2

// CapPixelRatio returns the ratio the cloud is rendered at for a display
// ratio. Non-positive or NaN ratios count as 1.
func CapPixelRatio(display float32) float32 {
	if !(display > 0) {
		return 1
	}
	return min(display, MaxPixelRatio)
}

func scaledSize(width, height int, ratio float32) (int32, int32) {
	return int32(float32(width) * ratio), int32(float32(height) * ratio)
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	PointCount int
	PointSize  float32 // world units, attenuated with distance
	Opacity    float32
	Additive   bool
	Background colorful.Color
}

// Renderer is a scene.Surface backed by one dynamic vertex buffer.
type Renderer struct {
	config Config

	program *shader.Program
	vao     uint32
	vbo     uint32

	// Points written by the last Upload
	uploaded int

	// Framebuffer pixels per window unit, and the capped ratio the cloud
	// is rendered at
	displayRatio float32
	pixelRatio   float32

	// Offscreen target and blit pass, only while pixelRatio < displayRatio
	offscreen *framebuffer.Framebuffer
	blit      *shader.Program
	blitVAO   uint32

	log *zap.Logger
}

var _ scene.Surface = (*Renderer)(nil)

// New creates the GPU resources for a cloud of cfg.PointCount points.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
// Anything acquired before a failure is released before New returns.
func New(cfg Config) (*Renderer, error) {
	if cfg.PointCount <= 0 {
		return nil, fmt.Errorf("renderer: point count must be positive, got %d", cfg.PointCount)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config:       cfg,
		displayRatio: 1,
		pixelRatio:   1,
		log:          logger.Named("renderer"),
	}
	ready := false
	defer func() {
		if !ready {
			r.Close()
		}
	}()

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.NewProgram(shaders.PointsVertexShader, shaders.PointsFragmentShader,
		uniformMVP, uniformPointSize, uniformViewportHeight, uniformColor, uniformOpacity)
	if err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}

	r.createBuffer()
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, fmt.Errorf("creating point buffer: gl error 0x%x", e)
	}

	r.setupState()
	r.Resize(cfg.Width, cfg.Height)
	ready = true
	return r, nil
}

// createBuffer allocates the VAO and a VBO sized for the full cloud.
func (r *Renderer) createBuffer() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, r.config.PointCount*3*4, nil, gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("point buffer created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
		zap.Int("points", r.config.PointCount),
	)
}

func (r *Renderer) setupState() {
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	if r.config.Additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		gl.Disable(gl.DEPTH_TEST)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	}
	bg := r.config.Background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)
}

// SetPixelRatio sets the framebuffer pixels per window unit. Above
// MaxPixelRatio the cloud is drawn offscreen at the capped ratio and
// stretched onto the window. Sizes passed to Resize are in window units.
func (r *Renderer) SetPixelRatio(display float32) error {
	if !(display > 0) {
		display = 1
	}
	r.displayRatio = display
	r.pixelRatio = CapPixelRatio(display)

	if r.pixelRatio < r.displayRatio {
		if err := r.ensureOffscreen(); err != nil {
			r.pixelRatio = r.displayRatio
			return err
		}
	} else {
		r.releaseOffscreen()
	}

	r.Resize(r.config.Width, r.config.Height)
	r.log.Debug("pixel ratio set",
		zap.Float32("display", r.displayRatio),
		zap.Float32("render", r.pixelRatio),
		zap.Bool("offscreen", r.offscreen != nil),
	)
	return nil
}

func (r *Renderer) ensureOffscreen() error {
	if r.blit == nil {
		var err error
		r.blit, err = shader.NewProgram(shaders.BlitVertexShader, shaders.BlitFragmentShader, uniformFrame)
		if err != nil {
			return fmt.Errorf("blit shader: %w", err)
		}
		gl.GenVertexArrays(1, &r.blitVAO)
	}
	if r.offscreen == nil {
		w, h := r.renderSize()
		fb, err := framebuffer.New(w, h)
		if err != nil {
			return err
		}
		r.offscreen = fb
	}
	return nil
}

func (r *Renderer) releaseOffscreen() {
	if r.offscreen != nil {
		r.offscreen.Destroy()
		r.offscreen = nil
	}
	if r.blit != nil {
		r.blit.Delete()
		r.blit = nil
	}
	if r.blitVAO != 0 {
		gl.DeleteVertexArrays(1, &r.blitVAO)
		r.blitVAO = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	if r.offscreen != nil {
		r.offscreen.Resize(r.renderSize())
	}
	w, h := r.displaySize()
	gl.Viewport(0, 0, w, h)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int32("fb_width", w),
		zap.Int32("fb_height", h),
	)
}

// displaySize is the window framebuffer size in pixels.
func (r *Renderer) displaySize() (int32, int32) {
	return scaledSize(r.config.Width, r.config.Height, r.displayRatio)
}

// renderSize is the size the cloud is rasterised at.
func (r *Renderer) renderSize() (int32, int32) {
	return scaledSize(r.config.Width, r.config.Height, r.pixelRatio)
}

// Upload copies positions into the vertex buffer. The buffer was sized for
// PointCount points at creation; a larger cloud is a programming error.
func (r *Renderer) Upload(positions geometry.PointCloud) {
	if positions.Len() > r.config.PointCount {
		panic(fmt.Sprintf("renderer: upload of %d points exceeds buffer of %d", positions.Len(), r.config.PointCount))
	}
	if len(positions) == 0 {
		r.uploaded = 0
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*4, unsafe.Pointer(&positions[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.uploaded = positions.Len()
}

// Draw clears the frame and draws the uploaded points, through the
// offscreen target when the pixel ratio is capped.
func (r *Renderer) Draw(d scene.DrawState) error {
	if r.offscreen != nil {
		r.offscreen.Bind()
	} else {
		w, h := r.displaySize()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, w, h)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.uploaded > 0 {
		mvp := d.MVP()
		_, renderHeight := r.renderSize()

		r.program.Use()
		gl.UniformMatrix4fv(r.program.Uniform(uniformMVP), 1, false, &mvp[0])
		gl.Uniform1f(r.program.Uniform(uniformPointSize), r.config.PointSize)
		gl.Uniform1f(r.program.Uniform(uniformViewportHeight), float32(renderHeight))
		gl.Uniform3f(r.program.Uniform(uniformColor), float32(d.Color.R), float32(d.Color.G), float32(d.Color.B))
		gl.Uniform1f(r.program.Uniform(uniformOpacity), r.config.Opacity)

		gl.BindVertexArray(r.vao)
		gl.DrawArrays(gl.POINTS, 0, int32(min(r.uploaded, d.Points)))
		gl.BindVertexArray(0)
	}

	if r.offscreen != nil {
		r.present()
	}

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("draw points: gl error 0x%x", e)
	}
	return nil
}

// present stretches the offscreen frame over the window.
func (r *Renderer) present() {
	w, h := r.displaySize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, w, h)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	r.blit.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.offscreen.ColorTexture())
	gl.Uniform1i(r.blit.Uniform(uniformFrame), 0)

	gl.BindVertexArray(r.blitVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	r.setupState()
}

// ReadPixels reads back the current frame as bottom-up RGBA bytes at the
// render resolution. Call it after Draw and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	if r.offscreen != nil {
		w, h := r.offscreen.Size()
		return r.offscreen.ReadPixels(), int(w), int(h)
	}

	w, h := r.displaySize()
	pixels := make([]byte, int(w)*int(h)*4)
	if len(pixels) == 0 {
		return pixels, 0, 0
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, int(w), int(h)
}

// Close releases the buffer, the vertex array and the program. Safe to
// call more than once.
func (r *Renderer) Close() {
	if r.vao == 0 && r.vbo == 0 && r.program == nil && r.offscreen == nil && r.blit == nil {
		return
	}
	r.log.Info("closing renderer")
	r.releaseOffscreen()
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
