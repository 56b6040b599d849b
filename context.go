package forge

import (
	"fmt"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/forge/internal/clip"
	"github.com/gogpu/forge/internal/parallel"
	"github.com/gogpu/forge/internal/raster"
)

// Capability is a bitset of pipeline features toggled with Enable and
// Disable. Capabilities may be combined with |.
type Capability uint8

const (
	// Texture2D modulates fragments by the bound texture.
	Texture2D Capability = 1 << iota
	// DepthTest discards fragments that are not nearer than the stored depth.
	DepthTest
	// WireMode draws polygon edges instead of filling polygons.
	WireMode
	// CullFace discards polygons facing the side selected by SetCullFace.
	CullFace
	// Lighting replaces vertex colors with fixed-function lighting.
	Lighting

	allCapabilities = Texture2D | DepthTest | WireMode | CullFace | Lighting
)

// Face selects polygon sides for culling and materials.
type Face uint8

const (
	// Front is the side whose vertices are counter-clockwise in normalized
	// device coordinates.
	Front Face = iota + 1
	// Back is the clockwise side.
	Back
	// FrontAndBack selects both sides.
	FrontAndBack
)

func (f Face) valid() bool {
	return f >= Front && f <= FrontAndBack
}

// String returns a string representation of the face.
func (f Face) String() string {
	switch f {
	case Front:
		return "Front"
	case Back:
		return "Back"
	case FrontAndBack:
		return "FrontAndBack"
	default:
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
}

// Viewport is the window rectangle that normalized device coordinates map
// to. X and Y give the top-left corner; window y grows downwards.
type Viewport struct {
	X, Y, Width, Height int
}

// vertexState holds the attributes applied to subsequently emitted vertices.
type vertexState struct {
	color    Color
	normal   mgl32.Vec3
	texCoord mgl32.Vec2
}

// Context holds the complete rendering state of one pipeline instance.
//
// A Context must be used by one goroutine at a time. Methods never panic
// on bad input: a failing call records an ErrorCode that GetError reports,
// leaves the state unchanged and returns a zero value.
type Context struct {
	screen      *Framebuffer
	screenCodec Codec // codec of the screen's format

	caps       Capability
	matrixMode MatrixMode
	modelview  MatrixStack
	projection MatrixStack

	framebuffer *Framebuffer // nil draws to the screen
	texture     *Texture

	blend      BlendFunc // nil means BlendDisabled
	cullFace   Face
	viewport   Viewport
	clearColor Color

	err ErrorCode

	current   vertexState
	lights    [MaxLights]Light
	materials [2]Material // front, back

	rasterPos rasterPosition
	zoomX     float32
	zoomY     float32

	arrays clientArrays
	asm    assembler

	clipper  clip.Clipper
	window   []raster.Vertex
	rasterer raster.Rasterizer
	pool     *parallel.WorkerPool

	opts   contextOptions
	closed bool
}

// current is the process-wide current context used by CurrentContext.
var current atomic.Pointer[Context]

// NewContext creates a rendering context that draws into screen, a
// width x height buffer of the given pixel format. If screen is nil, the
// context allocates its own buffer.
//
// The context starts with identity matrices, a full-screen viewport, every
// capability disabled, blending disabled and back-face culling selected.
func NewContext(screen []byte, width, height int, format PixelFormat, opts ...ContextOption) (*Context, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	fb, err := wrapFramebuffer(screen, width, height, format, options.screenDepth)
	if err != nil {
		return nil, err
	}

	c := &Context{
		screen:      fb,
		screenCodec: fb.color.codec,
		matrixMode:  Modelview,
		modelview:   NewMatrixStack(),
		projection:  NewMatrixStack(),
		cullFace:    Back,
		viewport:    Viewport{Width: width, Height: height},
		current: vertexState{
			color:  White,
			normal: mgl32.Vec3{0, 0, 1},
		},
		zoomX: 1,
		zoomY: 1,
		opts:  options,
	}
	c.lights = defaultLights()
	c.materials = [2]Material{defaultMaterial(), defaultMaterial()}

	Logger().Info("forge: context created",
		"width", width, "height", height, "format", format,
		"depth", options.screenDepth, "parallelThreshold", options.parallelThreshold)
	return c, nil
}

// Close releases the context's worker pool and screen depth buffer. The
// caller's screen buffer is not touched. If c is the current context, no
// context is current afterwards. Drawing, resource and state commands on a
// closed context record InvalidOperation and change nothing; only the
// current vertex attributes still latch. Close is safe to call multiple
// times.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	c.screen.depth = nil
	c.framebuffer = nil
	c.texture = nil
	c.asm.recording = false
	current.CompareAndSwap(c, nil)

	Logger().Info("forge: context closed")
	return nil
}

// MakeCurrent makes c the current context returned by CurrentContext.
// Passing nil clears the current context. A closed context cannot be made
// current.
func MakeCurrent(c *Context) {
	if c != nil && c.closed {
		c.setError(InvalidOperation, "MakeCurrent", "context is closed")
		return
	}
	current.Store(c)
}

// CurrentContext returns the current context, or nil.
func CurrentContext() *Context {
	return current.Load()
}

// Width returns the screen width in pixels.
func (c *Context) Width() int { return c.screen.Width() }

// Height returns the screen height in pixels.
func (c *Context) Height() int { return c.screen.Height() }

// Screen returns the default framebuffer wrapping the screen buffer.
func (c *Context) Screen() *Framebuffer { return c.screen }

// =============================================================================
// Errors
// =============================================================================

// GetError returns the first error recorded since the previous call and
// resets the slot to NoError.
func (c *Context) GetError() ErrorCode {
	err := c.err
	c.err = NoError
	return err
}

// setError records code unless an earlier error is still unread.
func (c *Context) setError(code ErrorCode, op, msg string) {
	Logger().Debug("forge: "+op+": "+msg, "code", code.String())
	if c.err == NoError {
		c.err = code
	}
}

// recordErr records the ErrorCode carried by err.
func (c *Context) recordErr(op string, err error) {
	c.setError(codeOf(err), op, err.Error())
}

// checkOpen records InvalidOperation and returns false on a closed context.
func (c *Context) checkOpen(op string) bool {
	if c.closed {
		c.setError(InvalidOperation, op, "context is closed")
		return false
	}
	return true
}

// =============================================================================
// Capabilities
// =============================================================================

// Enable turns on the given capabilities.
func (c *Context) Enable(caps Capability) {
	if !c.checkOpen("Enable") {
		return
	}
	if caps == 0 || caps&^allCapabilities != 0 {
		c.setError(InvalidEnum, "Enable", fmt.Sprintf("unknown capability %#x", uint8(caps)))
		return
	}
	c.caps |= caps
}

// Disable turns off the given capabilities.
func (c *Context) Disable(caps Capability) {
	if !c.checkOpen("Disable") {
		return
	}
	if caps == 0 || caps&^allCapabilities != 0 {
		c.setError(InvalidEnum, "Disable", fmt.Sprintf("unknown capability %#x", uint8(caps)))
		return
	}
	c.caps &^= caps
}

// IsEnabled reports whether every capability in caps is enabled.
func (c *Context) IsEnabled(caps Capability) bool {
	if caps == 0 || caps&^allCapabilities != 0 {
		c.setError(InvalidEnum, "IsEnabled", fmt.Sprintf("unknown capability %#x", uint8(caps)))
		return false
	}
	return c.caps&caps == caps
}

// =============================================================================
// Configuration
// =============================================================================

// SetViewport sets the window rectangle that normalized device coordinates
// map to. Negative sizes record InvalidOperation.
func (c *Context) SetViewport(x, y, width, height int) {
	if !c.checkOpen("SetViewport") {
		return
	}
	if width < 0 || height < 0 {
		c.setError(InvalidOperation, "SetViewport", fmt.Sprintf("negative size %dx%d", width, height))
		return
	}
	c.viewport = Viewport{X: x, Y: y, Width: width, Height: height}
}

// Viewport returns the current viewport.
func (c *Context) Viewport() Viewport {
	return c.viewport
}

// SetBlendFunc installs the operator that combines fragments with the
// target. Nil installs BlendDisabled.
func (c *Context) SetBlendFunc(fn BlendFunc) {
	if !c.checkOpen("SetBlendFunc") {
		return
	}
	c.blend = fn
}

// BlendFunc returns the installed blend operator.
func (c *Context) BlendFunc() BlendFunc {
	if c.blend == nil {
		return BlendDisabled
	}
	return c.blend
}

// SetCullFace selects which polygon side CullFace discards.
func (c *Context) SetCullFace(f Face) {
	if !c.checkOpen("SetCullFace") {
		return
	}
	if !f.valid() {
		c.setError(InvalidEnum, "SetCullFace", "unknown face "+f.String())
		return
	}
	c.cullFace = f
}

// CullFace returns the side discarded when culling is enabled.
func (c *Context) CullFace() Face {
	return c.cullFace
}

// SetScreenCodec replaces the codec used to read and write screen pixels,
// for example to draw into a buffer with a different channel order. The
// codec must use the pixel size of the screen format. Nil restores the
// format's codec.
func (c *Context) SetScreenCodec(codec Codec) {
	if !c.checkOpen("SetScreenCodec") {
		return
	}
	if codec == nil {
		c.screen.color.codec = c.screenCodec
		return
	}
	if codec.BytesPerPixel() != c.screenCodec.BytesPerPixel() {
		c.setError(InvalidOperation, "SetScreenCodec", fmt.Sprintf(
			"codec uses %d bytes per pixel, screen uses %d",
			codec.BytesPerPixel(), c.screenCodec.BytesPerPixel()))
		return
	}
	c.screen.color.codec = codec
}

// target returns the framebuffer drawing goes to.
func (c *Context) target() *Framebuffer {
	if c.framebuffer != nil {
		return c.framebuffer
	}
	return c.screen
}

// rasterizer returns the rasterizer clipped to bounds, starting the worker
// pool on first use.
func (c *Context) rasterizer(bounds raster.Rect) *raster.Rasterizer {
	r := &c.rasterer
	r.Bounds = bounds
	r.Threshold = c.opts.parallelThreshold
	if r.Threshold > 0 && c.opts.workers != 1 && c.pool == nil {
		c.pool = parallel.NewWorkerPool(c.opts.workers)
		if c.pool.Workers() < 2 {
			Logger().Warn("forge: single CPU, parallel rasterization disabled")
			c.pool.Close()
			c.pool = nil
			c.opts.parallelThreshold = 0
			r.Threshold = 0
		} else {
			Logger().Debug("forge: worker pool started", "workers", c.pool.Workers())
		}
	}
	r.Pool = c.pool
	return r
}
