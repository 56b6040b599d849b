package forge

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawMode selects how recorded vertices are grouped into primitives.
type DrawMode uint8

const (
	// Points draws every vertex as a point.
	Points DrawMode = iota + 1
	// Lines draws each pair of vertices as a segment.
	Lines
	// Triangles draws each group of three vertices as a triangle.
	Triangles
	// Quads draws each group of four vertices as a convex quadrilateral.
	Quads
)

// arity returns the number of vertices per primitive, or 0 for an unknown
// mode.
func (m DrawMode) arity() int {
	switch m {
	case Points:
		return 1
	case Lines:
		return 2
	case Triangles:
		return 3
	case Quads:
		return 4
	default:
		return 0
	}
}

// String returns a string representation of the draw mode.
func (m DrawMode) String() string {
	switch m {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case Triangles:
		return "Triangles"
	case Quads:
		return "Quads"
	default:
		return fmt.Sprintf("DrawMode(%d)", uint8(m))
	}
}

// vertex is an object-space vertex with the attributes current when it
// was emitted.
type vertex struct {
	position mgl32.Vec4
	vertexState
}

// assembler records vertices between Begin and End.
type assembler struct {
	recording bool
	mode      DrawMode
	vertices  []vertex
}

// Begin starts recording vertices for primitives of the given mode.
// Calling Begin while recording records InvalidOperation.
func (c *Context) Begin(mode DrawMode) {
	if !c.checkOpen("Begin") {
		return
	}
	if c.asm.recording {
		c.setError(InvalidOperation, "Begin", "already recording "+c.asm.mode.String())
		return
	}
	if mode.arity() == 0 {
		c.setError(InvalidEnum, "Begin", "unknown mode "+mode.String())
		return
	}
	c.asm.recording = true
	c.asm.mode = mode
	c.asm.vertices = c.asm.vertices[:0]
}

// End stops recording and draws the complete primitives recorded since
// Begin. A trailing incomplete primitive is dropped. Calling End without
// Begin records InvalidOperation.
func (c *Context) End() {
	if !c.asm.recording {
		c.setError(InvalidOperation, "End", "not recording")
		return
	}
	c.asm.recording = false
	c.draw(c.asm.mode, c.asm.vertices)
}

// Vertex4f emits a vertex at homogeneous object coordinates (x, y, z, w)
// with the current color, normal and texture coordinate. Vertices outside
// Begin/End record InvalidOperation.
func (c *Context) Vertex4f(x, y, z, w float32) {
	if !c.asm.recording {
		c.setError(InvalidOperation, "Vertex", "vertex outside Begin/End")
		return
	}
	c.asm.vertices = append(c.asm.vertices, vertex{
		position:    mgl32.Vec4{x, y, z, w},
		vertexState: c.current,
	})
}

// Vertex2i emits the vertex (x, y, 0, 1).
func (c *Context) Vertex2i(x, y int) { c.Vertex4f(float32(x), float32(y), 0, 1) }

// Vertex2f emits the vertex (x, y, 0, 1).
func (c *Context) Vertex2f(x, y float32) { c.Vertex4f(x, y, 0, 1) }

// Vertex2fv emits the vertex (v[0], v[1], 0, 1).
func (c *Context) Vertex2fv(v [2]float32) { c.Vertex4f(v[0], v[1], 0, 1) }

// Vertex3i emits the vertex (x, y, z, 1).
func (c *Context) Vertex3i(x, y, z int) { c.Vertex4f(float32(x), float32(y), float32(z), 1) }

// Vertex3f emits the vertex (x, y, z, 1).
func (c *Context) Vertex3f(x, y, z float32) { c.Vertex4f(x, y, z, 1) }

// Vertex3fv emits the vertex (v[0], v[1], v[2], 1).
func (c *Context) Vertex3fv(v [3]float32) { c.Vertex4f(v[0], v[1], v[2], 1) }

// Vertex4i emits the vertex (x, y, z, w).
func (c *Context) Vertex4i(x, y, z, w int) {
	c.Vertex4f(float32(x), float32(y), float32(z), float32(w))
}

// Vertex4fv emits the vertex v.
func (c *Context) Vertex4fv(v [4]float32) { c.Vertex4f(v[0], v[1], v[2], v[3]) }

// =============================================================================
// Current attributes
// =============================================================================

// SetColor sets the current color. Attribute commands are valid both
// inside and outside Begin/End.
func (c *Context) SetColor(col Color) { c.current.color = col }

// CurrentColor returns the current color.
func (c *Context) CurrentColor() Color { return c.current.color }

// Color3ub sets the current color from bytes with full alpha.
func (c *Context) Color3ub(r, g, b uint8) { c.current.color = Color{r, g, b, 255} }

// Color3ubv sets the current color from bytes with full alpha.
func (c *Context) Color3ubv(v [3]uint8) { c.Color3ub(v[0], v[1], v[2]) }

// Color3us sets the current color from 16-bit channels with full alpha.
func (c *Context) Color3us(r, g, b uint16) {
	c.current.color = Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
}

// Color3usv sets the current color from 16-bit channels with full alpha.
func (c *Context) Color3usv(v [3]uint16) { c.Color3us(v[0], v[1], v[2]) }

// Color3ui sets the current color from 32-bit channels with full alpha.
func (c *Context) Color3ui(r, g, b uint32) {
	c.current.color = Color{uint8(r >> 24), uint8(g >> 24), uint8(b >> 24), 255}
}

// Color3uiv sets the current color from 32-bit channels with full alpha.
func (c *Context) Color3uiv(v [3]uint32) { c.Color3ui(v[0], v[1], v[2]) }

// Color3f sets the current color from floats in [0, 1] with full alpha.
func (c *Context) Color3f(r, g, b float32) { c.current.color = ColorF(r, g, b, 1) }

// Color3fv sets the current color from floats in [0, 1] with full alpha.
func (c *Context) Color3fv(v [3]float32) { c.Color3f(v[0], v[1], v[2]) }

// Color4ub sets the current color from bytes.
func (c *Context) Color4ub(r, g, b, a uint8) { c.current.color = Color{r, g, b, a} }

// Color4ubv sets the current color from bytes.
func (c *Context) Color4ubv(v [4]uint8) { c.Color4ub(v[0], v[1], v[2], v[3]) }

// Color4us sets the current color from 16-bit channels.
func (c *Context) Color4us(r, g, b, a uint16) {
	c.current.color = Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// Color4usv sets the current color from 16-bit channels.
func (c *Context) Color4usv(v [4]uint16) { c.Color4us(v[0], v[1], v[2], v[3]) }

// Color4ui sets the current color from 32-bit channels.
func (c *Context) Color4ui(r, g, b, a uint32) {
	c.current.color = Color{uint8(r >> 24), uint8(g >> 24), uint8(b >> 24), uint8(a >> 24)}
}

// Color4uiv sets the current color from 32-bit channels.
func (c *Context) Color4uiv(v [4]uint32) { c.Color4ui(v[0], v[1], v[2], v[3]) }

// Color4f sets the current color from floats in [0, 1].
func (c *Context) Color4f(r, g, b, a float32) { c.current.color = ColorF(r, g, b, a) }

// Color4fv sets the current color from floats in [0, 1].
func (c *Context) Color4fv(v [4]float32) { c.Color4f(v[0], v[1], v[2], v[3]) }

// TexCoord2f sets the current texture coordinate.
func (c *Context) TexCoord2f(u, v float32) { c.current.texCoord = mgl32.Vec2{u, v} }

// TexCoordfv sets the current texture coordinate.
func (c *Context) TexCoordfv(v [2]float32) { c.current.texCoord = v }

// Normal3f sets the current normal. Normals are renormalized after the
// modelview transform, so they need not be unit length.
func (c *Context) Normal3f(x, y, z float32) { c.current.normal = mgl32.Vec3{x, y, z} }

// Normal3fv sets the current normal.
func (c *Context) Normal3fv(v [3]float32) { c.current.normal = v }

// =============================================================================
// Rectangles
// =============================================================================

// Rectf draws the rectangle with corners (x1, y1) and (x2, y2) in the z = 0
// plane as one quad. Calling it between Begin and End records
// InvalidOperation.
func (c *Context) Rectf(x1, y1, x2, y2 float32) {
	if c.asm.recording {
		c.setError(InvalidOperation, "Rect", "rectangle inside Begin/End")
		return
	}
	c.Begin(Quads)
	c.Vertex2f(x1, y1)
	c.Vertex2f(x2, y1)
	c.Vertex2f(x2, y2)
	c.Vertex2f(x1, y2)
	c.End()
}

// Rectfv draws the rectangle with corners v1 and v2.
func (c *Context) Rectfv(v1, v2 [2]float32) { c.Rectf(v1[0], v1[1], v2[0], v2[1]) }

// Recti draws the rectangle with integer corners.
func (c *Context) Recti(x1, y1, x2, y2 int) {
	c.Rectf(float32(x1), float32(y1), float32(x2), float32(y2))
}

// Rectiv draws the rectangle with integer corners v1 and v2.
func (c *Context) Rectiv(v1, v2 [2]int) { c.Recti(v1[0], v1[1], v2[0], v2[1]) }

// Rects draws the rectangle with 16-bit corners.
func (c *Context) Rects(x1, y1, x2, y2 int16) {
	c.Rectf(float32(x1), float32(y1), float32(x2), float32(y2))
}

// Rectsv draws the rectangle with 16-bit corners v1 and v2.
func (c *Context) Rectsv(v1, v2 [2]int16) { c.Rects(v1[0], v1[1], v2[0], v2[1]) }
