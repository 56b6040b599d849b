package forge

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ClientArray names a client-side vertex attribute array.
type ClientArray uint8

const (
	// VertexArray supplies positions (2, 3 or 4 floats per vertex).
	VertexArray ClientArray = iota + 1
	// NormalArray supplies normals (3 floats per vertex).
	NormalArray
	// ColorArray supplies colors (3 or 4 floats in [0, 1] per vertex).
	ColorArray
	// TexCoordArray supplies texture coordinates (2 floats per vertex).
	TexCoordArray
)

// String returns a string representation of the array.
func (a ClientArray) String() string {
	switch a {
	case VertexArray:
		return "VertexArray"
	case NormalArray:
		return "NormalArray"
	case ColorArray:
		return "ColorArray"
	case TexCoordArray:
		return "TexCoordArray"
	default:
		return fmt.Sprintf("ClientArray(%d)", uint8(a))
	}
}

// attribArray is one tightly packed float array.
type attribArray struct {
	enabled bool
	size    int
	data    []float32
}

// count returns the number of complete elements in the array.
func (a *attribArray) count() int {
	if a.size == 0 {
		return 0
	}
	return len(a.data) / a.size
}

func (a *attribArray) at(i int) []float32 {
	return a.data[i*a.size : (i+1)*a.size]
}

type clientArrays struct {
	vertex, normal, color, texCoord attribArray
}

func (c *Context) array(op string, a ClientArray) *attribArray {
	switch a {
	case VertexArray:
		return &c.arrays.vertex
	case NormalArray:
		return &c.arrays.normal
	case ColorArray:
		return &c.arrays.color
	case TexCoordArray:
		return &c.arrays.texCoord
	}
	c.setError(InvalidEnum, op, "unknown array "+a.String())
	return nil
}

// SetVertexArray sets the position array with size floats per vertex.
// The slice is referenced, not copied.
func (c *Context) SetVertexArray(size int, data []float32) {
	if !c.checkOpen("SetVertexArray") {
		return
	}
	if size < 2 || size > 4 {
		c.setError(InvalidOperation, "SetVertexArray", fmt.Sprintf("size %d not in [2, 4]", size))
		return
	}
	c.arrays.vertex.size, c.arrays.vertex.data = size, data
}

// SetNormalArray sets the normal array with three floats per vertex.
func (c *Context) SetNormalArray(data []float32) {
	if !c.checkOpen("SetNormalArray") {
		return
	}
	c.arrays.normal.size, c.arrays.normal.data = 3, data
}

// SetColorArray sets the color array with size (3 or 4) floats per vertex.
func (c *Context) SetColorArray(size int, data []float32) {
	if !c.checkOpen("SetColorArray") {
		return
	}
	if size != 3 && size != 4 {
		c.setError(InvalidOperation, "SetColorArray", fmt.Sprintf("size %d not 3 or 4", size))
		return
	}
	c.arrays.color.size, c.arrays.color.data = size, data
}

// SetTexCoordArray sets the texture coordinate array with two floats per
// vertex.
func (c *Context) SetTexCoordArray(data []float32) {
	if !c.checkOpen("SetTexCoordArray") {
		return
	}
	c.arrays.texCoord.size, c.arrays.texCoord.data = 2, data
}

// EnableArray makes DrawArrays and DrawElements read attribute a from its
// array instead of the current value.
func (c *Context) EnableArray(a ClientArray) {
	if !c.checkOpen("EnableArray") {
		return
	}
	if arr := c.array("EnableArray", a); arr != nil {
		arr.enabled = true
	}
}

// DisableArray makes draws use the current value of attribute a.
func (c *Context) DisableArray(a ClientArray) {
	if !c.checkOpen("DisableArray") {
		return
	}
	if arr := c.array("DisableArray", a); arr != nil {
		arr.enabled = false
	}
}

// DrawArrays draws count consecutive vertices starting at first from the
// enabled arrays.
func (c *Context) DrawArrays(mode DrawMode, first, count int) {
	if !c.checkArrayDraw("DrawArrays", mode) {
		return
	}
	if first < 0 || count < 0 {
		c.setError(InvalidOperation, "DrawArrays", fmt.Sprintf("invalid range first=%d count=%d", first, count))
		return
	}
	if first+count > c.arrayLimit() {
		c.setError(InvalidOperation, "DrawArrays", fmt.Sprintf("range [%d, %d) exceeds the enabled arrays", first, first+count))
		return
	}
	verts := c.asm.vertices[:0]
	for i := first; i < first+count; i++ {
		verts = append(verts, c.arrayVertex(i))
	}
	c.asm.vertices = verts
	c.draw(mode, verts)
}

// DrawElements draws the vertices selected by indices from the enabled
// arrays.
func (c *Context) DrawElements(mode DrawMode, indices []uint32) {
	if !c.checkArrayDraw("DrawElements", mode) {
		return
	}
	limit := c.arrayLimit()
	for _, idx := range indices {
		if int64(idx) >= int64(limit) {
			c.setError(InvalidOperation, "DrawElements", fmt.Sprintf("index %d exceeds the enabled arrays", idx))
			return
		}
	}
	verts := c.asm.vertices[:0]
	for _, idx := range indices {
		verts = append(verts, c.arrayVertex(int(idx)))
	}
	c.asm.vertices = verts
	c.draw(mode, verts)
}

func (c *Context) checkArrayDraw(op string, mode DrawMode) bool {
	if !c.checkOpen(op) {
		return false
	}
	if c.asm.recording {
		c.setError(InvalidOperation, op, "draw inside Begin/End")
		return false
	}
	if mode.arity() == 0 {
		c.setError(InvalidEnum, op, "unknown mode "+mode.String())
		return false
	}
	if !c.arrays.vertex.enabled {
		c.setError(InvalidOperation, op, "vertex array is not enabled")
		return false
	}
	return true
}

// arrayLimit returns the number of vertices every enabled array can supply.
func (c *Context) arrayLimit() int {
	limit := c.arrays.vertex.count()
	for _, a := range []*attribArray{&c.arrays.normal, &c.arrays.color, &c.arrays.texCoord} {
		if a.enabled {
			limit = min(limit, a.count())
		}
	}
	return limit
}

// arrayVertex assembles vertex i from the enabled arrays and the current
// attributes.
func (c *Context) arrayVertex(i int) vertex {
	v := vertex{position: mgl32.Vec4{0, 0, 0, 1}, vertexState: c.current}
	copy(v.position[:], c.arrays.vertex.at(i))
	if a := &c.arrays.normal; a.enabled {
		copy(v.normal[:], a.at(i))
	}
	if a := &c.arrays.color; a.enabled {
		p := a.at(i)
		alpha := float32(1)
		if a.size == 4 {
			alpha = p[3]
		}
		v.color = ColorF(p[0], p[1], p[2], alpha)
	}
	if a := &c.arrays.texCoord; a.enabled {
		copy(v.texCoord[:], a.at(i))
	}
	return v
}
