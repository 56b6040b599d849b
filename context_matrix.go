package forge

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// SetMatrixMode selects the stack that subsequent matrix commands act on.
func (c *Context) SetMatrixMode(m MatrixMode) {
	if !c.checkOpen("SetMatrixMode") {
		return
	}
	if m != Modelview && m != Projection {
		c.setError(InvalidEnum, "SetMatrixMode", "unknown matrix mode "+m.String())
		return
	}
	c.matrixMode = m
}

// MatrixMode returns the active matrix mode.
func (c *Context) MatrixMode() MatrixMode {
	return c.matrixMode
}

func (c *Context) stack() *MatrixStack {
	if c.matrixMode == Projection {
		return &c.projection
	}
	return &c.modelview
}

// Matrix returns the top of the stack selected by m.
func (c *Context) Matrix(m MatrixMode) mgl32.Mat4 {
	switch m {
	case Modelview:
		return c.modelview.Top()
	case Projection:
		return c.projection.Top()
	default:
		c.setError(InvalidEnum, "Matrix", "unknown matrix mode "+m.String())
		return mgl32.Mat4{}
	}
}

// LoadIdentity replaces the current matrix with the identity.
func (c *Context) LoadIdentity() {
	if !c.checkOpen("LoadIdentity") {
		return
	}
	c.stack().Load(mgl32.Ident4())
}

// LoadMatrix replaces the current matrix with m (column-major).
func (c *Context) LoadMatrix(m mgl32.Mat4) {
	if !c.checkOpen("LoadMatrix") {
		return
	}
	c.stack().Load(m)
}

// MultMatrix right-multiplies the current matrix by m.
func (c *Context) MultMatrix(m mgl32.Mat4) {
	if !c.checkOpen("MultMatrix") {
		return
	}
	c.stack().Mul(m)
}

// PushMatrix duplicates the current matrix. A full stack records
// StackOverflow.
func (c *Context) PushMatrix() {
	if !c.checkOpen("PushMatrix") {
		return
	}
	if err := c.stack().Push(); err != nil {
		c.setError(StackOverflow, "PushMatrix", c.matrixMode.String()+" stack is full")
	}
}

// PopMatrix restores the previous matrix. Popping the last matrix records
// StackOverflow.
func (c *Context) PopMatrix() {
	if !c.checkOpen("PopMatrix") {
		return
	}
	if err := c.stack().Pop(); err != nil {
		c.setError(StackOverflow, "PopMatrix", c.matrixMode.String()+" stack has one matrix")
	}
}

// Translate right-multiplies the current matrix by a translation.
func (c *Context) Translate(x, y, z float32) {
	if !c.checkOpen("Translate") {
		return
	}
	c.stack().Mul(mgl32.Translate3D(x, y, z))
}

// Rotate right-multiplies the current matrix by a rotation of angle
// degrees, counter-clockwise around the axis (x, y, z). A zero-length axis
// records InvalidOperation.
func (c *Context) Rotate(angle, x, y, z float32) {
	if !c.checkOpen("Rotate") {
		return
	}
	m, ok := rotation(angle, mgl32.Vec3{x, y, z})
	if !ok {
		c.setError(InvalidOperation, "Rotate", fmt.Sprintf("invalid axis (%g, %g, %g)", x, y, z))
		return
	}
	c.stack().Mul(m)
}

// Scale right-multiplies the current matrix by a scale.
func (c *Context) Scale(x, y, z float32) {
	if !c.checkOpen("Scale") {
		return
	}
	c.stack().Mul(mgl32.Scale3D(x, y, z))
}

// Frustum replaces the current matrix with a perspective projection.
// Non-positive near or far planes, near >= far, or an empty extent record
// InvalidOperation.
func (c *Context) Frustum(left, right, bottom, top, near, far float64) {
	if !c.checkOpen("Frustum") {
		return
	}
	m, ok := frustum(left, right, bottom, top, near, far)
	if !ok {
		c.setError(InvalidOperation, "Frustum", fmt.Sprintf(
			"invalid volume l=%g r=%g b=%g t=%g n=%g f=%g", left, right, bottom, top, near, far))
		return
	}
	c.stack().Load(m)
}

// Ortho replaces the current matrix with an orthographic projection. An
// empty extent records InvalidOperation.
func (c *Context) Ortho(left, right, bottom, top, near, far float64) {
	if !c.checkOpen("Ortho") {
		return
	}
	m, ok := ortho(left, right, bottom, top, near, far)
	if !ok {
		c.setError(InvalidOperation, "Ortho", fmt.Sprintf(
			"invalid volume l=%g r=%g b=%g t=%g n=%g f=%g", left, right, bottom, top, near, far))
		return
	}
	c.stack().Load(m)
}
