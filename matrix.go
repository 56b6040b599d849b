package forge

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxMatrixStackDepth is the capacity of each matrix stack.
const MaxMatrixStackDepth = 8

// MatrixMode selects the stack that matrix commands operate on.
type MatrixMode uint8

const (
	// Modelview transforms object coordinates to eye coordinates.
	Modelview MatrixMode = iota
	// Projection transforms eye coordinates to clip coordinates.
	Projection
)

// String returns a string representation of the matrix mode.
func (m MatrixMode) String() string {
	switch m {
	case Modelview:
		return "Modelview"
	case Projection:
		return "Projection"
	default:
		return "Unknown"
	}
}

// MatrixStack is a fixed-capacity stack of 4x4 column-major matrices.
// It never grows: pushing onto a full stack or popping the last element
// fails with StackOverflow and leaves the stack unchanged.
//
// The zero value is not usable; call NewMatrixStack.
type MatrixStack struct {
	items [MaxMatrixStackDepth]mgl32.Mat4
	depth int
}

// NewMatrixStack returns a stack holding a single identity matrix.
func NewMatrixStack() MatrixStack {
	s := MatrixStack{depth: 1}
	s.items[0] = mgl32.Ident4()
	return s
}

// Depth returns the number of matrices on the stack.
func (s *MatrixStack) Depth() int {
	return s.depth
}

// Top returns the current matrix.
func (s *MatrixStack) Top() mgl32.Mat4 {
	return s.items[s.depth-1]
}

// Load replaces the current matrix.
func (s *MatrixStack) Load(m mgl32.Mat4) {
	s.items[s.depth-1] = m
}

// Mul right-multiplies the current matrix by m.
func (s *MatrixStack) Mul(m mgl32.Mat4) {
	s.items[s.depth-1] = s.items[s.depth-1].Mul4(m)
}

// Push duplicates the current matrix.
func (s *MatrixStack) Push() error {
	if s.depth == MaxMatrixStackDepth {
		return StackOverflow
	}
	s.items[s.depth] = s.items[s.depth-1]
	s.depth++
	return nil
}

// Pop discards the current matrix, restoring the previous one.
func (s *MatrixStack) Pop() error {
	if s.depth <= 1 {
		return StackOverflow
	}
	s.depth--
	return nil
}

// rotation returns the matrix for a rotation of angle degrees around axis,
// or false if the axis has zero length.
func rotation(angle float32, axis mgl32.Vec3) (mgl32.Mat4, bool) {
	l := axis.Len()
	if l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return mgl32.Mat4{}, false
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Mul(1/l)), true
}

// frustum returns a perspective projection, or false when the bounds do
// not describe a valid view volume.
func frustum(left, right, bottom, top, near, far float64) (mgl32.Mat4, bool) {
	if near <= 0 || far <= 0 || near >= far || left == right || bottom == top {
		return mgl32.Mat4{}, false
	}
	return mgl32.Frustum(float32(left), float32(right), float32(bottom), float32(top), float32(near), float32(far)), true
}

// ortho returns an orthographic projection, or false when an extent is empty.
func ortho(left, right, bottom, top, near, far float64) (mgl32.Mat4, bool) {
	if left == right || bottom == top || near == far {
		return mgl32.Mat4{}, false
	}
	return mgl32.Ortho(float32(left), float32(right), float32(bottom), float32(top), float32(near), float32(far)), true
}
