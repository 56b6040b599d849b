// Package raster converts screen-space points, lines and triangles into
// fragments.
//
// Pixel (x, y) is sampled at the integer coordinates (x, y). Triangle
// coverage uses exact fixed-point edge functions with a top-left fill rule,
// so triangles that share an edge never both cover a pixel on it and never
// leave a gap between them.
package raster

import (
	"github.com/gogpu/forge/internal/clip"
	"github.com/gogpu/forge/internal/parallel"
)

// NumAttrs is the number of interpolated attributes per vertex.
const NumAttrs = clip.NumAttrs

// Vertex is a vertex in window coordinates.
type Vertex struct {
	// X and Y are window coordinates with the origin at the top-left.
	X, Y float32

	// Z is window depth in [0, 1].
	Z float32

	// InvW is the reciprocal of the clip-space w, used for
	// perspective-correct interpolation.
	InvW float32

	// Attrs are interpolated with perspective correction.
	Attrs [NumAttrs]float32
}

// Fragment is one covered pixel with its interpolated values.
type Fragment struct {
	X, Y  int
	Z     float32
	Attrs [NumAttrs]float32
}

// FragmentFunc consumes a fragment. The fragment is only valid for the
// duration of the call. When a triangle is split into row bands, the
// function is called from several goroutines at once, but never twice for
// the same pixel.
type FragmentFunc func(f *Fragment)

// Rect is a half-open pixel rectangle [MinX, MaxX) x [MinY, MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the rectangle contains no pixels.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Contains reports whether pixel (x, y) lies in the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Intersect returns the largest rectangle contained in both r and s.
func (r Rect) Intersect(s Rect) Rect {
	r.MinX = max(r.MinX, s.MinX)
	r.MinY = max(r.MinY, s.MinY)
	r.MaxX = min(r.MaxX, s.MaxX)
	r.MaxY = min(r.MaxY, s.MaxY)
	return r
}

// Rasterizer produces fragments inside Bounds.
//
// When Pool is set and a triangle's clamped bounding box holds at least
// Threshold pixels, its rows are split into bands processed on the pool.
// Every call returns only after all of its fragments have been emitted.
type Rasterizer struct {
	Bounds    Rect
	Pool      *parallel.WorkerPool
	Threshold int
}

// minBandRows keeps bands large enough to amortize scheduling.
const minBandRows = 4

// SignedArea returns twice the signed area of the polygon in window
// coordinates. Window y points down, so a polygon that is counter-clockwise
// in normalized device coordinates has a negative result.
func SignedArea(vs []Vertex) float32 {
	var sum float64
	for i := range vs {
		a, b := vs[i], vs[(i+1)%len(vs)]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return float32(sum)
}

// roundCoord rounds half up to the nearest pixel.
func roundCoord(v float32) int {
	f := v + 0.5
	i := int(f)
	if float32(i) > f {
		i--
	}
	return i
}

// Point emits one fragment at the rounded position of v.
func (r *Rasterizer) Point(v Vertex, fn FragmentFunc) {
	x, y := roundCoord(v.X), roundCoord(v.Y)
	if !r.Bounds.Contains(x, y) {
		return
	}
	f := Fragment{X: x, Y: y, Z: v.Z, Attrs: v.Attrs}
	fn(&f)
}
