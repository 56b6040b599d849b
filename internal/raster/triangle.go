package raster

import (
	"math"

	"github.com/gogpu/forge/internal/parallel"
)

// Vertex positions are snapped to a fixed-point grid with 8 fractional
// bits so edge functions are exact and shared edges evaluate to exact
// negations of each other.
const (
	subpixelBits = 8
	subpixelOne  = 1 << subpixelBits

	// maxCoord bounds window coordinates so that edge function products
	// stay inside int64.
	maxCoord = 1 << 22
)

func toFixed(v float32) int64 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return 0
	case f > maxCoord:
		f = maxCoord
	case f < -maxCoord:
		f = -maxCoord
	}
	return int64(math.Round(f * subpixelOne))
}

// edge is the edge function of the directed edge a->b:
// E(p) = dx*(p.y-a.y) - dy*(p.x-a.x).
type edge struct {
	ax, ay int64
	dx, dy int64

	// bias is 1 on top-left edges so that E + bias > 0 accepts E == 0
	// exactly there.
	bias int64
}

func newEdge(ax, ay, bx, by int64) edge {
	e := edge{ax: ax, ay: ay, dx: bx - ax, dy: by - ay}
	if (e.dy == 0 && e.dx > 0) || e.dy < 0 {
		e.bias = 1
	}
	return e
}

func (e edge) eval(px, py int64) int64 {
	return e.dx*(py-e.ay) - e.dy*(px-e.ax)
}

// stepX is the change of E for one pixel to the right.
func (e edge) stepX() int64 {
	return -e.dy << subpixelBits
}

// triangle holds the per-triangle setup shared by all row bands.
type triangle struct {
	edges   [3]edge
	invArea float64
	z       [3]float32
	invW    [3]float32
	pa      [3][NumAttrs]float32
}

// Triangle emits the fragments covered by the triangle v0 v1 v2.
//
// A pixel is covered when its sample point is strictly inside all three
// edges or lies exactly on a top or left edge. Depth is interpolated
// linearly in window space and attributes with perspective correction.
// Triangles of zero area emit nothing. The winding does not matter;
// culling is the caller's business.
func (r *Rasterizer) Triangle(v0, v1, v2 Vertex, fn FragmentFunc) {
	x0, y0 := toFixed(v0.X), toFixed(v0.Y)
	x1, y1 := toFixed(v1.X), toFixed(v1.Y)
	x2, y2 := toFixed(v2.X), toFixed(v2.Y)

	area := newEdge(x0, y0, x1, y1).eval(x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		x1, y1, x2, y2 = x2, y2, x1, y1
		area = -area
	}

	// Sample points are integer pixel coordinates: the box spans every
	// integer between the fixed-point extremes.
	box := Rect{
		MinX: int((min(x0, x1, x2) + subpixelOne - 1) >> subpixelBits),
		MinY: int((min(y0, y1, y2) + subpixelOne - 1) >> subpixelBits),
		MaxX: int(max(x0, x1, x2)>>subpixelBits) + 1,
		MaxY: int(max(y0, y1, y2)>>subpixelBits) + 1,
	}.Intersect(r.Bounds)
	if box.Empty() {
		return
	}

	t := &triangle{
		edges: [3]edge{
			newEdge(x1, y1, x2, y2),
			newEdge(x2, y2, x0, y0),
			newEdge(x0, y0, x1, y1),
		},
		invArea: 1 / float64(area),
	}
	for i, v := range [3]Vertex{v0, v1, v2} {
		t.z[i] = v.Z
		t.invW[i] = v.InvW
		for k := range v.Attrs {
			t.pa[i][k] = v.Attrs[k] * v.InvW
		}
	}

	pixels := (box.MaxX - box.MinX) * (box.MaxY - box.MinY)
	if r.Pool == nil || r.Threshold <= 0 || pixels < r.Threshold {
		t.rows(box, box.MinY, box.MaxY, fn)
		return
	}
	r.Pool.ForEachBand(box.MinY, box.MaxY, minBandRows, func(b parallel.Band) {
		t.rows(box, b.Y0, b.Y1, fn)
	})
}

// rows scans rows [y0, y1) of box.
func (t *triangle) rows(box Rect, y0, y1 int, fn FragmentFunc) {
	e0, e1, e2 := t.edges[0], t.edges[1], t.edges[2]
	s0, s1, s2 := e0.stepX(), e1.stepX(), e2.stepX()

	var f Fragment
	px := int64(box.MinX) << subpixelBits
	for y := y0; y < y1; y++ {
		py := int64(y) << subpixelBits
		w0, w1, w2 := e0.eval(px, py), e1.eval(px, py), e2.eval(px, py)
		for x := box.MinX; x < box.MaxX; x++ {
			if w0+e0.bias > 0 && w1+e1.bias > 0 && w2+e2.bias > 0 {
				t.interpolate(&f, w0, w1, w2)
				f.X, f.Y = x, y
				fn(&f)
			}
			w0 += s0
			w1 += s1
			w2 += s2
		}
	}
}

// interpolate fills the depth and attributes of f from edge weights.
func (t *triangle) interpolate(f *Fragment, w0, w1, w2 int64) {
	l0 := float32(float64(w0) * t.invArea)
	l1 := float32(float64(w1) * t.invArea)
	l2 := float32(float64(w2) * t.invArea)

	f.Z = l0*t.z[0] + l1*t.z[1] + l2*t.z[2]

	w := l0*t.invW[0] + l1*t.invW[1] + l2*t.invW[2]
	if w == 0 {
		f.Attrs = [NumAttrs]float32{}
		return
	}
	inv := 1 / w
	for k := range f.Attrs {
		f.Attrs[k] = (l0*t.pa[0][k] + l1*t.pa[1][k] + l2*t.pa[2][k]) * inv
	}
}
