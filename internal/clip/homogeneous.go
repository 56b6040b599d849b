package clip

import "github.com/go-gl/mathgl/mgl32"

// NumAttrs is the number of float attributes carried per vertex through
// clipping. The layout is owned by the caller; the clipper interpolates
// every slot linearly in clip space.
const NumAttrs = 12

// MaxVertices is the largest polygon the clipper will return. Larger
// results are dropped.
const MaxVertices = 12

// Epsilon is the tolerance of the inside test. A vertex whose distance to
// a plane is greater than -Epsilon counts as inside that plane.
const Epsilon = 1e-5

// Vertex is a clip-space position plus its interpolated attributes.
type Vertex struct {
	Position mgl32.Vec4
	Attrs    [NumAttrs]float32
}

// Lerp interpolates position and attributes from v (t=0) to o (t=1).
func (v Vertex) Lerp(o Vertex, t float32) Vertex {
	r := Vertex{Position: v.Position.Add(o.Position.Sub(v.Position).Mul(t))}
	for i := range r.Attrs {
		r.Attrs[i] = v.Attrs[i] + (o.Attrs[i]-v.Attrs[i])*t
	}
	return r
}

// The six planes of the canonical view volume, in outcode bit order:
// w+x, w-x, w+y, w-y, w+z, w-z. A point is inside when all are >= 0.
const numPlanes = 6

// distance returns the signed distance of p to plane i. Non-negative means
// inside the half-space.
func distance(p mgl32.Vec4, i int) float32 {
	switch i {
	case 0:
		return p[3] + p[0]
	case 1:
		return p[3] - p[0]
	case 2:
		return p[3] + p[1]
	case 3:
		return p[3] - p[1]
	case 4:
		return p[3] + p[2]
	default:
		return p[3] - p[2]
	}
}

func inside(d float32) bool {
	return d > -Epsilon
}

// Outcode returns the bitmask of planes p lies outside of.
func Outcode(p mgl32.Vec4) uint8 {
	var code uint8
	for i := 0; i < numPlanes; i++ {
		if !inside(distance(p, i)) {
			code |= 1 << i
		}
	}
	return code
}

// PointVisible reports whether a point lies inside all six planes.
func PointVisible(v Vertex) bool {
	return Outcode(v.Position) == 0
}

// Line clips the segment a-b parametrically against the view volume.
// It returns the visible part, or false if nothing remains.
func Line(a, b Vertex) (Vertex, Vertex, bool) {
	ca, cb := Outcode(a.Position), Outcode(b.Position)
	if ca&cb != 0 {
		return a, b, false
	}
	if ca|cb == 0 {
		return a, b, true
	}

	t0, t1 := float32(0), float32(1)
	for i := 0; i < numPlanes; i++ {
		if (ca|cb)&(1<<i) == 0 {
			continue
		}
		da, db := distance(a.Position, i), distance(b.Position, i)
		t := da / (da - db)
		if !inside(da) {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}

// Clipper clips convex polygons with the Sutherland-Hodgman algorithm.
// It reuses its buffers between calls and is not safe for concurrent use.
type Clipper struct {
	front []Vertex
	back  []Vertex
}

// Polygon clips the convex polygon in against the view volume.
//
// All vertices outside one plane reject the polygon; all vertices inside
// every plane return it unchanged. Otherwise each plane that some vertex
// violates is clipped in turn. The result aliases the clipper's buffers
// and stays valid until the next call. A nil result means nothing is
// visible, or the polygon degenerated below three vertices, or it grew
// beyond MaxVertices.
func (c *Clipper) Polygon(in []Vertex) []Vertex {
	if len(in) < 3 {
		return nil
	}
	inter, union := uint8(0xff), uint8(0)
	for i := range in {
		code := Outcode(in[i].Position)
		inter &= code
		union |= code
	}
	if inter != 0 {
		return nil
	}
	c.front = append(c.front[:0], in...)
	if union == 0 {
		return c.front
	}

	for p := 0; p < numPlanes; p++ {
		if union&(1<<p) == 0 {
			continue
		}
		c.back = clipPlane(c.back[:0], c.front, p)
		c.front, c.back = c.back, c.front
		if len(c.front) < 3 {
			return nil
		}
	}
	if len(c.front) > MaxVertices {
		return nil
	}
	return c.front
}

// clipPlane appends to dst the part of poly inside plane p.
func clipPlane(dst, poly []Vertex, p int) []Vertex {
	prev := poly[len(poly)-1]
	dPrev := distance(prev.Position, p)
	for _, cur := range poly {
		dCur := distance(cur.Position, p)
		switch {
		case inside(dCur):
			if !inside(dPrev) {
				dst = append(dst, intersect(prev, cur, dPrev, dCur))
			}
			dst = append(dst, cur)
		case inside(dPrev):
			dst = append(dst, intersect(prev, cur, dPrev, dCur))
		}
		prev, dPrev = cur, dCur
	}
	return dst
}

// intersect returns the point where the edge a-b crosses the plane with
// signed distances da and db.
func intersect(a, b Vertex, da, db float32) Vertex {
	t := da / (da - db)
	return a.Lerp(b, min(max(t, 0), 1))
}
