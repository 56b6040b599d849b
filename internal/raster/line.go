package raster

// Line emits the fragments of the digital line from a towards b.
//
// The line starts at the rounded position of a and takes max(|dx|, |dy|)
// unit steps along the major axis; the end pixel belongs to the next
// segment and is not emitted. Depth is interpolated linearly by the step
// fraction and attributes with perspective correction. A line whose
// rounded endpoints coincide emits nothing.
func (r *Rasterizer) Line(a, b Vertex, fn FragmentFunc) {
	x0, y0 := roundCoord(a.X), roundCoord(a.Y)
	x1, y1 := roundCoord(b.X), roundCoord(b.Y)
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}

	var pa, pb [NumAttrs]float32
	for k := range pa {
		pa[k] = a.Attrs[k] * a.InvW
		pb[k] = b.Attrs[k] * b.InvW
	}

	var f Fragment
	inv := 1 / float32(steps)
	for i := range steps {
		t := float32(i) * inv
		f.X = x0 + roundCoord(float32(dx)*t)
		f.Y = y0 + roundCoord(float32(dy)*t)
		if !r.Bounds.Contains(f.X, f.Y) {
			continue
		}
		f.Z = a.Z + (b.Z-a.Z)*t
		w := a.InvW + (b.InvW-a.InvW)*t
		if w == 0 {
			continue
		}
		for k := range f.Attrs {
			f.Attrs[k] = (pa[k] + (pb[k]-pa[k])*t) / w
		}
		fn(&f)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
