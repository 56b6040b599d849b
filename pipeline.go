package forge

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/forge/internal/clip"
	"github.com/gogpu/forge/internal/raster"
)

// Attribute slots carried from vertices to fragments.
const (
	attrR  = 0 // color, normalized
	attrG  = 1
	attrB  = 2
	attrA  = 3
	attrNX = 4 // eye-space normal
	attrNY = 5
	attrNZ = 6
	attrU  = 7 // texture coordinate
	attrV  = 8
	attrEX = 9 // eye-space position
	attrEY = 10
	attrEZ = 11
)

// minW rejects vertices too close to the eye plane to divide by.
const minW = 1e-9

// fragmentPipeline is the per-fragment state captured once per primitive.
// Its methods only read it, and fragments of distinct pixels touch
// distinct bytes, so shading may run on several goroutines.
type fragmentPipeline struct {
	pixels []byte
	codec  Codec
	width  int

	depth   []float32 // nil when depth testing is off
	texture *Texture  // nil when texturing is off
	blend   BlendFunc // nil writes the source unchanged
	lights  *lightModel
}

// pipeline snapshots the fragment state for drawing into fb.
func (c *Context) pipeline(fb *Framebuffer) *fragmentPipeline {
	p := &fragmentPipeline{
		pixels: fb.color.pixels,
		codec:  fb.color.codec,
		width:  fb.color.width,
		blend:  c.blend,
	}
	if c.caps&DepthTest != 0 && fb.depth != nil {
		p.depth = fb.depth
	}
	if c.caps&Texture2D != 0 && c.texture.IsValid() {
		p.texture = c.texture
	}
	if c.caps&Lighting != 0 {
		p.lights = c.snapshotLights()
	}
	return p
}

// shade runs one rasterized fragment through the depth test, lighting,
// texturing and blending, in that order.
func (p *fragmentPipeline) shade(f *raster.Fragment, front bool) {
	if p.depth != nil && !(f.Z < p.depth[f.Y*p.width+f.X]) {
		return
	}
	a := &f.Attrs
	col := mgl32.Vec4{a[attrR], a[attrG], a[attrB], a[attrA]}
	if p.lights != nil {
		col = p.lights.shade(col,
			mgl32.Vec3{a[attrNX], a[attrNY], a[attrNZ]},
			mgl32.Vec3{a[attrEX], a[attrEY], a[attrEZ]},
			front)
	}
	src := ColorF(col[0], col[1], col[2], col[3])
	if p.texture != nil {
		src = src.Modulate(p.texture.Sample(a[attrU], a[attrV]))
	}
	p.write(f.X, f.Y, f.Z, src)
}

// write blends src into pixel (x, y) and stores depth z. The caller has
// already passed the depth test.
func (p *fragmentPipeline) write(x, y int, z float32, src Color) {
	i := y*p.width + x
	if p.blend != nil {
		src = p.blend(src, p.codec.Decode(p.pixels, i))
	}
	p.codec.Encode(p.pixels, i, src)
	if p.depth != nil {
		p.depth[i] = z
	}
}

// viewportBounds returns the viewport clamped to fb.
func (c *Context) viewportBounds(fb *Framebuffer) raster.Rect {
	vp := c.viewport
	return raster.Rect{
		MinX: vp.X, MinY: vp.Y,
		MaxX: vp.X + vp.Width, MaxY: vp.Y + vp.Height,
	}.Intersect(raster.Rect{MaxX: fb.Width(), MaxY: fb.Height()})
}

// draw transforms, clips, rasterizes and shades the complete primitives
// of mode in verts.
func (c *Context) draw(mode DrawMode, verts []vertex) {
	fb := c.target()
	if !fb.IsValid() {
		c.setError(InvalidOperation, "End", "draw target is not valid")
		return
	}
	n := mode.arity()
	if len(verts) < n {
		return
	}
	bounds := c.viewportBounds(fb)
	if bounds.Empty() {
		return
	}

	pipe := c.pipeline(fb)
	r := c.rasterizer(bounds)
	front := func(f *raster.Fragment) { pipe.shade(f, true) }
	back := func(f *raster.Fragment) { pipe.shade(f, false) }

	mv := c.modelview.Top()
	mvp := c.projection.Top().Mul4(mv)
	var normalMat mgl32.Mat3
	if pipe.lights != nil {
		normalMat = mv.Mat3().Inv().Transpose()
	}

	var group [4]clip.Vertex
	for base := 0; base+n <= len(verts); base += n {
		for i := range n {
			group[i] = c.toClip(&verts[base+i], mv, mvp, normalMat)
		}
		switch mode {
		case Points:
			if clip.PointVisible(group[0]) {
				if w, ok := c.toWindow(group[0]); ok {
					r.Point(w, front)
				}
			}
		case Lines:
			a, b, ok := clip.Line(group[0], group[1])
			if !ok {
				continue
			}
			wa, oka := c.toWindow(a)
			wb, okb := c.toWindow(b)
			if oka && okb {
				r.Line(wa, wb, front)
			}
		default:
			c.drawPolygon(r, group[:n], front, back)
		}
	}
}

// drawPolygon clips a triangle or quad, culls it and fills it as a fan or
// outlines it in wire mode.
func (c *Context) drawPolygon(r *raster.Rasterizer, poly []clip.Vertex, front, back raster.FragmentFunc) {
	clipped := c.clipper.Polygon(poly)
	if clipped == nil {
		return
	}
	c.window = c.window[:0]
	for _, v := range clipped {
		w, ok := c.toWindow(v)
		if !ok {
			return
		}
		c.window = append(c.window, w)
	}

	area := raster.SignedArea(c.window)
	if area == 0 {
		return
	}
	// Window y points down, so counter-clockwise in NDC is negative here.
	isFront := area < 0
	if c.caps&CullFace != 0 {
		switch c.cullFace {
		case FrontAndBack:
			return
		case Front:
			if isFront {
				return
			}
		case Back:
			if !isFront {
				return
			}
		}
	}
	fn := front
	if !isFront {
		fn = back
	}

	ws := c.window
	if c.caps&WireMode != 0 {
		for i := range ws {
			r.Line(ws[i], ws[(i+1)%len(ws)], fn)
		}
		return
	}
	for i := 1; i+1 < len(ws); i++ {
		r.Triangle(ws[0], ws[i], ws[i+1], fn)
	}
}

// toClip transforms an object-space vertex to clip space and packs its
// attributes.
func (c *Context) toClip(v *vertex, mv, mvp mgl32.Mat4, normalMat mgl32.Mat3) clip.Vertex {
	out := clip.Vertex{Position: mvp.Mul4x1(v.position)}
	a := &out.Attrs
	a[attrR], a[attrG], a[attrB], a[attrA] = v.color.Floats()
	a[attrU], a[attrV] = v.texCoord[0], v.texCoord[1]
	if c.caps&Lighting != 0 {
		eye := mv.Mul4x1(v.position)
		if eye[3] != 0 && eye[3] != 1 {
			eye = eye.Mul(1 / eye[3])
		}
		n := normalMat.Mul3x1(v.normal)
		a[attrNX], a[attrNY], a[attrNZ] = n[0], n[1], n[2]
		a[attrEX], a[attrEY], a[attrEZ] = eye[0], eye[1], eye[2]
	}
	return out
}

// toWindow performs the perspective divide and viewport mapping.
func (c *Context) toWindow(v clip.Vertex) (raster.Vertex, bool) {
	w := v.Position[3]
	if w < minW {
		return raster.Vertex{}, false
	}
	inv := 1 / w
	vp := c.viewport
	return raster.Vertex{
		X:     float32(vp.X) + (v.Position[0]*inv+1)*0.5*float32(vp.Width),
		Y:     float32(vp.Y) + (1-v.Position[1]*inv)*0.5*float32(vp.Height),
		Z:     (v.Position[2]*inv + 1) * 0.5,
		InvW:  inv,
		Attrs: v.Attrs,
	}, true
}
