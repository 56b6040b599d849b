package forge

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/forge/internal/clip"
)

// rasterPosition is the window position DrawPixels starts at.
type rasterPosition struct {
	x, y, z float32
	valid   bool
}

// RasterPos4f sets the raster position to the window position of the
// object-space point (x, y, z, w). A point outside the view volume makes
// the raster position invalid and DrawPixels draws nothing until it is set
// again.
func (c *Context) RasterPos4f(x, y, z, w float32) {
	if !c.checkOpen("RasterPos4f") {
		return
	}
	p := c.projection.Top().Mul4(c.modelview.Top()).Mul4x1(mgl32.Vec4{x, y, z, w})
	v := clip.Vertex{Position: p}
	if !clip.PointVisible(v) {
		c.rasterPos = rasterPosition{}
		return
	}
	win, ok := c.toWindow(v)
	c.rasterPos = rasterPosition{x: win.X, y: win.Y, z: win.Z, valid: ok}
}

// RasterPos2i sets the raster position to (x, y, 0, 1).
func (c *Context) RasterPos2i(x, y int) { c.RasterPos4f(float32(x), float32(y), 0, 1) }

// RasterPos2f sets the raster position to (x, y, 0, 1).
func (c *Context) RasterPos2f(x, y float32) { c.RasterPos4f(x, y, 0, 1) }

// RasterPos2fv sets the raster position to (v[0], v[1], 0, 1).
func (c *Context) RasterPos2fv(v [2]float32) { c.RasterPos4f(v[0], v[1], 0, 1) }

// RasterPos3i sets the raster position to (x, y, z, 1).
func (c *Context) RasterPos3i(x, y, z int) {
	c.RasterPos4f(float32(x), float32(y), float32(z), 1)
}

// RasterPos3f sets the raster position to (x, y, z, 1).
func (c *Context) RasterPos3f(x, y, z float32) { c.RasterPos4f(x, y, z, 1) }

// RasterPos3fv sets the raster position to (v[0], v[1], v[2], 1).
func (c *Context) RasterPos3fv(v [3]float32) { c.RasterPos4f(v[0], v[1], v[2], 1) }

// RasterPos4i sets the raster position to (x, y, z, w).
func (c *Context) RasterPos4i(x, y, z, w int) {
	c.RasterPos4f(float32(x), float32(y), float32(z), float32(w))
}

// RasterPos4fv sets the raster position to v.
func (c *Context) RasterPos4fv(v [4]float32) { c.RasterPos4f(v[0], v[1], v[2], v[3]) }

// RasterPosition returns the current raster position in window
// coordinates and whether it is valid.
func (c *Context) RasterPosition() (x, y, z float32, valid bool) {
	p := c.rasterPos
	return p.x, p.y, p.z, p.valid
}

// PixelZoom sets the size of the window rectangle each DrawPixels source
// pixel covers. Negative factors mirror the image around the raster
// position.
func (c *Context) PixelZoom(xfactor, yfactor float32) {
	if !c.checkOpen("PixelZoom") {
		return
	}
	c.zoomX, c.zoomY = xfactor, yfactor
}

// span returns the window pixels [lo, hi) whose sample points fall inside
// the interval between a and b.
func span(a, b float32) (int, int) {
	if a > b {
		a, b = b, a
	}
	return int(math.Ceil(float64(a))), int(math.Ceil(float64(b)))
}

// DrawPixels writes a width x height image in the given format at the
// raster position. Rows run downwards from the raster position. Each source
// pixel covers a PixelZoom-sized rectangle; the resulting fragments go
// through the depth test and blending at the raster depth, but not through
// lighting or texturing.
func (c *Context) DrawPixels(width, height int, format PixelFormat, pixels []byte) {
	if !c.checkOpen("DrawPixels") {
		return
	}
	codec, ok := LookupCodec(format)
	if !ok {
		c.setError(InvalidEnum, "DrawPixels", "unknown format "+format.String())
		return
	}
	if width < 0 || height < 0 {
		c.setError(InvalidOperation, "DrawPixels", fmt.Sprintf("negative size %dx%d", width, height))
		return
	}
	size, ok := imageSize(max(width, 1), max(height, 1), codec.BytesPerPixel())
	if !ok || (width > 0 && height > 0 && len(pixels) < size) {
		c.setError(InvalidOperation, "DrawPixels", fmt.Sprintf("%d bytes do not hold a %dx%d %v image", len(pixels), width, height, format))
		return
	}
	fb := c.target()
	if !fb.IsValid() {
		c.setError(InvalidOperation, "DrawPixels", "draw target is not valid")
		return
	}
	if !c.rasterPos.valid || width == 0 || height == 0 || c.zoomX == 0 || c.zoomY == 0 {
		return
	}

	pipe := c.pipeline(fb)
	pipe.texture, pipe.lights = nil, nil
	fw, fh := fb.Width(), fb.Height()
	rp := c.rasterPos

	for j := range height {
		y0, y1 := span(rp.y+float32(j)*c.zoomY, rp.y+float32(j+1)*c.zoomY)
		y0, y1 = max(y0, 0), min(y1, fh)
		if y0 >= y1 {
			continue
		}
		for i := range width {
			x0, x1 := span(rp.x+float32(i)*c.zoomX, rp.x+float32(i+1)*c.zoomX)
			x0, x1 = max(x0, 0), min(x1, fw)
			if x0 >= x1 {
				continue
			}
			src := codec.Decode(pixels, j*width+i)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					if pipe.depth != nil && !(rp.z < pipe.depth[y*fw+x]) {
						continue
					}
					pipe.write(x, y, rp.z, src)
				}
			}
		}
	}
}

// ReadPixels copies the width x height rectangle at (x, y) of the draw
// target into dst, converting to the given format. Rows are stored top to
// bottom. The rectangle must lie inside the target and dst must hold it.
func (c *Context) ReadPixels(x, y, width, height int, format PixelFormat, dst []byte) {
	if !c.checkOpen("ReadPixels") {
		return
	}
	codec, ok := LookupCodec(format)
	if !ok {
		c.setError(InvalidEnum, "ReadPixels", "unknown format "+format.String())
		return
	}
	fb := c.target()
	if !fb.IsValid() {
		c.setError(InvalidOperation, "ReadPixels", "read target is not valid")
		return
	}
	if width < 0 || height < 0 || x < 0 || y < 0 || x > fb.Width() || y > fb.Height() ||
		width > fb.Width()-x || height > fb.Height()-y {
		c.setError(InvalidOperation, "ReadPixels", fmt.Sprintf(
			"rectangle %dx%d at (%d,%d) outside %dx%d target", width, height, x, y, fb.Width(), fb.Height()))
		return
	}
	if width == 0 || height == 0 {
		return
	}
	size, ok := imageSize(width, height, codec.BytesPerPixel())
	if !ok || len(dst) < size {
		c.setError(InvalidOperation, "ReadPixels", fmt.Sprintf(
			"%d bytes do not hold a %dx%d %v image", len(dst), width, height, format))
		return
	}

	src := fb.color
	for j := range height {
		row := (y+j)*src.width + x
		for i := range width {
			codec.Encode(dst, j*width+i, src.codec.Decode(src.pixels, row+i))
		}
	}
}
