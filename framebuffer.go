package forge

import (
	"fmt"
)

// farDepth is the depth value a cleared depth buffer holds.
const farDepth float32 = 1

// Framebuffer is a render target: a color texture plus an optional
// per-pixel depth buffer holding window-space depth in [0, 1].
//
// Binding a framebuffer with Context.BindFramebuffer redirects all drawing
// into it until it is unbound.
type Framebuffer struct {
	color *Texture
	depth []float32
}

// NewFramebuffer creates an offscreen render target with a depth buffer.
// Color storage is zeroed and depth is cleared to the far plane.
func NewFramebuffer(width, height int, format PixelFormat) (*Framebuffer, error) {
	tex, err := NewTexture(nil, width, height, format)
	if err != nil {
		return nil, err
	}
	depth, err := allocDepth(width * height)
	if err != nil {
		return nil, fmt.Errorf("forge: %dx%d depth buffer: %w", width, height, err)
	}
	fb := &Framebuffer{color: tex, depth: depth}
	fb.ClearDepth(farDepth)
	return fb, nil
}

// wrapFramebuffer builds a framebuffer over caller-owned pixels.
func wrapFramebuffer(pixels []byte, width, height int, format PixelFormat, withDepth bool) (*Framebuffer, error) {
	tex, err := NewTexture(pixels, width, height, format)
	if err != nil {
		return nil, err
	}
	fb := &Framebuffer{color: tex}
	if withDepth {
		if fb.depth, err = allocDepth(width * height); err != nil {
			return nil, err
		}
		fb.ClearDepth(farDepth)
	}
	return fb, nil
}

func allocDepth(n int) (d []float32, err error) {
	defer func() {
		if recover() != nil {
			d, err = nil, OutOfMemory
		}
	}()
	return make([]float32, n), nil
}

// IsValid reports whether the framebuffer holds storage.
func (fb *Framebuffer) IsValid() bool {
	return fb != nil && fb.color.IsValid()
}

// Delete releases the color and depth storage. The framebuffer is invalid
// afterwards. Delete is idempotent.
func (fb *Framebuffer) Delete() {
	if fb == nil {
		return
	}
	fb.color.Delete()
	fb.depth = nil
}

// Texture returns the color target. It may be bound for sampling once the
// framebuffer is no longer the active draw target.
func (fb *Framebuffer) Texture() *Texture {
	if fb == nil {
		return nil
	}
	return fb.color
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.Texture().Width() }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.Texture().Height() }

// HasDepth reports whether the framebuffer owns a depth buffer.
func (fb *Framebuffer) HasDepth() bool {
	return fb.IsValid() && fb.depth != nil
}

// Clear resets every pixel to c and every depth value to the far plane.
func (fb *Framebuffer) Clear(c Color) {
	if !fb.IsValid() {
		return
	}
	fb.color.Fill(c)
	fb.ClearDepth(farDepth)
}

// ClearDepth sets every depth value to d.
func (fb *Framebuffer) ClearDepth(d float32) {
	if !fb.HasDepth() {
		return
	}
	fb.depth[0] = d
	for n := 1; n < len(fb.depth); n *= 2 {
		copy(fb.depth[n:], fb.depth[:n])
	}
}

// Pixel returns the color at (x, y).
func (fb *Framebuffer) Pixel(x, y int) (Color, error) {
	return fb.Texture().Pixel(x, y)
}

// SetPixel stores c at (x, y) without touching depth.
func (fb *Framebuffer) SetPixel(x, y int, c Color) error {
	return fb.Texture().SetPixel(x, y, c)
}

// Depth returns the stored depth at (x, y).
func (fb *Framebuffer) Depth(x, y int) (float32, error) {
	if err := fb.Texture().checkPixel(x, y); err != nil {
		return farDepth, err
	}
	if fb.depth == nil {
		return farDepth, fmt.Errorf("forge: framebuffer has no depth buffer: %w", InvalidOperation)
	}
	return fb.depth[y*fb.color.width+x], nil
}

// SetPixelDepth stores c and depth z at (x, y) unconditionally.
func (fb *Framebuffer) SetPixelDepth(x, y int, z float32, c Color) error {
	if err := fb.SetPixel(x, y, c); err != nil {
		return err
	}
	if fb.depth != nil {
		fb.depth[y*fb.color.width+x] = z
	}
	return nil
}
