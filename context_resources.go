package forge

import "fmt"

// ClearFlags selects the buffers Clear resets.
type ClearFlags uint8

const (
	// ColorBuffer resets every pixel to the clear color.
	ColorBuffer ClearFlags = 1 << iota
	// DepthBuffer resets every depth value to the far plane.
	DepthBuffer
)

// GenTexture creates a texture like NewTexture. On failure it records the
// error code and returns an invalid (nil) texture.
func (c *Context) GenTexture(pixels []byte, width, height int, format PixelFormat) *Texture {
	if !c.checkOpen("GenTexture") {
		return nil
	}
	t, err := NewTexture(pixels, width, height, format)
	if err != nil {
		c.recordErr("GenTexture", err)
		return nil
	}
	return t
}

// GenFramebuffer creates a framebuffer like NewFramebuffer. On failure it
// records the error code and returns an invalid (nil) framebuffer.
func (c *Context) GenFramebuffer(width, height int, format PixelFormat) *Framebuffer {
	if !c.checkOpen("GenFramebuffer") {
		return nil
	}
	fb, err := NewFramebuffer(width, height, format)
	if err != nil {
		c.recordErr("GenFramebuffer", err)
		return nil
	}
	return fb
}

// BindTexture selects the texture sampled when Texture2D is enabled. Nil
// unbinds. Binding a deleted texture, or the color texture of the bound
// framebuffer, records InvalidOperation.
func (c *Context) BindTexture(t *Texture) {
	if !c.checkOpen("BindTexture") {
		return
	}
	if t == nil {
		c.texture = nil
		return
	}
	if !t.IsValid() {
		c.setError(InvalidOperation, "BindTexture", "texture is not valid")
		return
	}
	if c.framebuffer != nil && c.framebuffer.color == t {
		c.setError(InvalidOperation, "BindTexture", "texture is the bound framebuffer's color target")
		return
	}
	c.texture = t
}

// ActiveTexture returns the bound texture, or nil.
func (c *Context) ActiveTexture() *Texture {
	return c.texture
}

// BindFramebuffer redirects drawing into fb. Nil restores the screen.
// Binding a deleted framebuffer, or one whose color texture is bound for
// sampling, records InvalidOperation.
func (c *Context) BindFramebuffer(fb *Framebuffer) {
	if !c.checkOpen("BindFramebuffer") {
		return
	}
	if fb == nil {
		c.framebuffer = nil
		return
	}
	if !fb.IsValid() {
		c.setError(InvalidOperation, "BindFramebuffer", "framebuffer is not valid")
		return
	}
	if c.texture != nil && c.texture == fb.color {
		c.setError(InvalidOperation, "BindFramebuffer", "framebuffer color target is bound as texture")
		return
	}
	c.framebuffer = fb
}

// ActiveFramebuffer returns the bound framebuffer, or nil when drawing to
// the screen.
func (c *Context) ActiveFramebuffer() *Framebuffer {
	return c.framebuffer
}

// SetClearColor sets the color Clear writes, from floats in [0, 1].
func (c *Context) SetClearColor(r, g, b, a float32) {
	if !c.checkOpen("SetClearColor") {
		return
	}
	c.clearColor = ColorF(r, g, b, a)
}

// ClearColor returns the color Clear writes.
func (c *Context) ClearColor() Color {
	return c.clearColor
}

// Clear resets the selected buffers of the draw target. Unknown flags
// record InvalidEnum.
func (c *Context) Clear(flags ClearFlags) {
	if !c.checkOpen("Clear") {
		return
	}
	if flags&^(ColorBuffer|DepthBuffer) != 0 {
		c.setError(InvalidEnum, "Clear", fmt.Sprintf("unknown flags %#x", uint8(flags)))
		return
	}
	fb := c.target()
	if !fb.IsValid() {
		c.setError(InvalidOperation, "Clear", "draw target is not valid")
		return
	}
	if flags&ColorBuffer != 0 {
		fb.color.Fill(c.clearColor)
	}
	if flags&DepthBuffer != 0 {
		fb.ClearDepth(farDepth)
	}
}
