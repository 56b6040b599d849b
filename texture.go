package forge

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Texture is a rectangular pixel buffer in an arbitrary PixelFormat.
//
// Textures are caller resources: the pipeline samples a bound texture and
// writes into a framebuffer's color texture but never frees either. A
// texture becomes invalid after Delete or when its creation failed; methods
// on an invalid texture return zero values and errors wrapping
// InvalidOperation.
//
// Texture implements image.Image and draw.Image so it can be used with the
// standard image packages and golang.org/x/image/draw.
type Texture struct {
	pixels []byte
	width  int
	height int
	format PixelFormat
	codec  Codec
}

var _ draw.Image = (*Texture)(nil)

// NewTexture creates a texture of the given size and format.
//
// If pixels is nil, zeroed storage of width*height*stride bytes is
// allocated. Otherwise pixels is used directly (not copied) and must hold at
// least that many bytes.
func NewTexture(pixels []byte, width, height int, format PixelFormat) (*Texture, error) {
	codec, ok := LookupCodec(format)
	if !ok {
		return nil, fmt.Errorf("forge: texture format %v: %w", format, InvalidEnum)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("forge: invalid texture dimensions %dx%d: %w", width, height, InvalidOperation)
	}
	size, ok := imageSize(width, height, codec.BytesPerPixel())
	if !ok {
		return nil, fmt.Errorf("forge: %dx%d %v texture: %w", width, height, format, OutOfMemory)
	}
	if pixels == nil {
		var err error
		if pixels, err = allocBytes(size); err != nil {
			return nil, fmt.Errorf("forge: %dx%d %v texture: %w", width, height, format, err)
		}
	} else if len(pixels) < size {
		return nil, fmt.Errorf("forge: texture data has %d bytes, need %d: %w", len(pixels), size, InvalidOperation)
	}
	Logger().Debug("forge: texture created", "width", width, "height", height, "format", format)
	return &Texture{
		pixels: pixels[:size],
		width:  width,
		height: height,
		format: format,
		codec:  codec,
	}, nil
}

// NewColorTexture creates a texture filled with c.
func NewColorTexture(width, height int, c Color, format PixelFormat) (*Texture, error) {
	t, err := NewTexture(nil, width, height, format)
	if err != nil {
		return nil, err
	}
	t.Fill(c)
	return t, nil
}

// imageSize returns width*height*bpp, or false on overflow.
func imageSize(width, height, bpp int) (int, bool) {
	if width > math.MaxInt/height || width*height > math.MaxInt/bpp {
		return 0, false
	}
	return width * height * bpp, true
}

// allocBytes allocates n zeroed bytes, converting an allocator refusal
// into OutOfMemory.
func allocBytes(n int) (b []byte, err error) {
	defer func() {
		if recover() != nil {
			b, err = nil, OutOfMemory
		}
	}()
	return make([]byte, n), nil
}

// IsValid reports whether the texture holds storage.
func (t *Texture) IsValid() bool {
	return t != nil && t.codec != nil
}

// Delete releases the texture's storage. The texture is invalid afterwards.
// Delete is idempotent.
func (t *Texture) Delete() {
	if t == nil {
		return
	}
	t.pixels = nil
	t.codec = nil
	t.width, t.height = 0, 0
}

// Width returns the width in pixels.
func (t *Texture) Width() int {
	if t == nil {
		return 0
	}
	return t.width
}

// Height returns the height in pixels.
func (t *Texture) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Format returns the pixel format.
func (t *Texture) Format() PixelFormat {
	if t == nil {
		return FormatUnknown
	}
	return t.format
}

// Pixels returns the raw pixel bytes.
func (t *Texture) Pixels() []byte {
	if t == nil {
		return nil
	}
	return t.pixels
}

// Codec returns the codec resolved when the texture was created.
func (t *Texture) Codec() Codec {
	if t == nil {
		return nil
	}
	return t.codec
}

func (t *Texture) checkPixel(x, y int) error {
	if !t.IsValid() {
		return fmt.Errorf("forge: texture is not valid: %w", InvalidOperation)
	}
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return fmt.Errorf("forge: pixel (%d,%d) outside %dx%d texture: %w", x, y, t.width, t.height, InvalidOperation)
	}
	return nil
}

// Pixel returns the color at (x, y).
func (t *Texture) Pixel(x, y int) (Color, error) {
	if err := t.checkPixel(x, y); err != nil {
		return Color{}, err
	}
	return t.codec.Decode(t.pixels, y*t.width+x), nil
}

// SetPixel stores c at (x, y).
func (t *Texture) SetPixel(x, y int, c Color) error {
	if err := t.checkPixel(x, y); err != nil {
		return err
	}
	t.codec.Encode(t.pixels, y*t.width+x, c)
	return nil
}

// wrap maps a normalized coordinate to a texel index with repeat
// addressing. Power-of-two sizes use a mask; other sizes use a floored
// modulo, so both tile seamlessly.
func wrap(u float32, size int) int {
	f := math.Floor(float64(u) * float64(size))
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	i := int(f)
	if size&(size-1) == 0 {
		return i & (size - 1)
	}
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// texelIndex returns the pixel index addressed by (u, v).
func (t *Texture) texelIndex(u, v float32) int {
	return wrap(v, t.height)*t.width + wrap(u, t.width)
}

// Sample returns the texel at normalized coordinates (u, v) with repeat
// wrapping and nearest filtering. An invalid texture samples as Transparent.
func (t *Texture) Sample(u, v float32) Color {
	if !t.IsValid() {
		return Transparent
	}
	return t.codec.Decode(t.pixels, t.texelIndex(u, v))
}

// SetSample stores c at the texel addressed by (u, v).
func (t *Texture) SetSample(u, v float32, c Color) {
	if !t.IsValid() {
		return
	}
	t.codec.Encode(t.pixels, t.texelIndex(u, v), c)
}

// Fill sets every pixel to c.
func (t *Texture) Fill(c Color) {
	if !t.IsValid() {
		return
	}
	t.codec.Encode(t.pixels, 0, c)
	// Copy-doubling keeps codec calls to one per fill.
	for n := t.codec.BytesPerPixel(); n < len(t.pixels); n *= 2 {
		copy(t.pixels[n:], t.pixels[:n])
	}
}

// ColorModel implements the image.Image interface.
func (t *Texture) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the image.Image interface.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width(), t.Height())
}

// At implements the image.Image interface.
func (t *Texture) At(x, y int) color.Color {
	c, _ := t.Pixel(x, y)
	return c.NRGBA()
}

// Set implements the draw.Image interface.
func (t *Texture) Set(x, y int, c color.Color) {
	_ = t.SetPixel(x, y, FromColor(c))
}
