package forge

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// NewTextureFromImage copies img into a new texture of the given format.
// The texture origin is the image's Bounds().Min.
func NewTextureFromImage(img image.Image, format PixelFormat) (*Texture, error) {
	b := img.Bounds()
	t, err := NewTexture(nil, b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}
	xdraw.Copy(t, image.Point{}, img, b, xdraw.Src, nil)
	return t, nil
}

// Resize returns a copy of the texture scaled to width x height with the
// given interpolator (for example xdraw.NearestNeighbor or xdraw.BiLinear).
// A nil interpolator selects bilinear filtering.
//
// Sampling wraps correctly for any size, but power-of-two sizes take the
// mask fast path; Resize is the usual way to bring an image to one.
func (t *Texture) Resize(width, height int, interp xdraw.Interpolator) (*Texture, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("forge: resize of invalid texture: %w", InvalidOperation)
	}
	dst, err := NewTexture(nil, width, height, t.format)
	if err != nil {
		return nil, err
	}
	if interp == nil {
		interp = xdraw.BiLinear
	}
	interp.Scale(dst, dst.Bounds(), t, t.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
