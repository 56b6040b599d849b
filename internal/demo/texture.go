package demo

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/forge"
)

// LoadTexture decodes the image file at path into an RGBA texture whose
// sides are rounded up to powers of two.
func LoadTexture(path string) (*forge.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("demo: open texture: %w", err)
	}
	defer f.Close()

	img, kind, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("demo: decode %s: %w", path, err)
	}
	forge.Logger().Debug("demo: texture decoded", "path", path, "format", kind,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	tex, err := forge.NewTextureFromImage(img, forge.FormatR8G8B8A8)
	if err != nil {
		return nil, err
	}
	w, h := forge.NextPowerOfTwo(tex.Width()), forge.NextPowerOfTwo(tex.Height())
	if w == tex.Width() && h == tex.Height() {
		return tex, nil
	}
	defer tex.Delete()
	return tex.Resize(w, h, xdraw.CatmullRom)
}

// Checkerboard returns a size x size texture of cell-sized light and dark
// squares.
func Checkerboard(size, cell int) (*forge.Texture, error) {
	tex, err := forge.NewColorTexture(size, size, forge.White, forge.FormatR8G8B8A8)
	if err != nil {
		return nil, err
	}
	dark := forge.RGB(150, 150, 160)
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 1 {
				if err := tex.SetPixel(x, y, dark); err != nil {
					return nil, err
				}
			}
		}
	}
	return tex, nil
}
