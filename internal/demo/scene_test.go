package demo

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/forge"
)

func newContext(t *testing.T, w, h int) *forge.Context {
	t.Helper()
	c, err := forge.NewContext(nil, w, h, forge.FormatR8G8B8A8)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestFrame(t *testing.T) {
	for _, textured := range []bool{false, true} {
		c := newContext(t, 64, 48)
		var tex *forge.Texture
		if textured {
			var err error
			if tex, err = Checkerboard(16, 4); err != nil {
				t.Fatalf("Checkerboard() error = %v", err)
			}
		}
		if err := Setup(c, tex); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if err := Frame(c, 30); err != nil {
			t.Fatalf("Frame() error = %v", err)
		}

		bg := c.ClearColor()
		center, err := c.Screen().Pixel(32, 24)
		if err != nil {
			t.Fatal(err)
		}
		if center == bg {
			t.Errorf("textured=%v: cube not drawn at the center", textured)
		}
		corner, _ := c.Screen().Pixel(0, 0)
		if corner != bg {
			t.Errorf("textured=%v: corner = %v, want clear color %v", textured, corner, bg)
		}
		if textured != c.IsEnabled(forge.Texture2D) {
			t.Error("Frame changed the texturing state")
		}
	}
}

func TestFrameDeterministic(t *testing.T) {
	a, b := newContext(t, 40, 30), newContext(t, 40, 30)
	for _, c := range []*forge.Context{a, b} {
		if err := Setup(c, nil); err != nil {
			t.Fatal(err)
		}
		if err := Frame(c, 75); err != nil {
			t.Fatal(err)
		}
	}
	pa, pb := a.Screen().Texture().Pixels(), b.Screen().Texture().Pixels()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("byte %d differs between identical frames", i)
		}
	}
}

func TestCheckerboard(t *testing.T) {
	tex, err := Checkerboard(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		dark bool
	}{
		{0, 0, false}, {1, 1, false}, {2, 0, true}, {0, 2, true}, {2, 2, false}, {7, 5, true},
	}
	for _, tt := range tests {
		got, _ := tex.Pixel(tt.x, tt.y)
		if (got != forge.White) != tt.dark {
			t.Errorf("pixel (%d,%d) = %v, dark = %v", tt.x, tt.y, got, tt.dark)
		}
	}
}

func writeImage(t *testing.T, name string, w, h int, encode func(*os.File, image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 10, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTexture(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		encode       func(*os.File, image.Image) error
		wantW, wantH int
	}{
		{"tex.png", 3, 5, func(f *os.File, m image.Image) error { return png.Encode(f, m) }, 4, 8},
		{"tex.bmp", 4, 4, func(f *os.File, m image.Image) error { return bmp.Encode(f, m) }, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.name, tt.w, tt.h, tt.encode)
			tex, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture() error = %v", err)
			}
			if tex.Width() != tt.wantW || tex.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", tex.Width(), tex.Height(), tt.wantW, tt.wantH)
			}
			if got, _ := tex.Pixel(1, 1); got != (forge.Color{R: 200, G: 40, B: 10, A: 255}) {
				t.Errorf("pixel (1,1) = %v", got)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadTexture(missing) succeeded")
	}
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("LoadTexture(junk) succeeded")
	}
}
