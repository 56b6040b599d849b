package forge

import (
	"errors"
	"image"
	"image/color"
	"testing"

	xdraw "golang.org/x/image/draw"
)

// =============================================================================
// Texture Creation Tests
// =============================================================================

func TestNewTextureZeroed(t *testing.T) {
	tex, err := NewTexture(nil, 3, 2, FormatR8G8B8A8)
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	if len(tex.Pixels()) != 3*2*4 {
		t.Fatalf("len(Pixels()) = %d, want 24", len(tex.Pixels()))
	}
	for i, b := range tex.Pixels() {
		if b != 0 {
			t.Fatalf("pixel byte %d = %d, want 0", i, b)
		}
	}
	if !tex.IsValid() {
		t.Error("new texture is not valid")
	}
}

func TestNewTextureErrors(t *testing.T) {
	tests := []struct {
		name   string
		pixels []byte
		w, h   int
		format PixelFormat
		want   ErrorCode
	}{
		{"unknown format", nil, 2, 2, FormatUnknown, InvalidEnum},
		{"zero width", nil, 0, 2, FormatR8G8B8A8, InvalidOperation},
		{"negative height", nil, 2, -1, FormatR8G8B8A8, InvalidOperation},
		{"short buffer", make([]byte, 3), 2, 2, FormatR8G8B8A8, InvalidOperation},
		{"overflow", nil, 1 << 40, 1 << 40, FormatR8G8B8A8, OutOfMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := NewTexture(tt.pixels, tt.w, tt.h, tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewTexture() error = %v, want %v", err, tt.want)
			}
			if tex.IsValid() {
				t.Error("failed NewTexture returned a valid texture")
			}
		})
	}
}

func TestNewTextureUsesCallerBuffer(t *testing.T) {
	buf := make([]byte, 4)
	tex, err := NewTexture(buf, 1, 1, FormatR8G8B8A8)
	if err != nil {
		t.Fatal(err)
	}
	_ = tex.SetPixel(0, 0, Color{9, 8, 7, 6})
	if buf[0] != 9 || buf[3] != 6 {
		t.Errorf("caller buffer = %v, want writes visible", buf)
	}
}

func TestNewColorTexture(t *testing.T) {
	c := Color{10, 20, 30, 40}
	tex, err := NewColorTexture(5, 3, c, FormatR4G4B4A4)
	if err != nil {
		t.Fatal(err)
	}
	want := tex.Codec().Decode(tex.Pixels(), 0)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got, _ := tex.Pixel(x, y); got != want {
				t.Fatalf("Pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// =============================================================================
// Pixel Access Tests
// =============================================================================

func TestTexturePixelBounds(t *testing.T) {
	tex, _ := NewTexture(nil, 2, 2, FormatR8G8B8A8)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if err := tex.SetPixel(p[0], p[1], White); !errors.Is(err, InvalidOperation) {
			t.Errorf("SetPixel(%v) = %v, want InvalidOperation", p, err)
		}
		if _, err := tex.Pixel(p[0], p[1]); !errors.Is(err, InvalidOperation) {
			t.Errorf("Pixel(%v) = %v, want InvalidOperation", p, err)
		}
	}
}

func TestTextureSampleQuadrants(t *testing.T) {
	colors := []Color{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 128},
	}
	pixels := make([]byte, 0, 16)
	for _, c := range colors {
		pixels = append(pixels, c.R, c.G, c.B, c.A)
	}
	tex, err := NewTexture(pixels, 2, 2, FormatR8G8B8A8)
	if err != nil {
		t.Fatal(err)
	}

	uv := [][2]float32{{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.75}, {0.75, 0.75}}
	for i, p := range uv {
		if got := tex.Sample(p[0], p[1]); got != colors[i] {
			t.Errorf("Sample(%v) = %v, want %v", p, got, colors[i])
		}
	}
}

func TestTextureSampleWrap(t *testing.T) {
	tests := []struct {
		name string
		w    int
		u    float32
		want int
	}{
		{"pot inside", 4, 0.6, 2},
		{"pot repeat", 4, 1.3, 1},
		{"pot negative", 4, -0.1, 3},
		{"npot inside", 3, 0.5, 1},
		{"npot repeat", 3, 1.5, 1},
		{"npot negative", 3, -0.2, 2},
		{"exact one", 3, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.u, tt.w); got != tt.want {
				t.Errorf("wrap(%v, %d) = %d, want %d", tt.u, tt.w, got, tt.want)
			}
		})
	}
}

func TestTextureSetSample(t *testing.T) {
	tex, _ := NewTexture(nil, 4, 4, FormatR8G8B8A8)
	tex.SetSample(0.6, 0.1, White)
	if got, _ := tex.Pixel(2, 0); got != White {
		t.Errorf("Pixel(2,0) = %v, want White", got)
	}
}

func TestTextureDelete(t *testing.T) {
	tex, _ := NewTexture(nil, 2, 2, FormatR8G8B8A8)
	tex.Delete()
	tex.Delete()
	if tex.IsValid() {
		t.Error("deleted texture is valid")
	}
	if err := tex.SetPixel(0, 0, White); !errors.Is(err, InvalidOperation) {
		t.Errorf("SetPixel on deleted texture = %v, want InvalidOperation", err)
	}
	if got := tex.Sample(0.5, 0.5); got != Transparent {
		t.Errorf("Sample on deleted texture = %v, want Transparent", got)
	}
}

// =============================================================================
// Image Interop Tests
// =============================================================================

func TestNewTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.SetNRGBA(10, 10, color.NRGBA{1, 2, 3, 255})
	img.SetNRGBA(11, 10, color.NRGBA{4, 5, 6, 255})

	tex, err := NewTextureFromImage(img, FormatR8G8B8A8)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width() != 2 || tex.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width(), tex.Height())
	}
	if got, _ := tex.Pixel(1, 0); got != (Color{4, 5, 6, 255}) {
		t.Errorf("Pixel(1,0) = %v", got)
	}
}

func TestTextureResize(t *testing.T) {
	tex, _ := NewColorTexture(3, 5, Color{200, 100, 50, 255}, FormatR8G8B8A8)
	big, err := tex.Resize(NextPowerOfTwo(3), NextPowerOfTwo(5), xdraw.NearestNeighbor)
	if err != nil {
		t.Fatal(err)
	}
	if big.Width() != 4 || big.Height() != 8 {
		t.Fatalf("size = %dx%d, want 4x8", big.Width(), big.Height())
	}
	if got, _ := big.Pixel(3, 7); got != (Color{200, 100, 50, 255}) {
		t.Errorf("Pixel(3,7) = %v", got)
	}
}

// =============================================================================
// Framebuffer Tests
// =============================================================================

func TestFramebufferClear(t *testing.T) {
	fb, err := NewFramebuffer(3, 3, FormatR8G8B8A8)
	if err != nil {
		t.Fatal(err)
	}
	_ = fb.SetPixelDepth(1, 1, 0.25, White)
	fb.Clear(Color{1, 2, 3, 4})

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c, _ := fb.Pixel(x, y); c != (Color{1, 2, 3, 4}) {
				t.Fatalf("Pixel(%d,%d) = %v after Clear", x, y, c)
			}
			if d, _ := fb.Depth(x, y); d != 1 {
				t.Fatalf("Depth(%d,%d) = %v after Clear, want 1", x, y, d)
			}
		}
	}
}

func TestFramebufferDepth(t *testing.T) {
	fb, _ := NewFramebuffer(2, 2, FormatR5G6B5)
	if err := fb.SetPixelDepth(1, 0, 0.5, White); err != nil {
		t.Fatal(err)
	}
	if d, _ := fb.Depth(1, 0); d != 0.5 {
		t.Errorf("Depth(1,0) = %v, want 0.5", d)
	}
	if _, err := fb.Depth(2, 0); !errors.Is(err, InvalidOperation) {
		t.Errorf("Depth out of range = %v, want InvalidOperation", err)
	}
}

func TestFramebufferDelete(t *testing.T) {
	fb, _ := NewFramebuffer(2, 2, FormatR8G8B8A8)
	fb.Delete()
	if fb.IsValid() {
		t.Error("deleted framebuffer is valid")
	}
	fb.Clear(White)
	if err := fb.SetPixel(0, 0, White); !errors.Is(err, InvalidOperation) {
		t.Errorf("SetPixel on deleted framebuffer = %v", err)
	}
}
