package forge

import (
	"fmt"
	"sync"
)

// PixelFormat identifies the in-memory layout of one pixel.
type PixelFormat uint8

const (
	// FormatUnknown is the zero value and never has a codec.
	FormatUnknown PixelFormat = iota

	// FormatGrayscale is 8-bit luminance (1 byte per pixel).
	FormatGrayscale

	// FormatGrayAlpha is 8-bit luminance followed by 8-bit alpha.
	FormatGrayAlpha

	// FormatR5G6B5 is 16-bit packed RGB, little-endian, red in the high bits.
	FormatR5G6B5

	// FormatR8G8B8 is 24-bit RGB with no alpha.
	FormatR8G8B8

	// FormatR5G5B5A1 is 16-bit packed RGB with a single alpha bit.
	FormatR5G5B5A1

	// FormatR4G4B4A4 is 16-bit packed RGBA with 4 bits per channel.
	FormatR4G4B4A4

	// FormatR8G8B8A8 is 32-bit RGBA, one byte per channel.
	// This is the standard format for most operations.
	FormatR8G8B8A8

	// FormatR32 is a single float32 luminance channel.
	FormatR32

	// FormatR32G32B32 is three float32 channels.
	FormatR32G32B32

	// FormatR32G32B32A32 is four float32 channels.
	FormatR32G32B32A32

	// FormatR16 is a single half-float luminance channel.
	FormatR16

	// FormatR16G16B16 is three half-float channels.
	FormatR16G16B16

	// FormatR16G16B16A16 is four half-float channels.
	FormatR16G16B16A16

	// FormatR16G16B16A16Unorm is four normalized uint16 channels.
	FormatR16G16B16A16Unorm

	// FormatR32G32B32A32Unorm is four normalized uint32 channels.
	FormatR32G32B32A32Unorm

	// formatCount is the number of built-in formats (for internal use).
	formatCount
)

// FormatCustom is the first value available for application formats
// installed with RegisterCodec.
const FormatCustom PixelFormat = 128

// String returns a string representation of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatUnknown:
		return "Unknown"
	case FormatGrayscale:
		return "Grayscale"
	case FormatGrayAlpha:
		return "GrayAlpha"
	case FormatR5G6B5:
		return "R5G6B5"
	case FormatR8G8B8:
		return "R8G8B8"
	case FormatR5G5B5A1:
		return "R5G5B5A1"
	case FormatR4G4B4A4:
		return "R4G4B4A4"
	case FormatR8G8B8A8:
		return "R8G8B8A8"
	case FormatR32:
		return "R32"
	case FormatR32G32B32:
		return "R32G32B32"
	case FormatR32G32B32A32:
		return "R32G32B32A32"
	case FormatR16:
		return "R16"
	case FormatR16G16B16:
		return "R16G16B16"
	case FormatR16G16B16A16:
		return "R16G16B16A16"
	case FormatR16G16B16A16Unorm:
		return "R16G16B16A16Unorm"
	case FormatR32G32B32A32Unorm:
		return "R32G32B32A32Unorm"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// Codec converts between Color and the bytes of one pixel format.
//
// Decode and Encode address pixels by index, not byte offset: pixel i
// occupies pix[i*BytesPerPixel() : (i+1)*BytesPerPixel()]. Encode must
// touch only those bytes, which lets distinct pixels be written from
// different goroutines. Lossy codecs must quantize deterministically so
// that Encode(Decode(Encode(c))) stores the same bytes as Encode(c).
type Codec interface {
	BytesPerPixel() int
	Decode(pix []byte, i int) Color
	Encode(pix []byte, i int, c Color)
}

var (
	codecMu sync.RWMutex
	codecs  = map[PixelFormat]Codec{
		FormatGrayscale:         grayscaleCodec{},
		FormatGrayAlpha:         grayAlphaCodec{},
		FormatR5G6B5:            r5g6b5Codec{},
		FormatR8G8B8:            r8g8b8Codec{},
		FormatR5G5B5A1:          r5g5b5a1Codec{},
		FormatR4G4B4A4:          r4g4b4a4Codec{},
		FormatR8G8B8A8:          r8g8b8a8Codec{},
		FormatR32:               float32Codec{channels: 1},
		FormatR32G32B32:         float32Codec{channels: 3},
		FormatR32G32B32A32:      float32Codec{channels: 4},
		FormatR16:               halfCodec{channels: 1},
		FormatR16G16B16:         halfCodec{channels: 3},
		FormatR16G16B16A16:      halfCodec{channels: 4},
		FormatR16G16B16A16Unorm: unorm16Codec{},
		FormatR32G32B32A32Unorm: unorm32Codec{},
	}
)

// LookupCodec returns the codec registered for f.
func LookupCodec(f PixelFormat) (Codec, bool) {
	codecMu.RLock()
	c, ok := codecs[f]
	codecMu.RUnlock()
	return c, ok
}

// RegisterCodec installs c as the codec for f, replacing any previous one.
// Built-in formats may be overridden. Resources that already resolved a
// codec keep the one they resolved at creation.
func RegisterCodec(f PixelFormat, c Codec) error {
	if f == FormatUnknown {
		return fmt.Errorf("forge: cannot register codec for %v: %w", f, InvalidEnum)
	}
	if c == nil || c.BytesPerPixel() <= 0 {
		return fmt.Errorf("forge: codec for %v must report a positive pixel size: %w", f, InvalidOperation)
	}
	codecMu.Lock()
	codecs[f] = c
	codecMu.Unlock()
	return nil
}

// IsValid returns true if a codec is registered for the format.
func (f PixelFormat) IsValid() bool {
	_, ok := LookupCodec(f)
	return ok
}

// BytesPerPixel returns the pixel stride, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	c, ok := LookupCodec(f)
	if !ok {
		return 0
	}
	return c.BytesPerPixel()
}

// ImageBytes returns the number of bytes needed for a width x height image.
func (f PixelFormat) ImageBytes(width, height int) int {
	return width * height * f.BytesPerPixel()
}
