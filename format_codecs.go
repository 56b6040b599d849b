package forge

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/gogpu/forge/internal/blend"
)

// alphaThreshold decides the single alpha bit of FormatR5G5B5A1:
// alpha values above it are stored as opaque.
const alphaThreshold = 50

// Channel widening uses bit replication so that decoding an encoded value
// and encoding it again yields the same bits.
func expand5(v uint16) uint8 { return uint8(v<<3 | v>>2) }
func expand6(v uint16) uint8 { return uint8(v<<2 | v>>4) }
func expand4(v uint16) uint8 { return uint8(v<<4 | v) }

type grayscaleCodec struct{}

func (grayscaleCodec) BytesPerPixel() int { return 1 }

func (grayscaleCodec) Decode(pix []byte, i int) Color {
	g := pix[i]
	return Color{g, g, g, 255}
}

func (grayscaleCodec) Encode(pix []byte, i int, c Color) {
	pix[i] = c.luminance()
}

type grayAlphaCodec struct{}

func (grayAlphaCodec) BytesPerPixel() int { return 2 }

func (grayAlphaCodec) Decode(pix []byte, i int) Color {
	g := pix[i*2]
	return Color{g, g, g, pix[i*2+1]}
}

func (grayAlphaCodec) Encode(pix []byte, i int, c Color) {
	pix[i*2] = c.luminance()
	pix[i*2+1] = c.A
}

type r5g6b5Codec struct{}

func (r5g6b5Codec) BytesPerPixel() int { return 2 }

func (r5g6b5Codec) Decode(pix []byte, i int) Color {
	v := binary.LittleEndian.Uint16(pix[i*2:])
	return Color{
		R: expand5(v >> 11 & 0x1F),
		G: expand6(v >> 5 & 0x3F),
		B: expand5(v & 0x1F),
		A: 255,
	}
}

func (r5g6b5Codec) Encode(pix []byte, i int, c Color) {
	v := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	binary.LittleEndian.PutUint16(pix[i*2:], v)
}

type r8g8b8Codec struct{}

func (r8g8b8Codec) BytesPerPixel() int { return 3 }

func (r8g8b8Codec) Decode(pix []byte, i int) Color {
	p := pix[i*3 : i*3+3 : i*3+3]
	return Color{p[0], p[1], p[2], 255}
}

func (r8g8b8Codec) Encode(pix []byte, i int, c Color) {
	p := pix[i*3 : i*3+3 : i*3+3]
	p[0], p[1], p[2] = c.R, c.G, c.B
}

type r5g5b5a1Codec struct{}

func (r5g5b5a1Codec) BytesPerPixel() int { return 2 }

func (r5g5b5a1Codec) Decode(pix []byte, i int) Color {
	v := binary.LittleEndian.Uint16(pix[i*2:])
	c := Color{
		R: expand5(v >> 11 & 0x1F),
		G: expand5(v >> 6 & 0x1F),
		B: expand5(v >> 1 & 0x1F),
	}
	if v&1 != 0 {
		c.A = 255
	}
	return c
}

func (r5g5b5a1Codec) Encode(pix []byte, i int, c Color) {
	v := uint16(c.R>>3)<<11 | uint16(c.G>>3)<<6 | uint16(c.B>>3)<<1
	if c.A > alphaThreshold {
		v |= 1
	}
	binary.LittleEndian.PutUint16(pix[i*2:], v)
}

type r4g4b4a4Codec struct{}

func (r4g4b4a4Codec) BytesPerPixel() int { return 2 }

func (r4g4b4a4Codec) Decode(pix []byte, i int) Color {
	v := binary.LittleEndian.Uint16(pix[i*2:])
	return Color{
		R: expand4(v >> 12 & 0xF),
		G: expand4(v >> 8 & 0xF),
		B: expand4(v >> 4 & 0xF),
		A: expand4(v & 0xF),
	}
}

func (r4g4b4a4Codec) Encode(pix []byte, i int, c Color) {
	v := uint16(c.R>>4)<<12 | uint16(c.G>>4)<<8 | uint16(c.B>>4)<<4 | uint16(c.A>>4)
	binary.LittleEndian.PutUint16(pix[i*2:], v)
}

type r8g8b8a8Codec struct{}

func (r8g8b8a8Codec) BytesPerPixel() int { return 4 }

func (r8g8b8a8Codec) Decode(pix []byte, i int) Color {
	p := pix[i*4 : i*4+4 : i*4+4]
	return Color{p[0], p[1], p[2], p[3]}
}

func (r8g8b8a8Codec) Encode(pix []byte, i int, c Color) {
	p := pix[i*4 : i*4+4 : i*4+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// unitChannels returns the color as normalized floats for 1, 3 or 4
// channel float formats. A single channel carries luminance.
func unitChannels(c Color, channels int) [4]float32 {
	if channels == 1 {
		return [4]float32{float32(c.luminance()) / 255}
	}
	r, g, b, a := c.Floats()
	return [4]float32{r, g, b, a}
}

// fromUnitChannels is the inverse of unitChannels.
func fromUnitChannels(v [4]float32, channels int) Color {
	switch channels {
	case 1:
		l := blend.Unit(v[0])
		return Color{l, l, l, 255}
	case 3:
		return Color{blend.Unit(v[0]), blend.Unit(v[1]), blend.Unit(v[2]), 255}
	default:
		return Color{blend.Unit(v[0]), blend.Unit(v[1]), blend.Unit(v[2]), blend.Unit(v[3])}
	}
}

type float32Codec struct {
	channels int
}

func (f float32Codec) BytesPerPixel() int { return 4 * f.channels }

func (f float32Codec) Decode(pix []byte, i int) Color {
	var v [4]float32
	off := i * f.BytesPerPixel()
	for ch := 0; ch < f.channels; ch++ {
		v[ch] = math.Float32frombits(binary.LittleEndian.Uint32(pix[off+ch*4:]))
	}
	return fromUnitChannels(v, f.channels)
}

func (f float32Codec) Encode(pix []byte, i int, c Color) {
	v := unitChannels(c, f.channels)
	off := i * f.BytesPerPixel()
	for ch := 0; ch < f.channels; ch++ {
		binary.LittleEndian.PutUint32(pix[off+ch*4:], math.Float32bits(v[ch]))
	}
}

type halfCodec struct {
	channels int
}

func (h halfCodec) BytesPerPixel() int { return 2 * h.channels }

func (h halfCodec) Decode(pix []byte, i int) Color {
	var v [4]float32
	off := i * h.BytesPerPixel()
	for ch := 0; ch < h.channels; ch++ {
		v[ch] = float16.Frombits(binary.LittleEndian.Uint16(pix[off+ch*2:])).Float32()
	}
	return fromUnitChannels(v, h.channels)
}

func (h halfCodec) Encode(pix []byte, i int, c Color) {
	v := unitChannels(c, h.channels)
	off := i * h.BytesPerPixel()
	for ch := 0; ch < h.channels; ch++ {
		binary.LittleEndian.PutUint16(pix[off+ch*2:], float16.Fromfloat32(v[ch]).Bits())
	}
}

type unorm16Codec struct{}

func (unorm16Codec) BytesPerPixel() int { return 8 }

func (unorm16Codec) Decode(pix []byte, i int) Color {
	p := pix[i*8 : i*8+8 : i*8+8]
	ch := func(o int) uint8 {
		return uint8((uint32(binary.LittleEndian.Uint16(p[o:]))*255 + 32767) / 65535)
	}
	return Color{ch(0), ch(2), ch(4), ch(6)}
}

func (unorm16Codec) Encode(pix []byte, i int, c Color) {
	p := pix[i*8 : i*8+8 : i*8+8]
	binary.LittleEndian.PutUint16(p[0:], uint16(c.R)*257)
	binary.LittleEndian.PutUint16(p[2:], uint16(c.G)*257)
	binary.LittleEndian.PutUint16(p[4:], uint16(c.B)*257)
	binary.LittleEndian.PutUint16(p[6:], uint16(c.A)*257)
}

type unorm32Codec struct{}

func (unorm32Codec) BytesPerPixel() int { return 16 }

func (unorm32Codec) Decode(pix []byte, i int) Color {
	p := pix[i*16 : i*16+16 : i*16+16]
	ch := func(o int) uint8 {
		return uint8((uint64(binary.LittleEndian.Uint32(p[o:]))*255 + math.MaxUint32/2) / math.MaxUint32)
	}
	return Color{ch(0), ch(4), ch(8), ch(12)}
}

func (unorm32Codec) Encode(pix []byte, i int, c Color) {
	p := pix[i*16 : i*16+16 : i*16+16]
	binary.LittleEndian.PutUint32(p[0:], uint32(c.R)*0x01010101)
	binary.LittleEndian.PutUint32(p[4:], uint32(c.G)*0x01010101)
	binary.LittleEndian.PutUint32(p[8:], uint32(c.B)*0x01010101)
	binary.LittleEndian.PutUint32(p[12:], uint32(c.A)*0x01010101)
}
