// Package blend provides saturating byte arithmetic for color compositing.
//
// Every helper keeps results inside 0-255: sums clamp at 255, differences
// clamp at 0, and products are divided by 255 with exact rounding so that
// the identities a*255/255 == a and a*0/255 == 0 always hold.
//
// References:
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255 divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
//
// This is Alvy Ray Smith's formula. It is exact for every product of two
// bytes, which keeps alpha blending endpoints stable.
func div255(x uint32) uint32 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// MulDiv255 multiplies two bytes and divides by 255, rounding to nearest.
func MulDiv255(a, b byte) byte {
	return byte(div255(uint32(a)*uint32(b) + 127))
}

// Lerp returns d + (s-d)*t/255 with t in 0-255.
//
// Lerp(s, d, 255) == s and Lerp(s, d, 0) == d for all inputs.
func Lerp(s, d, t byte) byte {
	return byte(div255(uint32(s)*uint32(t) + uint32(d)*uint32(255-t) + 127))
}

// AddSat adds two bytes and clamps to 255.
func AddSat(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// SubSat subtracts b from a, clamping to 0.
func SubSat(a, b byte) byte {
	if b >= a {
		return 0
	}
	return a - b
}

// Avg returns the rounded-down mean of two bytes.
func Avg(a, b byte) byte {
	return byte((uint16(a) + uint16(b)) >> 1)
}

// Unit converts a normalized float to a byte, clamping to [0, 1] first.
func Unit(f float32) byte {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return byte(f*255 + 0.5)
}
