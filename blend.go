package forge

import "github.com/gogpu/forge/internal/blend"

// BlendFunc combines a source fragment color with the destination pixel
// already stored in the target buffer. Results must stay in range; the
// built-in operators saturate instead of wrapping.
//
// A BlendFunc may be called from several goroutines at once while a large
// triangle is rasterized, so custom operators must not keep mutable state.
type BlendFunc func(src, dst Color) Color

// BlendDisabled returns the source unchanged.
func BlendDisabled(src, _ Color) Color {
	return src
}

// BlendAlpha interpolates from destination to source by the source alpha:
// out = src*a + dst*(1-a), applied to all four channels.
func BlendAlpha(src, dst Color) Color {
	a := src.A
	return Color{
		R: blend.Lerp(src.R, dst.R, a),
		G: blend.Lerp(src.G, dst.G, a),
		B: blend.Lerp(src.B, dst.B, a),
		A: blend.Lerp(src.A, dst.A, a),
	}
}

// BlendAdditive adds source to destination, saturating at 255.
func BlendAdditive(src, dst Color) Color {
	return Color{
		R: blend.AddSat(dst.R, src.R),
		G: blend.AddSat(dst.G, src.G),
		B: blend.AddSat(dst.B, src.B),
		A: blend.AddSat(dst.A, src.A),
	}
}

// BlendSubtractive subtracts the source color from the destination,
// saturating at 0. Alpha is kept from the destination.
func BlendSubtractive(src, dst Color) Color {
	return Color{
		R: blend.SubSat(dst.R, src.R),
		G: blend.SubSat(dst.G, src.G),
		B: blend.SubSat(dst.B, src.B),
		A: dst.A,
	}
}

// BlendMultiplicative multiplies source and destination channel by channel.
func BlendMultiplicative(src, dst Color) Color {
	return src.Modulate(dst)
}

// BlendAverage returns the per-channel mean of source and destination.
func BlendAverage(src, dst Color) Color {
	return Color{
		R: blend.Avg(src.R, dst.R),
		G: blend.Avg(src.G, dst.G),
		B: blend.Avg(src.B, dst.B),
		A: blend.Avg(src.A, dst.A),
	}
}
