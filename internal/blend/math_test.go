package blend

import (
	"testing"
)

// TestDiv255 checks the shift formula against integer division for every
// product of two bytes.
func TestDiv255(t *testing.T) {
	for x := uint32(0); x <= 255*255; x++ {
		if got, want := div255(x), x/255; got != want {
			t.Fatalf("div255(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestMulDiv255(t *testing.T) {
	tests := []struct {
		a, b byte
		want byte
	}{
		{0, 0, 0},
		{255, 255, 255},
		{0, 255, 0},
		{255, 0, 0},
		{128, 128, 64},
		{200, 100, 78},
		{1, 255, 1},
		{255, 1, 1},
		{127, 127, 63},
	}
	for _, tt := range tests {
		if got := MulDiv255(tt.a, tt.b); got != tt.want {
			t.Errorf("MulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestMulDiv255Identity verifies x*255/255 == x for every byte.
func TestMulDiv255Identity(t *testing.T) {
	for x := 0; x <= 255; x++ {
		if got := MulDiv255(byte(x), 255); got != byte(x) {
			t.Errorf("MulDiv255(%d, 255) = %d", x, got)
		}
		if got := MulDiv255(byte(x), 0); got != 0 {
			t.Errorf("MulDiv255(%d, 0) = %d", x, got)
		}
	}
}

func TestLerpEndpoints(t *testing.T) {
	for s := 0; s <= 255; s += 5 {
		for d := 0; d <= 255; d += 3 {
			if got := Lerp(byte(s), byte(d), 255); got != byte(s) {
				t.Fatalf("Lerp(%d, %d, 255) = %d, want %d", s, d, got, s)
			}
			if got := Lerp(byte(s), byte(d), 0); got != byte(d) {
				t.Fatalf("Lerp(%d, %d, 0) = %d, want %d", s, d, got, d)
			}
		}
	}
}

func TestSaturation(t *testing.T) {
	tests := []struct {
		name string
		got  byte
		want byte
	}{
		{"add below", AddSat(100, 100), 200},
		{"add clamp", AddSat(200, 100), 255},
		{"sub above", SubSat(200, 50), 150},
		{"sub clamp", SubSat(50, 200), 0},
		{"sub equal", SubSat(7, 7), 0},
		{"avg", Avg(255, 254), 254},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestUnit(t *testing.T) {
	tests := []struct {
		in   float32
		want byte
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := Unit(tt.in); got != tt.want {
			t.Errorf("Unit(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
