package forge

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMatrixStackPushPopExact(t *testing.T) {
	s := NewMatrixStack()
	base := mgl32.Translate3D(1.25, -3, 7).Mul4(mgl32.HomogRotate3D(0.3, mgl32.Vec3{0, 1, 0}))
	s.Load(base)

	for n := 1; n < MaxMatrixStackDepth; n++ {
		for i := 0; i < n; i++ {
			if err := s.Push(); err != nil {
				t.Fatalf("Push %d/%d: %v", i, n, err)
			}
			s.Mul(mgl32.Scale3D(1.1, 0.9, 3))
		}
		for i := 0; i < n; i++ {
			if err := s.Pop(); err != nil {
				t.Fatalf("Pop %d/%d: %v", i, n, err)
			}
		}
		if s.Top() != base {
			t.Fatalf("after %d push/pop pairs top = %v, want %v", n, s.Top(), base)
		}
	}
}

func TestMatrixStackOverflow(t *testing.T) {
	s := NewMatrixStack()
	for i := 1; i < MaxMatrixStackDepth; i++ {
		if err := s.Push(); err != nil {
			t.Fatalf("Push #%d: %v", i, err)
		}
	}
	s.Load(mgl32.Scale3D(2, 2, 2))
	before := s

	if err := s.Push(); !errors.Is(err, StackOverflow) {
		t.Errorf("Push on full stack = %v, want StackOverflow", err)
	}
	if s != before {
		t.Error("failed Push modified the stack")
	}
}

func TestMatrixStackUnderflow(t *testing.T) {
	s := NewMatrixStack()
	s.Load(mgl32.Translate3D(4, 5, 6))
	before := s

	if err := s.Pop(); !errors.Is(err, StackOverflow) {
		t.Errorf("Pop on single-element stack = %v, want StackOverflow", err)
	}
	if s != before {
		t.Error("failed Pop modified the stack")
	}
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		name string
		axis mgl32.Vec3
		ok   bool
	}{
		{"z axis", mgl32.Vec3{0, 0, 1}, true},
		{"unnormalized", mgl32.Vec3{0, 0, 5}, true},
		{"zero axis", mgl32.Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := rotation(90, tt.axis)
			if ok != tt.ok {
				t.Fatalf("rotation ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
			if !got.ApproxEqualThreshold(mgl32.Vec4{0, 1, 0, 1}, 1e-6) {
				t.Errorf("rotate (1,0,0) by 90 = %v, want (0,1,0)", got)
			}
		})
	}
}

func TestProjectionValidation(t *testing.T) {
	tests := []struct {
		name               string
		l, r, b, tp, n, f  float64
		frustumOK, orthoOK bool
	}{
		{"valid", -1, 1, -1, 1, 1, 10, true, true},
		{"zero near", -1, 1, -1, 1, 0, 10, false, true},
		{"near beyond far", -1, 1, -1, 1, 10, 1, false, true},
		{"empty width", 1, 1, -1, 1, 1, 10, false, false},
		{"empty height", -1, 1, 2, 2, 1, 10, false, false},
		{"empty depth", -1, 1, -1, 1, 3, 3, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := frustum(tt.l, tt.r, tt.b, tt.tp, tt.n, tt.f); ok != tt.frustumOK {
				t.Errorf("frustum ok = %v, want %v", ok, tt.frustumOK)
			}
			if _, ok := ortho(tt.l, tt.r, tt.b, tt.tp, tt.n, tt.f); ok != tt.orthoOK {
				t.Errorf("ortho ok = %v, want %v", ok, tt.orthoOK)
			}
		})
	}
}
