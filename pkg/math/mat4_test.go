package math

import (
	"math"
	"testing"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approxVec3(a, b Vec3) bool {
	return abs(a.X-b.X) < 1e-4 && abs(a.Y-b.Y) < 1e-4 && abs(a.Z-b.Z) < 1e-4
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := LookAt(Vec3{1, 2, 3}, Vec3{}, Vec3{Y: 1})
	result := m.Mul(Identity())
	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{Y: 1})

	// The eye maps to the origin and the target lies on -Z.
	if got := m.TransformVec3(eye); !approxVec3(got, Vec3{}) {
		t.Errorf("LookAt eye: got %v, want origin", got)
	}
	if got := m.TransformVec3(Vec3{}); !approxVec3(got, Vec3{0, 0, -5}) {
		t.Errorf("LookAt target: got %v, want (0, 0, -5)", got)
	}
	if got := m.TransformVec3(Vec3{X: 1}); !approxVec3(got, Vec3{1, 0, -5}) {
		t.Errorf("LookAt right: got %v, want (1, 0, -5)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 1, 1, 100)

	// Points on the near and far planes map to -1 and +1 in NDC depth.
	if got := m.TransformVec3(Vec3{0, 0, -1}); abs(got.Z+1) > 1e-4 {
		t.Errorf("near plane depth: got %v, want -1", got.Z)
	}
	if got := m.TransformVec3(Vec3{0, 0, -100}); abs(got.Z-1) > 1e-3 {
		t.Errorf("far plane depth: got %v, want 1", got.Z)
	}
	// 90 degree fov: x == -z lands on the right edge.
	if got := m.TransformVec3(Vec3{2, 0, -2}); abs(got.X-1) > 1e-4 {
		t.Errorf("frustum edge: got %v, want 1", got.X)
	}
}
