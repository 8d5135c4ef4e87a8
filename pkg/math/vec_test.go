package math

import (
	"testing"
)

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("Vec2.Cross() = %v, want -1", got)
	}
}

func TestVec2ApproxEqual(t *testing.T) {
	a := Vec2{0.5, 0.25}
	if !a.ApproxEqual(Vec2{0.5001, 0.2499}, 0.001) {
		t.Error("expected vectors to be approximately equal")
	}
	if a.ApproxEqual(Vec2{0.6, 0.25}, 0.001) {
		t.Error("expected vectors to differ")
	}
}

func TestVec2In01(t *testing.T) {
	tests := []struct {
		v    Vec2
		want bool
	}{
		{Vec2{0, 0}, true},
		{Vec2{1, 1}, true},
		{Vec2{0.5, 0.75}, true},
		{Vec2{-0.01, 0.5}, false},
		{Vec2{0.5, 1.01}, false},
	}
	for _, tt := range tests {
		if got := tt.v.In01(); got != tt.want {
			t.Errorf("%v.In01() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 0, -4}.Normalize()
	if n != (Vec3{0, 0, -1}) {
		t.Errorf("Vec3.Normalize() = %v, want {0 0 -1}", n)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("Vec3.Normalize() of zero = %v, want zero", z)
	}
}
