package geom

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -2, 1}

	if got := a.Add(b); got != (Vec3{5, 0, 4}) {
		t.Errorf("Add: expected {5 0 4}, got %v", got)
	}

	if got := a.Sub(b); got != (Vec3{-3, 4, 2}) {
		t.Errorf("Sub: expected {-3 4 2}, got %v", got)
	}

	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: expected {2 4 6}, got %v", got)
	}

	if got := a.Dot(b); got != 3 {
		t.Errorf("Dot: expected 3, got %f", got)
	}
}

func TestLengthAndDistance(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Length: expected 5, got %f", got)
	}

	if got := Distance(Vec3{1, 1, 1}, Vec3{1, 1, 11}); got != 10 {
		t.Errorf("Distance: expected 10, got %f", got)
	}
}

func TestNormalized(t *testing.T) {
	v := Vec3{0, 0, 7}
	n := v.Normalized()
	if n != (Vec3{0, 0, 1}) {
		t.Errorf("Normalized: expected {0 0 1}, got %v", n)
	}

	// Arbitrary vector normalizes to unit length.
	n = Vec3{1, 2, 2}.Normalized()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalized length: expected 1, got %f", n.Length())
	}

	// Zero vector stays zero rather than producing NaN.
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("Normalized zero vector: expected zero, got %v", got)
	}
}
