package geom

import "testing"

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, -2)
	if got, want := p.Add(Pt(1, 5)), Pt(4, 3); got != want {
		t.Fatalf("Add() = %v, want %v", got, want)
	}
	if got, want := p.Sub(Pt(1, 5)), Pt(2, -7); got != want {
		t.Fatalf("Sub() = %v, want %v", got, want)
	}
	if got, want := p.Mul(4), Pt(12, -8); got != want {
		t.Fatalf("Mul() = %v, want %v", got, want)
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{R(0, 0, 1, 1), false},
		{R(0, 0, 0, 1), true},
		{R(0, 0, 1, 0), true},
		{R(5, 5, -1, 3), true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Fatalf("%v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
		if tt.want && tt.r.Area() != 0 {
			t.Fatalf("%v.Area() = %d, want 0", tt.r, tt.r.Area())
		}
	}
}

func TestRectContains(t *testing.T) {
	r := R(10, 0, 2, 1)
	if !r.Contains(Pt(11, 0)) {
		t.Fatal("expected (11,0) inside")
	}
	if r.Contains(Pt(12, 0)) {
		t.Fatal("max corner is exclusive")
	}
	if R(0, 0, 0, 0).Contains(Pt(0, 0)) {
		t.Fatal("empty rect contains nothing")
	}
}

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 10, 10)
	if got, want := a.Intersect(R(5, 5, 10, 10)), R(5, 5, 5, 5); got != want {
		t.Fatalf("Intersect() = %v, want %v", got, want)
	}
	if got := a.Intersect(R(10, 0, 4, 4)); !got.Empty() {
		t.Fatalf("Intersect() = %v, want empty", got)
	}
	if got, want := a.Translate(Pt(-2, 3)), R(-2, 3, 10, 10); got != want {
		t.Fatalf("Translate() = %v, want %v", got, want)
	}
}
