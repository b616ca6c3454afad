package model

import (
	"math"
	"testing"
)

func TestPixelMapAt(t *testing.T) {
	m := &PixelMap{
		Width:  4,
		Height: 3,
		Data: []byte{
			0, 0, 1, 1,
			0, 1, 1, 0,
			1, 0, 0, 0,
		},
	}

	tests := []struct {
		x, y int
		want byte
	}{
		{0, 0, 0},
		{2, 0, 1},
		{1, 1, 1},
		{0, 2, 1},
		{3, 2, 0},
	}
	for _, tc := range tests {
		got := m.At(tc.x, tc.y)
		if got != tc.want {
			t.Errorf("At(%d, %d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestPixelMapOutOfBounds(t *testing.T) {
	m := &PixelMap{Width: 2, Height: 2, Data: []byte{1, 1, 1, 1}}

	// Out-of-bounds should read as unset (safe default).
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := m.At(c[0], c[1]); got != 0 {
			t.Errorf("At(%d, %d) = %d, want 0", c[0], c[1], got)
		}
	}

	var nilMap *PixelMap
	if nilMap.IsSet(Point2{0, 0}) {
		t.Error("nil map should never be set")
	}
	// Short data must not panic.
	short := &PixelMap{Width: 4, Height: 4, Data: []byte{1}}
	if got := short.At(3, 3); got != 0 {
		t.Errorf("At on short data = %d, want 0", got)
	}
}

func TestPixelMapIsSetUsesFloor(t *testing.T) {
	m := NewPixelMap(4, 4)
	m.Set(2, 1, true)

	tests := []struct {
		p    Point2
		want bool
	}{
		{Point2{2, 1}, true},
		{Point2{2.99, 1.5}, true},
		{Point2{1.99, 1.5}, false},
		{Point2{2.5, 2.0}, false},
	}
	for _, tc := range tests {
		if got := m.IsSet(tc.p); got != tc.want {
			t.Errorf("IsSet(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}

	m.Set(2, 1, false)
	if m.IsSet(Point2{2, 1}) {
		t.Error("cell should be cleared")
	}
	m.Set(9, 9, true) // ignored
}

func TestVisibilityMap(t *testing.T) {
	m := NewVisibilityMap(3, 3)
	m.Set(1, 1, Visible)
	m.Set(2, 1, Fogged)

	if !m.AtPoint(Point2{1.5, 1.5}).IsVisible() {
		t.Error("(1.5,1.5) should be visible")
	}
	if v := m.AtPoint(Point2{2.1, 1.9}); !v.IsFogged() || v.IsVisible() || !v.IsExplored() {
		t.Errorf("(2.1,1.9) = %d, want fogged", v)
	}
	if v := m.At(0, 0); v != Hidden || v.IsExplored() {
		t.Errorf("(0,0) = %d, want hidden", v)
	}
	if v := m.At(5, 5); v != Hidden {
		t.Errorf("out of bounds = %d, want Hidden", v)
	}
	var nilMap *VisibilityMap
	if nilMap.AtPoint(Point2{1, 1}).IsVisible() {
		t.Error("nil map should be hidden")
	}
}

func TestPointHelpers(t *testing.T) {
	a := Point2{1, 1}
	b := Point2{4, 5}
	if got := DistanceSquared(a, b); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}

	p := Towards(Point2{0, 0}, math.Pi/2, 2)
	if math.Abs(float64(p.X())) > 1e-5 || math.Abs(float64(p.Y()-2)) > 1e-5 {
		t.Errorf("Towards = %v, want (0,2)", p)
	}

	if got := TowardsPoint(a, b, 10); got != (Point2{7, 9}) {
		t.Errorf("TowardsPoint = %v, want (7,9)", got)
	}
	if got := TowardsPoint(a, b, -5); got != (Point2{-2, -3}) {
		t.Errorf("TowardsPoint away = %v, want (-2,-3)", got)
	}
	if got := TowardsPoint(a, a, 3); got != a {
		t.Errorf("TowardsPoint onto itself = %v, want %v", got, a)
	}

	x, y := Cell(Point2{-0.5, 3.7})
	if x != -1 || y != 3 {
		t.Errorf("Cell = (%d,%d), want (-1,3)", x, y)
	}
}
