package core

import (
	"math"
	"testing"
)

func TestRectEdgesAndContains(t *testing.T) {
	r := NewRect(10, 4, 14, 3)
	if r.Right() != 24 || r.Bottom() != 7 {
		t.Fatalf("Right/Bottom = %d/%d, expected 24/7", r.Right(), r.Bottom())
	}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 10, 4, true},
		{"inside", 17, 5, true},
		{"last column", 23, 6, true},
		{"right edge is exclusive", 24, 5, false},
		{"bottom edge is exclusive", 12, 7, false},
		{"left of rect", 9, 5, false},
		{"above rect", 12, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestRectClip(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{"inside", NewRect(2, 2, 3, 3), NewRect(2, 2, 3, 3)},
		{"overhangs left and top", NewRect(-2, -1, 5, 4), NewRect(0, 0, 3, 3)},
		{"overhangs right and bottom", NewRect(8, 6, 5, 5), NewRect(8, 6, 2, 2)},
		{"covers the grid", NewRect(-5, -5, 30, 30), NewRect(0, 0, 10, 8)},
		{"entirely off to the right", NewRect(12, 2, 3, 3), NewRect(10, 2, 0, 3)},
		{"entirely above", NewRect(2, -6, 3, 3), NewRect(2, 0, 3, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Clip(10, 8); got != tc.expected {
				t.Errorf("Clip() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestRectTextX(t *testing.T) {
	r := NewRect(10, 0, 14, 3)
	if got := r.TextX("Start"); got != 14 {
		t.Errorf("TextX(Start) = %d, expected 14", got)
	}
	// Width is counted in runes, not bytes.
	if got := r.TextX("→→"); got != 16 {
		t.Errorf("TextX(→→) = %d, expected 16", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name            string
		min, max, value float64
		expected        float64
	}{
		{"at min", -3, 3, -3, 0},
		{"at max", -3, 3, 3, 1},
		{"midpoint", -3, 3, 0, 0.5},
		{"positive range", 0, 30, 6, 0.2},
		{"below range", -3, 3, -6, -0.5},
		{"above range", -3, 3, 9, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Lerp(tc.min, tc.max, tc.value)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("Lerp(%f, %f, %f) = %f, expected %f", tc.min, tc.max, tc.value, result, tc.expected)
			}
		})
	}
}

func TestLerpLinear(t *testing.T) {
	// Equal steps in value give equal steps in the result
	a := Lerp(-3, 3, 0)
	b := Lerp(-3, 3, 1)
	c := Lerp(-3, 3, 2)
	if math.Abs((b-a)-(c-b)) > 1e-9 {
		t.Errorf("Lerp should be linear, steps %f and %f differ", b-a, c-b)
	}
}

func TestLerpDegenerateRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Lerp with min == max should panic")
		}
	}()
	Lerp(2, 2, 1)
}

func TestVec2Ops(t *testing.T) {
	v := V2(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len() = %f, expected 5", v.Len())
	}
	if got := v.Add(V2(1, 1)); got != V2(4, 5) {
		t.Errorf("Add() = %+v", got)
	}
	if got := v.Sub(V2(1, 1)); got != V2(2, 3) {
		t.Errorf("Sub() = %+v", got)
	}
	if got := v.Scale(2); got != V2(6, 8) {
		t.Errorf("Scale() = %+v", got)
	}

	box := AABB{Center: V2(1, 1), Half: V2(0.5, 2)}
	if box.Min() != V2(0.5, -1) || box.Max() != V2(1.5, 3) {
		t.Errorf("Min/Max = %+v %+v", box.Min(), box.Max())
	}
}
