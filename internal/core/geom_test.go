package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching right edge",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching bottom edge",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 10, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        Box{X: 0, Y: 0, W: 20, H: 20},
			b:        Box{X: 5, Y: 5, W: 5, H: 5},
			expected: true,
		},
		{
			name:     "sub-unit overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 9.5, Y: 9.5, W: 10, H: 10},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxCenter(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 32, H: 16}
	c := b.Center()
	if c.X != 26 || c.Y != 28 {
		t.Errorf("Center() = %v, expected (26, 28)", c)
	}
	if b.Right() != 42 || b.Bottom() != 36 {
		t.Errorf("Right/Bottom = %v/%v, expected 42/36", b.Right(), b.Bottom())
	}
}

func TestVec2Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero stays zero", V(0, 0), V(0, 0)},
		{"axis", V(3, 0), V(1, 0)},
		{"diagonal", V(1, 1), V(math.Sqrt2/2, math.Sqrt2/2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalized()
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("Normalized() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestVec2Distance(t *testing.T) {
	if d := V(0, 0).DistanceTo(V(3, 4)); d != 5 {
		t.Errorf("DistanceTo() = %v, expected 5", d)
	}
	if a := V(0, 1).Angle(); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("Angle() = %v, expected pi/2", a)
	}
	u := FromAngle(math.Pi)
	if math.Abs(u.X+1) > 1e-9 || math.Abs(u.Y) > 1e-9 {
		t.Errorf("FromAngle(pi) = %v, expected (-1, 0)", u)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(150, 0, 100); got != 100 {
		t.Errorf("ClampF(150, 0, 100) = %v, expected 100", got)
	}
	if got := ClampF(-1, 0, 100); got != 0 {
		t.Errorf("ClampF(-1, 0, 100) = %v, expected 0", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Max(3, 5) != 5 {
		t.Error("Min/Max returned wrong values")
	}
}
