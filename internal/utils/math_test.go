package utils

import (
	"math"
	"testing"

	"github.com/besuhoff/predator-arena-go/internal/types"
)

func TestCheckCircleCollision(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		r1       float64
		x2, y2   float64
		r2       float64
		expected bool
	}{
		{
			name: "overlapping circles",
			x1:   0, y1: 0, r1: 5,
			x2: 3, y2: 4, r2: 5,
			expected: true,
		},
		{
			name: "non-overlapping circles",
			x1:   0, y1: 0, r1: 5,
			x2: 20, y2: 20, r2: 5,
			expected: false,
		},
		{
			name: "touching circles",
			x1:   0, y1: 0, r1: 5,
			x2: 10, y2: 0, r2: 5,
			expected: false,
		},
		{
			name: "one inside another",
			x1:   0, y1: 0, r1: 10,
			x2: 0, y2: 0, r2: 5,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckCircleCollision(tt.x1, tt.y1, tt.r1, tt.x2, tt.y2, tt.r2)
			if result != tt.expected {
				t.Errorf("CheckCircleCollision() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestCheckCircleWallCollision(t *testing.T) {
	horizontal := types.NewWall(types.Vector2{X: 100, Y: 100}, 100, 20, 0, false)
	vertical := types.NewWall(types.Vector2{X: 0, Y: 0}, 100, 20, math.Pi/2, false)

	tests := []struct {
		name         string
		circle       Circle
		wall         *types.Wall
		collided     bool
		overlap      float64
		pushX, pushY float64
	}{
		{
			name:     "circle clear of wall",
			circle:   Circle{X: 100, Y: 140, Radius: 15},
			wall:     horizontal,
			collided: false,
		},
		{
			name:     "circle touching wall",
			circle:   Circle{X: 100, Y: 125, Radius: 15},
			wall:     horizontal,
			collided: false,
		},
		{
			name:     "circle overlapping from below",
			circle:   Circle{X: 100, Y: 120, Radius: 15},
			wall:     horizontal,
			collided: true,
			overlap:  5, pushX: 0, pushY: 1,
		},
		{
			name:     "circle overlapping end cap",
			circle:   Circle{X: 160, Y: 100, Radius: 15},
			wall:     horizontal,
			collided: true,
			overlap:  5, pushX: 1, pushY: 0,
		},
		{
			name:     "rotated wall pushes along world x",
			circle:   Circle{X: 20, Y: 0, Radius: 15},
			wall:     vertical,
			collided: true,
			overlap:  5, pushX: 1, pushY: 0,
		},
		{
			name:     "centre inside wall pushes away from wall centre",
			circle:   Circle{X: 110, Y: 100, Radius: 15},
			wall:     horizontal,
			collided: true,
			overlap:  15, pushX: 1, pushY: 0,
		},
		{
			name:     "centre on wall centre pushes along normal",
			circle:   Circle{X: 100, Y: 100, Radius: 15},
			wall:     horizontal,
			collided: true,
			overlap:  15, pushX: 0, pushY: 1,
		},
	}

	epsilon := 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckCircleWallCollision(tt.circle, tt.wall)
			if result.Collided != tt.collided {
				t.Fatalf("CheckCircleWallCollision().Collided = %v, want %v", result.Collided, tt.collided)
			}
			if !tt.collided {
				return
			}
			if math.Abs(result.Overlap-tt.overlap) > epsilon {
				t.Errorf("Overlap = %v, want %v", result.Overlap, tt.overlap)
			}
			if math.Abs(result.PushX-tt.pushX) > epsilon || math.Abs(result.PushY-tt.pushY) > epsilon {
				t.Errorf("Push = (%v, %v), want (%v, %v)", result.PushX, result.PushY, tt.pushX, tt.pushY)
			}
		})
	}
}

func TestIntersectSegments(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 types.Vector2
		expected       types.Vector2
		ok             bool
	}{
		{
			name: "crossing diagonals",
			p1:   types.Vector2{X: 0, Y: 0}, p2: types.Vector2{X: 10, Y: 10},
			p3: types.Vector2{X: 0, Y: 10}, p4: types.Vector2{X: 10, Y: 0},
			expected: types.Vector2{X: 5, Y: 5},
			ok:       true,
		},
		{
			name: "parallel segments",
			p1:   types.Vector2{X: 0, Y: 0}, p2: types.Vector2{X: 10, Y: 0},
			p3: types.Vector2{X: 0, Y: 5}, p4: types.Vector2{X: 10, Y: 5},
			ok: false,
		},
		{
			name: "lines cross outside the segments",
			p1:   types.Vector2{X: 0, Y: 0}, p2: types.Vector2{X: 1, Y: 1},
			p3: types.Vector2{X: 0, Y: 10}, p4: types.Vector2{X: 10, Y: 0},
			ok: false,
		},
		{
			name: "touching at an endpoint",
			p1:   types.Vector2{X: 0, Y: 0}, p2: types.Vector2{X: 5, Y: 0},
			p3: types.Vector2{X: 5, Y: -5}, p4: types.Vector2{X: 5, Y: 5},
			expected: types.Vector2{X: 5, Y: 0},
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, ok := IntersectSegments(tt.p1, tt.p2, tt.p3, tt.p4)
			if ok != tt.ok {
				t.Fatalf("IntersectSegments() ok = %v, want %v", ok, tt.ok)
			}
			epsilon := 1e-9
			if ok && (math.Abs(point.X-tt.expected.X) > epsilon || math.Abs(point.Y-tt.expected.Y) > epsilon) {
				t.Errorf("IntersectSegments() = %v, want %v", point, tt.expected)
			}
		})
	}
}

func TestSegmentCrossesWall(t *testing.T) {
	wall := types.NewWall(types.Vector2{X: 50, Y: 0}, 100, 4, math.Pi/2, false)

	if !SegmentCrossesWall(types.Vector2{X: 40, Y: 0}, types.Vector2{X: 60, Y: 0}, wall) {
		t.Error("segment jumping across a thin wall should cross it")
	}
	if SegmentCrossesWall(types.Vector2{X: 0, Y: 0}, types.Vector2{X: 40, Y: 0}, wall) {
		t.Error("segment stopping short of the wall should not cross it")
	}
}

func TestPointInPolygon(t *testing.T) {
	// Concave "L" shape
	polygon := []types.Vector2{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 4},
		{X: 4, Y: 4},
		{X: 4, Y: 10},
		{X: 0, Y: 10},
	}

	tests := []struct {
		name     string
		point    types.Vector2
		expected bool
	}{
		{name: "inside the foot", point: types.Vector2{X: 8, Y: 2}, expected: true},
		{name: "inside the stem", point: types.Vector2{X: 2, Y: 8}, expected: true},
		{name: "in the notch", point: types.Vector2{X: 8, Y: 8}, expected: false},
		{name: "far outside", point: types.Vector2{X: -5, Y: 5}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := PointInPolygon(tt.point, polygon); result != tt.expected {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.point, result, tt.expected)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{in: 0, expected: 0},
		{in: 3 * math.Pi / 2, expected: -math.Pi / 2},
		{in: -3 * math.Pi / 2, expected: math.Pi / 2},
		{in: 5 * math.Pi, expected: math.Pi},
	}

	for _, tt := range tests {
		result := NormalizeAngle(tt.in)
		if math.Abs(math.Abs(result)-math.Abs(tt.expected)) > 1e-9 || math.Abs(result) > math.Pi+1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, result, tt.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 || Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 {
		t.Error("Clamp() out of range")
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{"none", nil, true},
		{"regular", []float64{0, -1.5, 1e300}, true},
		{"nan", []float64{1, math.NaN()}, false},
		{"positive infinity", []float64{math.Inf(1)}, false},
		{"negative infinity", []float64{2, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finite(tt.values...); got != tt.want {
				t.Errorf("Finite(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}
