package utils

import (
	"math"

	"github.com/besuhoff/predator-arena-go/internal/types"
)

// degenerateDistanceSq is the squared distance below which a circle centre is
// treated as lying on the wall itself.
const degenerateDistanceSq = 1e-9

// Circle is a collision body
type Circle struct {
	X      float64
	Y      float64
	Radius float64
}

// WallCollision is the result of a circle/wall test. Push is a unit vector in world space.
type WallCollision struct {
	Collided bool
	Overlap  float64
	PushX    float64
	PushY    float64
}

func CheckCircleCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x1 - x2
	dy := y1 - y2
	radSum := r1 + r2
	return dx*dx+dy*dy < radSum*radSum
}

// CheckCircleWallCollision tests a circle against an oriented wall rectangle.
func CheckCircleWallCollision(circle Circle, wall *types.Wall) WallCollision {
	// Broad phase against the wall's bounding circle
	if !CheckCircleCollision(circle.X, circle.Y, circle.Radius, wall.Position.X, wall.Position.Y, wall.GetRadius()) {
		return WallCollision{}
	}

	// Circle centre in the wall's local frame
	dx := circle.X - wall.Position.X
	dy := circle.Y - wall.Position.Y
	cosAngle := math.Cos(-wall.Angle)
	sinAngle := math.Sin(-wall.Angle)
	localX := dx*cosAngle - dy*sinAngle
	localY := dx*sinAngle + dy*cosAngle

	halfLength := wall.Length / 2
	halfWidth := wall.Width / 2
	closestX := Clamp(localX, -halfLength, halfLength)
	closestY := Clamp(localY, -halfWidth, halfWidth)

	distX := localX - closestX
	distY := localY - closestY
	distanceSq := distX*distX + distY*distY
	radiusSq := circle.Radius * circle.Radius

	if distanceSq < radiusSq && distanceSq > degenerateDistanceSq {
		distance := math.Sqrt(distanceSq)
		pushLocalX := distX / distance
		pushLocalY := distY / distance

		cosWall := math.Cos(wall.Angle)
		sinWall := math.Sin(wall.Angle)
		return WallCollision{
			Collided: true,
			Overlap:  circle.Radius - distance,
			PushX:    pushLocalX*cosWall - pushLocalY*sinWall,
			PushY:    pushLocalX*sinWall + pushLocalY*cosWall,
		}
	}

	if distanceSq <= degenerateDistanceSq && radiusSq > 0 {
		// Centre is inside the rectangle: push away from the wall centre,
		// or along the wall normal when sitting exactly on it.
		pushX, pushY := -math.Sin(wall.Angle), math.Cos(wall.Angle)
		if norm := math.Hypot(dx, dy); norm > 0 {
			pushX, pushY = dx/norm, dy/norm
		}
		return WallCollision{
			Collided: true,
			Overlap:  circle.Radius,
			PushX:    pushX,
			PushY:    pushY,
		}
	}

	return WallCollision{}
}

// IntersectSegments returns the intersection of segments p1-p2 and p3-p4.
// Parallel segments never intersect.
func IntersectSegments(p1, p2, p3, p4 types.Vector2) (types.Vector2, bool) {
	den := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if den == 0 {
		return types.Vector2{}, false
	}

	t := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / den
	u := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / den

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return types.Vector2{}, false
	}

	return types.Vector2{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}

// SegmentCrossesWall reports whether segment a-b crosses any edge of the wall.
func SegmentCrossesWall(a, b types.Vector2, wall *types.Wall) bool {
	for _, edge := range wall.Edges() {
		if _, ok := IntersectSegments(a, b, edge[0], edge[1]); ok {
			return true
		}
	}
	return false
}

// PointInPolygon is the ray-casting parity test.
func PointInPolygon(point types.Vector2, vertices []types.Vector2) bool {
	inside := false
	for i, j := 0, len(vertices)-1; i < len(vertices); j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > point.Y) != (vj.Y > point.Y) &&
			point.X < (vj.X-vi.X)*(point.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// NormalizeAngle maps an angle into [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	return math.Remainder(angle, 2*math.Pi)
}

// Finite reports whether none of the values is NaN or infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
