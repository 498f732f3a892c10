package types

import "math"

// Vector2 represents a 2D vector
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

func (v Vector2) DistanceSq(o Vector2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vector2) Distance(o Vector2) float64 {
	return math.Sqrt(v.DistanceSq(o))
}

// FromAngle returns the point at distance length from v along angle (radians).
func (v Vector2) FromAngle(angle, length float64) Vector2 {
	return Vector2{X: v.X + math.Cos(angle)*length, Y: v.Y + math.Sin(angle)*length}
}
