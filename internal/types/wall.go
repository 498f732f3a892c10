package types

import (
	"math"

	"github.com/google/uuid"
)

// Wall is an immutable oriented rectangle. Length runs along Angle, Width across it.
type Wall struct {
	ScreenObject
	Length     float64    `json:"length"`
	Width      float64    `json:"width"`
	Angle      float64    `json:"angle"` // radians
	IsBoundary bool       `json:"isBoundary"`
	Corners    [4]Vector2 `json:"-"`
}

// NewWall builds a wall centred at center and caches its world-space corners.
func NewWall(center Vector2, length, width, angle float64, isBoundary bool) *Wall {
	wall := &Wall{
		ScreenObject: ScreenObject{
			ID:       uuid.New().String(),
			Position: center,
		},
		Length:     length,
		Width:      width,
		Angle:      angle,
		IsBoundary: isBoundary,
	}
	wall.Corners = wall.computeCorners()
	return wall
}

func (wall *Wall) computeCorners() [4]Vector2 {
	halfLength := wall.Length / 2
	halfWidth := wall.Width / 2
	cosAngle := math.Cos(wall.Angle)
	sinAngle := math.Sin(wall.Angle)

	lengthVec := Vector2{X: halfLength * cosAngle, Y: halfLength * sinAngle}
	widthVec := Vector2{X: halfWidth * -sinAngle, Y: halfWidth * cosAngle}

	c := wall.Position
	return [4]Vector2{
		c.Add(lengthVec).Add(widthVec),
		c.Add(lengthVec).Sub(widthVec),
		c.Sub(lengthVec).Sub(widthVec),
		c.Sub(lengthVec).Add(widthVec),
	}
}

// Edges returns the four rectangle edges as corner pairs.
func (wall *Wall) Edges() [4][2]Vector2 {
	c := wall.Corners
	return [4][2]Vector2{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// GetRadius returns the radius of the wall's bounding circle.
func (wall *Wall) GetRadius() float64 {
	return math.Hypot(wall.Length/2, wall.Width/2)
}
