// Package mapgen builds the arena: an irregular closed boundary polygon plus
// scattered interior walls. A map is generated once per process and never
// mutated afterwards, so it can be shared freely.
package mapgen

import (
	"math"
	"math/rand"

	"github.com/besuhoff/predator-arena-go/internal/config"
	"github.com/besuhoff/predator-arena-go/internal/types"
	"github.com/besuhoff/predator-arena-go/internal/utils"
)

// Map is the immutable wall set of one arena
type Map struct {
	Width    float64
	Height   float64
	Walls    []*types.Wall
	Boundary []types.Vector2 // ordered polygon vertices
}

// Generate builds a new map from the tuning parameters.
func Generate(rng *rand.Rand, t config.Tuning) *Map {
	m := &Map{
		Width:  t.WorldWidth,
		Height: t.WorldHeight,
	}
	m.generateBoundary(rng, t)
	m.generateInteriorWalls(rng, t)
	return m
}

func (m *Map) generateBoundary(rng *rand.Rand, t config.Tuning) {
	center := m.Center()
	numVertices := t.BoundaryVertices
	baseRadius := math.Min(m.Width, m.Height) / 2 * 0.9
	angleStep := 2 * math.Pi / float64(numVertices)

	m.Boundary = make([]types.Vector2, 0, numVertices)
	for i := 0; i < numVertices; i++ {
		angle := float64(i)*angleStep + (rng.Float64()-0.5)*angleStep*0.8
		radius := baseRadius * (0.8 + rng.Float64()*0.4)
		m.Boundary = append(m.Boundary, center.FromAngle(angle, radius))
	}

	for i, start := range m.Boundary {
		end := m.Boundary[(i+1)%numVertices]
		d := end.Sub(start)
		mid := start.Add(d.Scale(0.5))
		m.Walls = append(m.Walls, types.NewWall(mid, math.Hypot(d.X, d.Y), t.WallWidth, math.Atan2(d.Y, d.X), true))
	}
}

func (m *Map) generateInteriorWalls(rng *rand.Rand, t config.Tuning) {
	padding := t.InteriorWallPadding
	for i := 0; i < t.InteriorWalls; i++ {
		center := types.Vector2{
			X: padding + rng.Float64()*(m.Width-2*padding),
			Y: padding + rng.Float64()*(m.Height-2*padding),
		}
		length := t.InteriorWallMinLength + rng.Float64()*(t.InteriorWallMaxLength-t.InteriorWallMinLength)
		angle := rng.Float64() * 2 * math.Pi
		m.Walls = append(m.Walls, types.NewWall(center, length, t.WallWidth, angle, false))
	}
}

func (m *Map) Center() types.Vector2 {
	return types.Vector2{X: m.Width / 2, Y: m.Height / 2}
}

// Contains reports whether p lies inside the boundary polygon.
func (m *Map) Contains(p types.Vector2) bool {
	return utils.PointInPolygon(p, m.Boundary)
}

func (m *Map) BoundaryWalls() []*types.Wall {
	walls := make([]*types.Wall, 0, len(m.Boundary))
	for _, wall := range m.Walls {
		if wall.IsBoundary {
			walls = append(walls, wall)
		}
	}
	return walls
}

// Collides reports whether a circle of radius r at p touches any of walls.
func Collides(p types.Vector2, r float64, walls []*types.Wall) bool {
	circle := utils.Circle{X: p.X, Y: p.Y, Radius: r}
	for _, wall := range walls {
		if utils.CheckCircleWallCollision(circle, wall).Collided {
			return true
		}
	}
	return false
}
