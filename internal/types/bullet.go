package types

import "time"

// Bullet represents a shotgun pellet in flight
type Bullet struct {
	ScreenObject
	OwnerID       string        `json:"ownerId"`
	Angle         float64       `json:"angle"`
	Speed         float64       `json:"speed"`
	Radius        float64       `json:"radius"`
	Damage        float64       `json:"damage"`
	SpawnedAt     time.Time     `json:"-"`
	Lifetime      time.Duration `json:"-"`
	HasPenetrated bool          `json:"-"`
	PiercedWallID string        `json:"-"`
}

// Expired reports whether the bullet has outlived its lifetime at now.
func (b *Bullet) Expired(now time.Time) bool {
	return now.Sub(b.SpawnedAt) > b.Lifetime
}
