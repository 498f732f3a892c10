package types

type BonusType string

const (
	BonusTypeAmmo  BonusType = "ammo"
	BonusTypeNight BonusType = "night"
)

// Bonus represents a pickup item
type Bonus struct {
	ScreenObject
	Type   BonusType `json:"type"`
	Amount int       `json:"amount,omitempty"` // carried ammo, ammo bonuses only
}
