package protocol

import (
	"github.com/besuhoff/predator-arena-go/internal/types"
)

// ToPlayerState converts types.Player to its public wire view
func ToPlayerState(p *types.Player) types.PlayerState {
	return types.PlayerState{
		ID:          p.ID,
		Name:        p.Name,
		X:           p.Position.X,
		Y:           p.Position.Y,
		Angle:       p.Angle,
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		Ammo:        p.Ammo(),
		MaxAmmo:     p.MaxAmmo(),
		Role:        p.Role,
		IsPredator:  p.IsPredator(),
		IsSprinting: p.Input.Sprint,
		IsAiming:    p.Input.Aim,
	}
}

// ToPlayerStates converts players in order
func ToPlayerStates(players []*types.Player) []types.PlayerState {
	states := make([]types.PlayerState, 0, len(players))
	for _, p := range players {
		states = append(states, ToPlayerState(p))
	}
	return states
}

func ToBulletStates(bullets []*types.Bullet) []types.BulletState {
	states := make([]types.BulletState, 0, len(bullets))
	for _, b := range bullets {
		states = append(states, types.BulletState{
			ID: b.ID,
			X:  b.Position.X,
			Y:  b.Position.Y,
		})
	}
	return states
}

func ToBonusStates(bonuses []*types.Bonus) []types.BonusState {
	states := make([]types.BonusState, 0, len(bonuses))
	for _, b := range bonuses {
		states = append(states, types.BonusState{
			ID:     b.ID,
			X:      b.Position.X,
			Y:      b.Position.Y,
			Type:   b.Type,
			Amount: b.Amount,
		})
	}
	return states
}

// ToWallStates converts walls to the shape sent on init
func ToWallStates(walls []*types.Wall) []types.WallState {
	states := make([]types.WallState, 0, len(walls))
	for _, w := range walls {
		states = append(states, types.WallState{
			X:          w.Position.X,
			Y:          w.Position.Y,
			Length:     w.Length,
			Width:      w.Width,
			Angle:      w.Angle,
			IsBoundary: w.IsBoundary,
		})
	}
	return states
}
