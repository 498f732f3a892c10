package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/besuhoff/predator-arena-go/internal/types"
	"github.com/besuhoff/predator-arena-go/internal/utils"
)

// Shoot fires a shotgun spread for a Hunter. It reports false when the shot
// is denied by role, cooldown or ammo.
func (e *Engine) Shoot(playerID string) bool {
	player, exists := e.registry.Get(playerID)
	if !exists || !player.IsHunter() || player.Arsenal == nil {
		return false
	}

	now := e.now()
	if !types.CooldownReady(player.LastShotAt, now, e.tuning.ShootCooldown) {
		return false
	}
	if player.Arsenal.Ammo <= 0 {
		return false
	}

	player.LastShotAt = now
	player.Arsenal.Ammo--

	muzzle := player.Position.FromAngle(player.Angle, e.tuning.PlayerRadius+e.tuning.MuzzleOffset)
	for i := 0; i < e.tuning.ShotgunPellets; i++ {
		angle := player.Angle + (e.rng.Float64()-0.5)*e.tuning.ShotgunSpread
		e.registry.AddBullet(&types.Bullet{
			ScreenObject: types.ScreenObject{
				ID:       uuid.New().String(),
				Position: muzzle,
			},
			OwnerID:   player.ID,
			Angle:     angle,
			Speed:     e.tuning.BulletSpeed,
			Radius:    e.tuning.BulletRadius,
			Damage:    e.tuning.BulletDamage,
			SpawnedAt: now,
			Lifetime:  e.tuning.BulletLifetime,
		})
	}

	e.logger.Debugw("Hunter fired", "player", player.ID, "ammo", player.Arsenal.Ammo)
	return true
}

// Attack performs the Predator's melee swipe, hitting every Hunter in range
// inside the facing cone.
func (e *Engine) Attack(playerID string) bool {
	predator, exists := e.registry.Get(playerID)
	if !exists || !predator.IsPredator() {
		return false
	}

	now := e.now()
	if !types.CooldownReady(predator.LastAttackAt, now, e.tuning.AttackCooldown) {
		return false
	}
	predator.LastAttackAt = now

	halfCone := e.tuning.AttackCone / 2
	for _, target := range e.registry.Players() {
		if !target.IsHunter() {
			continue
		}
		if predator.DistanceToPoint(target.Position) > e.tuning.AttackRange {
			continue
		}
		bearing := math.Atan2(target.Position.Y-predator.Position.Y, target.Position.X-predator.Position.X)
		if math.Abs(utils.NormalizeAngle(bearing-predator.Angle)) > halfCone {
			continue
		}

		if target.TakeDamage(e.tuning.AttackDamage) {
			e.handleDeath(target, string(types.RolePredator))
		}
	}
	return true
}

// handleDeath removes a player whose health reached zero.
func (e *Engine) handleDeath(victim *types.Player, killerType string) {
	e.out.Send(victim.ID, types.Message{
		Type:    types.MsgTypeYouDied,
		Payload: types.YouDiedPayload{KillerType: killerType},
	})

	if victim.IsHunter() && victim.Ammo() > 0 {
		e.registry.AddBonus(&types.Bonus{
			ScreenObject: types.ScreenObject{
				ID:       uuid.New().String(),
				Position: victim.Position,
			},
			Type:   types.BonusTypeAmmo,
			Amount: victim.Ammo(),
		})
	}

	e.registry.Remove(victim.ID)
	if victim.IsHunter() {
		e.rebalancePredator(false)
	}

	e.logger.Infow("Player died", "player", victim.ID, "name", victim.Name, "role", victim.Role, "killer", killerType)
	e.out.Broadcast(types.Message{
		Type:    types.MsgTypePlayerDied,
		Payload: types.PlayerIDPayload{ID: victim.ID},
	})
}
