package game

import (
	"github.com/google/uuid"

	"github.com/besuhoff/predator-arena-go/internal/mapgen"
	"github.com/besuhoff/predator-arena-go/internal/types"
)

// spawnNightBonuses tops the bonus count up to the player count at the
// start of every night. It gives up once the attempt budget is spent.
func (e *Engine) spawnNightBonuses() {
	deficit := e.registry.Len() - len(e.registry.Bonuses())
	if deficit <= 0 {
		return
	}

	budget := deficit * e.tuning.BonusAttemptsPerBonus
	spawned := 0
	for spawned < deficit && budget > 0 {
		point, attempts, ok := e.findBonusPoint(budget)
		budget -= attempts
		if !ok {
			continue
		}
		e.registry.AddBonus(&types.Bonus{
			ScreenObject: types.ScreenObject{
				ID:       uuid.New().String(),
				Position: point,
			},
			Type: types.BonusTypeNight,
		})
		spawned++
	}

	e.logger.Infow("Night started", "cycle", e.cycle.Count(), "wanted", deficit, "spawned", spawned)
}

// findBonusPoint samples up to BonusPointAttempts candidates, never more
// than budget, and returns the attempts used.
func (e *Engine) findBonusPoint(budget int) (types.Vector2, int, bool) {
	limit := min(e.tuning.BonusPointAttempts, budget)
	padding := e.tuning.BonusSpawnPadding
	predator := e.registry.Predator()

	for attempt := 1; attempt <= limit; attempt++ {
		point := types.Vector2{
			X: padding + e.rng.Float64()*(e.world.Width-2*padding),
			Y: padding + e.rng.Float64()*(e.world.Height-2*padding),
		}
		if !e.world.Contains(point) {
			continue
		}
		if mapgen.Collides(point, e.tuning.BonusWallBuffer(), e.world.Walls) {
			continue
		}
		if predator != nil && predator.DistanceToPoint(point) < e.tuning.MinSpawnDistanceFromPredator {
			continue
		}
		if e.tooCloseToBonus(point) {
			continue
		}
		return point, attempt, true
	}
	return types.Vector2{}, limit, false
}

func (e *Engine) tooCloseToBonus(point types.Vector2) bool {
	for _, b := range e.registry.Bonuses() {
		if b.DistanceToPoint(point) < e.tuning.MinBonusDistance {
			return true
		}
	}
	return false
}

// CollectBonus hands a bonus to a Hunter. Unknown bonuses and non-Hunters
// are ignored.
func (e *Engine) CollectBonus(playerID, bonusID string) bool {
	player, exists := e.registry.Get(playerID)
	if !exists || !player.IsHunter() || player.Arsenal == nil {
		return false
	}
	bonus, exists := e.registry.Bonus(bonusID)
	if !exists {
		return false
	}
	e.registry.RemoveBonus(bonus.ID)

	amount := bonus.Amount
	if bonus.Type == types.BonusTypeNight {
		span := e.tuning.NightBonusMaxAmmo - e.tuning.NightBonusMinAmmo + 1
		amount = e.tuning.NightBonusMinAmmo + e.rng.Intn(span)
	}
	gained := player.Arsenal.Refill(amount)

	e.logger.Debugw("Bonus collected", "player", player.ID, "bonus", bonus.ID, "type", bonus.Type, "gained", gained)
	e.out.Broadcast(types.Message{
		Type:    types.MsgTypeBonusCollected,
		Payload: types.BonusCollectedPayload{BonusID: bonus.ID},
	})
	return true
}
