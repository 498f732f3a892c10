package game

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/besuhoff/predator-arena-go/internal/mapgen"
	"github.com/besuhoff/predator-arena-go/internal/protocol"
	"github.com/besuhoff/predator-arena-go/internal/types"
	"github.com/besuhoff/predator-arena-go/internal/utils"
)

// Join creates the player controlled by clientID. A name collision is
// reported to that client with joinError and nothing else changes.
func (e *Engine) Join(clientID, requestedName string) (*types.Player, error) {
	if _, exists := e.registry.Get(clientID); exists {
		return nil, ErrAlreadyJoined
	}

	name := e.sanitizeName(clientID, requestedName)
	if e.registry.NameTaken(name) {
		e.out.Send(clientID, types.Message{
			Type:    types.MsgTypeJoinError,
			Payload: types.ErrorPayload{Message: fmt.Sprintf("Name %q is already taken.", name)},
		})
		return nil, fmt.Errorf("joining as %q: %w", name, ErrNameTaken)
	}

	role := types.RoleHunter
	if !e.registry.PredatorAssigned() {
		role = types.RolePredator
	}

	player := &types.Player{
		ScreenObject: types.ScreenObject{
			ID:       clientID,
			Position: e.findSpawnPoint(role),
		},
		Name: name,
		Role: role,
	}
	if role == types.RolePredator {
		maxHealth := e.tuning.PredatorMaxHealth(e.registry.HunterCount())
		player.Health = maxHealth
		player.MaxHealth = maxHealth
	} else {
		player.Health = e.tuning.HunterHealth
		player.MaxHealth = e.tuning.HunterHealth
		player.Arsenal = &types.Arsenal{Ammo: e.tuning.HunterAmmo, MaxAmmo: e.tuning.HunterAmmo}
	}

	e.registry.Add(player)
	if role == types.RoleHunter {
		e.rebalancePredator(true)
	}

	e.out.Send(clientID, types.Message{
		Type: types.MsgTypeInit,
		Payload: types.InitPayload{
			SelfID:  clientID,
			Players: protocol.ToPlayerStates(e.registry.Players()),
			Walls:   protocol.ToWallStates(e.world.Walls),
		},
	})
	e.out.Broadcast(types.Message{
		Type:    types.MsgTypePlayerConnected,
		Payload: protocol.ToPlayerState(player),
	}, clientID)

	e.logger.Infow("Player joined", "player", clientID, "name", name, "role", role, "players", e.registry.Len())
	return player, nil
}

// sanitizeName trims and truncates the requested name, falling back to a
// name derived from the connection id.
func (e *Engine) sanitizeName(clientID, requested string) string {
	name := strings.TrimSpace(requested)
	if utf8.RuneCountInString(name) > e.tuning.MaxNameLength {
		name = string([]rune(name)[:e.tuning.MaxNameLength])
		name = strings.TrimSpace(name)
	}
	if name == "" {
		prefix := clientID
		if len(prefix) > 4 {
			prefix = prefix[:4]
		}
		name = "Player_" + prefix
	}
	return name
}

// findSpawnPoint samples points until one is inside the boundary, clear of
// boundary walls and, for Hunters, far enough from the Predator. It falls
// back to the world centre.
func (e *Engine) findSpawnPoint(role types.Role) types.Vector2 {
	padding := e.tuning.SpawnPadding
	boundary := e.world.BoundaryWalls()
	predator := e.registry.Predator()

	for i := 0; i < e.tuning.SpawnAttempts; i++ {
		point := types.Vector2{
			X: padding + e.rng.Float64()*(e.world.Width-2*padding),
			Y: padding + e.rng.Float64()*(e.world.Height-2*padding),
		}
		if !e.world.Contains(point) {
			continue
		}
		if mapgen.Collides(point, e.tuning.PlayerRadius, boundary) {
			continue
		}
		if role == types.RoleHunter && predator != nil &&
			predator.DistanceToPoint(point) < e.tuning.MinSpawnDistanceFromPredator {
			continue
		}
		return point
	}

	e.logger.Warnw("Spawn search exhausted, using world centre", "role", role)
	return e.world.Center()
}

// SetInput stores the latest input snapshot and facing angle. A
// non-finite angle rejects the whole input.
func (e *Engine) SetInput(playerID string, input types.InputState) bool {
	player, exists := e.registry.Get(playerID)
	if !exists || !utils.Finite(input.Angle) {
		return false
	}
	player.Input = input
	player.Angle = input.Angle
	return true
}

// Decoy broadcasts a cosmetic trail effect for the Predator.
func (e *Engine) Decoy(playerID string, x, y float64) bool {
	player, exists := e.registry.Get(playerID)
	if !exists || !player.IsPredator() || !utils.Finite(x, y) {
		return false
	}

	now := e.now()
	if !types.CooldownReady(player.LastDecoyAt, now, e.tuning.DecoyCooldown) {
		return false
	}
	player.LastDecoyAt = now

	e.out.Broadcast(types.Message{
		Type: types.MsgTypeCreateEffect,
		Payload: types.EffectPayload{
			Type: types.EffectSpeedCircle,
			X:    utils.Clamp(x, 0, e.world.Width),
			Y:    utils.Clamp(y, 0, e.world.Height),
		},
	})
	return true
}

// RequireJoined returns ErrNotJoined when clientID controls no player.
func (e *Engine) RequireJoined(clientID string) error {
	if _, exists := e.registry.Get(clientID); !exists {
		return fmt.Errorf("client %s: %w", clientID, ErrNotJoined)
	}
	return nil
}

// Leave removes the player controlled by clientID, if any.
func (e *Engine) Leave(clientID string) bool {
	player, exists := e.registry.Remove(clientID)
	if !exists {
		return false
	}

	if player.IsHunter() {
		e.rebalancePredator(false)
	}

	e.logger.Infow("Player left", "player", clientID, "name", player.Name, "role", player.Role, "players", e.registry.Len())
	e.out.Broadcast(types.Message{
		Type:    types.MsgTypePlayerDisconnected,
		Payload: types.PlayerIDPayload{ID: clientID},
	})
	return true
}
