package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/besuhoff/predator-arena-go/internal/config"
	"github.com/besuhoff/predator-arena-go/internal/mapgen"
	"github.com/besuhoff/predator-arena-go/internal/types"
)

// startNightOnNextTick puts the clock one millisecond before the wrap.
func startNightOnNextTick(e *Engine) {
	e.cycle.elapsed = e.cycle.duration - time.Millisecond
	e.cycle.wasNight = false
}

func TestNightSpawnsBonusesUpToPlayerCount(t *testing.T) {
	tuning := config.DefaultTuning()
	world := mapgen.Generate(rand.New(rand.NewSource(5)), tuning)
	h := newHarness(t, tuning, world)
	predator := h.join(t, "pred1", "Predator")
	_ = h.join(t, "hunt1", "Alpha")
	_ = h.join(t, "hunt2", "Bravo")

	startNightOnNextTick(h.engine)
	h.engine.Tick()

	bonuses := h.engine.registry.Bonuses()
	require.Len(t, bonuses, 3)
	for i, b := range bonuses {
		assert.Equal(t, types.BonusTypeNight, b.Type)
		assert.True(t, world.Contains(b.Position))
		assert.False(t, mapgen.Collides(b.Position, tuning.BonusWallBuffer(), world.Walls))
		assert.GreaterOrEqual(t, predator.DistanceToPoint(b.Position), tuning.MinSpawnDistanceFromPredator)
		for _, other := range bonuses[i+1:] {
			assert.GreaterOrEqual(t, b.DistanceToPoint(other.Position), tuning.MinBonusDistance)
		}
	}

	// Only the first tick of the night spawns.
	h.engine.Tick()
	assert.Len(t, h.engine.registry.Bonuses(), 3)
}

func TestNightSpawnsOnlyTheDeficit(t *testing.T) {
	tuning := config.DefaultTuning()
	h := newHarness(t, tuning, mapgen.Generate(rand.New(rand.NewSource(6)), tuning))
	_ = h.join(t, "pred1", "Predator")
	_ = h.join(t, "hunt1", "Alpha")
	h.engine.registry.AddBonus(&types.Bonus{
		ScreenObject: types.ScreenObject{ID: "left", Position: types.Vector2{X: 1300, Y: 1300}},
		Type:         types.BonusTypeAmmo,
		Amount:       3,
	})

	startNightOnNextTick(h.engine)
	h.engine.Tick()
	assert.Len(t, h.engine.registry.Bonuses(), 2)
}

func TestNightSpawnGivesUpWhenNoRoom(t *testing.T) {
	world := squareMap()
	world.Boundary = []types.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	h := newHarness(t, config.DefaultTuning(), world)
	_ = h.join(t, "pred1", "Predator")

	startNightOnNextTick(h.engine)
	h.engine.Tick()

	assert.Empty(t, h.engine.registry.Bonuses())
}

func addBonus(h *testHarness, id string, typ types.BonusType, amount int) {
	h.engine.registry.AddBonus(&types.Bonus{
		ScreenObject: types.ScreenObject{ID: id, Position: types.Vector2{X: 500, Y: 500}},
		Type:         typ,
		Amount:       amount,
	})
}

func TestCollectAmmoBonusCapsAtMax(t *testing.T) {
	h := newHarness(t, config.DefaultTuning(), squareMap())
	_ = h.join(t, "pred1", "Predator")
	hunter := h.join(t, "hunt1", "Alpha")
	hunter.Arsenal.Ammo = 7
	addBonus(h, "ammo1", types.BonusTypeAmmo, 6)
	h.out.reset()

	require.True(t, h.engine.CollectBonus(hunter.ID, "ammo1"))

	assert.Equal(t, 10, hunter.Ammo())
	assert.Empty(t, h.engine.registry.Bonuses())
	msgs := h.out.ofType(types.MsgTypeBonusCollected)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Broadcast)
	assert.Equal(t, types.BonusCollectedPayload{BonusID: "ammo1"}, msgs[0].Msg.Payload)
}

func TestCollectNightBonusGrantsRandomAmmo(t *testing.T) {
	h := newHarness(t, config.DefaultTuning(), squareMap())
	_ = h.join(t, "pred1", "Predator")
	hunter := h.join(t, "hunt1", "Alpha")

	for i := 0; i < 20; i++ {
		hunter.Arsenal.Ammo = 0
		addBonus(h, "night", types.BonusTypeNight, 0)
		require.True(t, h.engine.CollectBonus(hunter.ID, "night"))
		assert.GreaterOrEqual(t, hunter.Ammo(), 2)
		assert.LessOrEqual(t, hunter.Ammo(), 5)
	}
}

func TestCollectBonusDenied(t *testing.T) {
	h := newHarness(t, config.DefaultTuning(), squareMap())
	predator := h.join(t, "pred1", "Predator")
	hunter := h.join(t, "hunt1", "Alpha")
	addBonus(h, "ammo1", types.BonusTypeAmmo, 3)
	h.out.reset()

	assert.False(t, h.engine.CollectBonus(predator.ID, "ammo1"))
	assert.False(t, h.engine.CollectBonus(hunter.ID, "missing"))
	assert.False(t, h.engine.CollectBonus("ghost", "ammo1"))

	assert.Len(t, h.engine.registry.Bonuses(), 1)
	assert.Empty(t, h.out.messages)

	assert.True(t, h.engine.CollectBonus(hunter.ID, "ammo1"))
	assert.False(t, h.engine.CollectBonus(hunter.ID, "ammo1"))
}
