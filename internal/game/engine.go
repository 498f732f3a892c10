package game

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/besuhoff/predator-arena-go/internal/config"
	"github.com/besuhoff/predator-arena-go/internal/mapgen"
	"github.com/besuhoff/predator-arena-go/internal/protocol"
	"github.com/besuhoff/predator-arena-go/internal/types"
	"github.com/besuhoff/predator-arena-go/internal/utils"
)

// Outbox delivers engine events to connections. Client ids equal player ids.
type Outbox interface {
	Send(clientID string, msg types.Message)
	Broadcast(msg types.Message, exclude ...string)
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces time.Now, used for cooldowns and bullet lifetimes.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithSweptBullets also tests the segment travelled by a bullet during a
// tick against wall edges.
func WithSweptBullets(enabled bool) Option {
	return func(e *Engine) { e.sweptBullets = enabled }
}

// Engine handles the game logic. All methods must be called from a single
// goroutine.
type Engine struct {
	tuning       config.Tuning
	world        *mapgen.Map
	registry     *Registry
	cycle        *DayNightClock
	out          Outbox
	rng          *rand.Rand
	now          func() time.Time
	logger       *zap.SugaredLogger
	tickInterval time.Duration
	sweptBullets bool
	ticks        uint64
}

// NewEngine creates a new game engine over a generated map
func NewEngine(tuning config.Tuning, world *mapgen.Map, tickRate int, out Outbox, opts ...Option) *Engine {
	e := &Engine{
		tuning:       tuning,
		world:        world,
		registry:     NewRegistry(),
		cycle:        NewDayNightClock(tuning.CycleDuration),
		out:          out,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
		logger:       zap.NewNop().Sugar(),
		tickInterval: time.Second / time.Duration(tickRate),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) TickInterval() time.Duration {
	return e.tickInterval
}

// Tick runs one fixed simulation step and broadcasts the resulting state.
func (e *Engine) Tick() {
	now := e.now()
	dt := e.tickInterval.Seconds()
	e.ticks++

	e.registry.Each(func(p *types.Player) {
		e.movePlayer(p, dt)
	})

	e.updateBullets(now, dt)

	if e.cycle.Advance(e.tickInterval) {
		e.spawnNightBonuses()
	}

	e.out.Broadcast(types.Message{Type: types.MsgTypeGameState, Payload: e.Snapshot()})
}

// Snapshot builds the per-tick state broadcast.
func (e *Engine) Snapshot() types.GameStatePayload {
	return types.GameStatePayload{
		Players:       protocol.ToPlayerStates(e.registry.Players()),
		Bullets:       protocol.ToBulletStates(e.registry.Bullets()),
		Bonuses:       protocol.ToBonusStates(e.registry.Bonuses()),
		CycleTime:     e.cycle.Elapsed().Milliseconds(),
		CycleDuration: e.cycle.Duration().Milliseconds(),
		CycleCount:    e.cycle.Count(),
	}
}

func (e *Engine) movePlayer(p *types.Player, dt float64) {
	var dx, dy float64
	keys := p.Input.Keys
	if keys.W {
		dy -= 1
	}
	if keys.S {
		dy += 1
	}
	if keys.A {
		dx -= 1
	}
	if keys.D {
		dx += 1
	}
	if dx != 0 && dy != 0 {
		dx *= 1 / math.Sqrt2
		dy *= 1 / math.Sqrt2
	}

	speed := e.tuning.PlayerSpeed
	if p.Input.Sprint {
		speed *= e.tuning.SprintMultiplier
	}

	p.Position.X += dx * speed * dt
	p.Position.Y += dy * speed * dt

	e.resolveWalls(p)

	r := e.tuning.PlayerRadius
	p.Position.X = utils.Clamp(p.Position.X, r, e.world.Width-r)
	p.Position.Y = utils.Clamp(p.Position.Y, r, e.world.Height-r)
}

// resolveWalls pushes the player out of overlapping walls. The Predator
// phases through interior walls and only collides with the boundary.
func (e *Engine) resolveWalls(p *types.Player) {
	for i := 0; i < e.tuning.MaxPushIterations; i++ {
		pushed := false
		for _, wall := range e.world.Walls {
			if p.IsPredator() && !wall.IsBoundary {
				continue
			}
			circle := utils.Circle{X: p.Position.X, Y: p.Position.Y, Radius: e.tuning.PlayerRadius}
			collision := utils.CheckCircleWallCollision(circle, wall)
			if !collision.Collided {
				continue
			}
			step := collision.Overlap + e.tuning.PushEpsilon
			p.Position.X += collision.PushX * step
			p.Position.Y += collision.PushY * step
			pushed = true
		}
		if !pushed {
			return
		}
	}
}

func (e *Engine) updateBullets(now time.Time, dt float64) {
	e.registry.RetainBullets(func(b *types.Bullet) bool {
		if b.Expired(now) {
			return false
		}

		prev := b.Position
		b.Position = b.Position.FromAngle(b.Angle, b.Speed*dt)

		if !e.bulletSurvivesWalls(b, prev) {
			return false
		}

		return !e.bulletHitsPlayer(b)
	})
}

// bulletSurvivesWalls applies the penetration rule: the first wall touched
// has a chance to be pierced, the bullet then passes through that wall and
// stops at the next one.
func (e *Engine) bulletSurvivesWalls(b *types.Bullet, prev types.Vector2) bool {
	circle := utils.Circle{X: b.Position.X, Y: b.Position.Y, Radius: b.Radius}
	for _, wall := range e.world.Walls {
		if wall.ID == b.PiercedWallID {
			continue
		}
		hit := utils.CheckCircleWallCollision(circle, wall).Collided
		if !hit && e.sweptBullets {
			hit = utils.SegmentCrossesWall(prev, b.Position, wall)
		}
		if !hit {
			continue
		}
		if b.HasPenetrated || e.rng.Float64() >= e.tuning.PenetrationChance {
			return false
		}
		b.HasPenetrated = true
		b.PiercedWallID = wall.ID
	}
	return true
}

// bulletHitsPlayer damages the first player the bullet overlaps and reports
// whether the bullet was consumed.
func (e *Engine) bulletHitsPlayer(b *types.Bullet) bool {
	for _, player := range e.registry.Players() {
		if player.ID == b.OwnerID {
			continue
		}
		if !utils.CheckCircleCollision(b.Position.X, b.Position.Y, b.Radius,
			player.Position.X, player.Position.Y, e.tuning.PlayerRadius) {
			continue
		}

		if player.TakeDamage(b.Damage) {
			killerType := "Unknown"
			if owner, ok := e.registry.Get(b.OwnerID); ok {
				killerType = string(owner.Role)
			}
			e.handleDeath(player, killerType)
		}
		return true
	}
	return false
}

// rebalancePredator recomputes the Predator's health ceiling from the
// current Hunter count.
func (e *Engine) rebalancePredator(heal bool) {
	predator := e.registry.Predator()
	if predator == nil {
		return
	}
	predator.SetMaxHealth(e.tuning.PredatorMaxHealth(e.registry.HunterCount()), heal)
}

// Stats is a point-in-time summary of the arena.
type Stats struct {
	Players         int    `json:"players"`
	Hunters         int    `json:"hunters"`
	PredatorPresent bool   `json:"predatorPresent"`
	Bullets         int    `json:"bullets"`
	Bonuses         int    `json:"bonuses"`
	CycleTime       int64  `json:"cycleTime"`
	CycleCount      int    `json:"cycleCount"`
	Night           bool   `json:"night"`
	Ticks           uint64 `json:"ticks"`
}

func (e *Engine) Stats() Stats {
	return Stats{
		Players:         e.registry.Len(),
		Hunters:         e.registry.HunterCount(),
		PredatorPresent: e.registry.PredatorAssigned(),
		Bullets:         len(e.registry.Bullets()),
		Bonuses:         len(e.registry.Bonuses()),
		CycleTime:       e.cycle.Elapsed().Milliseconds(),
		CycleCount:      e.cycle.Count(),
		Night:           e.cycle.IsNight(),
		Ticks:           e.ticks,
	}
}
