package game

import (
	"strings"

	"github.com/besuhoff/predator-arena-go/internal/types"
)

// Registry owns every live entity of the arena. It is not safe for
// concurrent use; the engine's single owner goroutine is its only caller.
type Registry struct {
	players    map[string]*types.Player
	order      []string // join order
	bullets    []*types.Bullet
	bonuses    []*types.Bonus
	predatorID string
}

func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*types.Player),
	}
}

// Add inserts a player. The caller has already chosen the role.
func (r *Registry) Add(p *types.Player) {
	if _, exists := r.players[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.players[p.ID] = p
	if p.IsPredator() {
		r.predatorID = p.ID
	}
}

// Remove deletes a player and frees the Predator role if they held it.
func (r *Registry) Remove(id string) (*types.Player, bool) {
	p, exists := r.players[id]
	if !exists {
		return nil, false
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.predatorID == id {
		r.predatorID = ""
	}
	return p, true
}

func (r *Registry) Get(id string) (*types.Player, bool) {
	p, exists := r.players[id]
	return p, exists
}

// Players returns a snapshot of the players in join order. Removing players
// while ranging over the result is safe.
func (r *Registry) Players() []*types.Player {
	players := make([]*types.Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id])
	}
	return players
}

// Each calls fn for every player in join order.
func (r *Registry) Each(fn func(p *types.Player)) {
	for _, p := range r.Players() {
		fn(p)
	}
}

func (r *Registry) Len() int {
	return len(r.players)
}

func (r *Registry) PredatorAssigned() bool {
	return r.predatorID != ""
}

// Predator returns the current Predator or nil.
func (r *Registry) Predator() *types.Player {
	if r.predatorID == "" {
		return nil
	}
	return r.players[r.predatorID]
}

func (r *Registry) HunterCount() int {
	count := 0
	for _, p := range r.players {
		if p.IsHunter() {
			count++
		}
	}
	return count
}

// NameTaken compares names case-insensitively.
func (r *Registry) NameTaken(name string) bool {
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (r *Registry) AddBullet(b *types.Bullet) {
	r.bullets = append(r.bullets, b)
}

func (r *Registry) Bullets() []*types.Bullet {
	return r.bullets
}

// RetainBullets keeps only the bullets for which keep returns true.
func (r *Registry) RetainBullets(keep func(b *types.Bullet) bool) {
	kept := r.bullets[:0]
	for _, b := range r.bullets {
		if keep(b) {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(r.bullets); i++ {
		r.bullets[i] = nil
	}
	r.bullets = kept
}

func (r *Registry) AddBonus(b *types.Bonus) {
	r.bonuses = append(r.bonuses, b)
}

func (r *Registry) Bonuses() []*types.Bonus {
	return r.bonuses
}

func (r *Registry) Bonus(id string) (*types.Bonus, bool) {
	for _, b := range r.bonuses {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

func (r *Registry) RemoveBonus(id string) (*types.Bonus, bool) {
	for i, b := range r.bonuses {
		if b.ID == id {
			r.bonuses = append(r.bonuses[:i], r.bonuses[i+1:]...)
			return b, true
		}
	}
	return nil, false
}
