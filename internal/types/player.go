package types

import (
	"math"
	"time"
)

type Role string

const (
	RolePredator Role = "Predator"
	RoleHunter   Role = "Hunter"
)

// MovementKeys holds the WASD state of an input snapshot
type MovementKeys struct {
	W bool `json:"w"`
	A bool `json:"a"`
	S bool `json:"s"`
	D bool `json:"d"`
}

// InputState is the latest input snapshot received from a player.
type InputState struct {
	Keys   MovementKeys `json:"keys"`
	Angle  float64      `json:"angle"`
	Sprint bool         `json:"sprintModifier"`
	Aim    bool         `json:"aimModifier"`
}

// Arsenal is the ranged loadout carried by Hunters.
type Arsenal struct {
	Ammo    int `json:"ammo"`
	MaxAmmo int `json:"maxAmmo"`
}

// Refill adds amount up to MaxAmmo and returns the ammo actually gained.
func (a *Arsenal) Refill(amount int) int {
	before := a.Ammo
	a.Ammo = min(a.MaxAmmo, a.Ammo+amount)
	return a.Ammo - before
}

// Player represents a joined participant
type Player struct {
	ScreenObject
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Angle     float64    `json:"angle"`
	Health    float64    `json:"health"`
	MaxHealth float64    `json:"maxHealth"`
	Arsenal   *Arsenal   `json:"arsenal,omitempty"` // nil for the Predator
	Input     InputState `json:"-"`

	LastShotAt   time.Time `json:"-"`
	LastAttackAt time.Time `json:"-"`
	LastDecoyAt  time.Time `json:"-"`
}

func (p *Player) IsPredator() bool {
	return p.Role == RolePredator
}

func (p *Player) IsHunter() bool {
	return p.Role == RoleHunter
}

// Ammo returns the carried ammo, zero for roles without an arsenal.
func (p *Player) Ammo() int {
	if p.Arsenal == nil {
		return 0
	}
	return p.Arsenal.Ammo
}

func (p *Player) MaxAmmo() int {
	if p.Arsenal == nil {
		return 0
	}
	return p.Arsenal.MaxAmmo
}

// TakeDamage lowers health, never below zero, and reports whether the player died.
func (p *Player) TakeDamage(amount float64) bool {
	p.Health = math.Max(0, p.Health-amount)
	return p.Health <= 0
}

// SetMaxHealth changes the ceiling and clamps health into [0, max].
// With heal set, health is restored to the new ceiling.
func (p *Player) SetMaxHealth(ceiling float64, heal bool) {
	p.MaxHealth = ceiling
	if heal {
		p.Health = ceiling
		return
	}
	p.Health = math.Min(p.Health, ceiling)
}

// CooldownReady reports whether cooldown has elapsed since last at now.
func CooldownReady(last, now time.Time, cooldown time.Duration) bool {
	return last.IsZero() || now.Sub(last) >= cooldown
}
