package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant of the arena.
type Tuning struct {
	// World
	WorldWidth            float64 `yaml:"world_width"`
	WorldHeight           float64 `yaml:"world_height"`
	BoundaryVertices      int     `yaml:"boundary_vertices"`
	InteriorWalls         int     `yaml:"interior_walls"`
	InteriorWallMinLength float64 `yaml:"interior_wall_min_length"`
	InteriorWallMaxLength float64 `yaml:"interior_wall_max_length"`
	InteriorWallPadding   float64 `yaml:"interior_wall_padding"`
	WallWidth             float64 `yaml:"wall_width"`

	// Movement
	PlayerSpeed       float64 `yaml:"player_speed"`
	PlayerRadius      float64 `yaml:"player_radius"`
	SprintMultiplier  float64 `yaml:"sprint_multiplier"`
	MaxPushIterations int     `yaml:"max_push_iterations"`
	PushEpsilon       float64 `yaml:"push_epsilon"`

	// Roles
	HunterHealth       float64 `yaml:"hunter_health"`
	PredatorBaseHealth float64 `yaml:"predator_base_health"`
	HealthPerHunter    float64 `yaml:"health_per_hunter"`
	HunterAmmo         int     `yaml:"hunter_ammo"`
	MaxNameLength      int     `yaml:"max_name_length"`
	SpawnPadding       float64 `yaml:"spawn_padding"`
	SpawnAttempts      int     `yaml:"spawn_attempts"`

	// Shotgun
	ShootCooldown     time.Duration `yaml:"shoot_cooldown"`
	ShotgunPellets    int           `yaml:"shotgun_pellets"`
	ShotgunSpread     float64       `yaml:"shotgun_spread"`
	MuzzleOffset      float64       `yaml:"muzzle_offset"`
	BulletSpeed       float64       `yaml:"bullet_speed"`
	BulletLifetime    time.Duration `yaml:"bullet_lifetime"`
	BulletRadius      float64       `yaml:"bullet_radius"`
	BulletDamage      float64       `yaml:"bullet_damage"`
	PenetrationChance float64       `yaml:"penetration_chance"`

	// Predator abilities
	AttackRange    float64       `yaml:"attack_range"`
	AttackCone     float64       `yaml:"attack_cone"`
	AttackDamage   float64       `yaml:"attack_damage"`
	AttackCooldown time.Duration `yaml:"attack_cooldown"`
	DecoyCooldown  time.Duration `yaml:"decoy_cooldown"`

	// Day/night and bonuses
	CycleDuration                time.Duration `yaml:"cycle_duration"`
	BonusRadius                  float64       `yaml:"bonus_radius"`
	BonusSpawnPadding            float64       `yaml:"bonus_spawn_padding"`
	BonusWallMargin              float64       `yaml:"bonus_wall_margin"`
	MinBonusDistance             float64       `yaml:"min_bonus_distance"`
	MinSpawnDistanceFromPredator float64       `yaml:"min_spawn_distance_from_predator"`
	BonusPointAttempts           int           `yaml:"bonus_point_attempts"`
	BonusAttemptsPerBonus        int           `yaml:"bonus_attempts_per_bonus"`
	NightBonusMinAmmo            int           `yaml:"night_bonus_min_ammo"`
	NightBonusMaxAmmo            int           `yaml:"night_bonus_max_ammo"`
}

func DefaultTuning() Tuning {
	const worldSize = 2000 * 1.3
	return Tuning{
		WorldWidth:            worldSize,
		WorldHeight:           worldSize,
		BoundaryVertices:      15,
		InteriorWalls:         50,
		InteriorWallMinLength: 80,
		InteriorWallMaxLength: 300,
		InteriorWallPadding:   100,
		WallWidth:             20,

		PlayerSpeed:       200,
		PlayerRadius:      15,
		SprintMultiplier:  1.8,
		MaxPushIterations: 3,
		PushEpsilon:       0.01,

		HunterHealth:       100,
		PredatorBaseHealth: 100,
		HealthPerHunter:    50,
		HunterAmmo:         10,
		MaxNameLength:      16,
		SpawnPadding:       100,
		SpawnAttempts:      100,

		ShootCooldown:     500 * time.Millisecond,
		ShotgunPellets:    7,
		ShotgunSpread:     math.Pi / 12,
		MuzzleOffset:      5,
		BulletSpeed:       900,
		BulletLifetime:    time.Second,
		BulletRadius:      2,
		BulletDamage:      10,
		PenetrationChance: 0.5,

		AttackRange:    75,
		AttackCone:     math.Pi / 3,
		AttackDamage:   35,
		AttackCooldown: 500 * time.Millisecond,
		DecoyCooldown:  200 * time.Millisecond,

		CycleDuration:                120 * time.Second,
		BonusRadius:                  15,
		BonusSpawnPadding:            50,
		BonusWallMargin:              10,
		MinBonusDistance:             250,
		MinSpawnDistanceFromPredator: 500,
		BonusPointAttempts:           50,
		BonusAttemptsPerBonus:        100,
		NightBonusMinAmmo:            2,
		NightBonusMaxAmmo:            5,
	}
}

// LoadTuning returns the default tuning overlaid with the YAML file at path.
// An empty path yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid tuning file %s: %w", path, err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	var errs []error
	if t.WorldWidth <= 0 || t.WorldHeight <= 0 {
		errs = append(errs, errors.New("world dimensions must be positive"))
	}
	if t.BoundaryVertices < 3 {
		errs = append(errs, errors.New("boundary needs at least 3 vertices"))
	}
	if t.InteriorWallMinLength > t.InteriorWallMaxLength {
		errs = append(errs, errors.New("interior wall min length exceeds max length"))
	}
	if 2*t.InteriorWallPadding >= math.Min(t.WorldWidth, t.WorldHeight) {
		errs = append(errs, errors.New("interior wall padding leaves no room"))
	}
	if t.PlayerRadius <= 0 || t.BulletRadius <= 0 || t.BonusRadius <= 0 {
		errs = append(errs, errors.New("radii must be positive"))
	}
	if t.MaxPushIterations < 1 {
		errs = append(errs, errors.New("max push iterations must be at least 1"))
	}
	if t.ShotgunPellets < 1 {
		errs = append(errs, errors.New("shotgun needs at least one pellet"))
	}
	if t.PenetrationChance < 0 || t.PenetrationChance > 1 {
		errs = append(errs, errors.New("penetration chance must be within [0,1]"))
	}
	if t.CycleDuration <= 0 {
		errs = append(errs, errors.New("cycle duration must be positive"))
	}
	if t.NightBonusMinAmmo > t.NightBonusMaxAmmo {
		errs = append(errs, errors.New("night bonus min ammo exceeds max ammo"))
	}
	if t.SpawnAttempts < 1 || t.BonusPointAttempts < 1 || t.BonusAttemptsPerBonus < 1 {
		errs = append(errs, errors.New("spawn attempt budgets must be at least 1"))
	}
	if t.MaxNameLength < 1 {
		errs = append(errs, errors.New("max name length must be at least 1"))
	}
	return errors.Join(errs...)
}

// BonusWallBuffer is the clearance between a spawned bonus and any wall,
// wide enough for a player to reach it.
func (t Tuning) BonusWallBuffer() float64 {
	return t.BonusRadius + t.PlayerRadius + t.BonusWallMargin
}

// PredatorMaxHealth is the Predator's health ceiling for the given Hunter count.
func (t Tuning) PredatorMaxHealth(hunters int) float64 {
	if hunters < 0 {
		hunters = 0
	}
	return t.PredatorBaseHealth + float64(hunters)*t.HealthPerHunter
}
