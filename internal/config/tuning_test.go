package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningIsValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func TestPredatorMaxHealth(t *testing.T) {
	tuning := DefaultTuning()

	assert.Equal(t, 100.0, tuning.PredatorMaxHealth(0))
	assert.Equal(t, 150.0, tuning.PredatorMaxHealth(1))
	assert.Equal(t, 300.0, tuning.PredatorMaxHealth(4))
	assert.Equal(t, 100.0, tuning.PredatorMaxHealth(-2))
}

func TestBonusWallBuffer(t *testing.T) {
	tuning := DefaultTuning()
	assert.Equal(t, 40.0, tuning.BonusWallBuffer())

	tuning.BonusRadius = 20
	tuning.BonusWallMargin = 0
	assert.Equal(t, 35.0, tuning.BonusWallBuffer())
}

func TestLoadTuningOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := []byte("player_speed: 250\nshotgun_pellets: 9\nshoot_cooldown: 750ms\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 250.0, tuning.PlayerSpeed)
	assert.Equal(t, 9, tuning.ShotgunPellets)
	assert.Equal(t, 750*time.Millisecond, tuning.ShootCooldown)
	assert.Equal(t, DefaultTuning().BulletSpeed, tuning.BulletSpeed)
}

func TestLoadTuningRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("penetration_chance: 1.5\n"), 0o644))

	_, err := LoadTuning(path)
	assert.Error(t, err)
}

func TestLoadTuningEmptyPath(t *testing.T) {
	tuning, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TICK_RATE", "20")
	t.Setenv("MAP_SEED", "42")
	t.Setenv("SWEPT_BULLETS", "true")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 20, cfg.TickRate)
	assert.Equal(t, int64(42), cfg.MapSeed)
	assert.True(t, cfg.SweptBullets)
}

func TestLoadConfigRejectsBadTickRate(t *testing.T) {
	t.Setenv("TICK_RATE", "zero")

	_, _, err := Load()
	assert.Error(t, err)
}
