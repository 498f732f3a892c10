package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayNightClockStartsAtNight(t *testing.T) {
	clock := NewDayNightClock(120 * time.Second)

	assert.Equal(t, 1, clock.Count())
	assert.True(t, clock.IsNight())
	assert.False(t, clock.Advance(time.Second))
}

func TestDayNightClockReportsNightEdge(t *testing.T) {
	clock := NewDayNightClock(120 * time.Second)

	assert.False(t, clock.Advance(60*time.Second))
	assert.False(t, clock.IsNight())
	assert.False(t, clock.Advance(59*time.Second))

	assert.True(t, clock.Advance(2*time.Second))
	assert.True(t, clock.IsNight())
	assert.Equal(t, 2, clock.Count())
	assert.Equal(t, time.Second, clock.Elapsed())

	assert.False(t, clock.Advance(time.Second))
}

func TestDayNightClockWraps(t *testing.T) {
	clock := NewDayNightClock(120 * time.Second)
	clock.elapsed = clock.Duration() - time.Millisecond

	clock.Advance(33 * time.Millisecond)

	assert.Equal(t, 32*time.Millisecond, clock.Elapsed())
	assert.Equal(t, 2, clock.Count())
}
