package game

import "time"

// DayNightClock tracks the position inside the repeating day/night cycle.
// Night is the first half of every cycle.
type DayNightClock struct {
	elapsed  time.Duration
	duration time.Duration
	count    int
	wasNight bool
}

func NewDayNightClock(duration time.Duration) *DayNightClock {
	return &DayNightClock{
		duration: duration,
		count:    1,
		wasNight: true,
	}
}

// Advance moves the clock forward and reports whether night has just begun.
func (c *DayNightClock) Advance(d time.Duration) bool {
	c.elapsed += d
	if c.elapsed >= c.duration {
		c.count += int(c.elapsed / c.duration)
		c.elapsed %= c.duration
	}

	night := c.IsNight()
	started := night && !c.wasNight
	c.wasNight = night
	return started
}

func (c *DayNightClock) IsNight() bool {
	return c.elapsed < c.duration/2
}

func (c *DayNightClock) Elapsed() time.Duration {
	return c.elapsed
}

func (c *DayNightClock) Duration() time.Duration {
	return c.duration
}

// Count is the 1-based number of the current cycle.
func (c *DayNightClock) Count() int {
	return c.count
}
