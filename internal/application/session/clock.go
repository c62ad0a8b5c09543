package session

import "time"

// Timer is a callback scheduled on a Clock
type Timer struct {
	delay   time.Duration
	elapsed time.Duration
	loop    bool
	fn      func()
	removed bool
}

// Delay returns the current period of the timer
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// SetDelay changes the period; time already elapsed counts toward it
func (t *Timer) SetDelay(d time.Duration) {
	t.delay = d
}

// Remove cancels the timer. It never fires again, even later in the same
// Advance call.
func (t *Timer) Remove() {
	t.removed = true
}

// Active reports whether the timer can still fire
func (t *Timer) Active() bool {
	return !t.removed
}

// Clock is a game-time scheduler. Timers fire from Advance, in the order
// they were added, at most once per timer per Advance. Any time beyond the
// delay carries over to the next period. Periods shorter than the step
// passed to Advance are unsupported: the extra fires are not caught up.
type Clock struct {
	now    time.Duration
	timers []*Timer
}

// NewClock creates a clock at time zero
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the game time advanced so far
func (c *Clock) Now() time.Duration {
	return c.now
}

// Every schedules fn every delay
func (c *Clock) Every(delay time.Duration, fn func()) *Timer {
	return c.add(&Timer{delay: delay, loop: true, fn: fn})
}

// After schedules fn once after delay
func (c *Clock) After(delay time.Duration, fn func()) *Timer {
	return c.add(&Timer{delay: delay, fn: fn})
}

func (c *Clock) add(t *Timer) *Timer {
	c.timers = append(c.timers, t)
	return t
}

// Advance moves game time forward by dt and fires due timers. Timers added
// by callbacks start counting on the next Advance.
func (c *Clock) Advance(dt time.Duration) {
	c.now += dt

	pending := c.timers
	for _, t := range pending {
		if t.removed {
			continue
		}
		t.elapsed += dt
		if t.elapsed < t.delay {
			continue
		}
		t.elapsed -= t.delay
		if !t.loop {
			t.removed = true
		}
		t.fn()
	}

	kept := c.timers[:0]
	for _, t := range c.timers {
		if !t.removed {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = kept
}

// Len returns the number of scheduled timers
func (c *Clock) Len() int {
	return len(c.timers)
}

// Ticker hands out fixed steps for a tick rate. Steps differ by at most
// 1ns so that any run of rate ticks adds up to exactly one second.
type Ticker struct {
	rate  int64
	ticks int64
}

// NewTicker creates a ticker for rate ticks per second; rate <= 0 means 60
func NewTicker(rate int) *Ticker {
	if rate <= 0 {
		rate = 60
	}
	return &Ticker{rate: int64(rate)}
}

// Next returns the length of the next tick
func (t *Ticker) Next() time.Duration {
	prev := t.at(t.ticks)
	t.ticks++
	return t.at(t.ticks) - prev
}

func (t *Ticker) at(n int64) time.Duration {
	return time.Duration(n * int64(time.Second) / t.rate)
}
