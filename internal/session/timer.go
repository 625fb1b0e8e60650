package session

// Countdown is the fixed-period session clock. The owner advances it once
// per second; remaining and elapsed move in lockstep.
type Countdown struct {
	remaining int
	elapsed   int
}

// NewCountdown starts a countdown from the given number of seconds.
func NewCountdown(seconds int) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{remaining: seconds}
}

// Tick advances the clock by one second and reports whether the countdown
// has expired. Ticks after expiry are no-ops.
func (c *Countdown) Tick() bool {
	if c.remaining <= 0 {
		return true
	}
	c.remaining--
	c.elapsed++
	return c.remaining <= 0
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Elapsed returns the seconds consumed so far.
func (c *Countdown) Elapsed() int {
	return c.elapsed
}

// Expired reports whether the countdown reached zero.
func (c *Countdown) Expired() bool {
	return c.remaining <= 0
}
