package radio

import "time"

// Ticks is a millisecond uptime counter that wraps at TickPeriod.
type Ticks uint32

const (
	// TickPeriod is the counter width of the device tick (2^30 ms, about 12.4 days).
	TickPeriod = 1 << 30
	tickMask   = TickPeriod - 1
	tickHalf   = TickPeriod / 2
)

// TicksAdd offsets t by delta milliseconds modulo the tick period.
func TicksAdd(t Ticks, delta int) Ticks {
	return Ticks((uint32(t) + uint32(int32(delta))) & tickMask)
}

// TicksDiff returns end-start as a signed distance in [-TickPeriod/2, TickPeriod/2).
// It stays correct when the counter wrapped between start and end.
func TicksDiff(end, start Ticks) int {
	d := (uint32(end) - uint32(start)) & tickMask
	if d >= tickHalf {
		return int(d) - TickPeriod
	}
	return int(d)
}

// Clock provides ticks and a blocking delay.
type Clock interface {
	Ticks() Ticks
	Sleep(d time.Duration)
}

// SystemClock counts ticks from process start using the monotonic clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Ticks() Ticks {
	return Ticks(uint64(time.Since(c.start).Milliseconds()) & tickMask)
}

func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
