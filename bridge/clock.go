package bridge

import (
	"fmt"
	"math/bits"

	"efidoom/hal"
)

const (
	// DefaultCalibrationMs is how long calibration blocks to measure the
	// cycle counter.
	DefaultCalibrationMs = 100

	// FallbackFrequency is used when calibration measures no cycles at all.
	FallbackFrequency uint64 = 2_000_000_000
)

// Clock turns a free-running cycle counter of unknown frequency into
// monotonic milliseconds. It never fails; at worst the time base is off.
type Clock struct {
	t      hal.Time
	logger hal.Logger

	intervalMs     uint32
	ticksPerSecond uint64
	start          uint64
	calibrated     bool
}

// NewClock returns an uncalibrated clock. intervalMs of 0 selects
// DefaultCalibrationMs.
func NewClock(t hal.Time, logger hal.Logger, intervalMs uint32) *Clock {
	if intervalMs == 0 {
		intervalMs = DefaultCalibrationMs
	}
	return &Clock{t: t, logger: logger, intervalMs: intervalMs}
}

// Calibrate measures the counter across one blocking delay and fixes the
// start of the time base. Later calls do nothing.
func (c *Clock) Calibrate() {
	if c.calibrated {
		return
	}
	c.calibrated = true

	a := c.t.Cycles()
	c.t.Delay(c.intervalMs)
	b := c.t.Cycles()

	var delta uint64
	if b > a {
		delta = b - a
	}
	hi, lo := bits.Mul64(delta, 1000)
	if hi >= uint64(c.intervalMs) {
		// More than 2^64 cycles per second; clamp rather than fault.
		c.ticksPerSecond = ^uint64(0)
	} else {
		c.ticksPerSecond, _ = bits.Div64(hi, lo, uint64(c.intervalMs))
	}

	if c.ticksPerSecond == 0 {
		c.ticksPerSecond = FallbackFrequency
		c.logf("clock: counter did not advance over %dms, assuming %d Hz", c.intervalMs, FallbackFrequency)
	} else {
		c.logf("clock: %d Hz", c.ticksPerSecond)
	}

	c.start = c.t.Cycles()
}

// NowMs returns the milliseconds elapsed since calibration. If the counter
// goes backwards the time base restarts at 0.
func (c *Clock) NowMs() uint64 {
	c.Calibrate()

	cur := c.t.Cycles()
	if cur < c.start {
		c.logf("clock: counter went backwards (%d < %d), restarting time base", cur, c.start)
		c.start = cur
		return 0
	}

	hi, lo := bits.Mul64(cur-c.start, 1000)
	if hi >= c.ticksPerSecond {
		return ^uint64(0)
	}
	ms, _ := bits.Div64(hi, lo, c.ticksPerSecond)
	return ms
}

// TicksPerSecond returns the calibrated counter frequency, or 0 before
// calibration.
func (c *Clock) TicksPerSecond() uint64 { return c.ticksPerSecond }

func (c *Clock) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.WriteLineString(fmt.Sprintf(format, args...))
}
