package bridge

import "testing"

func TestClockCalibratesOnFirstRead(t *testing.T) {
	ft := &fakeTime{cycles: 500, perMs: 1000}
	c := NewClock(ft, nil, 0)

	if got := c.NowMs(); got != 0 {
		t.Fatalf("NowMs() = %d, want 0", got)
	}
	if ft.slept != DefaultCalibrationMs {
		t.Fatalf("calibration slept %dms, want %d", ft.slept, DefaultCalibrationMs)
	}
	if got := c.TicksPerSecond(); got != 1_000_000 {
		t.Fatalf("TicksPerSecond() = %d, want 1000000", got)
	}

	ft.cycles += 5_000
	if got := c.NowMs(); got != 5 {
		t.Fatalf("NowMs() = %d, want 5", got)
	}
	if ft.slept != DefaultCalibrationMs {
		t.Fatalf("second read slept again (%dms total)", ft.slept)
	}
}

func TestClockFallbackFrequency(t *testing.T) {
	ft := &fakeTime{perMs: 0}
	log := &fakeLogger{}
	c := NewClock(ft, log, 10)

	c.Calibrate()
	if got := c.TicksPerSecond(); got != FallbackFrequency {
		t.Fatalf("TicksPerSecond() = %d, want %d", got, FallbackFrequency)
	}
	if !log.contains("did not advance") {
		t.Fatalf("no fallback log line, got %q", log.lines)
	}

	ft.cycles += 2 * FallbackFrequency
	if got := c.NowMs(); got != 2000 {
		t.Fatalf("NowMs() = %d, want 2000", got)
	}
}

func TestClockCounterWrapRestarts(t *testing.T) {
	ft := &fakeTime{cycles: 1 << 40, perMs: 1000}
	log := &fakeLogger{}
	c := NewClock(ft, log, 0)

	c.Calibrate()
	ft.cycles += 7_000
	if got := c.NowMs(); got != 7 {
		t.Fatalf("NowMs() = %d, want 7", got)
	}

	ft.cycles = 10
	if got := c.NowMs(); got != 0 {
		t.Fatalf("NowMs() after wrap = %d, want 0", got)
	}
	if !log.contains("backwards") {
		t.Fatalf("no wrap log line, got %q", log.lines)
	}

	ft.cycles += 3_000
	if got := c.NowMs(); got != 3 {
		t.Fatalf("NowMs() after restart = %d, want 3", got)
	}
}

func TestClockMonotonic(t *testing.T) {
	ft := &fakeTime{perMs: 3}
	c := NewClock(ft, nil, 0)

	var last uint64
	for i := 0; i < 1000; i++ {
		ft.cycles += uint64(i % 7)
		now := c.NowMs()
		if now < last {
			t.Fatalf("NowMs() went backwards at step %d: %d < %d", i, now, last)
		}
		last = now
	}
}

func TestClockNoOverflowOnLargeCounts(t *testing.T) {
	ft := &fakeTime{perMs: 3_000_000}
	c := NewClock(ft, nil, 0)
	c.Calibrate()

	// Ten years at 3 GHz overflows delta*1000 in 64 bits.
	const tenYearsMs = uint64(10 * 365 * 24 * 3600 * 1000)
	ft.cycles += tenYearsMs * 3_000_000
	if got := c.NowMs(); got != tenYearsMs {
		t.Fatalf("NowMs() = %d, want %d", got, tenYearsMs)
	}
}
