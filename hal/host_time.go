//go:build !tinygo

package hal

import "time"

type hostTime struct {
	base time.Time
}

func newHostTime() *hostTime {
	return &hostTime{base: time.Now()}
}

// Cycles counts nanoseconds on the monotonic clock. Callers must not rely
// on that: the bridge calibrates it like any other counter.
func (t *hostTime) Cycles() uint64 {
	return uint64(time.Since(t.base))
}

func (t *hostTime) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
