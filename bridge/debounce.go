package bridge

import "efidoom/hal"

// DefaultKeyTTL is how many ticks a key stays down after its last keystroke.
const DefaultKeyTTL = 4

// KeyEvent is one press or release in the engine's code space.
type KeyEvent struct {
	Pressed bool
	Code    uint8
}

// Debouncer synthesizes press/release pairs from a keystroke source that
// reports each keystroke once and never reports a release.
//
// A keystroke holds its key down for TTL ticks; every new keystroke for
// the same key restarts the countdown, so OS key repeat keeps it held.
type Debouncer struct {
	src hal.Keyboard
	ttl uint8

	countdown [256]uint8
	reported  [4]uint64
}

// NewDebouncer returns a debouncer over src. ttl of 0 selects DefaultKeyTTL.
func NewDebouncer(src hal.Keyboard, ttl uint8) *Debouncer {
	if ttl == 0 {
		ttl = DefaultKeyTTL
	}
	return &Debouncer{src: src, ttl: ttl}
}

// TTL returns the countdown length in ticks.
func (d *Debouncer) TTL() uint8 { return d.ttl }

// Drain pulls every pending keystroke from the source and restarts the
// countdown of each mapped key. It returns the number of mapped keystrokes.
func (d *Debouncer) Drain() int {
	if d.src == nil {
		return 0
	}
	n := 0
	for {
		k, ok := d.src.Poll()
		if !ok {
			return n
		}
		code := MapKey(k)
		if code == 0 {
			continue
		}
		d.countdown[code] = d.ttl
		n++
	}
}

// Age counts every running countdown down by one tick.
func (d *Debouncer) Age() {
	for i := range d.countdown {
		if d.countdown[i] > 0 {
			d.countdown[i]--
		}
	}
}

// Tick ages the countdowns and then drains the source; call it once per
// tick before asking for events. A keystroke drained this tick keeps its
// full TTL until the next Tick, so a TTL of 1 still yields a press.
func (d *Debouncer) Tick() {
	d.Age()
	d.Drain()
}

// Next surfaces at most one transition, lowest key code first. Call it
// until it returns false to drain a tick's transitions.
func (d *Debouncer) Next() (KeyEvent, bool) {
	for i := 0; i < len(d.countdown); i++ {
		code := uint8(i)
		down := d.isReported(code)
		switch {
		case d.countdown[i] > 0 && !down:
			d.setReported(code, true)
			return KeyEvent{Pressed: true, Code: code}, true
		case d.countdown[i] == 0 && down:
			d.setReported(code, false)
			return KeyEvent{Pressed: false, Code: code}, true
		}
	}
	return KeyEvent{}, false
}

// Held reports whether code was last surfaced as pressed.
func (d *Debouncer) Held(code uint8) bool { return d.isReported(code) }

func (d *Debouncer) isReported(code uint8) bool {
	return d.reported[code>>6]&(1<<(code&63)) != 0
}

func (d *Debouncer) setReported(code uint8, down bool) {
	if down {
		d.reported[code>>6] |= 1 << (code & 63)
	} else {
		d.reported[code>>6] &^= 1 << (code & 63)
	}
}
