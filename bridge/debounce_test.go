package bridge

import (
	"testing"

	"efidoom/engine"
	"efidoom/hal"
)

// collect drains every transition the debouncer has for this tick.
func collect(d *Debouncer) []KeyEvent {
	var evs []KeyEvent
	for {
		ev, ok := d.Next()
		if !ok {
			return evs
		}
		evs = append(evs, ev)
	}
}

func TestDebouncerSingleKeystroke(t *testing.T) {
	kbd := &fakeKeyboard{}
	d := NewDebouncer(kbd, 0)
	if d.TTL() != DefaultKeyTTL {
		t.Fatalf("TTL() = %d, want %d", d.TTL(), DefaultKeyTTL)
	}

	kbd.char('w')
	d.Tick()
	evs := collect(d)
	if len(evs) != 1 || !evs[0].Pressed || evs[0].Code != 'w' {
		t.Fatalf("tick 0 events = %+v, want press of 'w'", evs)
	}
	if !d.Held('w') {
		t.Fatalf("Held('w') = false after press")
	}

	released := -1
	for tick := 1; tick <= DefaultKeyTTL+1; tick++ {
		d.Tick()
		for _, ev := range collect(d) {
			if ev.Code != 'w' || ev.Pressed {
				t.Fatalf("tick %d: unexpected event %+v", tick, ev)
			}
			if released >= 0 {
				t.Fatalf("tick %d: second release", tick)
			}
			released = tick
		}
	}
	if released < 1 {
		t.Fatalf("no release within %d ticks", DefaultKeyTTL+1)
	}
	if d.Held('w') {
		t.Fatalf("Held('w') = true after release")
	}
}

func TestDebouncerRepeatKeepsKeyHeld(t *testing.T) {
	kbd := &fakeKeyboard{}
	d := NewDebouncer(kbd, 2)

	for tick := 0; tick < 20; tick++ {
		kbd.scan(hal.ScanUp)
		d.Tick()
		evs := collect(d)
		if tick == 0 {
			if len(evs) != 1 || !evs[0].Pressed || evs[0].Code != engine.KeyUpArrow {
				t.Fatalf("tick 0 events = %+v, want press of up", evs)
			}
			continue
		}
		if len(evs) != 0 {
			t.Fatalf("tick %d: events %+v while key repeats", tick, evs)
		}
	}
}

func TestDebouncerAlternates(t *testing.T) {
	kbd := &fakeKeyboard{}
	d := NewDebouncer(kbd, 3)

	// Bursts of keystrokes with gaps of varying length.
	pattern := []bool{true, true, false, false, false, false, true, false, true, false, false, false, false, false, true}
	down := false
	for tick, hit := range pattern {
		if hit {
			kbd.char('a')
		}
		d.Tick()
		for _, ev := range collect(d) {
			if ev.Pressed == down {
				t.Fatalf("tick %d: pressed=%v twice in a row", tick, ev.Pressed)
			}
			down = ev.Pressed
		}
	}
}

func TestDebouncerDropsUnmappedKeys(t *testing.T) {
	kbd := &fakeKeyboard{}
	d := NewDebouncer(kbd, 0)

	kbd.scan(0x99)
	kbd.char('é')
	kbd.char(0)
	if n := d.Drain(); n != 0 {
		t.Fatalf("Drain() = %d, want 0", n)
	}
	d.Age()
	if evs := collect(d); len(evs) != 0 {
		t.Fatalf("events = %+v, want none", evs)
	}
}

func TestDebouncerMinimumTTL(t *testing.T) {
	kbd := &fakeKeyboard{}
	d := NewDebouncer(kbd, 1)

	kbd.char('w')
	var got []KeyEvent
	for tick := 0; tick < 4; tick++ {
		d.Tick()
		for _, ev := range collect(d) {
			if ev.Code != 'w' {
				t.Fatalf("tick %d: unexpected event %+v", tick, ev)
			}
			if ev.Pressed != (tick == 0) || tick > 1 {
				t.Fatalf("tick %d: event %+v, want press at 0 and release at 1", tick, ev)
			}
			got = append(got, ev)
		}
	}
	if len(got) != 2 {
		t.Fatalf("events = %+v, want one press and one release", got)
	}
}

func TestDebouncerOneTransitionPerCall(t *testing.T) {
	kbd := &fakeKeyboard{}
	d := NewDebouncer(kbd, 1)

	kbd.char('b')
	kbd.char('a')
	kbd.scan(hal.ScanEscape)
	d.Tick()

	want := []uint8{engine.KeyEscape, 'a', 'b'}
	for i, code := range want {
		ev, ok := d.Next()
		if !ok || !ev.Pressed || ev.Code != code {
			t.Fatalf("Next() #%d = %+v, %v, want press of %d", i, ev, ok, code)
		}
	}
	if _, ok := d.Next(); ok {
		t.Fatalf("Next() ok = true after all presses")
	}

	// TTL 1: the next tick without keystrokes releases all three.
	d.Tick()
	if evs := collect(d); len(evs) != 3 {
		t.Fatalf("release events = %+v, want 3", evs)
	}
}

func TestDebouncerNilSource(t *testing.T) {
	d := NewDebouncer(nil, 0)
	d.Tick()
	if _, ok := d.Next(); ok {
		t.Fatalf("Next() ok = true with no keyboard")
	}
}
