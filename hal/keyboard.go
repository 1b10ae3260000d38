package hal

// queueKeyboard buffers keystrokes pushed by a backend until Poll drains them.
// A full queue drops new keystrokes, like a firmware key buffer does.
type queueKeyboard struct {
	ch chan RawKey
}

func newQueueKeyboard(n int) *queueKeyboard {
	return &queueKeyboard{ch: make(chan RawKey, n)}
}

func (k *queueKeyboard) Poll() (RawKey, bool) {
	select {
	case key := <-k.ch:
		return key, true
	default:
		return RawKey{}, false
	}
}

func (k *queueKeyboard) push(key RawKey) {
	select {
	case k.ch <- key:
	default:
	}
}

type stubKeyboard struct{}

func (stubKeyboard) Poll() (RawKey, bool) { return RawKey{}, false }
