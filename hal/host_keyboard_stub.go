//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	*queueKeyboard
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{queueKeyboard: newQueueKeyboard(64)}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
