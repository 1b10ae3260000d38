//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// terminalKeyboard reads raw stdin and queues each keystroke once, the way
// a serial console delivers them to firmware.
type terminalKeyboard struct {
	*queueKeyboard

	fd        int
	r         io.Reader
	oldState  *term.State
	interrupt func()

	stopOnce sync.Once
}

func newTerminalKeyboard(interrupt func()) *terminalKeyboard {
	return &terminalKeyboard{
		queueKeyboard: newQueueKeyboard(64),
		fd:            int(os.Stdin.Fd()),
		r:             os.Stdin,
		interrupt:     interrupt,
	}
}

// Start puts the terminal in raw mode and begins reading. It returns an
// error when stdin is not a terminal.
func (k *terminalKeyboard) Start() error {
	if !term.IsTerminal(k.fd) {
		return fmt.Errorf("terminal keyboard: stdin is not a terminal")
	}
	old, err := term.MakeRaw(k.fd)
	if err != nil {
		return fmt.Errorf("terminal keyboard: raw mode: %w", err)
	}
	k.oldState = old

	go k.readLoop()
	return nil
}

func (k *terminalKeyboard) readLoop() {
	buf := make([]byte, 32)
	var pending []byte
	for {
		n, err := k.r.Read(buf)
		if n > 0 {
			data := append(pending, buf[:n]...)
			// A read that ends mid-sequence is completed by the next one,
			// except a bare ESC which is only ever sent alone.
			final := len(data) == 1
			var keys []RawKey
			keys, pending = decodeTerminal(data, final)
			for _, key := range keys {
				if key.Char == 0x03 && k.interrupt != nil {
					k.interrupt()
					continue
				}
				k.push(key)
			}
		}
		if err != nil {
			return
		}
	}
}

// Stop restores the terminal. The reader goroutine ends with the next
// keystroke or when stdin closes.
func (k *terminalKeyboard) Stop() {
	k.stopOnce.Do(func() {
		if k.oldState != nil {
			_ = term.Restore(k.fd, k.oldState)
			k.oldState = nil
		}
	})
}
