//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }
func (d tinyGoDisplay) SetTitle(string)          {}

type tinyGoInput struct {
	kbd Keyboard
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

// tinyGoTime exposes the runtime's microsecond tick as the cycle counter.
type tinyGoTime struct {
	base time.Time
}

func newTinyGoTime() *tinyGoTime {
	return &tinyGoTime{base: time.Now()}
}

func (t *tinyGoTime) Cycles() uint64 {
	return uint64(time.Since(t.base) / time.Microsecond)
}

func (t *tinyGoTime) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func configureUART() *machine.UART {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return uart
}
