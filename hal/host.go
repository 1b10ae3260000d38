//go:build !tinygo

package hal

import (
	"os"
	"sync"
)

// HostConfig describes the surface the host HAL pretends firmware reported.
type HostConfig struct {
	Width  int
	Height int
	// Stride in pixels; 0 is passed through as-is to exercise the
	// broken-firmware path.
	Stride int
	Format PixelFormat
}

// DefaultHostConfig is an 800x600 BGRX surface with a padded stride, the
// shape most GOP implementations report.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Width:  800,
		Height: 600,
		Stride: PaddedStride(800),
		Format: FormatBGRX8888,
	}
}

// PaddedStride rounds width up to the next multiple of 64 pixels.
func PaddedStride(width int) int {
	return (width + 63) &^ 63
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    Keyboard
	t      *hostTime

	mu    sync.Mutex
	title string
}

// New returns a host HAL implementation with the default surface.
func New() HAL {
	return NewWithConfig(DefaultHostConfig())
}

// NewWithConfig returns a host HAL implementation backed by an in-memory
// surface of the given shape.
func NewWithConfig(cfg HostConfig) HAL {
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg),
		kbd:    stubKeyboard{},
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{h: h} }
func (h *hostHAL) Input() Input     { return hostInput{h: h} }
func (h *hostHAL) Time() Time       { return h.t }

func (h *hostHAL) setKeyboard(k Keyboard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.kbd = k
}

func (h *hostHAL) windowTitle() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

type hostDisplay struct {
	h *hostHAL
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.h.fb }

func (d hostDisplay) SetTitle(title string) {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	d.h.title = title
}

type hostInput struct {
	h *hostHAL
}

func (in hostInput) Keyboard() Keyboard {
	in.h.mu.Lock()
	defer in.h.mu.Unlock()
	return in.h.kbd
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
	// crlf is set while stdin is in raw mode, which also stops the
	// terminal from translating \n.
	crlf bool
}

func (l *hostLogger) setCRLF(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.crlf = on
}

func (l *hostLogger) WriteLineString(s string) {
	l.WriteLineBytes([]byte(s))
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	if l.crlf {
		l.w.Write([]byte{'\r', '\n'})
		return
	}
	l.w.Write([]byte{'\n'})
}
