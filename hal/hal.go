package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrHalt is returned by a step function once the system has stopped on
// purpose. Runners with a display keep the last frame visible.
var ErrHalt = errors.New("halted")

// ErrQuit is returned by a step function when the program asked to exit.
var ErrQuit = errors.New("quit")

// Color is one 8-bit-per-channel palette entry.
type Color struct {
	R, G, B uint8
}

// Framebuffer is the display surface as reported by firmware.
//
// The geometry is whatever the firmware said, including broken values: a
// stride of 0 is passed through untouched and callers are expected to
// validate it before writing.
type Framebuffer interface {
	Width() int
	Height() int
	// Stride is the distance in pixels between the starts of two rows.
	Stride() int
	Format() PixelFormat
	Buffer() []byte
	// Present makes everything written to Buffer visible to the display
	// controller (cache flush, DMA blit or no-op on coherent memory).
	Present() error
}

// PaletteDevice is implemented by Indexed8 surfaces that carry their own
// color table.
type PaletteDevice interface {
	LoadPalette(p *[256]Color)
	Palette() [256]Color
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
	// SetTitle names the output window; a no-op where there is no window.
	SetTitle(title string)
}

// Scan codes reported by RawKey.Scan, numbered as the UEFI simple text
// input protocol numbers them.
const (
	ScanNone     uint16 = 0x00
	ScanUp       uint16 = 0x01
	ScanDown     uint16 = 0x02
	ScanRight    uint16 = 0x03
	ScanLeft     uint16 = 0x04
	ScanHome     uint16 = 0x05
	ScanEnd      uint16 = 0x06
	ScanInsert   uint16 = 0x07
	ScanDelete   uint16 = 0x08
	ScanPageUp   uint16 = 0x09
	ScanPageDown uint16 = 0x0A
	ScanF1       uint16 = 0x0B
	ScanF10      uint16 = 0x14
	ScanF11      uint16 = 0x15
	ScanF12      uint16 = 0x16
	ScanEscape   uint16 = 0x17
)

// RawKey is one keystroke as the firmware reports it: either a scan code
// for a non-printing key or a character, never a release.
type RawKey struct {
	Scan uint16
	Char rune
}

// Keyboard is a non-blocking one-shot keystroke source.
type Keyboard interface {
	// Poll returns the next pending keystroke, or false when none is queued.
	Poll() (RawKey, bool)
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides the raw timing primitives of the platform.
type Time interface {
	// Cycles reads a free-running counter of unknown frequency.
	Cycles() uint64
	// Delay blocks for at least ms milliseconds.
	Delay(ms uint32)
}

// HAL provides the only contact point between the bridge and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
