// Package engine describes what a host-independent game loop expects from
// the platform it runs on, and what the platform expects back.
package engine

import "errors"

// ErrQuit is returned by Tick when the player asked to leave.
var ErrQuit = errors.New("engine: quit")

// Logical resolution the engines in this repository render at.
const (
	ResX = 320
	ResY = 200
)

// FrameFormat is the pixel layout of an engine's software frame.
type FrameFormat uint8

const (
	// FrameIndexed8 holds one palette index per pixel in Frame.Index.
	FrameIndexed8 FrameFormat = iota
	// FrameTruecolor holds one 0x00RRGGBB value per pixel in Frame.RGB.
	FrameTruecolor
)

func (f FrameFormat) String() string {
	switch f {
	case FrameIndexed8:
		return "indexed8"
	case FrameTruecolor:
		return "truecolor"
	}
	return "unknown"
}

// Frame is the engine's software frame buffer. The platform allocates it
// once, zeroed, and it stays at the same address for the process lifetime.
type Frame struct {
	Width  int
	Height int
	Format FrameFormat

	Index []uint8
	RGB   []uint32
}

// NewFrame allocates a zeroed frame.
func NewFrame(w, h int, format FrameFormat) *Frame {
	f := &Frame{Width: w, Height: h, Format: format}
	switch format {
	case FrameIndexed8:
		f.Index = make([]uint8, w*h)
	case FrameTruecolor:
		f.RGB = make([]uint32, w*h)
	}
	return f
}

// Platform is the per-tick callback contract. Within one tick an engine
// calls PollKey until it reports no event, then GetTicksMs, DrawFrame and
// SleepMs, in that order, all from one goroutine.
type Platform interface {
	// Init prepares the display and input; it fails on a surface the
	// platform cannot draw to.
	Init() error
	// Frame returns the software frame the engine renders into.
	Frame() *Frame
	DrawFrame()
	SleepMs(ms uint32)
	GetTicksMs() uint32
	// PollKey surfaces at most one key transition.
	PollKey() (ok, pressed bool, code uint8)
	SetWindowTitle(title string)
	// SetPalette replaces the color table from packed r,g,b bytes.
	SetPalette(rgb []byte)
	// PaletteIndex returns the palette entry closest to r,g,b.
	PaletteIndex(r, g, b uint8) uint8
}

// Engine is a game loop driven one tick at a time.
type Engine interface {
	// Create binds the engine to a platform and calls its Init.
	Create(p Platform) error
	Tick() error
}
