// Package bridge adapts a bare HAL (cycle counter, one-shot keystrokes, raw
// framebuffer) to the per-tick engine.Platform contract.
package bridge

import (
	"errors"
	"fmt"

	"efidoom/engine"
	"efidoom/hal"
)

var ErrNotInitialized = errors.New("bridge not initialized")

// Config selects the logical frame and tunes the components.
type Config struct {
	LogicalWidth  int
	LogicalHeight int
	Source        engine.FrameFormat

	// KeyTTL is the key hold time in ticks; 0 selects DefaultKeyTTL.
	KeyTTL uint8
	// Scale forces the upscale factor; 0 picks the largest that fits.
	Scale int
	// CalibrationMs is the clock calibration delay; 0 selects
	// DefaultCalibrationMs.
	CalibrationMs uint32
}

// DefaultConfig renders a 320x200 indexed frame.
func DefaultConfig() Config {
	return Config{
		LogicalWidth:  engine.ResX,
		LogicalHeight: engine.ResY,
		Source:        engine.FrameIndexed8,
		KeyTTL:        DefaultKeyTTL,
	}
}

// Stats counts what the bridge has done so far.
type Stats struct {
	Frames     uint64
	KeyEvents  uint64
	DrawErrors uint64
}

// Bridge owns all per-process platform state: the clock, the key timers,
// the palette and the compositor. It must only be used from the goroutine
// that runs the engine's ticks.
type Bridge struct {
	h      hal.HAL
	cfg    Config
	logger hal.Logger

	clock *Clock
	keys  *Debouncer
	comp  *Compositor

	palette Palette
	frame   *engine.Frame

	// keysAged is set once the debouncer has been advanced for the
	// current tick.
	keysAged bool
	title    string
	stats    Stats
}

var _ engine.Platform = (*Bridge)(nil)

// New returns a bridge over h. Nothing touches the hardware until Init.
func New(h hal.HAL, cfg Config) *Bridge {
	def := DefaultConfig()
	if cfg.LogicalWidth <= 0 || cfg.LogicalHeight <= 0 {
		cfg.LogicalWidth, cfg.LogicalHeight = def.LogicalWidth, def.LogicalHeight
	}
	b := &Bridge{h: h, cfg: cfg, logger: h.Logger()}
	b.clock = NewClock(h.Time(), b.logger, cfg.CalibrationMs)
	return b
}

// Init validates the display surface, clears it and allocates the engine
// frame. A surface the compositor cannot write safely is a fatal error.
func (b *Bridge) Init() error {
	var fb hal.Framebuffer
	if d := b.h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if fb != nil {
		b.logf("bridge: surface %dx%d stride %d %s", fb.Width(), fb.Height(), fb.Stride(), fb.Format())
	}

	comp, err := NewCompositor(fb, b.logger, b.cfg.LogicalWidth, b.cfg.LogicalHeight, b.cfg.Source, b.cfg.Scale)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	if err := comp.Clear(); err != nil && !errors.Is(err, hal.ErrNotImplemented) {
		return fmt.Errorf("bridge: clear surface: %w", err)
	}
	b.comp = comp

	var kbd hal.Keyboard
	if in := b.h.Input(); in != nil {
		kbd = in.Keyboard()
	}
	if b.keys == nil {
		b.keys = NewDebouncer(kbd, b.cfg.KeyTTL)
	}

	if b.frame == nil {
		b.frame = engine.NewFrame(b.cfg.LogicalWidth, b.cfg.LogicalHeight, b.cfg.Source)
	}
	return nil
}

// Frame returns the engine's software frame; nil before Init.
func (b *Bridge) Frame() *engine.Frame { return b.frame }

// DrawFrame composites the frame onto the surface and ends the tick's
// input phase. Drawing failures are logged, not returned: the contract
// has no error path and the next tick may succeed.
func (b *Bridge) DrawFrame() {
	if b.comp == nil {
		return
	}
	if !b.keysAged {
		// The engine skipped input this tick; keep key timers on schedule.
		b.keys.Tick()
	}
	b.keysAged = false

	if err := b.comp.Draw(b.frame, &b.palette); err != nil {
		b.stats.DrawErrors++
		if b.stats.DrawErrors == 1 {
			b.logf("bridge: draw: %v", err)
		}
		return
	}
	b.stats.Frames++
}

// SleepMs blocks for ms milliseconds.
func (b *Bridge) SleepMs(ms uint32) {
	b.h.Time().Delay(ms)
}

// GetTicksMs returns the milliseconds since startup, wrapping at 2^32.
func (b *Bridge) GetTicksMs() uint32 {
	return uint32(b.clock.NowMs())
}

// PollKey reports at most one key transition. The first call in a tick
// drains the keyboard and ages the key timers.
func (b *Bridge) PollKey() (ok, pressed bool, code uint8) {
	if b.keys == nil {
		return false, false, 0
	}
	if !b.keysAged {
		b.keys.Tick()
		b.keysAged = true
	}
	ev, ok := b.keys.Next()
	if !ok {
		return false, false, 0
	}
	b.stats.KeyEvents++
	return true, ev.Pressed, ev.Code
}

// SetWindowTitle forwards the title to displays that have a window.
func (b *Bridge) SetWindowTitle(title string) {
	b.title = title
	if d := b.h.Display(); d != nil {
		d.SetTitle(title)
	}
}

// SetPalette replaces the color table; the next DrawFrame uses it.
func (b *Bridge) SetPalette(rgb []byte) {
	b.palette.Set(rgb)
}

// PaletteIndex returns the palette entry closest to r,g,b.
func (b *Bridge) PaletteIndex(red, green, blue uint8) uint8 {
	return b.palette.NearestIndex(red, green, blue)
}

// Title returns the last window title the engine set.
func (b *Bridge) Title() string { return b.title }

// Palette returns the live color table.
func (b *Bridge) Palette() *Palette { return &b.palette }

// Layout returns where frames land on the surface.
func (b *Bridge) Layout() (Layout, error) {
	if b.comp == nil {
		return Layout{}, ErrNotInitialized
	}
	return b.comp.Layout(), nil
}

// Stats returns the running counters.
func (b *Bridge) Stats() Stats { return b.stats }

// Clock exposes the time base.
func (b *Bridge) Clock() *Clock { return b.clock }

func (b *Bridge) logf(format string, args ...any) {
	if b.logger == nil {
		return
	}
	b.logger.WriteLineString(fmt.Sprintf(format, args...))
}
