package bridge

import (
	"strings"

	"efidoom/hal"
)

// fakeTime advances perMs cycles for every millisecond of Delay.
type fakeTime struct {
	cycles uint64
	perMs  uint64
	slept  uint32
}

func (t *fakeTime) Cycles() uint64 { return t.cycles }

func (t *fakeTime) Delay(ms uint32) {
	t.slept += ms
	t.cycles += t.perMs * uint64(ms)
}

type fakeLogger struct {
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *fakeLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type fakeKeyboard struct {
	queue []hal.RawKey
}

func (k *fakeKeyboard) Poll() (hal.RawKey, bool) {
	if len(k.queue) == 0 {
		return hal.RawKey{}, false
	}
	key := k.queue[0]
	k.queue = k.queue[1:]
	return key, true
}

func (k *fakeKeyboard) char(r rune)   { k.queue = append(k.queue, hal.RawKey{Char: r}) }
func (k *fakeKeyboard) scan(s uint16) { k.queue = append(k.queue, hal.RawKey{Scan: s}) }

type fakeFramebuffer struct {
	width, height, stride int
	format                hal.PixelFormat
	buf                   []byte
	presents              int
}

// newFakeFramebuffer allocates max(stride, width)*height pixels.
func newFakeFramebuffer(w, h, stride int, format hal.PixelFormat) *fakeFramebuffer {
	row := stride
	if row < w {
		row = w
	}
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		bpp = 4
	}
	return &fakeFramebuffer{
		width: w, height: h, stride: stride, format: format,
		buf: make([]byte, row*h*bpp),
	}
}

func (f *fakeFramebuffer) Width() int              { return f.width }
func (f *fakeFramebuffer) Height() int             { return f.height }
func (f *fakeFramebuffer) Stride() int             { return f.stride }
func (f *fakeFramebuffer) Format() hal.PixelFormat { return f.format }
func (f *fakeFramebuffer) Buffer() []byte          { return f.buf }
func (f *fakeFramebuffer) Present() error          { f.presents++; return nil }

func (f *fakeFramebuffer) fill(b byte) {
	for i := range f.buf {
		f.buf[i] = b
	}
}

// pixel reads the pixel at x,y using the row pitch px (in pixels).
func (f *fakeFramebuffer) pixel(x, y, pitch int) uint32 {
	bpp := f.format.BytesPerPixel()
	return hal.LoadPixel(f.buf[(y*pitch+x)*bpp:], bpp)
}

type fakePaletteFramebuffer struct {
	*fakeFramebuffer
	pal    [256]hal.Color
	loaded int
}

func (f *fakePaletteFramebuffer) LoadPalette(p *[256]hal.Color) {
	f.pal = *p
	f.loaded++
}

func (f *fakePaletteFramebuffer) Palette() [256]hal.Color { return f.pal }

type fakeDisplay struct {
	fb    hal.Framebuffer
	title string
}

func (d *fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }
func (d *fakeDisplay) SetTitle(title string)        { d.title = title }

type fakeInput struct{ kbd hal.Keyboard }

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }

type fakeHAL struct {
	logger *fakeLogger
	disp   *fakeDisplay
	kbd    *fakeKeyboard
	time   *fakeTime
}

func newFakeHAL(fb hal.Framebuffer) *fakeHAL {
	return &fakeHAL{
		logger: &fakeLogger{},
		disp:   &fakeDisplay{fb: fb},
		kbd:    &fakeKeyboard{},
		time:   &fakeTime{perMs: 1000},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.logger }
func (h *fakeHAL) Display() hal.Display { return h.disp }
func (h *fakeHAL) Input() hal.Input     { return fakeInput{kbd: h.kbd} }
func (h *fakeHAL) Time() hal.Time       { return h.time }
