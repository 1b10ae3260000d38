//go:build !tinygo

package hal

import "sync"

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	format PixelFormat
	buf    []byte
	shown  []byte

	pal      [256]Color
	presents uint64
}

func newHostFramebuffer(cfg HostConfig) *hostFramebuffer {
	bpp := cfg.Format.BytesPerPixel()
	if bpp == 0 {
		bpp = 4
	}
	rowPixels := cfg.Stride
	if rowPixels < cfg.Width {
		rowPixels = cfg.Width
	}
	size := rowPixels * cfg.Height * bpp
	if size < 0 {
		size = 0
	}
	return &hostFramebuffer{
		width:  cfg.Width,
		height: cfg.Height,
		stride: cfg.Stride,
		format: cfg.Format,
		buf:    make([]byte, size),
		shown:  make([]byte, size),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Stride() int         { return f.stride }
func (f *hostFramebuffer) Format() PixelFormat { return f.format }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

// Present copies the drawing buffer to the scanout copy the window reads,
// standing in for the cache flush real hardware needs.
func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.shown, f.buf)
	f.presents++
	return nil
}

func (f *hostFramebuffer) LoadPalette(p *[256]Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pal = *p
}

func (f *hostFramebuffer) Palette() [256]Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pal
}

// scanout is a read-only view of the last presented frame.
type scanout struct {
	f   *hostFramebuffer
	buf []byte
}

func (s scanout) Width() int          { return s.f.width }
func (s scanout) Height() int         { return s.f.height }
func (s scanout) Stride() int         { return s.f.stride }
func (s scanout) Format() PixelFormat { return s.f.format }
func (s scanout) Buffer() []byte      { return s.buf }
func (s scanout) Present() error      { return nil }

func (s scanout) LoadPalette(*[256]Color) {}
func (s scanout) Palette() [256]Color     { return s.f.Palette() }

// snapshotShown copies the presented frame into dst and returns a
// Framebuffer view over it.
func (f *hostFramebuffer) snapshotShown(dst []byte) Framebuffer {
	f.mu.Lock()
	if len(dst) != len(f.shown) {
		dst = make([]byte, len(f.shown))
	}
	copy(dst, f.shown)
	f.mu.Unlock()
	return scanout{f: f, buf: dst}
}
