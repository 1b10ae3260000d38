//go:build tinygo && baremetal

package hal

// stubFramebuffer reports a geometry but has no memory behind it, so the
// bridge refuses it at startup instead of drawing into nothing.
type stubFramebuffer struct {
	w      int
	h      int
	format PixelFormat
}

func (f *stubFramebuffer) Width() int          { return f.w }
func (f *stubFramebuffer) Height() int         { return f.h }
func (f *stubFramebuffer) Stride() int         { return f.w }
func (f *stubFramebuffer) Format() PixelFormat { return f.format }
func (f *stubFramebuffer) Buffer() []byte      { return nil }
func (f *stubFramebuffer) Present() error      { return ErrNotImplemented }
