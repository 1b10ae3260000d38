//go:build tinygo && !baremetal

package hal

type tinyGoHostFramebuffer struct {
	w   int
	h   int
	buf []byte
}

func newTinyGoHostFramebuffer(w, h int) *tinyGoHostFramebuffer {
	return &tinyGoHostFramebuffer{
		w:   w,
		h:   h,
		buf: make([]byte, w*h*4),
	}
}

func (f *tinyGoHostFramebuffer) Width() int          { return f.w }
func (f *tinyGoHostFramebuffer) Height() int         { return f.h }
func (f *tinyGoHostFramebuffer) Stride() int         { return f.w }
func (f *tinyGoHostFramebuffer) Format() PixelFormat { return FormatBGRX8888 }
func (f *tinyGoHostFramebuffer) Buffer() []byte      { return f.buf }

func (f *tinyGoHostFramebuffer) Present() error {
	// No-op by default for tinygo host targets.
	return nil
}
