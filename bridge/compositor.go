package bridge

import (
	"errors"
	"fmt"

	"efidoom/engine"
	"efidoom/hal"
)

var (
	ErrNoSurface   = errors.New("no display surface")
	ErrBadGeometry = errors.New("bad surface geometry")
	ErrBadStride   = errors.New("surface stride smaller than width")
	ErrShortBuffer = errors.New("surface buffer smaller than stride*height")
	ErrFrameSize   = errors.New("frame does not match logical resolution")
)

// Layout is where the logical frame lands on the surface.
type Layout struct {
	Scale   int
	OffsetX int
	OffsetY int
	// Skipped is set when the surface is smaller than the logical frame and
	// nothing is ever drawn.
	Skipped bool
}

// Compositor copies the engine's logical frame onto the display surface:
// centered, upscaled by a whole factor, and encoded in the surface's own
// pixel format. Everything about the surface is resolved once at creation.
type Compositor struct {
	fb     hal.Framebuffer
	logger hal.Logger

	format hal.PixelFormat
	bpp    int
	width  int
	height int
	stride int

	logicalW int
	logicalH int
	source   engine.FrameFormat
	layout   Layout

	lut [256]uint32
}

// NewCompositor validates the surface and resolves the layout. scale of 0
// picks the largest factor that fits; a forced factor that does not fit
// falls back to that.
func NewCompositor(fb hal.Framebuffer, logger hal.Logger, logicalW, logicalH int, source engine.FrameFormat, scale int) (*Compositor, error) {
	if fb == nil {
		return nil, ErrNoSurface
	}
	c := &Compositor{
		fb:       fb,
		logger:   logger,
		format:   fb.Format(),
		width:    fb.Width(),
		height:   fb.Height(),
		stride:   fb.Stride(),
		logicalW: logicalW,
		logicalH: logicalH,
		source:   source,
	}

	if err := c.format.Validate(); err != nil {
		return nil, err
	}
	if c.format.Kind == hal.PixelIndexed8 && source != engine.FrameIndexed8 {
		return nil, fmt.Errorf("%w: %s frame on an indexed8 surface", hal.ErrUnsupportedFormat, source)
	}
	c.bpp = c.format.BytesPerPixel()

	if c.width <= 0 || c.height <= 0 || logicalW <= 0 || logicalH <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d, frame %dx%d", ErrBadGeometry, c.width, c.height, logicalW, logicalH)
	}
	if c.stride == 0 {
		c.logf("compositor: firmware reported stride 0, using width %d", c.width)
		c.stride = c.width
	}
	if c.stride < c.width {
		return nil, fmt.Errorf("%w: stride %d, width %d", ErrBadStride, c.stride, c.width)
	}
	if need := c.stride * c.height * c.bpp; len(fb.Buffer()) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(fb.Buffer()), need)
	}

	c.layout = c.resolveLayout(scale)
	if c.layout.Skipped {
		c.logf("compositor: surface %dx%d smaller than frame %dx%d, not drawing",
			c.width, c.height, logicalW, logicalH)
	} else {
		c.logf("compositor: %dx%d stride %d %s, scale %d, offset %d,%d",
			c.width, c.height, c.stride, c.format, c.layout.Scale, c.layout.OffsetX, c.layout.OffsetY)
	}
	return c, nil
}

func (c *Compositor) resolveLayout(forced int) Layout {
	fit := c.width / c.logicalW
	if h := c.height / c.logicalH; h < fit {
		fit = h
	}
	if fit < 1 {
		return Layout{Scale: 1, Skipped: true}
	}

	s := fit
	if forced > 0 {
		if forced <= fit {
			s = forced
		} else {
			c.logf("compositor: scale %d does not fit, using %d", forced, fit)
		}
	}
	return Layout{
		Scale:   s,
		OffsetX: (c.width - c.logicalW*s) / 2,
		OffsetY: (c.height - c.logicalH*s) / 2,
	}
}

// Layout returns the resolved placement.
func (c *Compositor) Layout() Layout { return c.layout }

// Stride returns the row pitch in pixels after correction.
func (c *Compositor) Stride() int { return c.stride }

// Clear zeroes the whole surface, padding included.
func (c *Compositor) Clear() error {
	buf := c.fb.Buffer()
	n := c.stride * c.height * c.bpp
	clear(buf[:n])
	return c.fb.Present()
}

// Draw composites f onto the surface through pal and presents it.
func (c *Compositor) Draw(f *engine.Frame, pal *Palette) error {
	if c.layout.Skipped {
		return nil
	}
	if f == nil || f.Width != c.logicalW || f.Height != c.logicalH || f.Format != c.source {
		return ErrFrameSize
	}
	n := c.logicalW * c.logicalH
	switch f.Format {
	case engine.FrameIndexed8:
		if len(f.Index) < n {
			return ErrFrameSize
		}
		c.buildLUT(pal)
	case engine.FrameTruecolor:
		if len(f.RGB) < n {
			return ErrFrameSize
		}
	}

	buf := c.fb.Buffer()
	s := c.layout.Scale
	rowBytes := c.logicalW * s * c.bpp

	for ly := 0; ly < c.logicalH; ly++ {
		y0 := c.layout.OffsetY + ly*s
		if y0 >= c.height {
			break
		}
		off := (y0*c.stride + c.layout.OffsetX) * c.bpp
		dst := buf[off : off+rowBytes]
		c.encodeRow(dst, f, ly)

		for dy := 1; dy < s; dy++ {
			y := y0 + dy
			if y >= c.height {
				break
			}
			o := (y*c.stride + c.layout.OffsetX) * c.bpp
			copy(buf[o:o+rowBytes], dst)
		}
	}

	if pd, ok := c.fb.(hal.PaletteDevice); ok && c.format.Kind == hal.PixelIndexed8 {
		pd.LoadPalette((*[256]hal.Color)(pal))
	}
	return c.fb.Present()
}

func (c *Compositor) buildLUT(pal *Palette) {
	if c.format.Kind == hal.PixelIndexed8 {
		for i := range c.lut {
			c.lut[i] = uint32(i)
		}
		return
	}
	for i, col := range pal {
		c.lut[i] = c.format.Encode(col.R, col.G, col.B)
	}
}

// encodeRow writes logical row ly into dst, repeating each pixel Scale times.
func (c *Compositor) encodeRow(dst []byte, f *engine.Frame, ly int) {
	s := c.layout.Scale
	base := ly * c.logicalW
	o := 0
	for lx := 0; lx < c.logicalW; lx++ {
		var v uint32
		if f.Format == engine.FrameIndexed8 {
			v = c.lut[f.Index[base+lx]]
		} else {
			rgb := f.RGB[base+lx]
			v = c.format.Encode(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
		}
		for dx := 0; dx < s; dx++ {
			hal.StorePixel(dst[o:], c.bpp, v)
			o += c.bpp
		}
	}
}

func (c *Compositor) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.WriteLineString(fmt.Sprintf(format, args...))
}
