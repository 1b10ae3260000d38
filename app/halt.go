package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"efidoom/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// surfaceDisplay lets tinyfont draw straight onto a firmware surface. It
// trusts nothing about the surface: bad geometry turns every SetPixel into
// a no-op.
type surfaceDisplay struct {
	fb     hal.Framebuffer
	format hal.PixelFormat
	bpp    int
	stride int
	// index maps a color to a palette slot on Indexed8 surfaces.
	index func(r, g, b uint8) uint8
}

var _ drivers.Displayer = (*surfaceDisplay)(nil)

func newSurfaceDisplay(fb hal.Framebuffer, index func(r, g, b uint8) uint8) *surfaceDisplay {
	d := &surfaceDisplay{fb: fb, index: index}
	if fb == nil {
		return d
	}
	d.format = fb.Format()
	if d.format.Validate() != nil {
		return d
	}
	d.bpp = d.format.BytesPerPixel()
	d.stride = fb.Stride()
	if d.stride == 0 {
		d.stride = fb.Width()
	}
	if d.stride < fb.Width() {
		d.bpp = 0
	}
	return d
}

func (d *surfaceDisplay) usable() bool {
	return d.fb != nil && d.bpp > 0 && d.fb.Width() > 0 && d.fb.Height() > 0
}

func (d *surfaceDisplay) Size() (x, y int16) {
	if !d.usable() {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *surfaceDisplay) encode(c color.RGBA) uint32 {
	if d.format.Kind == hal.PixelIndexed8 {
		if d.index == nil {
			return 0
		}
		return uint32(d.index(c.R, c.G, c.B))
	}
	return d.format.Encode(c.R, c.G, c.B)
}

func (d *surfaceDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !d.usable() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := (iy*d.stride + ix) * d.bpp
	if off < 0 || off+d.bpp > len(buf) {
		return
	}
	hal.StorePixel(buf[off:], d.bpp, d.encode(c))
}

// Fill paints the whole visible area.
func (d *surfaceDisplay) Fill(c color.RGBA) {
	if !d.usable() {
		return
	}
	v := d.encode(c)
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()
	for y := 0; y < h; y++ {
		row := y * d.stride * d.bpp
		if row+w*d.bpp > len(buf) {
			return
		}
		for x := 0; x < w; x++ {
			hal.StorePixel(buf[row+x*d.bpp:], d.bpp, v)
		}
	}
}

func (d *surfaceDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

var (
	haltBackground = color.RGBA{R: 0x80, A: 255}
	haltForeground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// renderHalt draws lines onto the surface, wrapping at the screen width and
// stopping at the bottom edge.
func renderHalt(d *surfaceDisplay, lines []string) error {
	if !d.usable() {
		return nil
	}
	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outbox)
	fontHeight := int16(font.YAdvance)
	if fontWidth <= 0 || fontHeight <= 0 {
		return d.Display()
	}

	d.Fill(haltBackground)

	maxW, maxH := d.Size()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}
	y := int16(0)
	for _, line := range lines {
		for {
			if y+fontHeight > maxH {
				return d.Display()
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(d, font, x, y+fontHeight-2, r, haltForeground)
				x += fontWidth
			}
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
			if line == "" {
				break
			}
		}
	}
	return d.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
