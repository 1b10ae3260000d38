package engine

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer draws into a Frame. It satisfies drivers.Displayer so tinyfont
// can render text straight into the engine's software frame.
type Displayer struct {
	Frame *Frame
	// Index maps a color to a palette slot on indexed frames.
	Index func(r, g, b uint8) uint8
	// Palette resolves slots on truecolor frames, packed r,g,b.
	Palette *[768]byte
}

var _ drivers.Displayer = (*Displayer)(nil)

func (d *Displayer) Size() (x, y int16) {
	return int16(d.Frame.Width), int16(d.Frame.Height)
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.Frame.Width || iy < 0 || iy >= d.Frame.Height {
		return
	}
	i := iy*d.Frame.Width + ix
	switch d.Frame.Format {
	case FrameIndexed8:
		if d.Index != nil {
			d.Frame.Index[i] = d.Index(c.R, c.G, c.B)
		}
	case FrameTruecolor:
		d.Frame.RGB[i] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
}

func (d *Displayer) Display() error { return nil }

func (d *Displayer) put(i int, idx uint8) {
	switch d.Frame.Format {
	case FrameIndexed8:
		d.Frame.Index[i] = idx
	case FrameTruecolor:
		var rgb uint32
		if d.Palette != nil {
			j := int(idx) * 3
			rgb = uint32(d.Palette[j])<<16 | uint32(d.Palette[j+1])<<8 | uint32(d.Palette[j+2])
		}
		d.Frame.RGB[i] = rgb
	}
}

// FillRectIndex paints a rectangle with palette slot idx, clipped to the
// frame.
func (d *Displayer) FillRectIndex(x, y, w, h int, idx uint8) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, d.Frame.Width), min(y+h, d.Frame.Height)
	for py := y0; py < y1; py++ {
		row := py * d.Frame.Width
		for px := x0; px < x1; px++ {
			d.put(row+px, idx)
		}
	}
}

// FillIndex paints the whole frame with palette slot idx.
func (d *Displayer) FillIndex(idx uint8) {
	d.FillRectIndex(0, 0, d.Frame.Width, d.Frame.Height, idx)
}
