package hal

import (
	"image"
	"io"

	"golang.org/x/image/bmp"
)

// Snapshot decodes the visible part of fb into dst, reallocating it when
// the size does not match. Indexed8 surfaces are decoded through their
// device palette when they have one, and as grayscale otherwise.
func Snapshot(fb Framebuffer, dst *image.RGBA) *image.RGBA {
	if fb == nil {
		return dst
	}
	w, h := fb.Width(), fb.Height()
	if w <= 0 || h <= 0 {
		return dst
	}
	if dst == nil || dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	f := fb.Format()
	bpp := f.BytesPerPixel()
	buf := fb.Buffer()
	if bpp == 0 || buf == nil {
		return dst
	}
	stride := fb.Stride()
	if stride < w {
		stride = w
	}

	var pal [256]Color
	pd, hasPal := fb.(PaletteDevice)
	if hasPal {
		pal = pd.Palette()
	}

	for y := 0; y < h; y++ {
		src := y * stride * bpp
		out := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			off := src + x*bpp
			if off+bpp > len(buf) {
				return dst
			}
			v := LoadPixel(buf[off:], bpp)

			var r, g, b uint8
			if f.Kind == PixelIndexed8 {
				if hasPal {
					c := pal[uint8(v)]
					r, g, b = c.R, c.G, c.B
				} else {
					r, g, b = uint8(v), uint8(v), uint8(v)
				}
			} else {
				r, g, b = f.Decode(v)
			}

			j := out + x*4
			dst.Pix[j+0] = r
			dst.Pix[j+1] = g
			dst.Pix[j+2] = b
			dst.Pix[j+3] = 0xFF
		}
	}
	return dst
}

// WriteBMP encodes the visible surface as a BMP image.
func WriteBMP(w io.Writer, fb Framebuffer) error {
	img := Snapshot(fb, nil)
	if img == nil {
		return ErrNotImplemented
	}
	return bmp.Encode(w, img)
}
