package hal

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// PixelKind is the broad family of a PixelFormat.
type PixelKind uint8

const (
	PixelUnknown PixelKind = iota
	// PixelIndexed8 stores one palette index per byte.
	PixelIndexed8
	// PixelRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelRGB565
	// PixelTruecolor is a packed pixel with explicit channel positions.
	PixelTruecolor
)

// Channel locates one color component inside a packed pixel.
type Channel struct {
	Offset uint8
	Length uint8
}

func (c Channel) mask() uint32 {
	if c.Length == 0 {
		return 0
	}
	return ((1 << c.Length) - 1) << c.Offset
}

// PixelFormat defines the framebuffer pixel encoding.
//
// Pixels are stored little-endian, BitsPerPixel/8 bytes each.
type PixelFormat struct {
	Kind         PixelKind
	BitsPerPixel uint8

	Red      Channel
	Green    Channel
	Blue     Channel
	Reserved Channel
}

var (
	FormatIndexed8 = PixelFormat{Kind: PixelIndexed8, BitsPerPixel: 8}

	FormatRGB565 = PixelFormat{
		Kind:         PixelRGB565,
		BitsPerPixel: 16,
		Red:          Channel{Offset: 11, Length: 5},
		Green:        Channel{Offset: 5, Length: 6},
		Blue:         Channel{Offset: 0, Length: 5},
	}

	// FormatRGBX8888 has red in the lowest byte (GOP PixelRedGreenBlueReserved8BitPerColor).
	FormatRGBX8888 = PixelFormat{
		Kind:         PixelTruecolor,
		BitsPerPixel: 32,
		Red:          Channel{Offset: 0, Length: 8},
		Green:        Channel{Offset: 8, Length: 8},
		Blue:         Channel{Offset: 16, Length: 8},
		Reserved:     Channel{Offset: 24, Length: 8},
	}

	// FormatBGRX8888 has blue in the lowest byte (GOP PixelBlueGreenRedReserved8BitPerColor).
	FormatBGRX8888 = PixelFormat{
		Kind:         PixelTruecolor,
		BitsPerPixel: 32,
		Red:          Channel{Offset: 16, Length: 8},
		Green:        Channel{Offset: 8, Length: 8},
		Blue:         Channel{Offset: 0, Length: 8},
		Reserved:     Channel{Offset: 24, Length: 8},
	}
)

// BytesPerPixel returns the storage size of one pixel, or 0 if the format
// cannot be stored.
func (f PixelFormat) BytesPerPixel() int {
	switch f.BitsPerPixel {
	case 8, 16, 24, 32:
		return int(f.BitsPerPixel) / 8
	}
	return 0
}

// Validate reports whether pixels of this format can be written.
func (f PixelFormat) Validate() error {
	switch f.Kind {
	case PixelIndexed8:
		if f.BitsPerPixel != 8 {
			return fmt.Errorf("%w: indexed8 with %d bpp", ErrUnsupportedFormat, f.BitsPerPixel)
		}
		return nil
	case PixelRGB565:
		if f.BitsPerPixel != 16 || f.Red.Length != 5 || f.Green.Length != 6 || f.Blue.Length != 5 {
			return fmt.Errorf("%w: malformed rgb565 (%s)", ErrUnsupportedFormat, f)
		}
	case PixelTruecolor:
		if f.BytesPerPixel() < 2 {
			return fmt.Errorf("%w: truecolor with %d bpp", ErrUnsupportedFormat, f.BitsPerPixel)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedFormat, f.Kind)
	}

	var used uint32
	for _, c := range []Channel{f.Red, f.Green, f.Blue} {
		if c.Length == 0 || c.Length > 8 {
			return fmt.Errorf("%w: channel length %d (%s)", ErrUnsupportedFormat, c.Length, f)
		}
		if int(c.Offset)+int(c.Length) > int(f.BitsPerPixel) {
			return fmt.Errorf("%w: channel outside pixel (%s)", ErrUnsupportedFormat, f)
		}
		if used&c.mask() != 0 {
			return fmt.Errorf("%w: overlapping channels (%s)", ErrUnsupportedFormat, f)
		}
		used |= c.mask()
	}
	return nil
}

// Encode packs an 8-bit-per-channel color, truncating each channel to its
// length. The reserved bits stay 0.
func (f PixelFormat) Encode(r, g, b uint8) uint32 {
	return encodeChannel(f.Red, r) | encodeChannel(f.Green, g) | encodeChannel(f.Blue, b)
}

func encodeChannel(c Channel, v uint8) uint32 {
	if c.Length == 0 || c.Length > 8 {
		return 0
	}
	return uint32(v>>(8-c.Length)) << c.Offset
}

// Decode expands a packed pixel back to 8 bits per channel.
func (f PixelFormat) Decode(v uint32) (r, g, b uint8) {
	return decodeChannel(f.Red, v), decodeChannel(f.Green, v), decodeChannel(f.Blue, v)
}

func decodeChannel(c Channel, v uint32) uint8 {
	if c.Length == 0 || c.Length > 8 {
		return 0
	}
	max := uint32(1)<<c.Length - 1
	x := (v >> c.Offset) & max
	return uint8((x * 255) / max)
}

func (f PixelFormat) String() string {
	switch f.Kind {
	case PixelIndexed8:
		return "indexed8"
	case PixelRGB565:
		return "rgb565"
	case PixelTruecolor:
		return fmt.Sprintf("truecolor%d(r%d:%d g%d:%d b%d:%d)",
			f.BitsPerPixel,
			f.Red.Offset, f.Red.Length,
			f.Green.Offset, f.Green.Length,
			f.Blue.Offset, f.Blue.Length)
	}
	return fmt.Sprintf("unknown(%d)", f.Kind)
}

// FormatFromMasks builds a 32bpp truecolor format from GOP-style channel
// bit masks. Each color mask must be a single contiguous run of at most 8
// bits; the reserved mask may be 0.
func FormatFromMasks(red, green, blue, reserved uint32) (PixelFormat, error) {
	f := PixelFormat{Kind: PixelTruecolor, BitsPerPixel: 32}
	var err error
	if f.Red, err = channelFromMask(red); err != nil {
		return PixelFormat{}, fmt.Errorf("red mask %#08x: %w", red, err)
	}
	if f.Green, err = channelFromMask(green); err != nil {
		return PixelFormat{}, fmt.Errorf("green mask %#08x: %w", green, err)
	}
	if f.Blue, err = channelFromMask(blue); err != nil {
		return PixelFormat{}, fmt.Errorf("blue mask %#08x: %w", blue, err)
	}
	if reserved != 0 {
		if f.Reserved, err = channelFromMask(reserved); err != nil {
			f.Reserved = Channel{}
		}
	}
	if err := f.Validate(); err != nil {
		return PixelFormat{}, err
	}
	return f, nil
}

func channelFromMask(m uint32) (Channel, error) {
	if m == 0 {
		return Channel{}, fmt.Errorf("%w: empty mask", ErrUnsupportedFormat)
	}
	off := bits.TrailingZeros32(m)
	n := bits.OnesCount32(m)
	if m>>off != uint32(1)<<n-1 {
		return Channel{}, fmt.Errorf("%w: non-contiguous mask", ErrUnsupportedFormat)
	}
	if n > 8 {
		return Channel{}, fmt.Errorf("%w: %d-bit channel", ErrUnsupportedFormat, n)
	}
	return Channel{Offset: uint8(off), Length: uint8(n)}, nil
}

// ParseFormat parses a format name: indexed8, rgb565, rgbx8888, bgrx8888 or
// bitmask:R,G,B with hexadecimal channel masks.
func ParseFormat(s string) (PixelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indexed8", "cmap256":
		return FormatIndexed8, nil
	case "rgb565":
		return FormatRGB565, nil
	case "rgbx8888", "rgba8888", "rgb":
		return FormatRGBX8888, nil
	case "bgrx8888", "bgra8888", "bgr":
		return FormatBGRX8888, nil
	}

	rest, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(s)), "bitmask:")
	if !ok {
		return PixelFormat{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	parts := strings.Split(rest, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return PixelFormat{}, fmt.Errorf("%w: %q wants 3 or 4 masks", ErrUnsupportedFormat, s)
	}
	var masks [4]uint32
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(p), "0x"), 16, 32)
		if err != nil {
			return PixelFormat{}, fmt.Errorf("%w: mask %q: %v", ErrUnsupportedFormat, p, err)
		}
		masks[i] = uint32(v)
	}
	return FormatFromMasks(masks[0], masks[1], masks[2], masks[3])
}

// StorePixel writes the low bytes of v into dst, little-endian.
func StorePixel(dst []byte, bpp int, v uint32) {
	switch bpp {
	case 1:
		dst[0] = byte(v)
	case 2:
		_ = dst[1]
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
	case 3:
		_ = dst[2]
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
	case 4:
		_ = dst[3]
		dst[0] = byte(v)
		dst[1] = byte(v >> 8)
		dst[2] = byte(v >> 16)
		dst[3] = byte(v >> 24)
	}
}

// LoadPixel reads one little-endian pixel of bpp bytes from src.
func LoadPixel(src []byte, bpp int) uint32 {
	var v uint32
	for i := bpp - 1; i >= 0; i-- {
		v = v<<8 | uint32(src[i])
	}
	return v
}
