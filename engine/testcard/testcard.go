// Package testcard draws a static calibration pattern and echoes key
// transitions. It exercises every part of the platform contract without
// any game logic in the way: palette coverage, frame edges, channel order,
// key press/release pairing and the frame rate the compositor sustains.
package testcard

import (
	"fmt"
	"image/color"

	"efidoom/engine"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	// The palette swatch is a 16x16 grid of every slot.
	swatchCell = 8
	swatchX    = 4
	swatchY    = 4

	barX      = swatchX + 16*swatchCell + 8
	barWidth  = 16
	barHeight = 128

	logLines = 6
)

// Reserved slots used for chrome; the swatch still shows them.
const (
	slotBlack uint8 = 0
	slotWhite uint8 = 215
)

var (
	textColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	keyColor  = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
)

type Card struct {
	p     engine.Platform
	frame *engine.Frame

	palette [768]byte
	font    tinyfont.Fonter
	lineH   int

	log  [logLines]string
	held int

	frames      uint64
	windowStart uint32
	windowCount uint32
	fps         uint32
}

var _ engine.Engine = (*Card)(nil)

func New() *Card { return &Card{} }

func (c *Card) Create(p engine.Platform) error {
	if err := p.Init(); err != nil {
		return err
	}
	c.p = p
	c.frame = p.Frame()
	if c.frame == nil {
		return fmt.Errorf("testcard: platform has no frame")
	}
	if c.frame.Width < barX+3*barWidth || c.frame.Height < swatchY+barHeight {
		return fmt.Errorf("testcard: frame %dx%d too small", c.frame.Width, c.frame.Height)
	}

	c.font = &proggy.TinySZ8pt7b
	c.lineH = int(proggy.TinySZ8pt7b.YAdvance)
	if c.lineH <= 0 {
		c.lineH = 8
	}

	c.buildPalette()
	p.SetPalette(c.palette[:])
	p.SetWindowTitle("efidoom testcard")
	c.windowStart = p.GetTicksMs()
	return nil
}

// buildPalette lays out a 6x6x6 color cube in slots 0-215 followed by a
// 40-step gray ramp.
func (c *Card) buildPalette() {
	i := 0
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				c.palette[i*3] = byte(r * 51)
				c.palette[i*3+1] = byte(g * 51)
				c.palette[i*3+2] = byte(b * 51)
				i++
			}
		}
	}
	for j := 0; i < 256; i, j = i+1, j+1 {
		v := byte(j * 255 / 39)
		c.palette[i*3], c.palette[i*3+1], c.palette[i*3+2] = v, v, v
	}
}

func (c *Card) Tick() error {
	for {
		ok, pressed, code := c.p.PollKey()
		if !ok {
			break
		}
		if pressed {
			c.held++
			if code == 'q' {
				return engine.ErrQuit
			}
		} else if c.held > 0 {
			c.held--
		}
		c.record(pressed, code)
	}

	now := c.p.GetTicksMs()
	c.windowCount++
	if elapsed := now - c.windowStart; elapsed >= 1000 {
		c.fps = c.windowCount * 1000 / elapsed
		c.windowStart = now
		c.windowCount = 0
	}

	c.render()
	c.p.DrawFrame()
	c.frames++
	c.p.SleepMs(1)
	return nil
}

func (c *Card) record(pressed bool, code uint8) {
	copy(c.log[:], c.log[1:])
	dir := "up  "
	if pressed {
		dir = "down"
	}
	c.log[logLines-1] = fmt.Sprintf("%s %#02x", dir, code)
}

func (c *Card) render() {
	d := &engine.Displayer{Frame: c.frame, Index: c.p.PaletteIndex, Palette: &c.palette}
	w, h := c.frame.Width, c.frame.Height

	d.FillIndex(slotBlack)

	// One-pixel border on the outermost rows and columns: any clipping or
	// offset error on the surface shows up as a missing edge.
	d.FillRectIndex(0, 0, w, 1, slotWhite)
	d.FillRectIndex(0, h-1, w, 1, slotWhite)
	d.FillRectIndex(0, 0, 1, h, slotWhite)
	d.FillRectIndex(w-1, 0, 1, h, slotWhite)

	for i := 0; i < 256; i++ {
		x := swatchX + (i%16)*swatchCell
		y := swatchY + (i/16)*swatchCell
		d.FillRectIndex(x, y, swatchCell, swatchCell, uint8(i))
	}

	// Pure red, green and blue ramps; swapped channels show up as the
	// wrong bar order.
	for y := 0; y < barHeight; y++ {
		v := uint8(y * 255 / (barHeight - 1))
		for x := 0; x < barWidth; x++ {
			d.SetPixel(int16(barX+x), int16(swatchY+y), color.RGBA{R: v, A: 0xFF})
			d.SetPixel(int16(barX+barWidth+x), int16(swatchY+y), color.RGBA{G: v, A: 0xFF})
			d.SetPixel(int16(barX+2*barWidth+x), int16(swatchY+y), color.RGBA{B: v, A: 0xFF})
		}
	}

	tx := int16(barX + 3*barWidth + 8)
	y := swatchY + c.lineH
	tinyfont.WriteLine(d, c.font, tx, int16(y), fmt.Sprintf("%dx%d %s", w, h, c.frame.Format), textColor)
	y += c.lineH
	tinyfont.WriteLine(d, c.font, tx, int16(y), fmt.Sprintf("%d fps", c.fps), textColor)
	y += c.lineH
	tinyfont.WriteLine(d, c.font, tx, int16(y), fmt.Sprintf("%d held", c.held), textColor)
	y += c.lineH
	for _, line := range c.log {
		if line == "" {
			continue
		}
		y += c.lineH
		tinyfont.WriteLine(d, c.font, tx, int16(y), line, keyColor)
	}
}

// Held returns how many keys are currently down.
func (c *Card) Held() int { return c.held }

// FPS returns the frame rate measured over the last full second.
func (c *Card) FPS() uint32 { return c.fps }

// Log returns the recent key transitions, oldest first.
func (c *Card) Log() []string {
	var out []string
	for _, line := range c.log {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
