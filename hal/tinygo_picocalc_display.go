//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	lcd := &ili9488{
		spi:   *machine.SPI1,
		cs:    machine.GP13,
		dc:    machine.GP14,
		rst:   machine.GP15,
		txBuf: make([]byte, 4096),
	}

	for _, p := range []machine.Pin{lcd.cs, lcd.dc, lcd.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	lcd.rst.Low()
	time.Sleep(64 * time.Millisecond)
	lcd.rst.High()
	time.Sleep(140 * time.Millisecond)

	lcd.cmd(0xC0, 0x17, 0x15)             // PWCTRL1
	lcd.cmd(0xC1, 0x41)                   // PWCTRL2
	lcd.cmd(0xC5, 0x00, 0x12, 0x80, 0x40) // VMCTRL
	lcd.cmd(0x3A, 0x55)                   // COLMOD 16bpp
	lcd.cmd(0xB1, 0xA0, 0x11)             // FRMCTRL1
	lcd.cmd(0xB6, 0x02, 0x22, 0x27)       // DISCTRL (320 lines)
	lcd.cmd(0x21)                         // INVON
	lcd.cmd(0x36, 0x40|0x04|0x08)         // MX|MH|BGR
	lcd.cmd(0x11)                         // SLPOUT
	time.Sleep(120 * time.Millisecond)
	lcd.cmd(0x29) // DISPON

	return lcd, nil
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.cmd(0x2C)
}

// blit pushes a little-endian RGB565 buffer with the given pixel stride.
// The panel wants big-endian pixels, so bytes are swapped on the way out.
func (d *ili9488) blit(buf []byte, w, h, stride int) error {
	if w <= 0 || h <= 0 || stride < w || len(buf) < stride*h*2 {
		return errors.New("ili9488: invalid framebuffer")
	}
	chunk := d.txBuf[:len(d.txBuf)&^1]
	if len(chunk) < 2 {
		return errors.New("ili9488: tx buffer too small")
	}

	d.setWindow(0, 0, uint16(w-1), uint16(h-1))
	d.cs.Low()
	d.dc.High()

	n := 0
	for y := 0; y < h; y++ {
		row := buf[y*stride*2 : y*stride*2+w*2]
		for i := 0; i < len(row); i += 2 {
			chunk[n] = row[i+1]
			chunk[n+1] = row[i]
			n += 2
			if n == len(chunk) {
				d.spi.Tx(chunk, nil)
				n = 0
			}
		}
	}
	if n > 0 {
		d.spi.Tx(chunk[:n], nil)
	}

	d.cs.High()
	return nil
}
