//go:build tinygo && baremetal && picocalc

package hal

import (
	"fmt"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09
)

const picoCalcEventPress byte = 0x01

// PicoCalc keyboard MCU key codes for keys without a character.
var picoCalcScanKeys = map[byte]uint16{
	0xB1: ScanEscape,
	0xB4: ScanLeft,
	0xB5: ScanUp,
	0xB6: ScanDown,
	0xB7: ScanRight,
	0xD1: ScanInsert,
	0xD2: ScanHome,
	0xD4: ScanDelete,
	0xD5: ScanEnd,
	0xD6: ScanPageUp,
	0xD7: ScanPageDown,
	0x81: ScanF1,
	0x82: ScanF1 + 1,
	0x83: ScanF1 + 2,
	0x84: ScanF1 + 3,
	0x85: ScanF1 + 4,
	0x86: ScanF1 + 5,
	0x87: ScanF1 + 6,
	0x88: ScanF1 + 7,
	0x89: ScanF1 + 8,
	0x90: ScanF10,
}

const (
	picoCalcKeyAlt   byte = 0xA1
	picoCalcKeyShift byte = 0xA2
	picoCalcKeyCtrl  byte = 0xA5
)

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	write := [1]byte{picoCalcKbdCmd}

	// Prefer I2C1 (stock PicoCalc wiring), but some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			k := &i2cKeyboard{i2c: bus, write: write}

			// The keyboard MCU can be slow to answer right after power-up.
			for i := 0; i < 50; i++ {
				if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, fmt.Errorf("keyboard: I2C unavailable")
}

// readKey returns one keystroke. Like firmware consoles it reports presses
// only; holds and releases are dropped.
func (k *i2cKeyboard) readKey() (RawKey, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return RawKey{}, false
	}
	if k.read[0] != picoCalcEventPress {
		return RawKey{}, false
	}

	code := k.read[1]
	switch code {
	case 0, picoCalcKeyAlt, picoCalcKeyShift, picoCalcKeyCtrl:
		return RawKey{}, false
	}
	if scan, ok := picoCalcScanKeys[code]; ok {
		return RawKey{Scan: scan}, true
	}
	if code == '\n' {
		code = '\r'
	}
	return RawKey{Char: rune(code)}, true
}
