package bridge

import (
	"efidoom/engine"
	"efidoom/hal"
)

var scanKeys = map[uint16]uint8{
	hal.ScanUp:       engine.KeyUpArrow,
	hal.ScanDown:     engine.KeyDownArrow,
	hal.ScanRight:    engine.KeyRightArrow,
	hal.ScanLeft:     engine.KeyLeftArrow,
	hal.ScanHome:     engine.KeyHome,
	hal.ScanEnd:      engine.KeyEnd,
	hal.ScanInsert:   engine.KeyIns,
	hal.ScanDelete:   engine.KeyDel,
	hal.ScanPageUp:   engine.KeyPgUp,
	hal.ScanPageDown: engine.KeyPgDn,
	hal.ScanF1:       engine.KeyF1,
	hal.ScanF1 + 1:   engine.KeyF2,
	hal.ScanF1 + 2:   engine.KeyF3,
	hal.ScanF1 + 3:   engine.KeyF4,
	hal.ScanF1 + 4:   engine.KeyF5,
	hal.ScanF1 + 5:   engine.KeyF6,
	hal.ScanF1 + 6:   engine.KeyF7,
	hal.ScanF1 + 7:   engine.KeyF8,
	hal.ScanF1 + 8:   engine.KeyF9,
	hal.ScanF10:      engine.KeyF10,
	hal.ScanF11:      engine.KeyF11,
	hal.ScanF12:      engine.KeyF12,
	hal.ScanEscape:   engine.KeyEscape,
}

// Characters the engine only understands as actions.
var actionKeys = map[rune]uint8{
	'z':  engine.KeyFire,
	'e':  engine.KeyUse,
	' ':  engine.KeyUse,
	'x':  engine.KeyRAlt,
	',':  engine.KeyRAlt,
	'c':  engine.KeyRShift,
	'.':  engine.KeyRShift,
	'\r': engine.KeyEnter,
	'\t': engine.KeyTab,
	0x08: engine.KeyBackspace,
	0x7f: engine.KeyBackspace,
}

// MapKey translates a firmware keystroke into an engine key code. Letters
// are folded to lower case, the engine's form for them. It returns 0 for
// keys the engine has no code for.
func MapKey(k hal.RawKey) uint8 {
	if k.Scan != hal.ScanNone {
		return scanKeys[k.Scan]
	}

	c := k.Char
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if code, ok := actionKeys[c]; ok {
		return code
	}
	if c > 0 && c < 0x80 {
		return uint8(c)
	}
	return 0
}
