package engine

// Key codes in the engine's code space. Printable keys use their ASCII
// value; everything else lives above 0x7f.
const (
	KeyRightArrow uint8 = 0xae
	KeyLeftArrow  uint8 = 0xac
	KeyUpArrow    uint8 = 0xad
	KeyDownArrow  uint8 = 0xaf
	KeyStrafeL    uint8 = 0xa0
	KeyStrafeR    uint8 = 0xa1
	KeyUse        uint8 = 0xa2
	KeyFire       uint8 = 0xa3
	KeyEscape     uint8 = 27
	KeyEnter      uint8 = 13
	KeyTab        uint8 = 9

	KeyF1  uint8 = 0x80 + 0x3b
	KeyF2  uint8 = 0x80 + 0x3c
	KeyF3  uint8 = 0x80 + 0x3d
	KeyF4  uint8 = 0x80 + 0x3e
	KeyF5  uint8 = 0x80 + 0x3f
	KeyF6  uint8 = 0x80 + 0x40
	KeyF7  uint8 = 0x80 + 0x41
	KeyF8  uint8 = 0x80 + 0x42
	KeyF9  uint8 = 0x80 + 0x43
	KeyF10 uint8 = 0x80 + 0x44
	KeyF11 uint8 = 0x80 + 0x57
	KeyF12 uint8 = 0x80 + 0x58

	KeyBackspace uint8 = 0x7f
	KeyPause     uint8 = 0xff

	KeyEquals uint8 = 0x3d
	KeyMinus  uint8 = 0x2d

	KeyRShift uint8 = 0x80 + 0x36
	KeyRCtrl  uint8 = 0x80 + 0x1d
	KeyRAlt   uint8 = 0x80 + 0x38

	KeyHome uint8 = 0x80 + 0x47
	KeyEnd  uint8 = 0x80 + 0x4f
	KeyIns  uint8 = 0x80 + 0x52
	KeyDel  uint8 = 0x80 + 0x53
	KeyPgUp uint8 = 0x80 + 0x49
	KeyPgDn uint8 = 0x80 + 0x51
)
