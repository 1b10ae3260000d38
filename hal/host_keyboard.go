//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns Ebiten key state into the one-shot keystrokes firmware
// delivers: one event per press (or OS repeat), never a release.
type hostKeyboard struct {
	*queueKeyboard
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{queueKeyboard: newQueueKeyboard(64)}
}

// Typematic timing in Update ticks (60 per second), close to a PC keyboard
// controller's defaults. Characters repeat through the OS already.
const (
	repeatDelay    = 15
	repeatInterval = 3
)

func typematic(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

var hostScanKeys = []struct {
	key  ebiten.Key
	scan uint16
}{
	{ebiten.KeyArrowUp, ScanUp},
	{ebiten.KeyArrowDown, ScanDown},
	{ebiten.KeyArrowRight, ScanRight},
	{ebiten.KeyArrowLeft, ScanLeft},
	{ebiten.KeyHome, ScanHome},
	{ebiten.KeyEnd, ScanEnd},
	{ebiten.KeyInsert, ScanInsert},
	{ebiten.KeyDelete, ScanDelete},
	{ebiten.KeyPageUp, ScanPageUp},
	{ebiten.KeyPageDown, ScanPageDown},
	{ebiten.KeyF1, ScanF1},
	{ebiten.KeyF2, ScanF1 + 1},
	{ebiten.KeyF3, ScanF1 + 2},
	{ebiten.KeyF4, ScanF1 + 3},
	{ebiten.KeyF5, ScanF1 + 4},
	{ebiten.KeyF6, ScanF1 + 5},
	{ebiten.KeyF7, ScanF1 + 6},
	{ebiten.KeyF8, ScanF1 + 7},
	{ebiten.KeyF9, ScanF1 + 8},
	{ebiten.KeyF10, ScanF10},
	{ebiten.KeyF11, ScanF11},
	{ebiten.KeyF12, ScanF12},
	{ebiten.KeyEscape, ScanEscape},
}

var hostCharKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyEnter, '\r'},
	{ebiten.KeyNumpadEnter, '\r'},
	{ebiten.KeyBackspace, 0x08},
	{ebiten.KeyTab, '\t'},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.push(RawKey{Char: r})
	}
	for _, sk := range hostScanKeys {
		if typematic(sk.key) {
			k.push(RawKey{Scan: sk.scan})
		}
	}
	for _, ck := range hostCharKeys {
		if typematic(ck.key) {
			k.push(RawKey{Char: ck.r})
		}
	}
}
