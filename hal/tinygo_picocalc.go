//go:build tinygo && baremetal && picocalc

package hal

import "time"

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	logger := &uartLogger{uart: configureUART()}

	var fb Framebuffer
	if disp, err := newPicoCalcDisplay(); err == nil {
		fb = disp
	} else {
		logger.WriteLineString("picocalc: display: " + err.Error())
		fb = &stubFramebuffer{w: picoCalcWidth, h: picoCalcHeight, format: FormatRGB565}
	}

	var kbd Keyboard = stubKeyboard{}
	if kb, err := newPicoCalcKeyboard(); err == nil {
		kbd = kb
	} else {
		logger.WriteLineString("picocalc: keyboard: " + err.Error())
	}

	return &picoCalcHAL{
		logger: logger,
		fb:     fb,
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Time() Time       { return h.t }

const (
	picoCalcWidth  = 320
	picoCalcHeight = 320
)

// picoCalcFramebuffer keeps the frame in RAM; the panel only sees it when
// Present pushes it over SPI.
type picoCalcFramebuffer struct {
	buf []byte
	lcd *ili9488
}

func (f *picoCalcFramebuffer) Width() int          { return picoCalcWidth }
func (f *picoCalcFramebuffer) Height() int         { return picoCalcHeight }
func (f *picoCalcFramebuffer) Stride() int         { return picoCalcWidth }
func (f *picoCalcFramebuffer) Format() PixelFormat { return FormatRGB565 }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	return f.lcd.blit(f.buf, picoCalcWidth, picoCalcHeight, picoCalcWidth)
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	return &picoCalcFramebuffer{
		buf: make([]byte, picoCalcWidth*picoCalcHeight*2),
		lcd: lcd,
	}, nil
}

func newPicoCalcKeyboard() (Keyboard, error) {
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}
	q := newQueueKeyboard(64)

	go func() {
		for {
			if key, ok := kbd.readKey(); ok {
				q.push(key)
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	return q, nil
}
