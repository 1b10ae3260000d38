//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"efidoom/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window that shows the surface of h and feeds
// keystrokes into it. It blocks until the window closes or step fails.
//
// h must come from New or NewWithConfig.
func RunWindow(h HAL, newApp func(HAL) (func() error, error)) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return errors.New("window mode requires the host HAL")
	}
	kbd := newHostKeyboard()
	hh.setKeyboard(kbd)

	step, err := newApp(hh)
	if err != nil {
		return err
	}

	g := &hostGame{h: hh, kbd: kbd, step: step}
	g.applyTitle()
	ebiten.SetWindowSize(hh.fb.width, hh.fb.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	kbd     *hostKeyboard
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	halted  bool
	title   string
}

func (g *hostGame) applyTitle() {
	title := g.h.windowTitle()
	if title == "" {
		title = "efidoom"
	}
	title += " (" + buildinfo.Short() + ")"
	if title != g.title {
		ebiten.SetWindowTitle(title)
		g.title = title
	}
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	if g.step != nil && !g.halted {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			if errors.Is(err, ErrHalt) {
				// Keep the halt screen up until the window is closed.
				g.halted = true
				return nil
			}
			return err
		}
	}
	g.applyTitle()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if fb.width <= 0 || fb.height <= 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.width || g.fbImg.Bounds().Dy() != fb.height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	view := fb.snapshotShown(g.scratch)
	g.scratch = view.Buffer()
	g.img = Snapshot(view, g.img)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
