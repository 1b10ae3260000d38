// Package demo is a small snake game that drives the engine.Platform
// contract the same way the real engine does: drain keys, read the clock,
// update, render into the frame, present, yield.
package demo

import (
	"errors"
	"fmt"
	"image/color"

	"efidoom/engine"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

type dir uint8

const (
	dirUp dir = iota
	dirRight
	dirDown
	dirLeft
)

type point struct {
	x int
	y int
}

// Palette slots.
const (
	colorBackground uint8 = iota
	colorText
	colorFood
	colorBody
	colorHead
	colorStatus
	colorFlash
)

const (
	cellSize = 8

	stepIntervalBaseMs = 160
	stepIntervalMinMs  = 50
	flashTicks         = 6
)

var ErrNoFrame = errors.New("demo: platform has no frame")

var baseColors = [...]color.RGBA{
	colorBackground: {R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
	colorText:       {R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
	colorFood:       {R: 0xFF, G: 0x50, B: 0x50, A: 0xFF},
	colorBody:       {R: 0x50, G: 0xFF, B: 0x50, A: 0xFF},
	colorHead:       {R: 0x50, G: 0xD1, B: 0xFF, A: 0xFF},
	colorStatus:     {R: 0xFF, G: 0xD1, B: 0x4A, A: 0xFF},
	colorFlash:      {R: 0x20, G: 0x40, B: 0x20, A: 0xFF},
}

type Game struct {
	p     engine.Platform
	frame *engine.Frame

	palette [768]byte

	font       tinyfont.Fonter
	fontHeight int

	gridY0 int
	gridW  int
	gridH  int

	snake   []point
	headDir dir
	nextDir dir

	food point
	rng  uint32

	score  int
	alive  bool
	paused bool

	// held tracks keys between their press and release events.
	held [256]bool

	lastStep uint32
	flash    int
	ticks    uint64
}

var _ engine.Engine = (*Game)(nil)

func New() *Game {
	return &Game{rng: 0x12345678}
}

func (g *Game) Create(p engine.Platform) error {
	if err := p.Init(); err != nil {
		return err
	}
	g.p = p
	g.frame = p.Frame()
	if g.frame == nil {
		return ErrNoFrame
	}

	g.font = &proggy.TinySZ8pt7b
	g.fontHeight = int(proggy.TinySZ8pt7b.YAdvance)
	if g.fontHeight <= 0 {
		g.fontHeight = 8
	}

	g.buildPalette()
	p.SetPalette(g.palette[:])
	p.SetWindowTitle("efidoom demo")

	if err := g.initGame(); err != nil {
		return err
	}
	g.lastStep = p.GetTicksMs()
	return nil
}

func (g *Game) buildPalette() {
	for i := 0; i < 256; i++ {
		// Gray ramp for everything the game does not name.
		v := byte(i)
		g.palette[i*3], g.palette[i*3+1], g.palette[i*3+2] = v, v, v
	}
	for i, c := range baseColors {
		g.palette[i*3], g.palette[i*3+1], g.palette[i*3+2] = c.R, c.G, c.B
	}
}

func (g *Game) initGame() error {
	w, h := g.frame.Width, g.frame.Height
	bar := g.fontHeight + 2
	g.gridY0 = bar
	g.gridW = w / cellSize
	g.gridH = (h - 2*bar) / cellSize
	if g.gridW < 8 || g.gridH < 8 {
		return fmt.Errorf("demo: frame %dx%d too small", w, h)
	}

	start := point{x: g.gridW / 2, y: g.gridH / 2}
	g.snake = []point{
		start,
		{x: start.x - 1, y: start.y},
		{x: start.x - 2, y: start.y},
	}
	g.headDir = dirRight
	g.nextDir = dirRight
	g.score = 0
	g.alive = true
	g.paused = false
	g.spawnFood()
	return nil
}

// Tick runs one frame.
func (g *Game) Tick() error {
	for {
		ok, pressed, code := g.p.PollKey()
		if !ok {
			break
		}
		g.held[code] = pressed
		if !pressed {
			continue
		}
		if err := g.handleKey(code); err != nil {
			return err
		}
	}

	now := g.p.GetTicksMs()
	if g.alive && !g.paused && now-g.lastStep >= g.stepIntervalMs() {
		g.lastStep = now
		g.step()
	}

	if g.flash > 0 {
		g.flash--
		if g.flash == 0 {
			g.setBackground(baseColors[colorBackground])
		}
	}

	g.render()
	g.p.DrawFrame()
	g.p.SleepMs(1)
	g.ticks++
	return nil
}

func (g *Game) handleKey(code uint8) error {
	switch code {
	case 'q':
		return engine.ErrQuit
	case engine.KeyUpArrow:
		g.setDir(dirUp)
	case engine.KeyDownArrow:
		g.setDir(dirDown)
	case engine.KeyLeftArrow:
		g.setDir(dirLeft)
	case engine.KeyRightArrow:
		g.setDir(dirRight)
	case 'p', engine.KeyEscape, engine.KeyPause:
		if g.alive {
			g.paused = !g.paused
		}
	case 'r', engine.KeyFire, engine.KeyEnter:
		if !g.alive || code == 'r' {
			return g.initGame()
		}
	}
	return nil
}

func (g *Game) setDir(d dir) {
	if !g.alive {
		return
	}
	if (g.headDir == dirUp && d == dirDown) ||
		(g.headDir == dirDown && d == dirUp) ||
		(g.headDir == dirLeft && d == dirRight) ||
		(g.headDir == dirRight && d == dirLeft) {
		return
	}
	g.nextDir = d
}

// stepIntervalMs shortens with the score; holding run halves it.
func (g *Game) stepIntervalMs() uint32 {
	interval := stepIntervalBaseMs - 5*g.score
	if interval < stepIntervalMinMs {
		interval = stepIntervalMinMs
	}
	if g.held[engine.KeyRShift] {
		interval /= 2
	}
	return uint32(interval)
}

func (g *Game) step() {
	if !g.alive || len(g.snake) == 0 {
		return
	}

	g.headDir = g.nextDir
	next := g.snake[0]
	switch g.headDir {
	case dirUp:
		next.y--
	case dirDown:
		next.y++
	case dirLeft:
		next.x--
	case dirRight:
		next.x++
	}
	next.x = (next.x + g.gridW) % g.gridW
	next.y = (next.y + g.gridH) % g.gridH

	willEat := next == g.food
	check := g.snake
	if !willEat && len(check) > 1 {
		check = check[:len(check)-1]
	}
	for _, p := range check {
		if p == next {
			g.alive = false
			return
		}
	}

	g.snake = append([]point{next}, g.snake...)
	if willEat {
		g.score++
		g.spawnFood()
		g.flash = flashTicks
		g.setBackground(baseColors[colorFlash])
		return
	}
	g.snake = g.snake[:len(g.snake)-1]
}

func (g *Game) setBackground(c color.RGBA) {
	i := int(colorBackground) * 3
	g.palette[i], g.palette[i+1], g.palette[i+2] = c.R, c.G, c.B
	g.p.SetPalette(g.palette[:])
}

func (g *Game) spawnFood() {
	for tries := 0; tries < 1024; tries++ {
		g.rng = xorshift32(g.rng)
		x := int(g.rng % uint32(g.gridW))
		g.rng = xorshift32(g.rng)
		y := int(g.rng % uint32(g.gridH))
		p := point{x: x, y: y}
		if !g.occupied(p) {
			g.food = p
			return
		}
	}
	g.food = point{}
}

func (g *Game) occupied(p point) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

func xorshift32(x uint32) uint32 {
	if x == 0 {
		x = 0x6d2b79f5
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

func (g *Game) render() {
	d := &engine.Displayer{Frame: g.frame, Index: g.p.PaletteIndex, Palette: &g.palette}
	d.FillIndex(colorBackground)

	header := fmt.Sprintf("SNAKE %d  arrows p r q", g.score)
	tinyfont.WriteLine(d, g.font, 0, int16(g.fontHeight), header, baseColors[colorText])

	msg := ""
	if !g.alive {
		msg = "GAME OVER (r)"
	} else if g.paused {
		msg = "PAUSED"
	}
	if msg != "" {
		tinyfont.WriteLine(d, g.font, 0, int16(g.frame.Height-1), msg, baseColors[colorStatus])
	}

	g.cell(d, g.food, colorFood)
	for i, p := range g.snake {
		c := colorBody
		if i == 0 {
			c = colorHead
		}
		g.cell(d, p, c)
	}
}

// cell leaves a one-pixel gap on the right and bottom of each grid square.
func (g *Game) cell(d *engine.Displayer, p point, idx uint8) {
	d.FillRectIndex(p.x*cellSize, g.gridY0+p.y*cellSize, cellSize-1, cellSize-1, idx)
}

// Score returns the number of food items eaten this round.
func (g *Game) Score() int { return g.score }

// Alive reports whether the current round is still running.
func (g *Game) Alive() bool { return g.alive }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }
