package demo

import (
	"errors"
	"testing"

	"efidoom/engine"
)

type keyEvent struct {
	pressed bool
	code    uint8
}

type fakePlatform struct {
	frame    *engine.Frame
	keys     []keyEvent
	now      uint32
	palette  []byte
	palettes int
	title    string
	draws    int
	initErr  error
}

func newFakePlatform(format engine.FrameFormat) *fakePlatform {
	return &fakePlatform{frame: engine.NewFrame(engine.ResX, engine.ResY, format)}
}

func (p *fakePlatform) Init() error             { return p.initErr }
func (p *fakePlatform) Frame() *engine.Frame    { return p.frame }
func (p *fakePlatform) DrawFrame()              { p.draws++ }
func (p *fakePlatform) SleepMs(ms uint32)       { p.now += ms }
func (p *fakePlatform) GetTicksMs() uint32      { return p.now }
func (p *fakePlatform) SetWindowTitle(s string) { p.title = s }

func (p *fakePlatform) PollKey() (ok, pressed bool, code uint8) {
	if len(p.keys) == 0 {
		return false, false, 0
	}
	ev := p.keys[0]
	p.keys = p.keys[1:]
	return true, ev.pressed, ev.code
}

func (p *fakePlatform) SetPalette(rgb []byte) {
	p.palette = append(p.palette[:0], rgb...)
	p.palettes++
}

func (p *fakePlatform) PaletteIndex(r, g, b uint8) uint8 {
	for i := 0; 3*i+2 < len(p.palette) && i < 256; i++ {
		if p.palette[3*i] == r && p.palette[3*i+1] == g && p.palette[3*i+2] == b {
			return uint8(i)
		}
	}
	return 0
}

func (p *fakePlatform) press(code uint8) {
	p.keys = append(p.keys, keyEvent{pressed: true, code: code}, keyEvent{pressed: false, code: code})
}

func newTestGame(t *testing.T, format engine.FrameFormat) (*Game, *fakePlatform) {
	t.Helper()
	p := newFakePlatform(format)
	g := New()
	if err := g.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return g, p
}

func TestCreate(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	if len(p.palette) != 768 {
		t.Fatalf("palette length = %d, want 768", len(p.palette))
	}
	if p.title != "efidoom demo" {
		t.Fatalf("title = %q, want efidoom demo", p.title)
	}
	if len(g.snake) != 3 || !g.Alive() || g.Score() != 0 {
		t.Fatalf("new game: len=%d alive=%v score=%d", len(g.snake), g.Alive(), g.Score())
	}
	if g.occupied(g.food) {
		t.Fatalf("food %+v spawned on the snake", g.food)
	}
}

func TestCreateInitError(t *testing.T) {
	p := newFakePlatform(engine.FrameIndexed8)
	p.initErr = errors.New("bad surface")
	if err := New().Create(p); !errors.Is(err, p.initErr) {
		t.Fatalf("Create() error = %v, want %v", err, p.initErr)
	}
}

func TestCreateRejectsTinyFrame(t *testing.T) {
	p := &fakePlatform{frame: engine.NewFrame(32, 32, engine.FrameIndexed8)}
	if err := New().Create(p); err == nil {
		t.Fatalf("Create() on 32x32 error = nil, want an error")
	}
}

func TestTickStepsOnSchedule(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	g.food = point{}
	head := g.snake[0]

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if g.snake[0] != head {
		t.Fatalf("snake moved before its interval")
	}
	if p.draws != 1 {
		t.Fatalf("draws = %d, want 1", p.draws)
	}

	p.now += stepIntervalBaseMs
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if want := (point{x: head.x + 1, y: head.y}); g.snake[0] != want {
		t.Fatalf("head = %+v, want %+v", g.snake[0], want)
	}
}

func TestArrowKeysTurn(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	g.food = point{}
	head := g.snake[0]

	// Reversing onto the body is ignored.
	p.press(engine.KeyLeftArrow)
	p.press(engine.KeyUpArrow)
	p.now += stepIntervalBaseMs
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if want := (point{x: head.x, y: head.y - 1}); g.snake[0] != want {
		t.Fatalf("head = %+v, want %+v", g.snake[0], want)
	}
}

func TestPauseAndQuit(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	head := g.snake[0]

	p.press('p')
	p.now += 10 * stepIntervalBaseMs
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if !g.Paused() || g.snake[0] != head {
		t.Fatalf("paused=%v head=%+v, want paused in place", g.Paused(), g.snake[0])
	}

	p.press('q')
	if err := g.Tick(); !errors.Is(err, engine.ErrQuit) {
		t.Fatalf("Tick() error = %v, want ErrQuit", err)
	}
}

func TestEatingFlashesPalette(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	head := g.snake[0]
	g.food = point{x: head.x + 1, y: head.y}
	before := p.palettes

	p.now += stepIntervalBaseMs
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if g.Score() != 1 || len(g.snake) != 4 {
		t.Fatalf("score=%d len=%d, want 1 and 4", g.Score(), len(g.snake))
	}
	if p.palettes != before+1 {
		t.Fatalf("palette uploads = %d, want %d", p.palettes, before+1)
	}
	c := baseColors[colorFlash]
	if p.palette[0] != c.R || p.palette[1] != c.G || p.palette[2] != c.B {
		t.Fatalf("background = % x, want flash color", p.palette[:3])
	}

	for i := 0; i < flashTicks; i++ {
		if err := g.Tick(); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}
	if p.palette[0] != 0 || p.palette[1] != 0 || p.palette[2] != 0 {
		t.Fatalf("background = % x after flash, want black", p.palette[:3])
	}
}

func TestCollisionAndRestart(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	g.food = point{}
	h := g.snake[0]
	g.snake = []point{h, {h.x, h.y + 1}, {h.x - 1, h.y + 1}, {h.x - 1, h.y}, {h.x - 1, h.y - 1}}
	g.headDir, g.nextDir = dirUp, dirUp

	// Turn left into the body.
	p.press(engine.KeyLeftArrow)
	p.now += stepIntervalBaseMs
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if g.Alive() {
		t.Fatalf("Alive() = true after running into the body")
	}

	p.press(engine.KeyFire)
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if !g.Alive() || len(g.snake) != 3 {
		t.Fatalf("restart: alive=%v len=%d", g.Alive(), len(g.snake))
	}
}

func TestHeldRunKeySpeedsUp(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	normal := g.stepIntervalMs()

	p.keys = append(p.keys, keyEvent{pressed: true, code: engine.KeyRShift})
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if got := g.stepIntervalMs(); got != normal/2 {
		t.Fatalf("stepIntervalMs() = %d while running, want %d", got, normal/2)
	}

	p.keys = append(p.keys, keyEvent{pressed: false, code: engine.KeyRShift})
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if got := g.stepIntervalMs(); got != normal {
		t.Fatalf("stepIntervalMs() = %d after release, want %d", got, normal)
	}
}

func TestRenderIndexed(t *testing.T) {
	g, p := newTestGame(t, engine.FrameIndexed8)
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	f := p.frame
	h := g.snake[0]
	x, y := h.x*cellSize, g.gridY0+h.y*cellSize
	if got := f.Index[y*f.Width+x]; got != colorHead {
		t.Fatalf("head pixel = %d, want %d", got, colorHead)
	}
	fx, fy := g.food.x*cellSize, g.gridY0+g.food.y*cellSize
	if got := f.Index[fy*f.Width+fx]; got != colorFood {
		t.Fatalf("food pixel = %d, want %d", got, colorFood)
	}

	text := 0
	for _, v := range f.Index[:g.gridY0*f.Width] {
		if v == colorText {
			text++
		}
	}
	if text == 0 {
		t.Fatalf("no HUD text pixels in the top bar")
	}
}

func TestRenderTruecolor(t *testing.T) {
	g, p := newTestGame(t, engine.FrameTruecolor)
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	f := p.frame
	h := g.snake[0]
	x, y := h.x*cellSize, g.gridY0+h.y*cellSize
	c := baseColors[colorHead]
	want := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if got := f.RGB[y*f.Width+x]; got != want {
		t.Fatalf("head pixel = %#06x, want %#06x", got, want)
	}
}
