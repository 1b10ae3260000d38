package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"efidoom/bridge"
	"efidoom/engine"
	"efidoom/engine/demo"
	"efidoom/engine/testcard"
	"efidoom/hal"
	"efidoom/internal/buildinfo"
)

type Config struct {
	Bridge bridge.Config
	// Engine is the game to run; nil selects the built-in demo.
	Engine engine.Engine
}

// DefaultConfig runs the demo on a 320x200 indexed frame.
func DefaultConfig() Config {
	return Config{Bridge: bridge.DefaultConfig()}
}

// Engines lists the built-in engines by name.
var Engines = map[string]func() engine.Engine{
	"demo":     func() engine.Engine { return demo.New() },
	"testcard": func() engine.Engine { return testcard.New() },
}

// EngineByName returns a fresh instance of a built-in engine.
func EngineByName(name string) (engine.Engine, error) {
	newEngine, ok := Engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	return newEngine(), nil
}

type system struct {
	h      hal.HAL
	bridge *bridge.Bridge
	eng    engine.Engine
	halted error
}

// New brings up the bridge and the engine with the default config and
// returns the per-tick step function.
func New(h hal.HAL) (func() error, error) {
	return NewWithConfig(h, DefaultConfig())
}

// NewWithConfig is New with an explicit config. Any error is fatal: the
// surface could not be written safely or the engine refused to start.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.step, nil
}

// Run starts the engine and steps it forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func RunWithConfig(h hal.HAL, cfg Config) {
	step, err := NewWithConfig(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("efidoom: fatal: " + err.Error())
		}
		select {}
	}
	for {
		if err := step(); err != nil {
			select {}
		}
	}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if l := h.Logger(); l != nil {
		l.WriteLineString("efidoom " + buildinfo.String())
	}
	b := bridge.New(h, cfg.Bridge)
	eng := cfg.Engine
	if eng == nil {
		eng = demo.New()
	}
	if err := eng.Create(b); err != nil {
		return nil, fmt.Errorf("engine create: %w", err)
	}
	return &system{h: h, bridge: b, eng: eng}, nil
}

func (s *system) step() (err error) {
	if s.halted != nil {
		return s.halted
	}
	defer func() {
		if r := recover(); r != nil {
			err = s.halt(fmt.Sprintf("panic: %v", r), debug.Stack())
		}
	}()
	if err := s.eng.Tick(); err != nil {
		if errors.Is(err, engine.ErrQuit) {
			return hal.ErrQuit
		}
		return s.halt(err.Error(), nil)
	}
	return nil
}

// halt logs the reason, paints it on the surface and parks the system.
func (s *system) halt(reason string, stack []byte) error {
	lines := []string{"efidoom halted:", reason}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	}

	if l := s.h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	var fb hal.Framebuffer
	if d := s.h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if err := renderHalt(newSurfaceDisplay(fb, s.bridge.PaletteIndex), lines); err != nil && !errors.Is(err, hal.ErrNotImplemented) {
		if l := s.h.Logger(); l != nil {
			l.WriteLineString("halt screen: " + err.Error())
		}
	}

	s.halted = fmt.Errorf("%w: %s", hal.ErrHalt, reason)
	return s.halted
}
