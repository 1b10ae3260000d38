//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Terminal reads keystrokes from a raw-mode stdin.
	Terminal bool
}

// RunHeadless runs ticks without opening a window until ctx is done, the
// tick budget is spent, or step fails.
//
// h must come from New or NewWithConfig.
func RunHeadless(ctx context.Context, h HAL, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	hh, ok := h.(*hostHAL)
	if !ok {
		return errors.New("headless mode requires the host HAL")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Terminal {
		tk := newTerminalKeyboard(cancel)
		if err := tk.Start(); err != nil {
			hh.logger.WriteLineString(fmt.Sprintf("headless: %v; running without keyboard", err))
		} else {
			hh.logger.setCRLF(true)
			defer func() {
				tk.Stop()
				hh.logger.setCRLF(false)
			}()
			hh.setKeyboard(tk)
		}
	}

	step, err := newApp(hh)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
