//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"efidoom/app"
	"efidoom/bridge"
	"efidoom/engine"
	"efidoom/hal"
)

func main() {
	var run hal.HeadlessConfig
	surface := hal.DefaultHostConfig()
	cfg := app.DefaultConfig()

	var format, screenshot, engineName string
	var ttl uint
	var truecolor bool
	flag.BoolVar(&run.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&run.Hz, "hz", 35, "Tick rate in headless mode.")
	flag.Uint64Var(&run.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&run.Terminal, "tty", true, "Read keys from stdin in headless mode when it is a terminal.")
	flag.IntVar(&surface.Width, "width", surface.Width, "Surface width in pixels.")
	flag.IntVar(&surface.Height, "height", surface.Height, "Surface height in pixels.")
	flag.IntVar(&surface.Stride, "stride", -1, "Pixels per scanline as reported by the firmware (-1 = padded to 64, 0 = broken firmware).")
	flag.StringVar(&format, "format", "", "Surface pixel format: rgbx8888, bgrx8888, rgb565, indexed8 or bitmask:R,G,B[,X].")
	flag.IntVar(&cfg.Bridge.Scale, "scale", 0, "Force the upscale factor (0 = largest that fits).")
	flag.UintVar(&ttl, "ttl", uint(bridge.DefaultKeyTTL), "Key hold time in ticks.")
	flag.BoolVar(&truecolor, "truecolor", false, "Render the engine frame as 0x00RRGGBB instead of palette indices.")
	flag.StringVar(&engineName, "engine", "demo", "Engine to run: demo or testcard.")
	flag.StringVar(&screenshot, "screenshot", "", "Write the surface to this BMP file when the run ends.")
	flag.Parse()

	if surface.Stride < 0 {
		surface.Stride = hal.PaddedStride(surface.Width)
	}
	if format == "" {
		format = os.Getenv("EFIDOOM_FORMAT")
	}
	if format != "" {
		f, err := hal.ParseFormat(format)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		surface.Format = f
	}
	if ttl > 255 {
		fmt.Fprintf(os.Stderr, "-ttl %d out of range\n", ttl)
		os.Exit(2)
	}
	cfg.Bridge.KeyTTL = uint8(ttl)
	if truecolor {
		cfg.Bridge.Source = engine.FrameTruecolor
	}

	eng, err := app.EngineByName(engineName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.Engine = eng

	h := hal.NewWithConfig(surface)
	newApp := func(h hal.HAL) (func() error, error) {
		return app.NewWithConfig(h, cfg)
	}

	if run.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = hal.RunHeadless(ctx, h, newApp, run)
		stop()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(h, newApp)
	}

	if screenshot != "" {
		if serr := writeScreenshot(h, screenshot); serr != nil {
			fmt.Fprintln(os.Stderr, serr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeScreenshot(h hal.HAL, path string) error {
	fb := h.Display().Framebuffer()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := hal.WriteBMP(f, fb); err != nil {
		f.Close()
		return fmt.Errorf("screenshot: %w", err)
	}
	return f.Close()
}
