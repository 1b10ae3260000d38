//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"testing"
)

func TestRunHeadlessTickBudget(t *testing.T) {
	h := NewWithConfig(HostConfig{Width: 64, Height: 32, Stride: 64, Format: FormatBGRX8888})
	steps := 0
	err := RunHeadless(context.Background(), h, func(got HAL) (func() error, error) {
		if got != h {
			t.Fatalf("newApp got a different HAL")
		}
		return func() error { steps++; return nil }, nil
	}, HeadlessConfig{Enabled: true, Hz: 1000, Ticks: 5})
	if err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
}

func TestRunHeadlessStopsOnStepError(t *testing.T) {
	h := New()
	boom := errors.New("boom")

	err := RunHeadless(context.Background(), h, func(HAL) (func() error, error) {
		return func() error { return boom }, nil
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless() error = %v, want boom", err)
	}

	err = RunHeadless(context.Background(), h, func(HAL) (func() error, error) {
		return func() error { return ErrQuit }, nil
	}, HeadlessConfig{Hz: 1000})
	if err != nil {
		t.Fatalf("RunHeadless() after quit error = %v, want nil", err)
	}
}

func TestRunHeadlessStartupError(t *testing.T) {
	boom := errors.New("no surface")
	err := RunHeadless(context.Background(), New(), func(HAL) (func() error, error) {
		return nil, boom
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("RunHeadless() error = %v, want %v", err, boom)
	}
}

func TestHostFramebufferPresent(t *testing.T) {
	h := NewWithConfig(HostConfig{Width: 4, Height: 2, Stride: 0, Format: FormatRGB565}).(*hostHAL)
	fb := h.Display().Framebuffer()
	if fb.Stride() != 0 {
		t.Fatalf("Stride() = %d, want the reported 0", fb.Stride())
	}
	if len(fb.Buffer()) != 4*2*2 {
		t.Fatalf("len(Buffer()) = %d, want 16", len(fb.Buffer()))
	}

	fb.Buffer()[0] = 0xAB
	if view := h.fb.snapshotShown(nil); view.Buffer()[0] != 0 {
		t.Fatalf("scanout saw a write before Present")
	}
	if err := fb.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if view := h.fb.snapshotShown(nil); view.Buffer()[0] != 0xAB {
		t.Fatalf("scanout missed the presented write")
	}

	h.Display().SetTitle("E1M2")
	if h.windowTitle() != "E1M2" {
		t.Fatalf("windowTitle() = %q, want E1M2", h.windowTitle())
	}
}

func TestDefaultHostConfigPadsStride(t *testing.T) {
	cfg := DefaultHostConfig()
	if cfg.Stride != 832 || cfg.Stride <= cfg.Width {
		t.Fatalf("DefaultHostConfig() stride = %d, want 832 for width %d", cfg.Stride, cfg.Width)
	}
	for _, tc := range []struct{ width, want int }{{640, 640}, {800, 832}, {1, 64}, {1024, 1024}} {
		if got := PaddedStride(tc.width); got != tc.want {
			t.Fatalf("PaddedStride(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}
