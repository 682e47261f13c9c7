//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	// LogFrames logs the frame checksum every time the framebuffer content changes.
	LogFrames bool

	// Setup runs once after the HAL exists and before the first step (e.g. key injection).
	Setup func(HAL)
}

func defaultLogOutput() io.Writer { return os.Stdout }

// RunHeadless runs the OS without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	return runHeadless(ctx, newHostHAL(defaultLogOutput()), newApp, cfg)
}

func runHeadless(ctx context.Context, h *hostHAL, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	step := newApp(h)
	if cfg.Setup != nil {
		cfg.Setup(h)
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	var lastSum uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			for i := 0; i < cfg.StepBudget && step != nil; i++ {
				if err := step(); err != nil {
					return err
				}
			}
			if cfg.LogFrames {
				if sum := h.fb.Checksum(); sum != lastSum {
					lastSum = sum
					h.logger.WriteLineString(fmt.Sprintf("frame: tick=%d sum=%016x", tick, sum))
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
