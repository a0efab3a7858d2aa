//go:build !tinygo

package hal

import (
	"context"
	"io"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Interval is the period between loop steps.
	Interval time.Duration
	Ticks    uint64
	// Console reads button presses from this reader (one command per line).
	Console io.Reader
	Host    HostOptions
}

// RunHeadless runs the firmware loop without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultStepInterval
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	t := time.NewTicker(cfg.Interval)
	defer t.Stop()

	var presses <-chan []string
	if cfg.Console != nil {
		presses = readConsole(ctx, cfg.Console, h.logger)
	}

	var tick uint64
	var held []*virtualPin
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case names := <-presses:
			for _, name := range names {
				if pin := h.button(name); pin != nil {
					pin.Drive(false)
					held = append(held, pin)
				}
			}
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			// A console press lasts exactly one loop iteration.
			for _, pin := range held {
				pin.Release()
			}
			held = held[:0]
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
