//go:build !tinygo

package hal

import (
	"context"
	"time"
)

// PeriphOptions selects the GPIO lines and I2C bus of a Linux board.
// Line names are periph names such as "GPIO17".
type PeriphOptions struct {
	StatePin string
	SendPin  string
	RedPin   string
	GreenPin string
	I2CBus   string
	Radio    Radio
}

// RunBoard steps the firmware loop every interval on real hardware until
// ctx ends.
func RunBoard(ctx context.Context, h HAL, newApp func(HAL) func() error, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultStepInterval
	}
	step := newApp(h)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step == nil {
				continue
			}
			if err := step(); err != nil {
				return err
			}
		}
	}
}
