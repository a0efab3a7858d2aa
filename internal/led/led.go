// Package led drives the red/green indicator pair from the device state.
package led

import (
	"fmt"
	"time"

	"pager/hal"
	"pager/internal/state"
)

// Mode is what a single LED shows.
type Mode uint8

const (
	Off Mode = iota
	On
	Flash
)

// DefaultFlashInterval is the toggle period of the notification pattern.
const DefaultFlashInterval = 500 * time.Millisecond

// Pattern maps a device state to the red and green LED modes. Flashing LEDs
// always run complementary.
func Pattern(st state.DeviceState) (red, green Mode) {
	switch st {
	case state.Waiting:
		return Off, On
	case state.Active:
		return On, Off
	case state.IncomingNotification:
		return Flash, Flash
	default:
		return Off, Off
	}
}

// Indicator owns the two LED pins. It is driven from the main loop only.
type Indicator struct {
	red      hal.GPIOPin
	green    hal.GPIOPin
	clock    hal.Clock
	interval time.Duration

	flashing   bool
	phase      bool
	lastToggle time.Duration
}

// New configures both pins as outputs. A nil pin is skipped.
func New(red, green hal.GPIOPin, clock hal.Clock, interval time.Duration) (*Indicator, error) {
	if interval <= 0 {
		interval = DefaultFlashInterval
	}
	for _, p := range []hal.GPIOPin{red, green} {
		if p == nil {
			continue
		}
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			return nil, fmt.Errorf("led: %w", err)
		}
	}
	return &Indicator{red: red, green: green, clock: clock, interval: interval}, nil
}

// Update writes the pins for st. While flashing, the phase flips only when
// the interval has elapsed on the clock since the previous flip, however
// often Update is called.
func (ind *Indicator) Update(st state.DeviceState) error {
	red, green := Pattern(st)
	if red != Flash {
		ind.flashing = false
		return ind.write(red == On, green == On)
	}

	now := ind.now()
	if !ind.flashing {
		ind.flashing = true
		ind.lastToggle = now
		return ind.write(ind.phase, !ind.phase)
	}
	if now-ind.lastToggle >= ind.interval {
		ind.lastToggle = now
		ind.phase = !ind.phase
	}
	return ind.write(ind.phase, !ind.phase)
}

// Levels returns the last written red and green levels.
func (ind *Indicator) Levels() (red, green bool) {
	if ind.red != nil {
		red, _ = ind.red.Read()
	}
	if ind.green != nil {
		green, _ = ind.green.Read()
	}
	return red, green
}

func (ind *Indicator) now() time.Duration {
	if ind.clock == nil {
		return 0
	}
	return ind.clock.Now()
}

func (ind *Indicator) write(red, green bool) error {
	if ind.red != nil {
		if err := ind.red.Write(red); err != nil {
			return fmt.Errorf("led: %w", err)
		}
	}
	if ind.green != nil {
		if err := ind.green.Write(green); err != nil {
			return fmt.Errorf("led: %w", err)
		}
	}
	return nil
}
