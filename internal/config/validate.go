package config

import (
	"errors"
	"fmt"
	"strings"

	"pager/hal"
)

var ErrInvalid = errors.New("invalid config")

// Validate checks configuration correctness.
// It MUST NOT mutate configuration. Zero values are accepted and filled in
// by Normalize.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}

	// device
	var peer, self hal.Address
	var err error
	if cfg.Device.Peer != "" {
		if peer, err = hal.ParseAddress(cfg.Device.Peer); err != nil {
			return fmt.Errorf("%w: device.peer: %v", ErrInvalid, err)
		}
	}
	if cfg.Device.Self != "" {
		if self, err = hal.ParseAddress(cfg.Device.Self); err != nil {
			return fmt.Errorf("%w: device.self: %v", ErrInvalid, err)
		}
	}
	if cfg.Device.Peer != "" && cfg.Device.Self != "" && peer == self {
		return fmt.Errorf("%w: device.peer and device.self are both %s", ErrInvalid, peer)
	}

	// timing
	if cfg.Timing.LoopIntervalMs < 0 || cfg.Timing.LoopIntervalMs > 10000 {
		return fmt.Errorf("%w: timing.loop_interval_ms must be in 0..10000, got %d", ErrInvalid, cfg.Timing.LoopIntervalMs)
	}
	if cfg.Timing.FlashIntervalMs < 0 {
		return fmt.Errorf("%w: timing.flash_interval_ms must not be negative", ErrInvalid)
	}

	// radio
	switch strings.ToLower(cfg.Radio.Kind) {
	case "", RadioNull:
	case RadioMQTT:
		if strings.TrimSpace(cfg.Radio.Broker) == "" {
			return fmt.Errorf("%w: radio.broker is required for mqtt", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: radio.kind %q (want null or mqtt)", ErrInvalid, cfg.Radio.Kind)
	}
	if cfg.Radio.ConnectTimeoutMs < 0 {
		return fmt.Errorf("%w: radio.connect_timeout_ms must not be negative", ErrInvalid)
	}

	// board
	switch strings.ToLower(cfg.Board.Kind) {
	case "", BoardSim:
	case BoardPeriph:
		p := cfg.Board.Periph
		seen := make(map[string]string)
		for _, pin := range []struct{ role, line string }{
			{"state_pin", p.StatePin},
			{"send_pin", p.SendPin},
			{"red_pin", p.RedPin},
			{"green_pin", p.GreenPin},
		} {
			if pin.line == "" {
				continue
			}
			if prev, ok := seen[pin.line]; ok {
				return fmt.Errorf("%w: board.periph: %s and %s both use %s", ErrInvalid, prev, pin.role, pin.line)
			}
			seen[pin.line] = pin.role
		}
	default:
		return fmt.Errorf("%w: board.kind %q (want sim or periph)", ErrInvalid, cfg.Board.Kind)
	}

	return nil
}
