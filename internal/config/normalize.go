package config

import "strings"

// Normalize fills zero values with defaults and canonicalizes kinds.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	def := Default()

	if cfg.Device.Peer == "" {
		cfg.Device.Peer = def.Device.Peer
	}
	if cfg.Device.Self == "" {
		cfg.Device.Self = def.Device.Self
	}
	if a, err := cfg.PeerAddress(); err == nil {
		cfg.Device.Peer = a.String()
	}
	if a, err := cfg.SelfAddress(); err == nil {
		cfg.Device.Self = a.String()
	}

	if cfg.Timing.LoopIntervalMs == 0 {
		cfg.Timing.LoopIntervalMs = def.Timing.LoopIntervalMs
	}
	if cfg.Timing.FlashIntervalMs == 0 {
		cfg.Timing.FlashIntervalMs = def.Timing.FlashIntervalMs
	}

	cfg.Radio.Kind = strings.ToLower(cfg.Radio.Kind)
	if cfg.Radio.Kind == "" {
		cfg.Radio.Kind = RadioNull
	}
	if cfg.Radio.Broker == "" {
		cfg.Radio.Broker = def.Radio.Broker
	}
	if cfg.Radio.ConnectTimeoutMs == 0 {
		cfg.Radio.ConnectTimeoutMs = def.Radio.ConnectTimeoutMs
	}

	cfg.Board.Kind = strings.ToLower(cfg.Board.Kind)
	if cfg.Board.Kind == "" {
		cfg.Board.Kind = BoardSim
	}
	p, dp := &cfg.Board.Periph, def.Board.Periph
	if p.StatePin == "" {
		p.StatePin = dp.StatePin
	}
	if p.SendPin == "" {
		p.SendPin = dp.SendPin
	}
	if p.RedPin == "" {
		p.RedPin = dp.RedPin
	}
	if p.GreenPin == "" {
		p.GreenPin = dp.GreenPin
	}
}
