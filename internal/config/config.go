// Package config describes how a remote unit is wired and paired.
package config

import (
	"time"

	"pager/hal"
)

type Config struct {
	Device DeviceConfig `yaml:"device"`
	Timing TimingConfig `yaml:"timing"`
	Input  InputConfig  `yaml:"input"`
	Radio  RadioConfig  `yaml:"radio"`
	Board  BoardConfig  `yaml:"board"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Peer string `yaml:"peer"` // base unit, "xx:xx:xx:xx:xx:xx"
	Self string `yaml:"self"` // own address on simulated links
}

// ---- TIMING ----

type TimingConfig struct {
	LoopIntervalMs  int `yaml:"loop_interval_ms"`
	FlashIntervalMs int `yaml:"flash_interval_ms"`
}

// ---- INPUT ----

type InputConfig struct {
	EdgeTriggered bool `yaml:"edge_triggered"`
}

// ---- RADIO ----

const (
	RadioNull = "null"
	RadioMQTT = "mqtt"
)

type RadioConfig struct {
	Kind             string `yaml:"kind"`   // null | mqtt
	Broker           string `yaml:"broker"` // tcp://host:1883/prefix
	ConnectTimeoutMs int    `yaml:"connect_timeout_ms"`
}

// ---- BOARD ----

const (
	BoardSim    = "sim"
	BoardPeriph = "periph"
)

type BoardConfig struct {
	Kind   string       `yaml:"kind"` // sim | periph
	Periph PeriphConfig `yaml:"periph"`
}

type PeriphConfig struct {
	StatePin string `yaml:"state_pin"`
	SendPin  string `yaml:"send_pin"`
	RedPin   string `yaml:"red_pin"`
	GreenPin string `yaml:"green_pin"`
	I2CBus   string `yaml:"i2c_bus"` // empty selects the first bus
}

const (
	DefaultPeer            = "98:F4:AB:BC:CE:25"
	DefaultSelf            = "02:00:00:00:00:01"
	DefaultLoopIntervalMs  = 100
	DefaultFlashIntervalMs = 500
	DefaultBroker          = "tcp://127.0.0.1:1883/pager"
	DefaultConnectTimeout  = 5000
)

// Default returns the configuration used when no file is given, and the
// only one TinyGo builds know.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{Peer: DefaultPeer, Self: DefaultSelf},
		Timing: TimingConfig{
			LoopIntervalMs:  DefaultLoopIntervalMs,
			FlashIntervalMs: DefaultFlashIntervalMs,
		},
		Radio: RadioConfig{
			Kind:             RadioNull,
			Broker:           DefaultBroker,
			ConnectTimeoutMs: DefaultConnectTimeout,
		},
		Board: BoardConfig{
			Kind: BoardSim,
			Periph: PeriphConfig{
				StatePin: "GPIO17",
				SendPin:  "GPIO27",
				RedPin:   "GPIO22",
				GreenPin: "GPIO23",
			},
		},
	}
}

// PeerAddress parses Device.Peer.
func (c *Config) PeerAddress() (hal.Address, error) {
	return hal.ParseAddress(c.Device.Peer)
}

// SelfAddress parses Device.Self.
func (c *Config) SelfAddress() (hal.Address, error) {
	return hal.ParseAddress(c.Device.Self)
}

// LoopInterval is the period between main loop iterations. Zero or
// negative values fall back to the default.
func (c *Config) LoopInterval() time.Duration {
	if c.Timing.LoopIntervalMs <= 0 {
		return DefaultLoopIntervalMs * time.Millisecond
	}
	return time.Duration(c.Timing.LoopIntervalMs) * time.Millisecond
}

func (c *Config) FlashInterval() time.Duration {
	return time.Duration(c.Timing.FlashIntervalMs) * time.Millisecond
}

func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Radio.ConnectTimeoutMs) * time.Millisecond
}
