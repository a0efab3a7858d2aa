//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"pager/app"
	"pager/hal"
	"pager/internal/config"

	"github.com/golang/glog"
)

func main() {
	var (
		cfgPath string
		hc      hal.HeadlessConfig
		board   string
		radio   string
		broker  string
	)
	flag.StringVar(&cfgPath, "config", "", "YAML config file (defaults apply when empty).")
	flag.BoolVar(&hc.Enabled, "headless", false, "Run without a window; buttons are read from stdin.")
	flag.Uint64Var(&hc.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&board, "board", "", "Board: sim or periph (overrides config).")
	flag.StringVar(&radio, "radio", "", "Radio: null or mqtt (overrides config).")
	flag.StringVar(&broker, "broker", os.Getenv("PAGER_MQTT_URL"), "MQTT broker URL, e.g. tcp://localhost:1883/pager.")
	flag.Parse()
	defer glog.Flush()

	cfg, err := loadConfig(cfgPath, board, radio, broker)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	r := openRadio(cfg)
	if c, ok := r.(interface{ Close() error }); ok {
		defer c.Close()
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, cfg) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case cfg.Board.Kind == config.BoardPeriph:
		p := cfg.Board.Periph
		h, err := hal.NewPeriph(hal.PeriphOptions{
			StatePin: p.StatePin,
			SendPin:  p.SendPin,
			RedPin:   p.RedPin,
			GreenPin: p.GreenPin,
			I2CBus:   p.I2CBus,
			Radio:    r,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = hal.RunBoard(ctx, h, newApp, cfg.LoopInterval())
		exit(err)
	case hc.Enabled:
		hc.Interval = cfg.LoopInterval()
		hc.Console = os.Stdin
		hc.Host = hal.HostOptions{Radio: r}
		exit(hal.RunHeadless(ctx, newApp, hc))
	default:
		exit(hal.RunWindow(newApp, hal.HostOptions{Radio: r}, cfg.LoopInterval()))
	}
}

func loadConfig(path, board, radio, broker string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if board != "" {
		cfg.Board.Kind = board
	}
	if radio != "" {
		cfg.Radio.Kind = radio
	}
	if broker != "" {
		cfg.Radio.Broker = broker
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// openRadio brings up the configured link. Failure is not fatal: the unit
// runs on with a radio that refuses every send.
func openRadio(cfg *config.Config) hal.Radio {
	if cfg.Radio.Kind != config.RadioMQTT {
		return hal.NullRadio()
	}
	self, err := cfg.SelfAddress()
	if err != nil {
		glog.Errorf("radio initialization failed: %v", err)
		return hal.NullRadio()
	}
	r, err := hal.NewMQTTRadio(cfg.Radio.Broker, self)
	if err != nil {
		glog.Errorf("radio initialization failed: %v", err)
		return hal.NullRadio()
	}
	if err := r.Connect(cfg.ConnectTimeout()); err != nil {
		r.Close()
		glog.Errorf("radio initialization failed: %v", err)
		return hal.NullRadio()
	}
	glog.Infof("radio: mqtt %s as %s", cfg.Radio.Broker, self)
	return r
}

func exit(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	glog.Flush()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
