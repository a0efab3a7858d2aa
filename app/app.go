package app

import (
	"errors"
	"fmt"
	"time"

	"pager/hal"
	"pager/internal/buildinfo"
	"pager/internal/config"
	"pager/internal/input"
	"pager/internal/led"
	"pager/internal/link"
	"pager/internal/menu"
	"pager/internal/state"
)

type system struct {
	h      hal.HAL
	logger hal.Logger

	ctrl    *state.Controller
	leds    *led.Indicator
	menu    *menu.Renderer
	buttons *input.Poller
	link    *link.Messenger

	inputErr  lastError
	outputErr lastError
}

// New wires the remote unit onto h and returns its loop step. Each call of
// the step is one iteration: poll the buttons, then refresh LEDs and
// display. Received frames reach the controller on the radio's own context.
// The caller owns the delay between steps.
func New(h hal.HAL, cfg *config.Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("setup failed: " + err.Error())
		}
		return func() error { return err }
	}
	return s.step
}

// Run drives the loop forever at the configured interval (TinyGo/native
// entrypoint). A panic leaves the panic screen up and halts.
func Run(h hal.HAL, cfg *config.Config) {
	step := New(h, cfg)
	if cfg == nil {
		cfg = config.Default()
	}
	interval := cfg.LoopInterval()
	for {
		if err := step(); err != nil {
			select {}
		}
		time.Sleep(interval)
	}
}

func newSystem(h hal.HAL, cfg *config.Config) (*system, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	peer, err := cfg.PeerAddress()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	s := &system{h: h, logger: h.Logger()}

	mode := input.Level
	if cfg.Input.EdgeTriggered {
		mode = input.Edge
	}
	g := h.GPIO()
	if s.buttons, err = input.NewPoller(g, mode); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	var red, green hal.GPIOPin
	if g != nil {
		red, green = g.ByName(hal.PinRedLED), g.ByName(hal.PinGreenLED)
	}
	if s.leds, err = led.New(red, green, h.Clock(), cfg.FlashInterval()); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	s.menu = menu.NewRenderer(h.Display())
	s.link = link.New(h.Radio(), peer, s.logger)
	s.ctrl = state.NewController(s.link, s.logger)
	s.link.Attach(s.ctrl)

	s.refresh()
	s.log("setup complete (" + buildinfo.Long() + "), peer " + s.link.Peer().String())
	return s, nil
}

func (s *system) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = s.panicked(r)
		}
	}()

	stateDown, sendDown, perr := s.buttons.Poll()
	s.report(&s.inputErr, perr)
	s.ctrl.HandleButtons(stateDown, sendDown)
	s.refresh()
	return nil
}

func (s *system) refresh() {
	snap := s.ctrl.Snapshot()
	s.report(&s.outputErr, errors.Join(s.leds.Update(snap.State), s.menu.Render()))
}

// lastError remembers the most recently logged error of one source.
type lastError struct{ msg string }

// report logs err unless it repeats the previous error of the same source.
// A nil err clears the source so a later recurrence is logged again.
func (s *system) report(last *lastError, err error) {
	if err == nil {
		last.msg = ""
		return
	}
	if msg := err.Error(); msg != last.msg {
		last.msg = msg
		s.log(msg)
	}
}

func (s *system) log(line string) {
	if s.logger != nil {
		s.logger.WriteLineString(line)
	}
}
