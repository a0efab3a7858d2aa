// Package input samples the two front-panel buttons.
package input

import (
	"errors"
	"fmt"

	"pager/hal"
)

var ErrNoPin = errors.New("input: button pin not available")

// Mode selects how a held button is reported.
type Mode uint8

const (
	// Level reports a pressed button on every poll while it is held.
	Level Mode = iota
	// Edge reports a press once, on the poll where it goes down.
	Edge
)

// Poller reads the active-low state and send buttons once per loop
// iteration. It is not safe for concurrent use.
type Poller struct {
	state hal.GPIOPin
	send  hal.GPIOPin
	mode  Mode

	prevState bool
	prevSend  bool
}

// NewPoller looks up the STATE and SEND pins and configures them as inputs
// with pull-ups where the pin supports it.
func NewPoller(g hal.GPIO, mode Mode) (*Poller, error) {
	if g == nil {
		return nil, ErrNoPin
	}
	p := &Poller{mode: mode}
	for _, b := range []struct {
		name string
		dst  *hal.GPIOPin
	}{
		{hal.PinStateButton, &p.state},
		{hal.PinSendButton, &p.send},
	} {
		pin := g.ByName(b.name)
		if pin == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoPin, b.name)
		}
		pull := hal.GPIOPullNone
		if pin.Caps()&hal.GPIOCapPullUp != 0 {
			pull = hal.GPIOPullUp
		}
		if err := pin.Configure(hal.GPIOModeInput, pull); err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		*b.dst = pin
	}
	return p, nil
}

// Poll samples both buttons. Each is evaluated on its own, so both may be
// reported in the same iteration. A read error counts as not pressed and is
// returned alongside.
func (p *Poller) Poll() (stateDown, sendDown bool, err error) {
	s, errS := pressed(p.state)
	d, errD := pressed(p.send)

	if p.mode == Edge {
		stateDown, sendDown = s && !p.prevState, d && !p.prevSend
	} else {
		stateDown, sendDown = s, d
	}
	p.prevState, p.prevSend = s, d

	if errS != nil {
		return stateDown, sendDown, errS
	}
	return stateDown, sendDown, errD
}

func pressed(pin hal.GPIOPin) (bool, error) {
	level, err := pin.Read()
	if err != nil {
		return false, fmt.Errorf("input: %s: %w", pin.Name(), err)
	}
	return !level, nil
}
