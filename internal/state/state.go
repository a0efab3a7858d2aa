// Package state holds the remote unit's state machine.
package state

import (
	"errors"
	"strconv"
	"sync"

	"pager/hal"
)

// DeviceState is the unit's current mode. It doubles as the one-byte wire
// value exchanged with the peer.
type DeviceState uint8

const (
	Idle                 DeviceState = 0
	Waiting              DeviceState = 1
	Active               DeviceState = 2
	IncomingNotification DeviceState = 4
	UserInteracting      DeviceState = 5
)

func (s DeviceState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case IncomingNotification:
		return "incoming"
	case UserInteracting:
		return "interacting"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// MenuLen is the number of menu entries the selection cycles through.
const MenuLen = 4

var (
	ErrInvalidLength   = errors.New("state: invalid message length")
	ErrUnexpectedState = errors.New("state: unexpected state received")
)

// Sender transmits a state value to the peer. Delivery is not confirmed.
type Sender interface {
	Send(value byte)
}

// Snapshot is a consistent copy of the controller's fields.
type Snapshot struct {
	State     DeviceState
	Selection int
}

// Controller owns DeviceState and MenuSelection. All methods are safe for
// concurrent use; sends happen after the lock is released.
type Controller struct {
	mu        sync.Mutex
	state     DeviceState
	selection int

	sender Sender
	logger hal.Logger
}

// NewController returns a controller in the Idle state.
func NewController(sender Sender, logger hal.Logger) *Controller {
	return &Controller{sender: sender, logger: logger}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Selection: c.selection}
}

// OnStateButtonPressed answers a notification (4 -> 5, telling the peer) or
// advances the menu selection while interacting.
func (c *Controller) OnStateButtonPressed() {
	c.mu.Lock()
	switch c.state {
	case IncomingNotification:
		c.state = UserInteracting
		c.mu.Unlock()
		c.send(byte(UserInteracting))
		c.log("transitioned to state 5, sent to base")
		return
	case UserInteracting:
		c.selection = (c.selection + 1) % MenuLen
	}
	c.mu.Unlock()
}

// OnSendButtonPressed commits the selected entry: the new state is
// selection+1 and that value goes to the peer. Only effective while
// interacting.
func (c *Controller) OnSendButtonPressed() {
	c.mu.Lock()
	if c.state != UserInteracting {
		c.mu.Unlock()
		return
	}
	next := DeviceState(c.selection + 1)
	c.state = next
	c.mu.Unlock()

	c.send(byte(next))
	c.log("sent state to base: " + strconv.Itoa(int(next)))
}

// HandleButtons dispatches one loop iteration's button levels. Both buttons
// are handled independently. A send press leaves a pending notification
// before the send handler runs.
func (c *Controller) HandleButtons(stateDown, sendDown bool) {
	if stateDown {
		c.OnStateButtonPressed()
	}
	if sendDown {
		c.mu.Lock()
		if c.state == IncomingNotification {
			c.state = UserInteracting
		}
		c.mu.Unlock()
		c.OnSendButtonPressed()
	}
}

// OnMessageReceived interprets one inbound frame. Only a single byte of
// value 4 received while idle changes state.
func (c *Controller) OnMessageReceived(payload []byte) error {
	if len(payload) != 1 {
		c.log("invalid message length")
		return ErrInvalidLength
	}
	v := DeviceState(payload[0])
	c.log("received message: state = " + strconv.Itoa(int(v)))

	c.mu.Lock()
	accepted := v == IncomingNotification && c.state == Idle
	if accepted {
		c.state = IncomingNotification
	}
	c.mu.Unlock()

	if !accepted {
		c.log("unexpected state received")
		return ErrUnexpectedState
	}
	c.log("call received. LEDs flashing")
	return nil
}

func (c *Controller) send(v byte) {
	if c.sender != nil {
		c.sender.Send(v)
	}
}

func (c *Controller) log(s string) {
	if c.logger != nil {
		c.logger.WriteLineString(s)
	}
}
