// Package link exchanges one-byte state values with the paired base unit.
package link

import (
	"strconv"

	"pager/hal"
)

// MaxFrameBytes is the largest payload a peer radio can put on air.
const MaxFrameBytes = 250

// Receiver consumes inbound payloads. It is called on the radio's receive
// context and must be safe for concurrent use with the main loop.
type Receiver interface {
	OnMessageReceived(payload []byte) error
}

// Messenger talks to a single fixed peer. Outbound values are sent
// fire-and-forget; every inbound frame is handed to the attached Receiver.
type Messenger struct {
	radio  hal.Radio
	peer   hal.Address
	logger hal.Logger
	rx     Receiver
}

// New returns a messenger for peer. A nil radio behaves like hal.NullRadio.
func New(radio hal.Radio, peer hal.Address, logger hal.Logger) *Messenger {
	if radio == nil {
		radio = hal.NullRadio()
	}
	return &Messenger{radio: radio, peer: peer, logger: logger}
}

func (m *Messenger) Peer() hal.Address { return m.peer }

// Send transmits value as a single byte. Errors are logged and dropped.
func (m *Messenger) Send(value byte) {
	if err := m.radio.Send(m.peer, []byte{value}); err != nil {
		m.log("send " + strconv.Itoa(int(value)) + " to " + m.peer.String() + " failed: " + err.Error())
	}
}

// Attach routes received frames to rx. Must be called before the radio
// starts delivering.
func (m *Messenger) Attach(rx Receiver) {
	m.rx = rx
	m.radio.SetReceiveHandler(m.receive)
}

func (m *Messenger) receive(src hal.Address, payload []byte) {
	if len(payload) > MaxFrameBytes {
		m.log("oversized frame from " + src.String() + ": " + strconv.Itoa(len(payload)) + " bytes")
	}
	// Rejections are logged by the receiver.
	_ = m.rx.OnMessageReceived(payload)
}

func (m *Messenger) log(s string) {
	if m.logger != nil {
		m.logger.WriteLineString(s)
	}
}
