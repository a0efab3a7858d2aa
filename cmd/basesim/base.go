//go:build !tinygo

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"pager/hal"
	"pager/internal/menu"
	"pager/internal/state"
)

var errNoArgs = errors.New("argument required")

type received struct {
	at      time.Time
	src     hal.Address
	payload []byte
}

// base plays the base unit: it calls the remote and records its answers.
type base struct {
	radio  hal.Radio
	remote hal.Address

	mu   sync.Mutex
	last *received

	notify func(string)
}

func newBase(radio hal.Radio, remote hal.Address, notify func(string)) *base {
	b := &base{radio: radio, remote: remote, notify: notify}
	radio.SetReceiveHandler(b.receive)
	return b
}

func (b *base) call() error {
	return b.send([]byte{byte(state.IncomingNotification)})
}

func (b *base) send(payload []byte) error {
	if err := b.radio.Send(b.remote, payload); err != nil {
		return fmt.Errorf("send to %s: %w", b.remote, err)
	}
	return nil
}

func (b *base) receive(src hal.Address, payload []byte) {
	r := &received{at: time.Now(), src: src, payload: append([]byte(nil), payload...)}
	b.mu.Lock()
	b.last = r
	b.mu.Unlock()
	if b.notify != nil {
		b.notify(r.String())
	}
}

func (b *base) lastReceived() (received, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return received{}, false
	}
	return *b.last, true
}

func (r received) String() string {
	if len(r.payload) != 1 {
		return fmt.Sprintf("%s: %d bytes [% X]", r.src, len(r.payload), r.payload)
	}
	return fmt.Sprintf("%s: state %d (%s)", r.src, r.payload[0], describe(r.payload[0]))
}

// describe names a state value as the remote means it.
func describe(v byte) string {
	switch {
	case v == byte(state.UserInteracting):
		return "answered"
	case v >= 1 && int(v) <= len(menu.Items):
		return menu.Items[v-1]
	default:
		return state.DeviceState(v).String()
	}
}

// parseValue parses a decimal byte.
func parseValue(args []string) (byte, error) {
	if len(args) == 0 {
		return 0, errNoArgs
	}
	v, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", args[0], err)
	}
	return byte(v), nil
}

// parseRaw joins hex arguments: "01 02", "0102" and "01:02" are equal.
func parseRaw(args []string) ([]byte, error) {
	s := strings.NewReplacer(":", "", "-", "", " ", "").Replace(strings.Join(args, ""))
	if s == "" {
		return nil, errNoArgs
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return out, nil
}
