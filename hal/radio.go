package hal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AddressLen is the size of a radio hardware address.
const AddressLen = 6

// Address is a 6-byte radio hardware address.
type Address [AddressLen]byte

var ErrInvalidAddress = errors.New("invalid hardware address")

// ParseAddress parses "98:F4:AB:BC:CE:25" (':' or '-' separated, any case).
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimSpace(s)
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '-' })
	if len(parts) != AddressLen {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	for i, p := range parts {
		if len(p) != 2 {
			return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		a[i] = byte(v)
	}
	return a, nil
}

// String formats the address as upper-case colon-separated hex.
func (a Address) String() string {
	const hex = "0123456789ABCDEF"
	buf := make([]byte, 0, AddressLen*3-1)
	for i, b := range a {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, hex[b>>4], hex[b&0x0F])
	}
	return string(buf)
}

// IsZero reports whether the address is all zeroes.
func (a Address) IsZero() bool { return a == Address{} }

// ReceiveHandler is invoked by a radio for every raw reception.
//
// It may run on a driver goroutine; implementations must not block.
// The payload slice is only valid for the duration of the call.
type ReceiveHandler func(src Address, payload []byte)

// Radio is a connectionless short-range link addressed by hardware address.
//
// Send is fire-and-forget: a nil error only means the frame was handed to
// the transmitter.
type Radio interface {
	Send(dst Address, payload []byte) error
	SetReceiveHandler(h ReceiveHandler)
}

type nullRadio struct{}

// NullRadio returns a radio that never receives and fails every send.
func NullRadio() Radio { return nullRadio{} }

func (nullRadio) Send(dst Address, payload []byte) error {
	_ = dst
	_ = payload
	return ErrNotImplemented
}

func (nullRadio) SetReceiveHandler(h ReceiveHandler) { _ = h }
