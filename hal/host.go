//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HostOptions configures the simulated board.
type HostOptions struct {
	Width  int
	Height int
	// Radio is the simulated link; nil means no radio.
	Radio Radio
}

type hostHAL struct {
	logger *hostLogger
	gpio   GPIO
	state  *virtualPin
	send   *virtualPin
	red    *ledPin
	green  *ledPin
	fb     *memFramebuffer
	radio  Radio
	clock  *hostClock
}

// New returns a host HAL implementation.
func New(opts HostOptions) HAL {
	return newHost(opts)
}

func newHost(opts HostOptions) *hostHAL {
	if opts.Width <= 0 {
		opts.Width = 128
	}
	if opts.Height <= 0 {
		opts.Height = 64
	}
	if opts.Radio == nil {
		opts.Radio = NullRadio()
	}

	logger := &hostLogger{w: os.Stdout}
	h := &hostHAL{
		logger: logger,
		state:  newVirtualPin(PinStateButton, GPIOCapInput|GPIOCapPullUp),
		send:   newVirtualPin(PinSendButton, GPIOCapInput|GPIOCapPullUp),
		red:    newLEDPin(PinRedLED, logger),
		green:  newLEDPin(PinGreenLED, logger),
		fb:     newMemFramebuffer(opts.Width, opts.Height, nil),
		radio:  opts.Radio,
		clock:  newHostClock(),
	}
	h.gpio = newVirtualGPIO([]GPIOPin{h.state, h.send, h.red, h.green})
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *hostHAL) Radio() Radio     { return h.radio }
func (h *hostHAL) Clock() Clock     { return h.clock }

// button returns the simulated button pin for a console/keyboard key.
func (h *hostHAL) button(name string) *virtualPin {
	switch name {
	case PinStateButton:
		return h.state
	case PinSendButton:
		return h.send
	default:
		return nil
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

// Now uses the monotonic reading carried by time.Time.
func (c *hostClock) Now() time.Duration { return time.Since(c.start) }
