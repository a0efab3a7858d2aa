//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"sync"
	"time"
)

type tinyGoClock struct {
	start time.Time
}

func newTinyGoClock() *tinyGoClock { return &tinyGoClock{start: time.Now()} }

func (c *tinyGoClock) Now() time.Duration { return time.Since(c.start) }

type uartLogger struct {
	mu   sync.Mutex
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// tinyGoPin adapts a machine pin to GPIOPin.
type tinyGoPin struct {
	name string
	pin  machine.Pin
	caps GPIOCaps
	mode GPIOMode
}

func newTinyGoPin(name string, pin machine.Pin, caps GPIOCaps) *tinyGoPin {
	return &tinyGoPin{name: name, pin: pin, caps: caps}
}

func (p *tinyGoPin) Name() string   { return p.name }
func (p *tinyGoPin) Caps() GPIOCaps { return p.caps }

func (p *tinyGoPin) Configure(mode GPIOMode, pull GPIOPull) error {
	var cfg machine.PinConfig
	switch mode {
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
		cfg.Mode = machine.PinOutput
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
		switch pull {
		case GPIOPullUp:
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			cfg.Mode = machine.PinInputPulldown
		default:
			cfg.Mode = machine.PinInput
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *tinyGoPin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *tinyGoPin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

// uartRadio drives a transparent serial radio module (HC-12 class). The
// module pair shares a channel, so the link itself is the pairing and the
// destination address is not put on air.
type uartRadio struct {
	uart *machine.UART

	mu      sync.Mutex
	handler ReceiveHandler
}

func newUARTRadio(uart *machine.UART, tx, rx machine.Pin, baud uint32) (*uartRadio, error) {
	if uart == nil {
		return nil, ErrNotImplemented
	}
	if err := uart.Configure(machine.UARTConfig{BaudRate: baud, TX: tx, RX: rx}); err != nil {
		return nil, err
	}
	r := &uartRadio{uart: uart}
	go r.receive()
	return r, nil
}

func (r *uartRadio) Send(dst Address, payload []byte) error {
	_ = dst
	_, err := r.uart.Write(payload)
	return err
}

func (r *uartRadio) SetReceiveHandler(h ReceiveHandler) {
	r.mu.Lock()
	r.handler = h
	r.mu.Unlock()
}

// receive delivers every received byte as its own one-byte frame.
func (r *uartRadio) receive() {
	var buf [1]byte
	for {
		if r.uart.Buffered() == 0 {
			time.Sleep(2 * time.Millisecond)
			continue
		}
		b, err := r.uart.ReadByte()
		if err != nil {
			continue
		}
		buf[0] = b
		r.mu.Lock()
		h := r.handler
		r.mu.Unlock()
		if h != nil {
			h(Address{}, buf[:])
		}
	}
}
