package hal

import (
	"fmt"
	"strings"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to general-purpose IO pins.
//
// Implementations may return nil if GPIO is unsupported.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
	ByName(name string) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int              { return 0 }
func (nullGPIO) Pin(id int) GPIOPin         { return nil }
func (nullGPIO) ByName(name string) GPIOPin { return nil }

type virtualGPIO struct {
	pins []GPIOPin
}

func newVirtualGPIO(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &virtualGPIO{pins: pins}
}

func (g *virtualGPIO) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *virtualGPIO) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

func (g *virtualGPIO) ByName(name string) GPIOPin {
	if g == nil {
		return nil
	}
	for _, p := range g.pins {
		if p != nil && strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}

// virtualPin is a simulated pin. Inputs float to their pull level unless
// something outside the firmware drives them through Drive/Release.
type virtualPin struct {
	mu     sync.Mutex
	name   string
	caps   GPIOCaps
	mode   GPIOMode
	pull   GPIOPull
	level  bool
	driven bool
	ext    bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if p.caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
		}
	case GPIOPullDown:
		if p.caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}

	p.mode = mode
	p.pull = pull
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.mode {
	case GPIOModeOutput:
		return p.level, nil
	case GPIOModeInput:
		if p.driven {
			return p.ext, nil
		}
		return p.pull == GPIOPullUp, nil
	default:
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// Drive forces the externally applied level, like a button shorting the line.
func (p *virtualPin) Drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.driven = true
	p.ext = level
}

// Release lets the pin float back to its pull level.
func (p *virtualPin) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.driven = false
}

// ledPin is an output-only pin that reports level changes to a logger.
type ledPin struct {
	mu     sync.Mutex
	name   string
	logger Logger
	level  bool
	valid  bool
}

func newLEDPin(name string, logger Logger) *ledPin {
	return &ledPin{name: name, logger: logger}
}

func (p *ledPin) Name() string   { return p.name }
func (p *ledPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *ledPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: only output supported", p.name)
	}
	if pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: pull unsupported", p.name)
	}
	return nil
}

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	changed := !p.valid || p.level != level
	p.level = level
	p.valid = true
	if changed && p.logger != nil {
		if level {
			p.logger.WriteLineString("led " + p.name + ": HIGH")
		} else {
			p.logger.WriteLineString("led " + p.name + ": LOW")
		}
	}
	return nil
}
