//go:build linux && !tinygo && periph

package hal

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

type periphHAL struct {
	logger *hostLogger
	gpio   GPIO
	fb     Framebuffer
	radio  Radio
	clock  *hostClock
}

// NewPeriph returns a HAL for a Linux single-board computer: buttons and LEDs
// on GPIO lines, SSD1306 on an I2C bus. A missing display is logged and
// replaced by an in-memory framebuffer.
func NewPeriph(opts PeriphOptions) (HAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph: host init: %w", err)
	}
	logger := &hostLogger{w: os.Stdout}

	specs := []struct {
		name string
		line string
		caps GPIOCaps
	}{
		{PinStateButton, opts.StatePin, GPIOCapInput | GPIOCapPullUp},
		{PinSendButton, opts.SendPin, GPIOCapInput | GPIOCapPullUp},
		{PinRedLED, opts.RedPin, GPIOCapOutput},
		{PinGreenLED, opts.GreenPin, GPIOCapOutput},
	}
	pins := make([]GPIOPin, 0, len(specs))
	for _, s := range specs {
		p := gpioreg.ByName(s.line)
		if p == nil {
			return nil, fmt.Errorf("periph: pin %s: no GPIO line %q", s.name, s.line)
		}
		pins = append(pins, &periphPin{name: s.name, pin: p, caps: s.caps})
	}

	fb, err := newPeriphDisplay(opts.I2CBus)
	if err != nil {
		logger.WriteLineString("display initialization failed: " + err.Error())
		fb = newMemFramebuffer(128, 64, nil)
	}

	radio := opts.Radio
	if radio == nil {
		radio = NullRadio()
	}
	return &periphHAL{
		logger: logger,
		gpio:   newVirtualGPIO(pins),
		fb:     fb,
		radio:  radio,
		clock:  newHostClock(),
	}, nil
}

func (h *periphHAL) Logger() Logger   { return h.logger }
func (h *periphHAL) GPIO() GPIO       { return h.gpio }
func (h *periphHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *periphHAL) Radio() Radio     { return h.radio }
func (h *periphHAL) Clock() Clock     { return h.clock }

type periphPin struct {
	name string
	pin  gpio.PinIO
	caps GPIOCaps
	mode GPIOMode
}

func (p *periphPin) Name() string   { return p.name }
func (p *periphPin) Caps() GPIOCaps { return p.caps }

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		pp := gpio.Float
		switch pull {
		case GPIOPullUp:
			pp = gpio.PullUp
		case GPIOPullDown:
			pp = gpio.PullDown
		}
		if err := p.pin.In(pp, gpio.NoEdge); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.name, err)
		}
	case GPIOModeOutput:
		if err := p.pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.name, err)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	p.mode = mode
	return nil
}

func (p *periphPin) Read() (bool, error) {
	return p.pin.Read() == gpio.High, nil
}

func (p *periphPin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	return p.pin.Out(gpio.Level(level))
}

func newPeriphDisplay(busName string) (Framebuffer, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, err
	}
	opts := ssd1306.DefaultOpts
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, err
	}

	b := dev.Bounds()
	img := image.NewGray(b)
	present := func(buf []byte, w, h int) error {
		stride := w * 2
		for y := 0; y < h && y < b.Dy(); y++ {
			for x := 0; x < w && x < b.Dx(); x++ {
				var c color.Gray
				if lit(buf, stride, x, y) {
					c.Y = 0xFF
				}
				img.SetGray(x, y, c)
			}
		}
		return dev.Draw(b, img, image.Point{})
	}
	return newMemFramebuffer(b.Dx(), b.Dy(), present), nil
}
