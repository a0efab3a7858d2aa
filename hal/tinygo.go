//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
)

type tinyGoHAL struct {
	logger *uartLogger
	gpio   GPIO
	fb     Framebuffer
	radio  Radio
	clock  *tinyGoClock
}

// Board wiring (Raspberry Pi Pico).
const (
	oledAddress = 0x3C
	oledWidth   = 128
	oledHeight  = 64

	radioBaud = 9600
)

// New returns a Pico HAL implementation.
//
// Console UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Radio module: UART1 on GP4 (TX) / GP5 (RX), transparent serial link.
// OLED: SSD1306 on I2C0, GP8 (SDA) / GP9 (SCL).
// Buttons: GP14 (state), GP15 (send), active low. LEDs: GP16 (green), GP17 (red).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	gpio := newVirtualGPIO([]GPIOPin{
		newTinyGoPin(PinStateButton, machine.GP14, GPIOCapInput|GPIOCapPullUp),
		newTinyGoPin(PinSendButton, machine.GP15, GPIOCapInput|GPIOCapPullUp),
		newTinyGoPin(PinGreenLED, machine.GP16, GPIOCapOutput),
		newTinyGoPin(PinRedLED, machine.GP17, GPIOCapOutput),
	})

	fb, err := newSSD1306Framebuffer()
	if err != nil {
		logger.WriteLineString("display initialization failed: " + err.Error())
		fb = newMemFramebuffer(oledWidth, oledHeight, nil)
	}

	var radio Radio = NullRadio()
	if r, err := newUARTRadio(machine.UART1, machine.GP4, machine.GP5, radioBaud); err != nil {
		logger.WriteLineString("radio initialization failed: " + err.Error())
	} else {
		radio = r
	}

	return &tinyGoHAL{
		logger: logger,
		gpio:   gpio,
		fb:     fb,
		radio:  radio,
		clock:  newTinyGoClock(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *tinyGoHAL) Radio() Radio     { return h.radio }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }

func newSSD1306Framebuffer() (Framebuffer, error) {
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400000,
		SDA:       machine.GP8,
		SCL:       machine.GP9,
	}); err != nil {
		return nil, err
	}
	time.Sleep(10 * time.Millisecond)

	dev := ssd1306.NewI2C(i2c)
	dev.Configure(ssd1306.Config{
		Address: oledAddress,
		Width:   oledWidth,
		Height:  oledHeight,
	})
	dev.ClearDisplay()

	on := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	off := color.RGBA{}
	present := func(buf []byte, w, h int) error {
		stride := w * 2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if lit(buf, stride, x, y) {
					dev.SetPixel(int16(x), int16(y), on)
				} else {
					dev.SetPixel(int16(x), int16(y), off)
				}
			}
		}
		return dev.Display()
	}
	return newMemFramebuffer(oledWidth, oledHeight, present), nil
}
