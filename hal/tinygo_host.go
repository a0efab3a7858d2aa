//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	gpio   GPIO
	fb     *memFramebuffer
	clock  *tinyGoHostClock
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping: buttons float high, LEDs are logged, the radio is absent.
func New() HAL {
	l := &tinyGoHostLogger{}
	l.WriteLineString(fmt.Sprintf("hal: tinygo/%s host build, no radio", runtime.GOOS))
	return &tinyGoHostHAL{
		logger: l,
		gpio: newVirtualGPIO([]GPIOPin{
			newVirtualPin(PinStateButton, GPIOCapInput|GPIOCapPullUp),
			newVirtualPin(PinSendButton, GPIOCapInput|GPIOCapPullUp),
			newLEDPin(PinRedLED, l),
			newLEDPin(PinGreenLED, l),
		}),
		fb:    newMemFramebuffer(128, 64, nil),
		clock: &tinyGoHostClock{start: time.Now()},
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHostHAL) Display() Display { return memDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Radio() Radio     { return NullRadio() }
func (h *tinyGoHostHAL) Clock() Clock     { return h.clock }

type tinyGoHostClock struct {
	start time.Time
}

func (c *tinyGoHostClock) Now() time.Duration { return time.Since(c.start) }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
