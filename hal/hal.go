package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Clock is a monotonic time source measured from boot.
type Clock interface {
	Now() time.Duration
}

// Board pin names every implementation exposes through GPIO().ByName.
const (
	PinStateButton = "STATE"
	PinSendButton  = "SEND"
	PinRedLED      = "RED"
	PinGreenLED    = "GREEN"
)

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	Display() Display
	Radio() Radio
	Clock() Clock
}
