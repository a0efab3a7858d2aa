package menu

import (
	"image/color"

	"pager/hal"

	"tinygo.org/x/drivers"
)

// Screen adapts a hal.Framebuffer to drivers.Displayer so tinyfont can draw
// into it.
type Screen struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Screen)(nil)

func NewScreen(fb hal.Framebuffer) *Screen {
	return &Screen{fb: fb}
}

func (s *Screen) Size() (x, y int16) {
	if s.fb == nil {
		return 0, 0
	}
	return int16(s.fb.Width()), int16(s.fb.Height())
}

func (s *Screen) SetPixel(x, y int16, c color.RGBA) {
	if s.fb == nil || s.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := s.fb.Buffer()
	ix, iy := int(x), int(y)
	if buf == nil || ix < 0 || ix >= s.fb.Width() || iy < 0 || iy >= s.fb.Height() {
		return
	}
	off := iy*s.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (s *Screen) Display() error {
	if s.fb == nil {
		return nil
	}
	return s.fb.Present()
}

// Clear fills the framebuffer with c.
func (s *Screen) Clear(c color.RGBA) {
	if s.fb != nil {
		s.fb.ClearRGB(c.R, c.G, c.B)
	}
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}
