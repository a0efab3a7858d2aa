package hal

import "sync"

type memDisplay struct {
	fb Framebuffer
}

func (d memDisplay) Framebuffer() Framebuffer { return d.fb }

// memFramebuffer is an RGB565 buffer in RAM. Present hands the buffer to an
// optional panel driver.
type memFramebuffer struct {
	mu      sync.Mutex
	width   int
	height  int
	stride  int
	buf     []byte
	present func(buf []byte, width, height int) error
}

func newMemFramebuffer(width, height int, present func(buf []byte, width, height int) error) *memFramebuffer {
	stride := width * 2
	return &memFramebuffer{
		width:   width,
		height:  height,
		stride:  stride,
		buf:     make([]byte, stride*height),
		present: present,
	}
}

func (f *memFramebuffer) Width() int          { return f.width }
func (f *memFramebuffer) Height() int         { return f.height }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int    { return f.stride }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }

func (f *memFramebuffer) Present() error {
	if f.present == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.present(f.buf, f.width, f.height)
}

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *memFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// lit reports whether the pixel at (x, y) is on for a monochrome panel.
func lit(buf []byte, stride, x, y int) bool {
	off := y*stride + x*2
	if off < 0 || off+1 >= len(buf) {
		return false
	}
	return on565(uint16(buf[off]) | uint16(buf[off+1])<<8)
}
