package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"pager/internal/menu"

	"tinygo.org/x/tinyfont"
)

var ErrPanic = errors.New("app: loop panicked")

const panicLineHeight = 10

// panicked logs a recovered panic with its stack and puts it on the display.
func (s *system) panicked(v any) error {
	stack := debug.Stack()

	s.log(fmt.Sprintf("Pager Panic: %v", v))
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			s.log(line)
		}
	}

	lines := []string{"PANIC", fmt.Sprint(v)}
	if len(stack) > 0 {
		for _, line := range strings.Split(string(stack), "\n") {
			// Keep frames, skip the goroutine header and file paths.
			if line == "" || strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "goroutine ") {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	s.drawPanic(lines)

	return fmt.Errorf("%w: %v", ErrPanic, v)
}

func (s *system) drawPanic(lines []string) {
	disp := s.h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	scr := menu.NewScreen(fb)
	scr.Clear(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	_, outboxWidth := tinyfont.LineWidth(menu.Font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = scr.Display()
		return
	}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	fg := color.RGBA{A: 0xff}
	maxH := int16(fb.Height())
	y := int16(panicLineHeight)
	for _, line := range lines {
		for len(line) > 0 && y <= maxH {
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(scr, menu.Font, 0, y, chunk, fg)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
		if y > maxH {
			break
		}
	}
	_ = scr.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
