// Package menu draws the fixed four-line menu on the unit's display.
package menu

import (
	"image/color"

	"pager/hal"
	"pager/internal/state"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Items are the menu labels, in selection order.
var Items = [state.MenuLen]string{
	"Status",
	"Jetzt nicht",
	"Leise durch",
	"in Ordnung",
}

const (
	textX     = 40
	lineStep  = 16
	firstLine = 16
)

var (
	colorBG = color.RGBA{A: 0xff}
	colorFG = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Font is the typeface used for all display text.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// Renderer redraws the menu. Selection and state are not shown.
type Renderer struct {
	screen *Screen
}

// NewRenderer returns a renderer for d. A nil display or framebuffer turns
// Render into a no-op.
func NewRenderer(d hal.Display) *Renderer {
	var fb hal.Framebuffer
	if d != nil {
		fb = d.Framebuffer()
	}
	return &Renderer{screen: NewScreen(fb)}
}

// Render clears the display, writes every label at its baseline and
// presents the frame.
func (r *Renderer) Render() error {
	if r.screen.fb == nil {
		return nil
	}
	r.screen.Clear(colorBG)
	for i, label := range Items {
		tinyfont.WriteLine(r.screen, Font, textX, int16(firstLine+i*lineStep), label, colorFG)
	}
	return r.screen.Display()
}
