//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"
	"time"

	"pager/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	windowScale = 4
	lampSize    = 10
	lampBar     = 16
)

var (
	colorRedOn    = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	colorGreenOn  = color.RGBA{R: 0x30, G: 0xff, B: 0x50, A: 0xff}
	colorLampOff  = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	colorLampBack = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)

// RunWindow starts a desktop window that displays the framebuffer and the
// two LEDs. S / Down hold the state button, Enter / Space hold the send button.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, opts HostOptions, interval time.Duration) error {
	h := newHost(opts)
	step := newApp(h)

	g := &hostGame{h: h, step: step, pacer: stepPacer{interval: interval}}
	ebiten.SetWindowTitle("pager remote (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*windowScale, (h.fb.height+lampBar)*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	lamp    *ebiten.Image
	scratch []byte
	step    func() error
	pacer   stepPacer
}

func (g *hostGame) Update() error {
	g.pollButtons()
	n := g.pacer.due(g.h.clock.Now())
	if g.step == nil {
		return nil
	}
	for i := 0; i < n; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) pollButtons() {
	apply := func(pin *virtualPin, down bool) {
		if down {
			pin.Drive(false)
		} else {
			pin.Release()
		}
	}
	apply(g.h.state, ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown))
	apply(g.h.send, ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeySpace))
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.lamp = ebiten.NewImage(lampSize, lampSize)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.ReplacePixels(g.img.Pix)
	screen.Fill(colorLampBack)
	screen.DrawImage(g.fbImg, nil)

	g.drawLamp(screen, g.h.red, colorRedOn, fb.width/2-lampSize-4)
	g.drawLamp(screen, g.h.green, colorGreenOn, fb.width/2+4)
}

func (g *hostGame) drawLamp(screen *ebiten.Image, pin *ledPin, on color.RGBA, x int) {
	level, _ := pin.Read()
	if level {
		g.lamp.Fill(on)
	} else {
		g.lamp.Fill(colorLampOff)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(g.h.fb.height+(lampBar-lampSize)/2))
	screen.DrawImage(g.lamp, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height + lampBar
}
