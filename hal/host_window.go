//go:build !tinygo && cgo

package hal

import (
	"sparkwidgets/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes or step returns an error.
func RunWindow(newApp func(HAL) func() error) error {
	h := newHostHAL(defaultLogOutput())
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Spark Widgets (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.Width()*2, h.fb.Height()*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	rgba    []byte
	fbImg   *ebiten.Image
	scratch []byte
	sum     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := fb.Width(), fb.Height()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		g.rgba = make([]byte, w*h*4)
		g.scratch = make([]byte, fb.StrideBytes()*h)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
		g.sum = 0
	}

	// Unchanged frames skip the RGB565 expansion and the texture upload.
	if sum := fb.Snapshot(g.scratch); sum != g.sum {
		g.sum = sum
		expandRGB565(g.rgba, g.scratch)
		g.fbImg.WritePixels(g.rgba)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.Width(), g.h.fb.Height()
}
