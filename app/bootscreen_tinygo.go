//go:build tinygo && bootdebug

package app

import (
	"sparkwidgets/hal"
	"sparkwidgets/sparkos/gfx"
)

func bootScreen(h hal.HAL, msg string) {
	bootDiagSetStep(msg)
	if h == nil || h.Display() == nil {
		return
	}
	s := gfx.NewSurface(h.Display().Framebuffer())
	s.Clear(gfx.RGB(0, 0, 0))
	fg := gfx.RGB(0xFF, 0xFF, 0xFF)
	s.Text(gfx.FontNormal, 0, 0, "Spark Widgets boot", fg)
	s.Text(gfx.FontNormal, 0, gfx.FontNormal.Height+4, msg, fg)
	_ = s.Display()
}
