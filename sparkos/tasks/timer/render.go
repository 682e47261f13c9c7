package timer

import (
	"fmt"

	"sparkwidgets/sparkos/gfx"
)

var (
	colorBG      = gfx.RGB(0x2E, 0x10, 0x65)
	colorPanel   = gfx.RGB(0x1E, 0x1B, 0x4B)
	colorHeader  = gfx.RGB(0x58, 0x1C, 0x87)
	colorFG      = gfx.RGB(0xFF, 0xFF, 0xFF)
	colorDim     = gfx.RGB(0xC4, 0xB5, 0xFD)
	colorActive  = gfx.RGB(0x7C, 0x3A, 0xED)
	colorRunning = gfx.RGB(0x22, 0xC5, 0x5E)
)

const (
	headerH = 18
	footerH = 28
	margin  = 6
)

func (t *Task) render() {
	t.shown = t.clock.Text()
	if !t.active || t.s == nil {
		return
	}
	s := t.s
	w, h := s.Width(), s.Height()
	if w <= 0 || h <= 0 {
		return
	}
	c := t.clock
	s.Clear(colorBG)

	s.FillRect(0, 0, w, headerH, colorHeader)
	s.Text(gfx.FontSmall, margin, 2, "Timer & Stopwatch", colorFG)

	// Mode tabs.
	y := headerH + margin
	tabW := (w - 3*margin) / 2
	for i, m := range []Mode{Stopwatch, Countdown} {
		x := margin + i*(tabW+margin)
		bg := colorPanel
		if c.Mode() == m {
			bg = colorActive
		}
		s.FillRect(x, y, tabW, 22, bg)
		label := "Stopwatch"
		if m == Countdown {
			label = "Timer"
		}
		s.TextCentered(gfx.FontNormal, x, tabW, y+(22-gfx.FontNormal.Height)/2, label, colorFG)
	}
	y += 22 + margin

	// Time.
	s.FillRect(margin, y, w-2*margin, 48, colorPanel)
	s.TextCentered(gfx.FontLarge, 0, w, y+(48-gfx.FontLarge.Height)/2, c.Text(), colorFG)
	y += 48 + 2
	status, col := "paused", colorDim
	if c.Running() {
		status, col = "running", colorRunning
	}
	s.TextCentered(gfx.FontSmall, 0, w, y, status, col)
	y += gfx.FontSmall.Height + margin

	// Countdown setup.
	s.Text(gfx.FontSmall, margin, y, "Set timer", colorDim)
	y += gfx.FontSmall.Height + 2
	setup := c.Setup()
	fieldW := (w - 4*margin) / 3
	for f := Hours; f <= Seconds; f++ {
		x := margin + int(f)*(fieldW+margin)
		s.FillRect(x, y, fieldW, 26, colorPanel)
		if c.Field() == f {
			s.RectOutline(x, y, fieldW, 26, colorDim)
		}
		s.TextCentered(gfx.FontBold, x, fieldW, y+(26-gfx.FontBold.Height)/2, fmt.Sprintf("%02d", setup[f]), colorFG)
		s.TextCentered(gfx.FontSmall, x, fieldW, y+28, f.String(), colorDim)
	}

	s.Text(gfx.FontSmall, margin, h-footerH+1, "space: start/pause  esc: reset  s: set", colorDim)
	s.Text(gfx.FontSmall, margin, h-footerH/2+1, "ctrl+t: mode  arrows: edit  q: home", colorDim)
	_ = s.Display()
}
