package home

import (
	"strconv"

	"sparkwidgets/internal/buildinfo"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/proto"
)

const (
	Title   = "Spark Widgets"
	Tagline = "Handy tools, one keypress away"
	footer  = "(c) 2025 Spark Widgets"
)

var (
	colorBG     = gfx.RGB(0x0B, 0x3B, 0x60)
	colorBand   = gfx.RGB(0x07, 0x29, 0x44)
	colorItem   = gfx.RGB(0x11, 0x4E, 0x7E)
	colorSel    = gfx.RGB(0xF5, 0x9E, 0x0B)
	colorFG     = gfx.RGB(0xFF, 0xFF, 0xFF)
	colorDim    = gfx.RGB(0xBA, 0xD7, 0xF0)
	colorAccent = gfx.RGB(0xFC, 0xD3, 0x4D)
)

const (
	margin = 8
	itemH  = 34
)

func (t *Task) render() {
	if !t.active || t.s == nil {
		return
	}
	s := t.s
	w, h := s.Width(), s.Height()
	if w <= 0 || h <= 0 {
		return
	}
	s.Clear(colorBG)

	bandH := gfx.FontLarge.Height + gfx.FontSmall.Height + 2*margin
	s.FillRect(0, 0, w, bandH, colorBand)
	s.TextCentered(gfx.FontLarge, 0, w, margin/2, Title, colorAccent)
	s.TextCentered(gfx.FontSmall, 0, w, margin/2+gfx.FontLarge.Height+2, Tagline, colorDim)

	y := bandH + margin
	for i, id := range proto.Apps {
		bg := colorItem
		if i == t.sel {
			bg = colorSel
		}
		s.FillRect(margin, y, w-2*margin, itemH, bg)
		ty := y + (itemH-gfx.FontBold.Height)/2
		s.Text(gfx.FontBold, 2*margin, ty, strconv.Itoa(i+1), colorFG)
		s.Text(gfx.FontBold, 5*margin, ty, id.Title(), colorFG)
		y += itemH + margin/2
	}
	s.Text(gfx.FontSmall, margin, y+margin, "up/down + enter, or 1-3. ctrl+g: back here", colorDim)

	fy := h - 2*gfx.FontSmall.Height - margin/2
	s.HLine(margin, fy-margin/2, w-2*margin, colorDim)
	s.Text(gfx.FontSmall, margin, fy, footer, colorDim)
	s.Text(gfx.FontSmall, margin, fy+gfx.FontSmall.Height, "build "+buildinfo.Short(), colorDim)
	_ = s.Display()
}
