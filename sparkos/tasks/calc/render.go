package calc

import (
	"image/color"

	"sparkwidgets/sparkos/gfx"
)

var (
	colorBG        = gfx.RGB(0x11, 0x18, 0x27)
	colorPanel     = gfx.RGB(0x1F, 0x29, 0x37)
	colorFG        = gfx.RGB(0xFF, 0xFF, 0xFF)
	colorDim       = gfx.RGB(0x9C, 0xA3, 0xAF)
	colorHeader    = gfx.RGB(0x37, 0x41, 0x51)
	colorMemory    = gfx.RGB(0x7C, 0x3A, 0xED)
	colorFunction  = gfx.RGB(0x25, 0x63, 0xEB)
	colorDigit     = gfx.RGB(0x37, 0x41, 0x51)
	colorOperator  = gfx.RGB(0xD9, 0x77, 0x06)
	colorClear     = gfx.RGB(0xDC, 0x26, 0x26)
	colorFocus     = gfx.RGB(0xFD, 0xE0, 0x47)
	colorIndicator = gfx.RGB(0xC4, 0xB5, 0xFD)
)

const (
	headerH  = 18
	displayH = 64
	keyRowH  = 26
	footerH  = 14
	margin   = 4
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

	// Header.
	s.FillRect(0, 0, w, headerH, colorHeader)
	s.Text(gfx.FontSmall, margin, 2, "Calculator", colorFG)
	if t.state.Memory() != 0 {
		s.TextRight(gfx.FontSmall, w-margin, 2, "M", colorIndicator)
	}

	// Display panel: pending operation above the current value.
	panelY := headerH + 2
	s.FillRect(margin, panelY, w-2*margin, displayH, colorPanel)
	inner := w - 4*margin
	if p := t.state.Pending(); p != nil {
		line := FormatNumber(p.Left) + " " + p.Op.ASCII()
		s.TextRight(gfx.FontNormal, w-2*margin, panelY+2, gfx.TruncateLeft(gfx.FontNormal, line, inner), colorDim)
	}
	display := gfx.TruncateLeft(gfx.FontLarge, t.state.Display(), inner)
	s.TextRight(gfx.FontLarge, w-2*margin, panelY+displayH-gfx.FontLarge.Height-2, display, colorFG)

	// Keypad, anchored above the footer.
	padTop := h - footerH - len(keypadRows)*keyRowH
	t.renderKeypad(padTop, w)

	// History fills the gap between the display and the keypad.
	histY := panelY + displayH + 2
	t.renderHistory(histY, padTop-2, w)

	s.Text(gfx.FontSmall, margin, h-footerH+1, "arrows+space: keypad   q: home", colorDim)

	_ = s.Display()
}

func (t *Task) renderHistory(top, bottom, w int) {
	entries := t.state.History()
	if len(entries) == 0 {
		return
	}
	lineH := gfx.FontSmall.Height
	y := top
	for _, c := range entries {
		if y+lineH > bottom {
			break
		}
		line := FormatNumber(c.Left) + " " + c.Op.ASCII() + " " + FormatNumber(c.Right) + " = " + FormatNumber(c.Result)
		t.s.TextRight(gfx.FontSmall, w-margin, y, gfx.TruncateLeft(gfx.FontSmall, line, w-2*margin), colorDim)
		y += lineH
	}
}

func (t *Task) renderKeypad(top, w int) {
	cellW := (w - 2*margin) / keypadCols
	for r, row := range keypadRows {
		col := 0
		for i, b := range row {
			x := margin + col*cellW
			y := top + r*keyRowH
			bw := b.span*cellW - 2
			bh := keyRowH - 2
			t.s.FillRect(x, y, bw, bh, buttonColor(b.ev))
			if r == t.pad.row && i == t.pad.idx {
				t.s.RectOutline(x, y, bw, bh, colorFocus)
				t.s.RectOutline(x+1, y+1, bw-2, bh-2, colorFocus)
			}
			t.s.TextCentered(gfx.FontBold, x, bw, y+(bh-gfx.FontBold.Height)/2, b.label, colorFG)
			col += b.span
		}
	}
}

func buttonColor(ev Event) color.RGBA {
	switch ev.Kind {
	case EventMemoryAdd, EventMemorySubtract, EventMemoryRecall, EventMemoryClear:
		return colorMemory
	case EventClearAll, EventClearEntry, EventBackspace:
		return colorClear
	case EventSqrt, EventSquare, EventReciprocal, EventPercent, EventNegate:
		return colorFunction
	case EventOperator, EventEquals:
		return colorOperator
	default:
		return colorDigit
	}
}
