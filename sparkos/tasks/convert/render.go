package convert

import (
	"strconv"

	"sparkwidgets/sparkos/gfx"
)

var (
	colorBG     = gfx.RGB(0x0F, 0x17, 0x2A)
	colorPanel  = gfx.RGB(0x1E, 0x29, 0x3B)
	colorHeader = gfx.RGB(0x04, 0x78, 0x57)
	colorFG     = gfx.RGB(0xFF, 0xFF, 0xFF)
	colorDim    = gfx.RGB(0x94, 0xA3, 0xB8)
	colorAccent = gfx.RGB(0x34, 0xD3, 0x99)
	colorError  = gfx.RGB(0xF8, 0x71, 0x71)
)

const (
	headerH = 18
	fieldH  = 30
	footerH = 14
	margin  = 6
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
	c := t.sess.Converter
	s.Clear(colorBG)

	s.FillRect(0, 0, w, headerH, colorHeader)
	s.Text(gfx.FontSmall, margin, 2, "Currency Converter", colorFG)

	inner := w - 2*margin
	y := headerH + margin

	s.Text(gfx.FontSmall, margin, y, "Amount", colorDim)
	y += gfx.FontSmall.Height
	s.FillRect(margin, y, inner, fieldH, colorPanel)
	amount := c.Amount()
	if amount == "" {
		amount = "_"
	}
	s.TextRight(gfx.FontBold, w-2*margin, y+(fieldH-gfx.FontBold.Height)/2, gfx.TruncateLeft(gfx.FontBold, amount, inner-2*margin), colorFG)
	y += fieldH + margin

	y = t.renderCurrency(y, w, From, "From")
	s.TextCentered(gfx.FontSmall, 0, w, y, "x / ctrl+s: swap", colorDim)
	y += gfx.FontSmall.Height + 2
	y = t.renderCurrency(y, w, To, "To")

	// Result.
	y += margin
	res, col := c.Result(), colorAccent
	switch res {
	case "":
		res = "-"
	case ErrorText:
		col = colorError
	default:
		res += " " + c.To()
	}
	s.TextCentered(gfx.FontLarge, 0, w, y, gfx.TruncateLeft(gfx.FontLarge, res, inner), col)
	y += gfx.FontLarge.Height

	if rate := c.Rate(); rate > 0 {
		line := "1 " + c.From() + " = " + strconv.FormatFloat(rate, 'f', 4, 64) + " " + c.To()
		s.TextCentered(gfx.FontSmall, 0, w, y, line, colorDim)
	}

	s.Text(gfx.FontSmall, margin, h-footerH+1, "up/down: currency  tab: field  q: home", colorDim)
	_ = s.Display()
}

func (t *Task) renderCurrency(y, w int, side Side, label string) int {
	s := t.s
	cur := t.sess.Currency(side)
	s.Text(gfx.FontSmall, margin, y, label, colorDim)
	y += gfx.FontSmall.Height
	s.FillRect(margin, y, w-2*margin, fieldH, colorPanel)
	if t.sess.Focus == side {
		s.RectOutline(margin, y, w-2*margin, fieldH, colorAccent)
	}
	text := cur.Code
	if cur.Name != "" {
		text += "  " + cur.Name
	}
	ty := y + (fieldH-gfx.FontNormal.Height)/2
	s.Text(gfx.FontNormal, 2*margin, ty, gfx.TruncateToWidth(gfx.FontNormal, text, w-6*margin), colorFG)
	if t.sess.Focus == side {
		s.TextRight(gfx.FontNormal, w-2*margin, ty, "^v", colorAccent)
	}
	return y + fieldH + 2
}
