package gfx

import (
	"image/color"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is a tinyfont face plus the metrics needed to place text by its top edge.
type Font struct {
	Face   tinyfont.Fonter
	Height int // line advance
	Ascent int // baseline offset from the top of the line
}

// NewFont measures f. The ascent is taken from the glyph for 'M'.
func NewFont(f tinyfont.Fonter) Font {
	h := int(f.GetYAdvance())
	ascent := -int(f.GetGlyph('M').Info().YOffset)
	if ascent <= 0 || ascent > h {
		ascent = h * 3 / 4
	}
	return Font{Face: f, Height: h, Ascent: ascent}
}

// Bundled faces. All of them cover printable ASCII only.
var (
	FontSmall  = NewFont(&proggy.TinySZ8pt7b)
	FontNormal = NewFont(&freemono.Regular9pt7b)
	FontBold   = NewFont(&freemono.Bold9pt7b)
	FontLarge  = NewFont(&freemono.Bold18pt7b)
)

// Text draws s with its line top at y.
func (s *Surface) Text(f Font, x, y int, str string, c color.RGBA) {
	if !s.ok() || str == "" {
		return
	}
	tinyfont.WriteLine(s, f.Face, int16(x), int16(y+f.Ascent), str, c)
}

// TextRight draws s so that it ends at x.
func (s *Surface) TextRight(f Font, right, y int, str string, c color.RGBA) {
	s.Text(f, right-TextWidth(f, str), y, str, c)
}

// TextCentered draws s centered in [x, x+w).
func (s *Surface) TextCentered(f Font, x, w, y int, str string, c color.RGBA) {
	s.Text(f, x+(w-TextWidth(f, str))/2, y, str, c)
}

func TextWidth(f Font, s string) int {
	if s == "" {
		return 0
	}
	_, outbox := tinyfont.LineWidth(f.Face, s)
	return int(outbox)
}

func advance(f Font, r rune) int { return int(f.Face.GetGlyph(r).Info().XAdvance) }

// TruncateToWidth cuts s so that it fits maxW, marking the cut with "..".
func TruncateToWidth(f Font, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if TextWidth(f, s) <= maxW {
		return s
	}
	budget := maxW - TextWidth(f, "..")
	if budget < 0 {
		return ""
	}
	w := 0
	for i, r := range s {
		if w += advance(f, r); w > budget {
			return s[:i] + ".."
		}
	}
	return s + ".."
}

// TruncateLeft keeps the tail of s that fits maxW, marking the cut with "..".
// Numbers keep their least significant digits visible this way.
func TruncateLeft(f Font, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if TextWidth(f, s) <= maxW {
		return s
	}
	budget := maxW - TextWidth(f, "..")
	if budget < 0 {
		return ""
	}
	w := 0
	for i := len(s); i > 0; {
		r, sz := utf8.DecodeLastRuneInString(s[:i])
		if w += advance(f, r); w > budget {
			return ".." + s[i:]
		}
		i -= sz
	}
	return ".." + s
}
