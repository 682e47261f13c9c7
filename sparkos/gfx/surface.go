// Package gfx draws widgets onto an RGB565 hal.Framebuffer.
package gfx

import (
	"image/color"

	"sparkwidgets/hal"

	"tinygo.org/x/drivers"
)

// Surface adapts a framebuffer to drivers.Displayer so tinyfont can render into it.
type Surface struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Surface)(nil)

func NewSurface(fb hal.Framebuffer) *Surface {
	return &Surface{fb: fb}
}

func (s *Surface) ok() bool {
	return s != nil && s.fb != nil && s.fb.Format() == hal.PixelFormatRGB565 && s.fb.Buffer() != nil
}

func (s *Surface) Width() int {
	if s == nil || s.fb == nil {
		return 0
	}
	return s.fb.Width()
}

func (s *Surface) Height() int {
	if s == nil || s.fb == nil {
		return 0
	}
	return s.fb.Height()
}

func (s *Surface) Size() (x, y int16) {
	return int16(s.Width()), int16(s.Height())
}

func (s *Surface) SetPixel(x, y int16, c color.RGBA) {
	if !s.ok() {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= s.fb.Width() || iy < 0 || iy >= s.fb.Height() {
		return
	}
	buf := s.fb.Buffer()
	off := iy*s.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	pixel := RGB565(c)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display presents the frame.
func (s *Surface) Display() error {
	if s == nil || s.fb == nil {
		return nil
	}
	return s.fb.Present()
}

func (s *Surface) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	s.FillRect(int(x), int(y), int(width), int(height), c)
	return nil
}

func (s *Surface) SetScroll(line int16) {}

func (s *Surface) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return hal.ErrNotImplemented
	}
	return nil
}

// Clear fills the whole frame with c.
func (s *Surface) Clear(c color.RGBA) {
	if !s.ok() {
		return
	}
	pixel := RGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	buf := s.fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}

// FillRect fills the rectangle clipped to the frame.
func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	if !s.ok() {
		return
	}
	x0 := clampInt(x, 0, s.fb.Width())
	y0 := clampInt(y, 0, s.fb.Height())
	x1 := clampInt(x+w, 0, s.fb.Width())
	y1 := clampInt(y+h, 0, s.fb.Height())
	if x0 >= x1 || y0 >= y1 {
		return
	}

	pixel := RGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	buf := s.fb.Buffer()
	stride := s.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// RectOutline draws a one pixel border inside the rectangle.
func (s *Surface) RectOutline(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	s.FillRect(x, y, w, 1, c)
	s.FillRect(x, y+h-1, w, 1, c)
	s.FillRect(x, y, 1, h, c)
	s.FillRect(x+w-1, y, 1, h, c)
}

func (s *Surface) HLine(x, y, w int, c color.RGBA) { s.FillRect(x, y, w, 1, c) }

// RGB565 packs c into the framebuffer pixel format.
func RGB565(c color.RGBA) uint16 {
	r5 := uint16(c.R>>3) & 0x1F
	g6 := uint16(c.G>>2) & 0x3F
	b5 := uint16(c.B>>3) & 0x1F
	return (r5 << 11) | (g6 << 5) | b5
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
