package app

import (
	"fmt"
	"strings"

	"sparkwidgets/hal"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/kernel"
)

var (
	panicBG = gfx.RGB(0xFF, 0xFF, 0xFF)
	panicFG = gfx.RGB(0x00, 0x00, 0x00)
)

func installPanicHandler(k *kernel.Kernel, h hal.HAL) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		s := gfx.NewSurface(disp.Framebuffer())
		drawPanic(s, lines)
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"Spark Widgets panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// drawPanic wraps lines to the screen width and stops at the bottom edge.
func drawPanic(s *gfx.Surface, lines []string) {
	w, h := s.Width(), s.Height()
	if w <= 0 || h <= 0 {
		return
	}
	s.Clear(panicBG)
	f := gfx.FontSmall
	y := 0
	for _, line := range lines {
		for _, part := range wrapToWidth(f, strings.TrimLeft(line, "\t"), w) {
			if y+f.Height > h {
				_ = s.Display()
				return
			}
			s.Text(f, 0, y, part, panicFG)
			y += f.Height
		}
	}
	_ = s.Display()
}

func wrapToWidth(f gfx.Font, s string, maxW int) []string {
	var out []string
	r := []rune(s)
	for len(r) > 0 {
		n := len(r)
		for n > 1 && gfx.TextWidth(f, string(r[:n])) > maxW {
			n--
		}
		out = append(out, string(r[:n]))
		r = r[n:]
		for len(r) > 0 && r[0] == ' ' {
			r = r[1:]
		}
	}
	return out
}
