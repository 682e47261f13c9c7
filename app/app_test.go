package app

import (
	"strings"
	"testing"
	"time"

	"sparkwidgets/hal"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

func TestPanicLines(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{TaskID: 3, Value: "boom", Stack: []byte("a\n\n\tb\n")})
	want := []string{"Spark Widgets panic:", "task: 3", "panic: boom", "stack:", "a", "\tb"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("panicLines = %q, want %q", lines, want)
	}

	lines = panicLines(kernel.PanicInfo{TaskID: 1, Value: 7})
	if lines[len(lines)-1] != "stack: unavailable" {
		t.Fatalf("last line = %q", lines[len(lines)-1])
	}
}

func TestWrapToWidth(t *testing.T) {
	s := strings.Repeat("abcdefghij ", 20)
	parts := wrapToWidth(gfx.FontSmall, s, 100)
	if len(parts) < 2 {
		t.Fatalf("wrapToWidth returned %d parts", len(parts))
	}
	for _, p := range parts {
		if w := gfx.TextWidth(gfx.FontSmall, p); w > 100 && len([]rune(p)) > 1 {
			t.Fatalf("part %q is %d wide", p, w)
		}
		if strings.HasPrefix(p, " ") {
			t.Fatalf("part %q starts with a space", p)
		}
	}
	if got := wrapToWidth(gfx.FontSmall, "", 100); len(got) != 0 {
		t.Fatalf("wrapToWidth(\"\") = %q", got)
	}
}

func TestDrawPanicStopsAtBottom(t *testing.T) {
	fb := hal.NewMemFramebuffer(64, 24)
	blank := fb.Checksum()
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	drawPanic(gfx.NewSurface(fb), lines)
	if fb.Checksum() == blank {
		t.Fatal("drawPanic drew nothing")
	}
}

type testLogger struct{ lines chan string }

func (l testLogger) WriteLineString(s string) { l.lines <- s }
func (l testLogger) WriteLineBytes(b []byte)  { l.lines <- string(b) }

type testHAL struct {
	log   testLogger
	fb    *hal.MemFramebuffer
	keys  chan hal.KeyEvent
	ticks chan uint64
}

func (h *testHAL) Logger() hal.Logger           { return h.log }
func (h *testHAL) Display() hal.Display         { return h }
func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Input() hal.Input             { return h }
func (h *testHAL) Keyboard() hal.Keyboard       { return h }
func (h *testHAL) Events() <-chan hal.KeyEvent  { return h.keys }
func (h *testHAL) Time() hal.Time               { return h }
func (h *testHAL) Ticks() <-chan uint64         { return h.ticks }

func newTestHAL() *testHAL {
	return &testHAL{
		log:   testLogger{lines: make(chan string, 64)},
		fb:    hal.NewMemFramebuffer(320, 320),
		keys:  make(chan hal.KeyEvent, 64),
		ticks: make(chan uint64, 1),
	}
}

func (h *testHAL) typeText(s string) {
	for _, r := range s {
		ev := hal.KeyEvent{Press: true, Rune: r}
		if r == '\n' {
			ev = hal.KeyEvent{Press: true, Code: hal.KeyEnter}
		}
		h.keys <- ev
	}
}

// waitLine waits until every line in want has been logged, in any order.
func (h *testHAL) waitLine(t *testing.T, want ...string) {
	t.Helper()
	pending := map[string]bool{}
	for _, w := range want {
		pending[w] = true
	}
	deadline := time.After(2 * time.Second)
	var seen []string
	for len(pending) > 0 {
		select {
		case line := <-h.log.lines:
			delete(pending, line)
			seen = append(seen, line)
		case <-deadline:
			t.Fatalf("missing log lines %v; saw %q", pending, seen)
		}
	}
}

func TestSystemEndToEnd(t *testing.T) {
	h := newTestHAL()
	step := NewWithConfig(h, Config{})

	done := make(chan struct{})
	defer close(done)
	go func() {
		var seq uint64
		for {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
			}
			seq++
			select {
			case h.ticks <- seq:
			default:
			}
		}
	}()

	h.typeText("1")
	h.waitLine(t, "mux: focus calc")
	h.typeText("2+3\n")
	h.waitLine(t, "calc: 2 + 3 = 5")

	// Ctrl+G goes home; "2" opens the converter.
	h.keys <- hal.KeyEvent{Press: true, Rune: 0x07}
	h.waitLine(t, "mux: focus home")
	h.typeText("2")
	h.waitLine(t, "mux: focus convert")
	h.typeText("\n")
	h.waitLine(t, "convert: 1 USD = 0.85 EUR")

	if err := step(); err != nil {
		t.Fatalf("step() = %v", err)
	}
}

func TestSystemOpensInitialApp(t *testing.T) {
	h := newTestHAL()
	NewWithConfig(h, Config{InitialApp: proto.AppCalc, Arg: "6*7\n"})
	h.waitLine(t, "calc: 6 × 7 = 42", "mux: focus calc")
}
