//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostScreenWidth  = 320
	hostScreenHeight = 320
)

type hostHAL struct {
	logger *hostLogger
	fb     *MemFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
}

// New returns a host HAL implementation.
func New() HAL {
	return newHostHAL(os.Stdout)
}

func newHostHAL(logOut io.Writer) *hostHAL {
	return &hostHAL{
		logger: &hostLogger{w: logOut},
		fb:     NewMemFramebuffer(hostScreenWidth, hostScreenHeight),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time       { return h.t }

// Inject queues scripted key presses as if they were typed.
//
// Every rune of script becomes one press event; '\n' is delivered as KeyEnter.
// It returns the number of events queued before the keyboard buffer filled up.
func Inject(h HAL, script string) int {
	hh, ok := h.(*hostHAL)
	if !ok {
		return 0
	}
	n := 0
	for _, r := range script {
		ev := KeyEvent{Press: true, Rune: r}
		if r == '\n' {
			ev = KeyEvent{Press: true, Code: KeyEnter}
		}
		if !hh.kbd.inject(ev) {
			break
		}
		n++
	}
	return n
}

type hostDisplay struct {
	fb *MemFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

func (k *hostKeyboard) inject(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}
