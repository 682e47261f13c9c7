//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct {
	kbd Keyboard
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(deviceTick)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

const deviceTick = time.Millisecond

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// uartLogger writes CRLF-terminated lines to the debug UART.
type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.crlf()
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.crlf()
}

func (l *uartLogger) crlf() {
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
