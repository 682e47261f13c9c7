// Package keys decodes the VT100 byte stream produced by termkbd into key presses.
package keys

import "unicode/utf8"

type Kind uint8

const (
	Rune Kind = iota
	Enter
	Backspace
	Tab
	Esc
	Up
	Down
	Left
	Right
	Delete
	Home
	End
	Ctrl
)

// Key is one decoded key press. R is set for Rune, C for Ctrl.
type Key struct {
	Kind Kind
	R    rune
	C    byte
}

// Control characters that carry widget shortcuts.
const (
	CtrlG = 0x07
	CtrlL = 0x0c
	CtrlM = 0x0d
	CtrlR = 0x12
	CtrlS = 0x13
	CtrlT = 0x14
)

// Next decodes the first key in b.
//
// ok is false when b holds only the start of a multi-byte sequence; the caller keeps
// the bytes and retries once more input arrives. '\r' is Ctrl+M, not Enter: termkbd
// sends Enter as '\n'.
func Next(b []byte) (consumed int, k Key, ok bool) {
	if len(b) == 0 {
		return 0, Key{}, false
	}

	if b[0] == 0x1b {
		return parseEscape(b)
	}

	switch b[0] {
	case '\n':
		return 1, Key{Kind: Enter}, true
	case 0x7f, 0x08:
		return 1, Key{Kind: Backspace}, true
	case '\t':
		return 1, Key{Kind: Tab}, true
	}

	if b[0] < 0x20 {
		return 1, Key{Kind: Ctrl, C: b[0]}, true
	}
	if !utf8.FullRune(b) {
		return 0, Key{}, false
	}
	r, sz := utf8.DecodeRune(b)
	if r == utf8.RuneError && sz == 1 {
		return 1, Key{Kind: Ctrl}, true
	}
	return sz, Key{Kind: Rune, R: r}, true
}

func parseEscape(b []byte) (consumed int, k Key, ok bool) {
	if len(b) < 2 || b[1] != '[' {
		return 1, Key{Kind: Esc}, true
	}
	if len(b) < 3 {
		return 0, Key{}, false
	}

	switch b[2] {
	case 'A':
		return 3, Key{Kind: Up}, true
	case 'B':
		return 3, Key{Kind: Down}, true
	case 'C':
		return 3, Key{Kind: Right}, true
	case 'D':
		return 3, Key{Kind: Left}, true
	case 'H':
		return 3, Key{Kind: Home}, true
	case 'F':
		return 3, Key{Kind: End}, true
	}
	if b[2] < '0' || b[2] > '9' {
		return 1, Key{Kind: Esc}, true
	}

	n := 0
	i := 2
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		n = n*10 + int(b[i]-'0')
		i++
	}
	if i >= len(b) {
		return 0, Key{}, false
	}
	if b[i] != '~' {
		return 1, Key{Kind: Esc}, true
	}
	switch n {
	case 3:
		return i + 1, Key{Kind: Delete}, true
	default:
		// Unsupported CSI n ~ sequences are swallowed whole.
		return i + 1, Key{Kind: Ctrl}, true
	}
}

// Decoder buffers partial sequences between input messages.
type Decoder struct {
	buf []byte
}

// Feed appends b and calls fn for every complete key. fn returning false stops decoding
// and discards the remaining input.
func (d *Decoder) Feed(b []byte, fn func(Key) bool) {
	d.buf = append(d.buf, b...)
	buf := d.buf
	for len(buf) > 0 {
		n, k, ok := Next(buf)
		if !ok {
			break
		}
		buf = buf[n:]
		if !fn(k) {
			d.buf = d.buf[:0]
			return
		}
	}
	d.buf = append(d.buf[:0], buf...)
}

// Reset drops any buffered partial sequence.
func (d *Decoder) Reset() { d.buf = d.buf[:0] }
