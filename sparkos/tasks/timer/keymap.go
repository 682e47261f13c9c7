package timer

import "sparkwidgets/sparkos/internal/keys"

// Result of one key on the clock.
type outcome uint8

const (
	outNone outcome = iota
	outChanged
	outQuit
)

// handleKey applies k to c.
func handleKey(c *Clock, k keys.Key) outcome {
	switch k.Kind {
	case keys.Rune:
		switch r := k.R; {
		case r == ' ':
			c.Toggle()
		case r >= '0' && r <= '9':
			c.TypeDigit(int(r - '0'))
		case r == 's' || r == 'S':
			c.SetTimer()
		case r == 'w' || r == 'W':
			c.SetMode(Stopwatch)
		case r == 't' || r == 'T':
			c.SetMode(Countdown)
		case r == 'q':
			return outQuit
		default:
			return outNone
		}
	case keys.Enter:
		c.Toggle()
	case keys.Esc:
		c.Reset()
	case keys.Ctrl:
		if k.C != keys.CtrlT {
			return outNone
		}
		c.SwitchMode()
	case keys.Left:
		c.SelectField(-1)
	case keys.Right, keys.Tab:
		c.SelectField(1)
	case keys.Up:
		c.Adjust(1)
	case keys.Down:
		c.Adjust(-1)
	default:
		return outNone
	}
	return outChanged
}
