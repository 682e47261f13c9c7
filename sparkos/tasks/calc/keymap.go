package calc

import "sparkwidgets/sparkos/internal/keys"

type commandKind uint8

const (
	cmdNone commandKind = iota
	cmdEvent
	cmdFocus
	cmdPress
	cmdQuit
)

// command is what one key press asks the widget to do.
type command struct {
	kind   commandKind
	ev     Event
	dx, dy int
}

func eventCommand(ev Event) command { return command{kind: cmdEvent, ev: ev} }

var runeEvents = map[rune]Event{
	'.': Simple(EventDecimal),
	'+': Op(OpAdd),
	'-': Op(OpSub),
	'−': Op(OpSub),
	'*': Op(OpMul),
	'×': Op(OpMul),
	'/': Op(OpDiv),
	'÷': Op(OpDiv),
	'^': Op(OpPow),
	'=': Simple(EventEquals),
	'c': Simple(EventClearAll),
	'C': Simple(EventClearAll),
	'%': Simple(EventPercent),
	'r': Simple(EventSqrt),
	'R': Simple(EventSqrt),
	's': Simple(EventSquare),
	'S': Simple(EventSquare),
	't': Simple(EventReciprocal),
	'T': Simple(EventReciprocal),
	'n': Simple(EventNegate),
	'N': Simple(EventNegate),
	'm': Simple(EventMemoryRecall),
	'M': Simple(EventMemoryAdd),
}

// commandForKey maps a decoded key to a calculator command.
func commandForKey(k keys.Key) command {
	switch k.Kind {
	case keys.Rune:
		switch {
		case k.R >= '0' && k.R <= '9':
			return eventCommand(Digit(byte(k.R - '0')))
		case k.R == ' ':
			return command{kind: cmdPress}
		case k.R == 'q':
			return command{kind: cmdQuit}
		}
		if ev, ok := runeEvents[k.R]; ok {
			return eventCommand(ev)
		}
	case keys.Enter:
		return eventCommand(Simple(EventEquals))
	case keys.Esc:
		return eventCommand(Simple(EventClearAll))
	case keys.Delete:
		return eventCommand(Simple(EventClearEntry))
	case keys.Backspace:
		return eventCommand(Simple(EventBackspace))
	case keys.Ctrl:
		switch k.C {
		case keys.CtrlM, keys.CtrlL:
			return eventCommand(Simple(EventMemoryClear))
		case keys.CtrlR:
			return eventCommand(Simple(EventMemoryRecall))
		}
	case keys.Up:
		return command{kind: cmdFocus, dy: -1}
	case keys.Down:
		return command{kind: cmdFocus, dy: 1}
	case keys.Left:
		return command{kind: cmdFocus, dx: -1}
	case keys.Right:
		return command{kind: cmdFocus, dx: 1}
	}
	return command{}
}

// Script feeds a key script (the bytes termkbd would send) to s and returns the
// computations it completed. Keys that only drive the keypad UI are ignored.
func Script(s *State, script string) []Computation {
	return NewTypist(s).Type(script)
}

// Typist feeds key bytes to a State across calls, so an escape sequence split between
// two reads still decodes as one key.
type Typist struct {
	s *State
	d keys.Decoder
}

func NewTypist(s *State) *Typist { return &Typist{s: s} }

// Type is Script with the decoder state kept from the previous call.
func (t *Typist) Type(script string) []Computation {
	var done []Computation
	t.d.Feed([]byte(script), func(k keys.Key) bool {
		cmd := commandForKey(k)
		if cmd.kind != cmdEvent {
			return true
		}
		if c, ok := t.s.Apply(cmd.ev); ok {
			done = append(done, c)
		}
		return true
	})
	return done
}
