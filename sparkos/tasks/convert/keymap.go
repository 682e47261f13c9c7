package convert

import "sparkwidgets/sparkos/internal/keys"

type actionKind uint8

const (
	actNone actionKind = iota
	actType
	actBackspace
	actClear
	actCycle
	actFocus
	actSwap
	actConvert
	actQuit
)

type action struct {
	kind  actionKind
	r     rune
	delta int
}

func actionForKey(k keys.Key) action {
	switch k.Kind {
	case keys.Rune:
		switch {
		case k.R >= '0' && k.R <= '9', k.R == '.':
			return action{kind: actType, r: k.R}
		case k.R == 'x' || k.R == 'X':
			return action{kind: actSwap}
		case k.R == '=':
			return action{kind: actConvert}
		case k.R == 'q':
			return action{kind: actQuit}
		}
	case keys.Ctrl:
		if k.C == keys.CtrlS {
			return action{kind: actSwap}
		}
	case keys.Backspace:
		return action{kind: actBackspace}
	case keys.Delete, keys.Esc:
		return action{kind: actClear}
	case keys.Enter:
		return action{kind: actConvert}
	case keys.Up:
		return action{kind: actCycle, delta: -1}
	case keys.Down:
		return action{kind: actCycle, delta: 1}
	case keys.Tab, keys.Left, keys.Right:
		return action{kind: actFocus}
	}
	return action{}
}

// Session is a converter plus the side that the arrow keys change.
type Session struct {
	*Converter
	Focus Side
}

func NewSession(c *Converter) *Session { return &Session{Converter: c} }

// do applies one action. It reports whether the widget should exit and whether a
// conversion was explicitly requested.
func (s *Session) do(a action) (quit, converted bool) {
	switch a.kind {
	case actType:
		s.Type(a.r)
	case actBackspace:
		s.Backspace()
	case actClear:
		s.SetAmount("")
	case actCycle:
		s.Cycle(s.Focus, a.delta)
	case actFocus:
		if s.Focus == From {
			s.Focus = To
		} else {
			s.Focus = From
		}
	case actSwap:
		s.Swap()
	case actConvert:
		s.Recompute()
		return false, true
	case actQuit:
		return true, false
	}
	return false, false
}

// Script feeds terminal key bytes to s, ignoring the quit key.
func (s *Session) Script(script string) {
	var d keys.Decoder
	d.Feed([]byte(script), func(k keys.Key) bool {
		if a := actionForKey(k); a.kind != actQuit {
			s.do(a)
		}
		return true
	})
}
