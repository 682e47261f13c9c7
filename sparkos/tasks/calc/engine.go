package calc

import (
	"math"
	"strings"
)

// ErrorText is the display marker for domain errors (square root of a negative
// number, reciprocal of zero).
const ErrorText = "Error"

// Operator is a binary operation.
type Operator uint8

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// ASCII is the symbol used where only ASCII glyphs are available.
func (op Operator) ASCII() string {
	switch op {
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return op.String()
	}
}

// Apply evaluates a op b. Division by zero yields NaN; powers follow math.Pow.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return math.NaN()
		}
		return a / b
	case OpPow:
		return math.Pow(a, b)
	default:
		return b
	}
}

// Pending is an operation waiting for its right-hand operand.
type Pending struct {
	Left float64
	Op   Operator
}

type bufferKind uint8

const (
	bufferEntry bufferKind = iota
	bufferValue
	bufferError
)

// InputBuffer holds what the display shows: raw entry text while typing, a computed
// value after an operation, or the error marker. Values are formatted on demand.
type InputBuffer struct {
	kind  bufferKind
	text  string
	value float64
}

func entryBuffer(text string) InputBuffer { return InputBuffer{kind: bufferEntry, text: text} }
func valueBuffer(v float64) InputBuffer   { return InputBuffer{kind: bufferValue, value: v} }
func errorBuffer() InputBuffer            { return InputBuffer{kind: bufferError} }

// Text is the display string.
func (b InputBuffer) Text() string {
	switch b.kind {
	case bufferValue:
		return FormatNumber(b.value)
	case bufferError:
		return ErrorText
	default:
		if b.text == "" {
			return "0"
		}
		return b.text
	}
}

// Value is the operand the display reads as. The error marker reads as NaN.
func (b InputBuffer) Value() float64 {
	switch b.kind {
	case bufferValue:
		return b.value
	case bufferError:
		return math.NaN()
	default:
		return parseOperand(b.Text())
	}
}

// Degenerate reports an error marker or a non-finite value on the display.
func (b InputBuffer) Degenerate() bool {
	if b.kind == bufferError {
		return true
	}
	v := b.Value()
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// State is the calculator session. The zero value is not ready; use NewState.
type State struct {
	display  InputBuffer
	pending  *Pending
	awaiting bool
	memory   float64
	history  History
}

func NewState() *State {
	return &State{display: entryBuffer("0")}
}

func (s *State) Display() string        { return s.display.Text() }
func (s *State) Awaiting() bool         { return s.awaiting }
func (s *State) Memory() float64        { return s.memory }
func (s *State) History() []Computation { return s.history.Entries() }

// Pending returns a copy of the operation in progress, or nil when idle.
func (s *State) Pending() *Pending {
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

// PendingText is the secondary display line, "{left} {op}", or "" when idle.
func (s *State) PendingText() string {
	if s.pending == nil {
		return ""
	}
	return FormatNumber(s.pending.Left) + " " + s.pending.Op.String()
}

// Apply performs one input event. When the event completes a binary computation it is
// returned with ok set; it has also been added to the history.
func (s *State) Apply(ev Event) (c Computation, ok bool) {
	switch ev.Kind {
	case EventDigit:
		s.inputDigit(ev.Digit)
	case EventDecimal:
		s.inputDecimal()
	case EventOperator:
		return s.operator(ev.Op)
	case EventEquals:
		return s.equals()
	case EventClearAll:
		s.clearAll()
	case EventClearEntry:
		s.display = entryBuffer("0")
	case EventBackspace:
		s.backspace()
	case EventSqrt:
		s.unary(func(x float64) (float64, bool) { return math.Sqrt(x), x >= 0 })
	case EventSquare:
		s.unary(func(x float64) (float64, bool) { return x * x, true })
	case EventReciprocal:
		s.unary(func(x float64) (float64, bool) { return 1 / x, x != 0 })
	case EventPercent:
		s.unary(func(x float64) (float64, bool) { return x / 100, true })
	case EventNegate:
		s.unary(func(x float64) (float64, bool) { return x * -1, true })
	case EventMemoryAdd:
		s.memory += s.display.Value()
	case EventMemorySubtract:
		s.memory -= s.display.Value()
	case EventMemoryRecall:
		s.display = valueBuffer(s.memory)
		s.awaiting = false
	case EventMemoryClear:
		s.memory = 0
	}
	return Computation{}, false
}

func (s *State) inputDigit(d byte) {
	if d > 9 {
		return
	}
	digit := string(rune('0' + d))
	if s.awaiting || s.display.Degenerate() {
		s.display = entryBuffer(digit)
		s.awaiting = false
		return
	}
	cur := s.display.Text()
	if cur == "0" {
		s.display = entryBuffer(digit)
		return
	}
	s.display = entryBuffer(cur + digit)
}

func (s *State) inputDecimal() {
	if s.awaiting || s.display.Degenerate() {
		s.display = entryBuffer("0.")
		s.awaiting = false
		return
	}
	cur := s.display.Text()
	if strings.Contains(cur, ".") {
		return
	}
	s.display = entryBuffer(cur + ".")
}

func (s *State) operator(op Operator) (Computation, bool) {
	rhs := s.display.Value()
	s.awaiting = true
	if s.pending == nil {
		s.pending = &Pending{Left: rhs, Op: op}
		return Computation{}, false
	}
	c := s.compute(rhs)
	s.pending = &Pending{Left: c.Result, Op: op}
	return c, true
}

func (s *State) equals() (Computation, bool) {
	if s.pending == nil {
		return Computation{}, false
	}
	c := s.compute(s.display.Value())
	s.pending = nil
	s.awaiting = true
	return c, true
}

// compute finishes the pending operation with rhs and shows the result.
func (s *State) compute(rhs float64) Computation {
	c := Computation{
		Left:   s.pending.Left,
		Op:     s.pending.Op,
		Right:  rhs,
		Result: s.pending.Op.Apply(s.pending.Left, rhs),
	}
	s.history.Add(c)
	s.display = valueBuffer(c.Result)
	return c
}

func (s *State) clearAll() {
	s.display = entryBuffer("0")
	s.pending = nil
	s.awaiting = false
	s.history.Clear()
}

func (s *State) backspace() {
	cur := s.display.Text()
	if s.display.Degenerate() || len(cur) <= 1 {
		s.display = entryBuffer("0")
		s.awaiting = false
		return
	}
	next := cur[:len(cur)-1]
	if next == "-" {
		s.display = entryBuffer("0")
		s.awaiting = false
		return
	}
	s.display = entryBuffer(next)
}

// unary replaces the display with f(display). A false ok shows the error marker.
func (s *State) unary(f func(x float64) (float64, bool)) {
	v, ok := f(s.display.Value())
	if !ok {
		s.display = errorBuffer()
		return
	}
	s.display = valueBuffer(v)
}
