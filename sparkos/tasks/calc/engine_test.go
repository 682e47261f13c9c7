package calc

import (
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// press applies events in order and returns the state.
func press(s *State, evs ...Event) *State {
	for _, ev := range evs {
		s.Apply(ev)
	}
	return s
}

func digits(ds string) []Event {
	var evs []Event
	for _, r := range ds {
		switch {
		case r == '.':
			evs = append(evs, Simple(EventDecimal))
		case r >= '0' && r <= '9':
			evs = append(evs, Digit(byte(r-'0')))
		}
	}
	return evs
}

func wantDisplay(t *testing.T, s *State, want string) {
	t.Helper()
	if got := s.Display(); got != want {
		t.Fatalf("Display() = %q, want %q\n%s", got, want, spew.Sdump(s))
	}
}

func TestDigitEntryCollapsesLeadingZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"05", "5"},
		{"0", "0"},
		{"00", "0"},
		{"123", "123"},
		{"1000", "1000"},
		{"12345678901234567890", "12345678901234567890"},
	}
	for _, tc := range cases {
		s := press(NewState(), digits(tc.in)...)
		wantDisplay(t, s, tc.want)
	}
}

func TestDecimalPointIsIdempotent(t *testing.T) {
	s := press(NewState(), Digit(1), Simple(EventDecimal), Simple(EventDecimal), Digit(5))
	wantDisplay(t, s, "1.5")

	s = press(NewState(), Simple(EventDecimal))
	wantDisplay(t, s, "0.")

	s = press(NewState(), Digit(2), Op(OpAdd), Simple(EventDecimal), Digit(5))
	wantDisplay(t, s, "0.5")
	if s.Awaiting() {
		t.Fatal("decimal point after operator left awaiting set")
	}
}

func TestOperatorChainHasNoPrecedence(t *testing.T) {
	s := press(NewState(), Digit(2), Op(OpAdd), Digit(3), Op(OpMul), Digit(4), Simple(EventEquals))
	wantDisplay(t, s, "20")
	if s.Pending() != nil {
		t.Fatalf("pending after equals = %+v", s.Pending())
	}

	h := s.History()
	if len(h) != 2 || h[0].String() != "5 × 4 = 20" || h[1].String() != "2 + 3 = 5" {
		t.Fatalf("history = %v", h)
	}
}

func TestOperatorPressShowsIntermediateResult(t *testing.T) {
	s := press(NewState(), Digit(8), Op(OpSub), Digit(3))
	if p := s.Pending(); p == nil || p.Left != 8 || p.Op != OpSub {
		t.Fatalf("pending = %+v", p)
	}
	if got := s.PendingText(); got != "8 −" {
		t.Fatalf("PendingText() = %q", got)
	}

	c, ok := s.Apply(Op(OpDiv))
	if !ok || c.Result != 5 {
		t.Fatalf("Apply(÷) = %+v,%v", c, ok)
	}
	wantDisplay(t, s, "5")
	if p := s.Pending(); p == nil || p.Left != 5 || p.Op != OpDiv || !s.Awaiting() {
		t.Fatalf("state after chain:\n%s", spew.Sdump(s))
	}

	// The next digit starts a fresh operand.
	press(s, Digit(2))
	wantDisplay(t, s, "2")
}

func TestEqualsWithoutPendingIsNoop(t *testing.T) {
	s := NewState()
	if _, ok := s.Apply(Simple(EventEquals)); ok {
		t.Fatal("equals on fresh state reported a computation")
	}
	wantDisplay(t, s, "0")
	if s.Awaiting() || len(s.History()) != 0 {
		t.Fatalf("state changed:\n%s", spew.Sdump(s))
	}

	press(s, Digit(4), Digit(2), Simple(EventEquals))
	wantDisplay(t, s, "42")
}

func TestEqualsThenOperatorContinuesFromResult(t *testing.T) {
	s := press(NewState(), Digit(6), Op(OpMul), Digit(7), Simple(EventEquals), Op(OpSub), Digit(2), Simple(EventEquals))
	wantDisplay(t, s, "40")
}

func TestDivideByZeroIsNaN(t *testing.T) {
	s := NewState()
	var c Computation
	var ok bool
	for _, ev := range []Event{Digit(5), Op(OpDiv), Digit(0), Simple(EventEquals)} {
		c, ok = s.Apply(ev)
	}
	if !ok || !math.IsNaN(c.Result) {
		t.Fatalf("last computation = %+v,%v", c, ok)
	}
	wantDisplay(t, s, "NaN")
	if got := s.History()[0].String(); got != "5 ÷ 0 = NaN" {
		t.Fatalf("history[0] = %q", got)
	}
}

func TestPower(t *testing.T) {
	s := press(NewState(), Digit(2), Op(OpPow), Digit(1), Digit(0), Simple(EventEquals))
	wantDisplay(t, s, "1024")

	s = press(NewState(), Digit(4), Op(OpPow), Simple(EventDecimal), Digit(5), Simple(EventEquals))
	wantDisplay(t, s, "2")

	// Negative base, fractional exponent.
	s = press(NewState(), Digit(8), Simple(EventNegate), Op(OpPow), Simple(EventDecimal), Digit(5), Simple(EventEquals))
	wantDisplay(t, s, "NaN")

	s = press(NewState(), Digit(1), Digit(0), Op(OpPow), Digit(3), Digit(0), Digit(0), Digit(0), Simple(EventEquals))
	wantDisplay(t, s, "Infinity")
}

func TestSquareRootOfNegativeIsError(t *testing.T) {
	s := press(NewState(), Digit(3), Simple(EventMemoryAdd), Digit(2), Op(OpAdd), Digit(2), Simple(EventEquals))
	memBefore := s.Memory()
	histBefore := len(s.History())

	press(s, Digit(4), Simple(EventNegate))
	wantDisplay(t, s, "-4")

	s.Apply(Simple(EventSqrt))
	wantDisplay(t, s, ErrorText)
	if s.Memory() != memBefore || len(s.History()) != histBefore {
		t.Fatalf("sqrt touched memory or history:\n%s", spew.Sdump(s))
	}
}

func TestUnaryFunctions(t *testing.T) {
	cases := []struct {
		name  string
		entry string
		ev    EventKind
		want  string
	}{
		{"sqrt", "9", EventSqrt, "3"},
		{"sqrt zero", "0", EventSqrt, "0"},
		{"sqrt two", "2", EventSqrt, "1.4142135623730951"},
		{"square", "12", EventSquare, "144"},
		{"square fraction", "1.5", EventSquare, "2.25"},
		{"reciprocal", "4", EventReciprocal, "0.25"},
		{"reciprocal zero", "0", EventReciprocal, ErrorText},
		{"reciprocal point", "0.", EventReciprocal, ErrorText},
		{"percent", "50", EventPercent, "0.5"},
		{"percent small", "1", EventPercent, "0.01"},
		{"negate", "7", EventNegate, "-7"},
		{"negate zero", "0", EventNegate, "0"},
	}
	for _, tc := range cases {
		s := press(NewState(), digits(tc.entry)...)
		s.Apply(Simple(tc.ev))
		if got := s.Display(); got != tc.want {
			t.Fatalf("%s: Display() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestUnaryKeepsPendingOperation(t *testing.T) {
	s := press(NewState(), Digit(1), Digit(0), Op(OpAdd), Digit(9), Simple(EventSqrt))
	wantDisplay(t, s, "3")
	if p := s.Pending(); p == nil || p.Left != 10 || p.Op != OpAdd {
		t.Fatalf("pending = %+v", p)
	}
	press(s, Simple(EventEquals))
	wantDisplay(t, s, "13")

	// A unary function right after an operator leaves awaiting alone.
	s = press(NewState(), Digit(4), Op(OpMul), Simple(EventSquare))
	if !s.Awaiting() {
		t.Fatal("square cleared awaiting")
	}
	press(s, Digit(3))
	wantDisplay(t, s, "3")
}

func TestHistoryKeepsFiveMostRecent(t *testing.T) {
	s := NewState()
	for i := 1; i <= 6; i++ {
		press(s, Digit(byte(i)), Op(OpAdd), Digit(1), Simple(EventEquals))
	}
	h := s.History()
	if len(h) != HistorySize {
		t.Fatalf("len(history) = %d, want %d", len(h), HistorySize)
	}
	want := []string{"6 + 1 = 7", "5 + 1 = 6", "4 + 1 = 5", "3 + 1 = 4", "2 + 1 = 3"}
	for i, w := range want {
		if h[i].String() != w {
			t.Fatalf("history[%d] = %q, want %q\n%s", i, h[i].String(), w, spew.Sdump(h))
		}
	}
}

func TestHistoryIsReadOnlyCopy(t *testing.T) {
	s := press(NewState(), Digit(1), Op(OpAdd), Digit(1), Simple(EventEquals))
	h := s.History()
	h[0].Result = 99
	if s.History()[0].Result != 2 {
		t.Fatal("History() exposed internal storage")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	s := press(NewState(), Simple(EventMemoryClear), Digit(7), Simple(EventMemoryAdd))
	wantDisplay(t, s, "7")
	press(s, Simple(EventClearEntry))
	wantDisplay(t, s, "0")
	press(s, Simple(EventMemoryRecall))
	wantDisplay(t, s, "7")
	if s.Awaiting() {
		t.Fatal("memory recall left awaiting set")
	}
}

func TestMemorySubtractAndClear(t *testing.T) {
	s := press(NewState(), Digit(5), Simple(EventMemorySubtract), Simple(EventMemorySubtract))
	if s.Memory() != -10 {
		t.Fatalf("Memory() = %v, want -10", s.Memory())
	}
	press(s, Simple(EventClearAll))
	if s.Memory() != -10 {
		t.Fatal("clear-all reset memory")
	}
	press(s, Simple(EventMemoryRecall))
	wantDisplay(t, s, "-10")
	press(s, Simple(EventMemoryClear), Simple(EventMemoryRecall))
	wantDisplay(t, s, "0")
}

func TestMemoryRecallAfterOperatorAppendsNextDigit(t *testing.T) {
	s := press(NewState(), Digit(2), Simple(EventMemoryAdd), Digit(3), Op(OpMul), Simple(EventMemoryRecall), Digit(1))
	wantDisplay(t, s, "21")
}

func TestClearAll(t *testing.T) {
	s := press(NewState(), Digit(9), Simple(EventMemoryAdd), Op(OpSub), Digit(1), Op(OpAdd))
	press(s, Simple(EventClearAll))
	wantDisplay(t, s, "0")
	if s.Pending() != nil || s.Awaiting() || len(s.History()) != 0 || s.Memory() != 9 {
		t.Fatalf("after clear-all:\n%s", spew.Sdump(s))
	}
}

func TestClearEntryKeepsOperation(t *testing.T) {
	s := press(NewState(), Digit(9), Op(OpSub), Digit(5), Simple(EventClearEntry))
	wantDisplay(t, s, "0")
	press(s, Digit(4), Simple(EventEquals))
	wantDisplay(t, s, "5")
}

func TestBackspace(t *testing.T) {
	s := press(NewState(), Digit(1), Digit(2), Digit(3), Simple(EventBackspace))
	wantDisplay(t, s, "12")

	s = press(NewState(), Digit(7), Op(OpAdd), Simple(EventBackspace))
	wantDisplay(t, s, "0")
	if s.Awaiting() {
		t.Fatal("backspace on a single character left awaiting set")
	}

	s = press(NewState(), Digit(1), Simple(EventDecimal), Simple(EventBackspace))
	wantDisplay(t, s, "1")

	// Results are edited as text.
	s = press(NewState(), Digit(1), Op(OpDiv), Digit(4), Simple(EventEquals), Simple(EventBackspace))
	wantDisplay(t, s, "0.2")
}

func TestBackspaceLeavingOnlyMinusResets(t *testing.T) {
	s := press(NewState(), Digit(5), Simple(EventNegate))
	wantDisplay(t, s, "-5")
	press(s, Simple(EventBackspace))
	wantDisplay(t, s, "0")
}

func TestRecoveryFromDegenerateDisplay(t *testing.T) {
	cases := []struct {
		name  string
		setup []Event
		want  string
	}{
		{"error then digit", []Event{Digit(0), Simple(EventReciprocal), Digit(3)}, "3"},
		{"nan then digit", []Event{Digit(0), Op(OpDiv), Digit(0), Simple(EventEquals), Simple(EventBackspace), Digit(3)}, "3"},
		{"infinity then decimal", []Event{Digit(9), Op(OpPow), Digit(9), Digit(9), Digit(9), Simple(EventEquals), Simple(EventNegate), Simple(EventDecimal)}, "0."},
		{"error then backspace", []Event{Digit(0), Simple(EventReciprocal), Simple(EventBackspace)}, "0"},
	}
	for _, tc := range cases {
		s := press(NewState(), tc.setup...)
		if got := s.Display(); got != tc.want {
			t.Fatalf("%s: Display() = %q, want %q\n%s", tc.name, got, tc.want, spew.Sdump(s))
		}
	}

	// A digit typed onto NaN without the awaiting flag starts fresh too.
	s := press(NewState(), Digit(0), Op(OpDiv), Digit(0), Simple(EventEquals),
		Simple(EventMemoryAdd), Simple(EventClearEntry), Simple(EventMemoryRecall))
	wantDisplay(t, s, "NaN")
	if s.Awaiting() {
		t.Fatal("memory recall left awaiting set")
	}
	press(s, Digit(8))
	wantDisplay(t, s, "8")
}

func TestOperandFromErrorIsNaN(t *testing.T) {
	s := press(NewState(), Digit(4), Simple(EventNegate), Simple(EventSqrt), Op(OpAdd), Digit(1), Simple(EventEquals))
	wantDisplay(t, s, "NaN")
	if got := s.History()[0].String(); got != "NaN + 1 = NaN" {
		t.Fatalf("history[0] = %q", got)
	}
}

func TestApplyNeverPanics(t *testing.T) {
	all := []Event{
		Simple(EventNone), Simple(EventDecimal), Simple(EventEquals), Simple(EventClearAll),
		Simple(EventClearEntry), Simple(EventBackspace), Simple(EventSqrt), Simple(EventSquare),
		Simple(EventReciprocal), Simple(EventPercent), Simple(EventNegate), Simple(EventMemoryAdd),
		Simple(EventMemorySubtract), Simple(EventMemoryRecall), Simple(EventMemoryClear),
		Digit(0), Digit(9), Digit(42), Op(OpAdd), Op(OpSub), Op(OpMul), Op(OpDiv), Op(OpPow), Op(Operator(77)),
		Event{Kind: EventKind(200)},
	}
	s := NewState()
	for i := 0; i < 2000; i++ {
		s.Apply(all[(i*7+i/3)%len(all)])
		if s.Display() == "" {
			t.Fatalf("empty display at step %d\n%s", i, spew.Sdump(s))
		}
		if len(s.History()) > HistorySize {
			t.Fatalf("history overflow at step %d", i)
		}
	}
}

func TestOperatorStrings(t *testing.T) {
	var sb strings.Builder
	for _, op := range []Operator{OpAdd, OpSub, OpMul, OpDiv, OpPow} {
		sb.WriteString(op.String())
		sb.WriteString(op.ASCII())
	}
	if got := sb.String(); got != "++−-×*÷/^^" {
		t.Fatalf("operator symbols = %q", got)
	}
}

func TestFloatSumKeepsFullPrecision(t *testing.T) {
	s := NewState()
	Script(s, ".1+.2=")
	if got := s.Display(); got != "0.30000000000000004" {
		t.Fatalf("Display() = %q, want 0.30000000000000004", got)
	}
}
