package calc

// EventKind enumerates the calculator inputs.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventDigit
	EventDecimal
	EventOperator
	EventEquals
	EventClearAll
	EventClearEntry
	EventBackspace
	EventSqrt
	EventSquare
	EventReciprocal
	EventPercent
	EventNegate
	EventMemoryAdd
	EventMemorySubtract
	EventMemoryRecall
	EventMemoryClear
)

var eventNames = [...]string{
	EventNone:           "none",
	EventDigit:          "digit",
	EventDecimal:        "decimal",
	EventOperator:       "operator",
	EventEquals:         "equals",
	EventClearAll:       "clear-all",
	EventClearEntry:     "clear-entry",
	EventBackspace:      "backspace",
	EventSqrt:           "square-root",
	EventSquare:         "square",
	EventReciprocal:     "reciprocal",
	EventPercent:        "percentage",
	EventNegate:         "sign-toggle",
	EventMemoryAdd:      "memory-add",
	EventMemorySubtract: "memory-subtract",
	EventMemoryRecall:   "memory-recall",
	EventMemoryClear:    "memory-clear",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one input. Digit is set for EventDigit, Op for EventOperator.
type Event struct {
	Kind  EventKind
	Digit byte
	Op    Operator
}

func Digit(d byte) Event       { return Event{Kind: EventDigit, Digit: d} }
func Op(op Operator) Event     { return Event{Kind: EventOperator, Op: op} }
func Simple(k EventKind) Event { return Event{Kind: k} }

func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return string(rune('0' + e.Digit))
	case EventOperator:
		return e.Op.String()
	default:
		return e.Kind.String()
	}
}
