package calc

// HistorySize is the number of completed computations kept.
const HistorySize = 5

// Computation is one completed binary operation.
type Computation struct {
	Left   float64
	Op     Operator
	Right  float64
	Result float64
}

// String renders the history line "{lhs} {op} {rhs} = {result}".
func (c Computation) String() string {
	return FormatNumber(c.Left) + " " + c.Op.String() + " " + FormatNumber(c.Right) + " = " + FormatNumber(c.Result)
}

// History is a bounded log of computations, most recent first.
type History struct {
	entries []Computation
}

// Add prepends c, dropping the oldest entry beyond HistorySize.
func (h *History) Add(c Computation) {
	if len(h.entries) < HistorySize {
		h.entries = append(h.entries, Computation{})
	}
	copy(h.entries[1:], h.entries)
	h.entries[0] = c
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Clear() { h.entries = h.entries[:0] }

// Entries returns a copy, most recent first.
func (h *History) Entries() []Computation {
	return append([]Computation(nil), h.entries...)
}
