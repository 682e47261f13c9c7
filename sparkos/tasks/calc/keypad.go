package calc

// button is one keypad control. span is its width in grid cells.
type button struct {
	label string
	ev    Event
	span  int
}

const keypadCols = 5

var keypadRows = [][]button{
	{{"MC", Simple(EventMemoryClear), 1}, {"MR", Simple(EventMemoryRecall), 1}, {"M+", Simple(EventMemoryAdd), 1}, {"M-", Simple(EventMemorySubtract), 1}, {"AC", Simple(EventClearAll), 1}},
	{{"sqrt", Simple(EventSqrt), 1}, {"x^2", Simple(EventSquare), 1}, {"1/x", Simple(EventReciprocal), 1}, {"%", Simple(EventPercent), 1}, {"+/-", Simple(EventNegate), 1}},
	{{"7", Digit(7), 1}, {"8", Digit(8), 1}, {"9", Digit(9), 1}, {"/", Op(OpDiv), 1}, {"CE", Simple(EventClearEntry), 1}},
	{{"4", Digit(4), 1}, {"5", Digit(5), 1}, {"6", Digit(6), 1}, {"*", Op(OpMul), 1}, {"x^y", Op(OpPow), 1}},
	{{"1", Digit(1), 1}, {"2", Digit(2), 1}, {"3", Digit(3), 1}, {"-", Op(OpSub), 1}, {"DEL", Simple(EventBackspace), 1}},
	{{"0", Digit(0), 2}, {".", Simple(EventDecimal), 1}, {"+", Op(OpAdd), 1}, {"=", Simple(EventEquals), 1}},
}

// keypad tracks the focused button.
type keypad struct {
	row, idx int
}

func (k *keypad) focused() button { return keypadRows[k.row][k.idx] }

// cell returns the first grid column covered by button i of row.
func cellOf(row, i int) int {
	c := 0
	for j := 0; j < i; j++ {
		c += keypadRows[row][j].span
	}
	return c
}

// buttonAt returns the index of the button in row covering grid column col.
func buttonAt(row, col int) int {
	c := 0
	for i, b := range keypadRows[row] {
		if col < c+b.span {
			return i
		}
		c += b.span
	}
	return len(keypadRows[row]) - 1
}

// move shifts focus, stopping at the grid edges. Vertical moves keep the column.
func (k *keypad) move(dx, dy int) {
	if dy != 0 {
		col := cellOf(k.row, k.idx)
		k.row = clamp(k.row+dy, 0, len(keypadRows)-1)
		k.idx = buttonAt(k.row, col)
	}
	if dx != 0 {
		k.idx = clamp(k.idx+dx, 0, len(keypadRows[k.row])-1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
