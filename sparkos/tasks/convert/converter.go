package convert

import (
	"math"
	"math/big"
	"regexp"
	"strconv"

	"sparkwidgets/sparkos/tasks/convert/rates"
)

// ErrorText is shown when either currency has no usable rate.
const ErrorText = "Error"

var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// Side selects the source or target currency.
type Side uint8

const (
	From Side = iota
	To
)

func (s Side) String() string {
	if s == To {
		return "to"
	}
	return "from"
}

// Converter is the converter session: an amount, a currency pair and the result text.
type Converter struct {
	table    *rates.Table
	amount   string
	from, to string
	result   string
}

// NewConverter starts at 1 USD -> EUR. A nil table uses rates.Default.
func NewConverter(table *rates.Table) *Converter {
	if table == nil {
		table = rates.Default()
	}
	c := &Converter{table: table, amount: "1", from: "USD", to: "EUR"}
	c.Recompute()
	return c
}

func (c *Converter) Amount() string { return c.amount }
func (c *Converter) From() string   { return c.from }
func (c *Converter) To() string     { return c.to }

// Result is the converted amount with two decimals, "" for an empty or unreadable
// amount, or ErrorText.
func (c *Converter) Result() string { return c.result }

func (c *Converter) Table() *rates.Table { return c.table }

// Currency returns the table row selected on side s.
func (c *Converter) Currency(s Side) rates.Currency {
	code := c.from
	if s == To {
		code = c.to
	}
	cur, ok := c.table.Lookup(code)
	if !ok {
		return rates.Currency{Code: code}
	}
	return cur
}

// SetAmount replaces the amount text. Text that is not digits with at most one
// decimal point is rejected.
func (c *Converter) SetAmount(s string) bool {
	if !amountPattern.MatchString(s) {
		return false
	}
	c.amount = s
	c.Recompute()
	return true
}

// Type appends r to the amount.
func (c *Converter) Type(r rune) bool {
	return c.SetAmount(c.amount + string(r))
}

func (c *Converter) Backspace() {
	if c.amount == "" {
		return
	}
	c.SetAmount(c.amount[:len(c.amount)-1])
}

// SetCurrency selects code on side s. Unknown codes are rejected.
func (c *Converter) SetCurrency(s Side, code string) bool {
	if c.table.Index(code) < 0 {
		return false
	}
	if s == To {
		c.to = code
	} else {
		c.from = code
	}
	c.Recompute()
	return true
}

// Cycle moves side s delta rows through the table, wrapping at both ends.
func (c *Converter) Cycle(s Side, delta int) {
	n := c.table.Len()
	if n == 0 {
		return
	}
	i := c.table.Index(c.Currency(s).Code)
	if i < 0 {
		i = 0
	}
	i = ((i+delta)%n + n) % n
	c.SetCurrency(s, c.table.At(i).Code)
}

func (c *Converter) Swap() {
	c.from, c.to = c.to, c.from
	c.Recompute()
}

// Recompute refreshes Result from the current amount and pair.
func (c *Converter) Recompute() {
	amount, err := strconv.ParseFloat(c.amount, 64)
	if err != nil {
		c.result = ""
		return
	}
	v, err := c.table.Convert(amount, c.from, c.to)
	if err != nil {
		c.result = ErrorText
		return
	}
	c.result = fixed2(v)
}

// fixed2 formats v with two decimals, rounding exact halves away from zero.
func fixed2(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return new(big.Rat).SetFloat64(v).FloatString(2)
}

// Rate is the price of one unit of From in To, or 0 when unknown.
func (c *Converter) Rate() float64 {
	v, err := c.table.Convert(1, c.from, c.to)
	if err != nil {
		return 0
	}
	return v
}
