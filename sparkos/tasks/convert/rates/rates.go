// Package rates holds the currency table used by the converter widget.
package rates

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownCurrency is returned for codes missing from the table or carrying no usable rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency is one table row. Rate is units per US dollar.
type Currency struct {
	Code   string
	Name   string
	Symbol string
	Rate   float64
}

// Table is an ordered currency list with lookup by code.
type Table struct {
	list  []Currency
	index map[string]int
}

var defaultCurrencies = []Currency{
	{"USD", "US Dollar", "$", 1},
	{"EUR", "Euro", "€", 0.85},
	{"GBP", "British Pound", "£", 0.72},
	{"JPY", "Japanese Yen", "¥", 110},
	{"CAD", "Canadian Dollar", "C$", 1.25},
	{"AUD", "Australian Dollar", "A$", 1.35},
	{"CHF", "Swiss Franc", "Fr", 0.92},
	{"CNY", "Chinese Yuan", "¥", 6.45},
	{"INR", "Indian Rupee", "₹", 74.5},
	{"MXN", "Mexican Peso", "$", 20.1},
	{"SGD", "Singapore Dollar", "S$", 1.34},
	{"NZD", "New Zealand Dollar", "NZ$", 1.42},
	{"ZAR", "South African Rand", "R", 14.8},
	{"SEK", "Swedish Krona", "kr", 8.6},
	{"NOK", "Norwegian Krone", "kr", 8.9},
	{"RUB", "Russian Ruble", "₽", 73.5},
	{"KRW", "South Korean Won", "₩", 1180},
	{"TRY", "Turkish Lira", "₺", 8.6},
	{"BRL", "Brazilian Real", "R$", 5.2},
	{"AED", "UAE Dirham", "د.إ", 3.67},
}

// Default returns the built-in table of 20 currencies.
func Default() *Table {
	return NewTable(defaultCurrencies)
}

// NewTable builds a table from list. A repeated code replaces the earlier row in place.
func NewTable(list []Currency) *Table {
	t := &Table{index: make(map[string]int, len(list))}
	for _, c := range list {
		t.set(c)
	}
	return t
}

func (t *Table) set(c Currency) {
	if i, ok := t.index[c.Code]; ok {
		t.list[i] = c
		return
	}
	t.index[c.Code] = len(t.list)
	t.list = append(t.list, c)
}

func (t *Table) Len() int { return len(t.list) }

// At returns row i in table order.
func (t *Table) At(i int) Currency { return t.list[i] }

// Index returns the row of code, or -1.
func (t *Table) Index(code string) int {
	if i, ok := t.index[code]; ok {
		return i
	}
	return -1
}

func (t *Table) Lookup(code string) (Currency, bool) {
	i, ok := t.index[code]
	if !ok {
		return Currency{}, false
	}
	return t.list[i], true
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	return NewTable(t.list)
}

// Convert returns amount expressed in to, given an amount in from.
func (t *Table) Convert(amount float64, from, to string) (float64, error) {
	fromRate, err := t.rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := t.rate(to)
	if err != nil {
		return 0, err
	}
	return amount * (toRate / fromRate), nil
}

func (t *Table) rate(code string) (float64, error) {
	c, ok := t.Lookup(code)
	if !ok || !(c.Rate > 0) || math.IsInf(c.Rate, 0) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c.Rate, nil
}
