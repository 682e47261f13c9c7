package rates

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// ParseError collects every bad line of a rate file.
type ParseError struct {
	Path   string
	Errors []error
}

func (pe *ParseError) Error() string {
	if len(pe.Errors) == 1 {
		return fmt.Sprintf("rates %s: %v", pe.Path, pe.Errors[0])
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "rates %s: %d bad lines:\n", pe.Path, len(pe.Errors))
	for i, err := range pe.Errors {
		fmt.Fprintf(&buf, "  %d. %v\n", i+1, err)
	}
	return buf.String()
}

// Unwrap returns the per-line errors for errors.Is and errors.As.
func (pe *ParseError) Unwrap() []error {
	return pe.Errors
}

// LineError describes one rejected line.
type LineError struct {
	Line int
	Err  error
}

func (le *LineError) Error() string { return fmt.Sprintf("line %d: %v", le.Line, le.Err) }

func (le *LineError) Unwrap() error { return le.Err }

var (
	errMissingRate = errors.New("missing rate")
	errBadCode     = errors.New("code must be three letters")
	errBadRate     = errors.New("rate must be a positive number")
)

// Load reads a rate file from fs and applies it on top of base (Default when nil).
//
// Each line is "CODE RATE [NAME...]"; blank lines and lines starting with '#' are skipped.
// Known codes get the new rate (and name when given); unknown codes are appended with
// their code as the symbol. Nothing is applied when any line is bad.
func Load(fs afero.Fs, path string, base *Table) (*Table, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if base == nil {
		base = Default()
	}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("rates: %w", err)
	}

	t := base.Clone()
	var errs []error
	sc := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for sc.Scan() {
		line++
		c, ok, err := parseLine(sc.Text())
		if err != nil {
			errs = append(errs, &LineError{Line: line, Err: err})
			continue
		}
		if !ok {
			continue
		}
		if prev, found := t.Lookup(c.Code); found {
			if c.Name == "" {
				c.Name = prev.Name
			}
			c.Symbol = prev.Symbol
		}
		t.set(c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rates %s: %w", path, err)
	}
	if len(errs) > 0 {
		return nil, &ParseError{Path: path, Errors: errs}
	}
	return t, nil
}

func parseLine(s string) (c Currency, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return Currency{}, false, nil
	}
	fields := strings.Fields(s)
	code := strings.ToUpper(fields[0])
	if !isCode(code) {
		return Currency{}, false, fmt.Errorf("%w: %q", errBadCode, fields[0])
	}
	if len(fields) < 2 {
		return Currency{}, false, fmt.Errorf("%s: %w", code, errMissingRate)
	}
	rate, perr := strconv.ParseFloat(fields[1], 64)
	if perr != nil || !(rate > 0) || rate > 1e12 {
		return Currency{}, false, fmt.Errorf("%s: %w: %q", code, errBadRate, fields[1])
	}
	c = Currency{Code: code, Symbol: code, Rate: rate}
	if len(fields) > 2 {
		c.Name = strings.Join(fields[2:], " ")
	}
	return c, true, nil
}

func isCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
