package rates

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestDefaultTable(t *testing.T) {
	tab := Default()
	if tab.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", tab.Len())
	}
	if c := tab.At(0); c.Code != "USD" || c.Rate != 1 {
		t.Fatalf("At(0) = %+v", c)
	}
	if i := tab.Index("AED"); i != 19 {
		t.Fatalf("Index(AED) = %d, want 19", i)
	}
	if i := tab.Index("XXX"); i != -1 {
		t.Fatalf("Index(XXX) = %d, want -1", i)
	}
}

func TestConvert(t *testing.T) {
	tab := Default()
	cases := []struct {
		amount   float64
		from, to string
		want     float64
	}{
		{1, "USD", "EUR", 0.85},
		{100, "USD", "JPY", 11000},
		{0.85, "EUR", "USD", 1},
		{2, "GBP", "GBP", 2},
		{0, "USD", "KRW", 0},
	}
	for _, tc := range cases {
		got, err := tab.Convert(tc.amount, tc.from, tc.to)
		if err != nil {
			t.Fatalf("Convert(%v, %s, %s) error: %v", tc.amount, tc.from, tc.to, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Convert(%v, %s, %s) = %v, want %v", tc.amount, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	tab := NewTable([]Currency{{Code: "USD", Rate: 1}, {Code: "ZZZ", Rate: 0}})
	for _, pair := range [][2]string{{"USD", "XXX"}, {"XXX", "USD"}, {"USD", "ZZZ"}} {
		if _, err := tab.Convert(1, pair[0], pair[1]); !errors.Is(err, ErrUnknownCurrency) {
			t.Fatalf("Convert(%s->%s) err = %v, want ErrUnknownCurrency", pair[0], pair[1], err)
		}
	}
}

func TestLoadOverridesAndAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := strings.Join([]string{
		"# weekly rates",
		"",
		"eur 0.9",
		"JPY 150 Yen",
		"ISK 138 Icelandic Krona",
	}, "\n")
	if err := afero.WriteFile(fs, "/etc/rates.txt", []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tab, err := Load(fs, "/etc/rates.txt", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tab.Len() != 21 {
		t.Fatalf("Len() = %d, want 21", tab.Len())
	}
	eur, _ := tab.Lookup("EUR")
	if eur.Rate != 0.9 || eur.Name != "Euro" || eur.Symbol != "€" {
		t.Fatalf("EUR = %+v", eur)
	}
	jpy, _ := tab.Lookup("JPY")
	if jpy.Rate != 150 || jpy.Name != "Yen" {
		t.Fatalf("JPY = %+v", jpy)
	}
	isk, ok := tab.Lookup("ISK")
	if !ok || isk.Symbol != "ISK" || isk.Name != "Icelandic Krona" || tab.Index("ISK") != 20 {
		t.Fatalf("ISK = %+v,%v", isk, ok)
	}

	// The base table is left alone.
	if base, _ := Default().Lookup("EUR"); base.Rate != 0.85 {
		t.Fatalf("default EUR rate = %v", base.Rate)
	}
}

func TestLoadCollectsLineErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "USD 1\nEURO 0.8\nGBP\nJPY -3\nCAD abc\nAUD 1.4\n"
	if err := afero.WriteFile(fs, "rates.txt", []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(fs, "rates.txt", nil)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load err = %v, want *ParseError", err)
	}
	if len(pe.Errors) != 4 {
		t.Fatalf("ParseError has %d errors, want 4:\n%v", len(pe.Errors), err)
	}
	wantLines := []int{2, 3, 4, 5}
	for i, e := range pe.Errors {
		var le *LineError
		if !errors.As(e, &le) || le.Line != wantLines[i] {
			t.Fatalf("error %d = %v, want line %d", i, e, wantLines[i])
		}
	}
	if !errors.Is(err, errBadRate) || !errors.Is(err, errMissingRate) || !errors.Is(err, errBadCode) {
		t.Fatalf("Load err does not unwrap to the line causes: %v", err)
	}
	if !strings.Contains(err.Error(), "4 bad lines") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.txt", nil)
	if err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Fatalf("missing file reported as ParseError: %v", err)
	}
}
