// Package money parses user-entered amounts into integer cents and formats
// cents for display using locale conventions. The engine itself only ever
// sees cents; formatting is strictly a presentation concern.
package money

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/minhamerreca/backend/internal/ledger"
)

// ParseAmount converts a user-entered magnitude into cents. Both the comma
// decimal separator of the pt-BR client ("12,34") and a dot ("12.34") are
// accepted. Non-numeric and non-positive values are rejected before any
// persistence can be attempted.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ledger.NewValidationError("amount is required")
	}
	// "1.234,56" and "1,234.56" both normalize to "1234.56".
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ledger.NewValidationError("amount %q is not a number", s)
	}
	if !d.IsPositive() {
		return 0, ledger.NewValidationError("amount must be positive, got %s", d.String())
	}

	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, ledger.NewValidationError("amount %s has more than two decimal places", d.String())
	}
	return cents.IntPart(), nil
}

// Formatter renders cents and dates with a locale's conventions.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter builds a formatter for a BCP 47 locale tag and a currency
// symbol. Unparseable tags fall back to Brazilian Portuguese, the original
// client's locale.
func NewFormatter(locale, currencySymbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	if currencySymbol == "" {
		currencySymbol = "R$"
	}
	return &Formatter{printer: message.NewPrinter(tag), currency: currencySymbol}
}

// FormatCents renders cents as a currency string, e.g. 123456 → "R$ 1.234,56"
// under pt-BR.
func (f *Formatter) FormatCents(cents int64) string {
	units := decimal.New(cents, -2)
	v, _ := units.Float64()
	return f.currency + " " + f.printer.Sprintf("%.2f", v)
}

// FormatSignedCents renders a balance with an explicit sign, the way the
// dashboard annotates movements.
func (f *Formatter) FormatSignedCents(cents int64) string {
	if cents < 0 {
		return "- " + f.FormatCents(-cents)
	}
	return "+ " + f.FormatCents(cents)
}

// FormatDate renders a date with the day/month/year convention.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateShort renders a date with a 2-digit year.
func (f *Formatter) FormatDateShort(t time.Time) string {
	return t.Format("02/01/06")
}
