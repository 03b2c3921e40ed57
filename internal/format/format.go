// Package format holds presentation-time formatting helpers. Amounts are
// carried at full precision everywhere else; rounding to currency digits
// happens here and only here.
package format

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders an amount with the symbol of the given ISO 4217 code,
// rounded to the currency's standard number of digits. Unknown or empty
// codes fall back to USD, matching the upstream records that omit currency.
func Currency(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}

	scale, _ := currency.Cash.Rounding(unit)
	return printer.Sprintf("%v%.*f", currency.Symbol(unit), scale, amount)
}

// Date renders a timestamp for display; zero values render as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}

// DateString parses and renders an upstream date string, trying the wire
// formats the API is known to emit. Unparseable or empty input renders
// as "-" rather than an error, consistent with the report row policy.
func DateString(s string) string {
	if s == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t)
		}
	}
	return "-"
}

// Percent renders a tax-rate fraction as a percentage with two digits.
func Percent(rate float64) string {
	return printer.Sprintf("%.2f%%", rate*100)
}
