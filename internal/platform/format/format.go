// Package format renders amounts for display: rupee currency with Indian
// digit grouping, and compact thousand/lakh/crore figures.
package format

import (
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	indian = message.NewPrinter(language.MustParse("en-IN"))

	thousand = decimal.NewFromInt(1_000)
	lakh     = decimal.NewFromInt(100_000)
	crore    = decimal.NewFromInt(10_000_000)
)

// Currency formats amount as whole rupees, e.g. ₹3,28,000 or -₹500.
func Currency(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return "-₹" + indian.Sprintf("%d", -n)
	}
	return "₹" + indian.Sprintf("%d", n)
}

// Compact abbreviates large amounts: 1.2 Cr, 3.3 L, 4.5K. Smaller and negative
// amounts are printed as they are.
func Compact(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(crore):
		return amount.Div(crore).StringFixed(1) + " Cr"
	case amount.GreaterThanOrEqual(lakh):
		return amount.Div(lakh).StringFixed(1) + " L"
	case amount.GreaterThanOrEqual(thousand):
		return amount.Div(thousand).StringFixed(1) + "K"
	}
	return amount.String()
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
