// Package core provides money parsing and handling utilities.
//
// Amounts are held as integer cents; parsing and rendering go through
// shopspring/decimal so no float rounding leaks into totals or files.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.New(1<<63-1, 0)

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Zero is
// allowed, signs and exponents are not.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents
//	ParseAmount("-1")     -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.':
		default:
			return Money{}, ErrInvalidAmount
		}
	}
	if digits == 0 {
		return Money{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// ParseMarkedAmount parses an amount that may carry a leading currency marker
// such as "₹200.0" or "$ 12,50".
func ParseMarkedAmount(s string) (Money, error) {
	s = strings.TrimLeftFunc(strings.TrimSpace(s), func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ',' && r != '-' && r != '+'
	})
	return ParseAmount(s)
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the shortest decimal with at least one fractional digit:
// 200.0, 12.5, 12.05.
func (m Money) String() string {
	s := m.Decimal().String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Format prefixes the rendered amount with a currency marker.
func (m Money) Format(symbol string) string {
	return symbol + m.String()
}

// Float returns the amount as a float64 for charting only.
func (m Money) Float() float64 {
	return m.Decimal().InexactFloat64()
}
