package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-month-year rendering used in the ledger file and UI.
const DateLayout = "02-01-2006"

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is one logged expense. Values are copied out of the ledger,
	// never shared.
	Expense struct {
		Date     Date
		Amount   Money
		Category string
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a dd-mm-yyyy string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String renders the date as dd-mm-yyyy.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts. Callers that cannot rule out int64
// overflow use CheckedAdd.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// CheckedAdd returns the sum and false when it would overflow int64 cents.
func (m Money) CheckedAdd(o Money) (Money, bool) {
	sum := m.Cents + o.Cents
	if (o.Cents > 0 && sum < m.Cents) || (o.Cents < 0 && sum > m.Cents) {
		return m, false
	}
	return Money{Cents: sum}, true
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if _, ok := LookupCategory(e.Category); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	return nil
}
