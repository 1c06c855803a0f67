// Package ledger holds the in-memory, append-only list of expenses and the
// totals computed over it.
package ledger

import (
	"fmt"
	"math"
	"sync"
	"time"

	"expensetracker/internal/core"
)

// Ledger is an ordered, append-only sequence of expenses. Insertion order is
// display order.
type Ledger struct {
	mu    sync.Mutex
	now   func() time.Time
	items []core.Expense
	total core.Money
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add stamps the current date on a new expense and appends it.
// The category must belong to core.Categories. An amount that would push the
// running total past int64 cents is rejected as ErrInvalidAmount.
func (l *Ledger) Add(amount core.Money, category string) (core.Expense, error) {
	if err := amount.Validate(); err != nil {
		return core.Expense{}, err
	}
	c, ok := core.LookupCategory(category)
	if !ok {
		return core.Expense{}, fmt.Errorf("%w: %q", core.ErrInvalidCategory, category)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	total, ok := l.total.CheckedAdd(amount)
	if !ok {
		return core.Expense{}, fmt.Errorf("%w: total would exceed %s", core.ErrInvalidAmount, core.Money{Cents: math.MaxInt64})
	}
	e := core.Expense{
		Date:     core.DateOf(l.now()),
		Amount:   amount,
		Category: c.Label,
	}
	l.items = append(l.items, e)
	l.total = total
	return e, nil
}

// AddText parses amount text as typed by the user and adds the expense.
func (l *Ledger) AddText(amountText, category string) (core.Expense, error) {
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: %q", err, amountText)
	}
	return l.Add(amount, category)
}

// Restore appends previously persisted expenses and returns how many were
// kept. Loads trust what an earlier save wrote, so categories are not
// re-validated; only entries with a negative amount or one that would
// overflow the running total are dropped.
func (l *Ledger) Restore(entries []core.Expense) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := 0
	for _, e := range entries {
		if e.Amount.Validate() != nil {
			continue
		}
		total, ok := l.total.CheckedAdd(e.Amount)
		if !ok {
			continue
		}
		l.items = append(l.items, e)
		l.total = total
		kept++
	}
	return kept
}

// Total is the sum of all amounts, zero for an empty ledger.
func (l *Ledger) Total() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// ReportByCategory groups the ledger by category in enumeration order.
func (l *Ledger) ReportByCategory() core.Report {
	return core.BuildReport(l.Entries())
}

// Entries returns a copy of the ledger in insertion order.
func (l *Ledger) Entries() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Expense, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
