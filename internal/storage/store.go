package storage

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

// Store persists the whole ledger as one ordered snapshot.
type Store interface {
	// Save replaces the persisted snapshot with entries, in order.
	Save(ctx context.Context, entries []core.Expense) error
	// Load returns the persisted entries in order. A missing snapshot yields
	// no entries and no error. On malformed rows it returns whatever parsed
	// alongside an error describing the bad rows.
	Load(ctx context.Context) ([]core.Expense, error)
	// Location describes where the snapshot lives, for logs and the UI.
	Location() string
}

// MalformedPolicy decides what Load does with a row it cannot parse.
type MalformedPolicy string

const (
	// SkipMalformed drops the bad row and keeps reading.
	SkipMalformed MalformedPolicy = "skip"
	// AbortMalformed stops at the first bad row and keeps what parsed so far.
	AbortMalformed MalformedPolicy = "abort"
)

// IsValid returns true if the policy is known
func (p MalformedPolicy) IsValid() bool {
	switch p {
	case SkipMalformed, AbortMalformed:
		return true
	default:
		return false
	}
}

var ErrMalformedRow = errors.New("malformed row")

// RowError locates a row Load could not parse.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// rowCollector applies a MalformedPolicy while rows are read.
type rowCollector struct {
	policy   MalformedPolicy
	problems []error
}

// reject records a bad row and reports whether reading should continue.
func (c *rowCollector) reject(line int, err error) bool {
	c.problems = append(c.problems, &RowError{Line: line, Err: fmt.Errorf("%w: %w", ErrMalformedRow, err)})
	return c.policy != AbortMalformed
}

func (c *rowCollector) err() error {
	return errors.Join(c.problems...)
}
