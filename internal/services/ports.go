package services

import (
	"context"

	"expensetracker/internal/core"
)

// Ports for outbound adapters.
type (
	// Mirror receives a copy of the ledger after every successful save.
	Mirror interface {
		Name() string
		Export(ctx context.Context, entries []core.Expense) error
	}

	// EventPublisher announces ledger changes to other systems.
	EventPublisher interface {
		PublishExpenseAdded(ctx context.Context, e core.Expense) error
		PublishLedgerSaved(ctx context.Context, location string, rows int, total core.Money) error
	}
)
