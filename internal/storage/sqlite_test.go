package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"expensetracker/internal/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "expenses.db"), SkipMalformed)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreEmptyLoad(t *testing.T) {
	s := newTestSQLiteStore(t)
	out, err := s.Load(context.Background())
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty load, got %v err=%v", out, err)
	}
}

func TestSQLiteStoreRoundTripReplacesSnapshot(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleExpenses()); err != nil {
		t.Fatalf("save: %v", err)
	}
	in := append(sampleExpenses(), core.Expense{Date: core.NewDate(2025, 8, 9), Amount: core.Money{Cents: 0}, Category: "Shopping"})
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("second save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d entries, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Date.String() != in[i].Date.String() || out[i].Amount != in[i].Amount || out[i].Category != in[i].Category {
			t.Fatalf("entry %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestSQLiteStoreRejectsNegativeAmounts(t *testing.T) {
	s := newTestSQLiteStore(t)
	err := s.Save(context.Background(), []core.Expense{
		{Date: core.NewDate(2025, 7, 1), Amount: core.Money{Cents: -1}, Category: "Food"},
	})
	var pe *core.PersistenceError
	if !errors.As(err, &pe) || pe.Op != "save" {
		t.Fatalf("expected save PersistenceError, got %v", err)
	}
}

func TestSQLiteStoreReopenRunsMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")
	first, err := NewSQLiteStore(path, AbortMalformed)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Save(context.Background(), sampleExpenses()); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewSQLiteStore(path, AbortMalformed)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	out, err := second.Load(context.Background())
	if err != nil || len(out) != 3 {
		t.Fatalf("expected 3 entries after reopen, got %d err=%v", len(out), err)
	}
	if second.Location() != "sqlite:"+path {
		t.Fatalf("location = %q", second.Location())
	}
}
