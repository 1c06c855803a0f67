package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"

	_ "modernc.org/sqlite"
)

const sqlDateLayout = "2006-01-02"

// SQLiteStore keeps the ledger snapshot in a SQLite table, one row per
// expense ordered by position.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	policy MalformedPolicy
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string, policy MalformedPolicy) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if !policy.IsValid() {
		policy = SkipMalformed
	}
	return &SQLiteStore{db: db, path: dbPath, policy: policy}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Location() string {
	return "sqlite:" + s.path
}

// Save replaces the stored snapshot inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []core.Expense) (err error) {
	defer func() {
		if err != nil {
			err = &core.PersistenceError{Op: "save", Path: s.path, Err: err}
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, expense_date, amount_cents, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.Date.Format(sqlDateLayout), e.Amount.Cents, e.Category); err != nil {
			return fmt.Errorf("insert expense %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Ledger saved to SQLite",
				log.FieldPath, s.path,
		log.FieldRows, len(entries))
	return nil
}

// Load returns the stored snapshot in position order.
func (s *SQLiteStore) Load(ctx context.Context) ([]core.Expense, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT position, expense_date, amount_cents, category FROM expenses ORDER BY position`)
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer rs.Close()

	var out []core.Expense
	rows := rowCollector{policy: s.policy}
	for rs.Next() {
		var (
			position int
			date     string
			cents    int64
			category string
		)
		if err := rs.Scan(&position, &date, &cents, &category); err != nil {
			return out, &core.PersistenceError{Op: "load", Path: s.path, Err: err}
		}
		t, err := time.Parse(sqlDateLayout, date)
		if err != nil {
			if !rows.reject(position, fmt.Errorf("%w: %q", core.ErrInvalidDate, date)) {
				break
			}
			continue
		}
		out = append(out, core.Expense{
			Date:     core.Date{Time: t},
			Amount:   core.Money{Cents: cents},
			Category: category,
		})
	}
	if err := rs.Err(); err != nil {
		return out, &core.PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Ledger loaded from SQLite",
				log.FieldPath, s.path,
		log.FieldRows, len(out))
	return out, rows.err()
}
