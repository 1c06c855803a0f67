package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

/*
CSV layout

expenses.csv
Date,Amount,Category
01-07-2025,₹200.0,Food

- Date = dd-mm-yyyy
- Amount = currency marker + Money.String()
- The whole file is rewritten atomically on every save.
*/

// Header is the mandatory first row of the ledger file.
var Header = []string{"Date", "Amount", "Category"}

// CSVStore keeps the ledger in a comma-separated flat file.
type CSVStore struct {
	path   string
	symbol string
	policy MalformedPolicy
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore returns a store for path. Nothing is touched on disk until the
// first Save.
func NewCSVStore(path, currencySymbol string, policy MalformedPolicy) *CSVStore {
	if !policy.IsValid() {
		policy = SkipMalformed
	}
	return &CSVStore{path: path, symbol: currencySymbol, policy: policy}
}

func (s *CSVStore) Location() string {
	return s.path
}

// Save writes the header and one row per expense.
func (s *CSVStore) Save(ctx context.Context, entries []core.Expense) error {
	if err := ctx.Err(); err != nil {
		return &core.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, Header)
	for _, e := range entries {
		rows = append(rows, []string{e.Date.String(), e.Amount.Format(s.symbol), e.Category})
	}
	if err := atomicWriteCSV(s.path, rows); err != nil {
		return &core.PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Ledger file written",
				log.FieldPath, s.path,
		log.FieldRows, len(entries))
	return nil
}

// Load reads the file back. The header row is skipped; categories and
// amounts are trusted apart from stripping the currency marker.
func (s *CSVStore) Load(ctx context.Context) ([]core.Expense, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out []core.Expense
	rows := rowCollector{policy: s.policy}
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return out, &core.PersistenceError{Op: "load", Path: s.path, Err: err}
			}
			first = false
			if !rows.reject(pe.Line, err) {
				break
			}
			continue
		}
		if first {
			first = false
			continue
		}
		e, err := s.parseRow(rec)
		if err != nil {
			line, _ := r.FieldPos(0)
			if !rows.reject(line, err) {
				break
			}
			continue
		}
		out = append(out, e)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Ledger file read",
				log.FieldPath, s.path,
		log.FieldRows, len(out),
		log.FieldSkipped, len(rows.problems))
	return out, rows.err()
}

func (s *CSVStore) parseRow(rec []string) (core.Expense, error) {
	if len(rec) != len(Header) {
		return core.Expense{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(rec))
	}
	date, err := core.ParseDate(rec[0])
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := s.parseAmount(rec[1])
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: %q", err, rec[1])
	}
	category := strings.TrimSpace(rec[2])
	if category == "" {
		return core.Expense{}, fmt.Errorf("%w: empty", core.ErrInvalidCategory)
	}
	return core.Expense{Date: date, Amount: amount, Category: category}, nil
}

// parseAmount strips the store's own currency marker first, so symbols that
// contain '.' or '-' still round-trip. Files written with another marker
// fall back to ParseMarkedAmount.
func (s *CSVStore) parseAmount(field string) (core.Money, error) {
	field = strings.TrimSpace(field)
	if sym := strings.TrimSpace(s.symbol); sym != "" {
		if rest, ok := strings.CutPrefix(field, sym); ok {
			return core.ParseAmount(rest)
		}
	}
	return core.ParseMarkedAmount(field)
}

// atomicWriteCSV writes rows to a temp file next to path and renames it over
// path, so readers never observe a half-written ledger.
func atomicWriteCSV(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
