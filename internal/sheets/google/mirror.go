// Package google mirrors the ledger into a Google Sheets tab after each save.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

// Options configures the Sheets mirror.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
	CurrencySymbol  string
}

// Mirror overwrites one sheet tab with the full ledger, header included.
type Mirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	symbol        string
}

// New creates a mirror authenticated with Service Account credentials.
func New(ctx context.Context, opts Options) (*Mirror, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = "Expenses"
	}

	svc, err := newSheetsService(ctx, opts.CredentialsJSON, opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Mirror{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		symbol:        opts.CurrencySymbol,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Inline JSON wins over a file; GOOGLE_APPLICATION_CREDENTIALS is the last resort.
func newSheetsService(ctx context.Context, credentialsJSON, credentialsFile string) (*gsheet.Service, error) {
	credentialsJSON = strings.TrimSpace(credentialsJSON)
	credentialsFile = strings.TrimSpace(credentialsFile)
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var creds []byte
	switch {
	case credentialsJSON != "":
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Name identifies the mirror in logs.
func (m *Mirror) Name() string {
	return "sheets:" + m.sheetName
}

// Export clears the tab's A:C columns and writes the ledger from A1.
func (m *Mirror) Export(ctx context.Context, entries []core.Expense) error {
	if m.svc == nil {
		return errors.New("sheets service not initialized")
	}
	tab := quoteSheetName(m.sheetName)

	_, err := m.svc.Spreadsheets.Values.Clear(m.spreadsheetID, tab+"!A:C", &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", m.sheetName, err)
	}

	vr := &gsheet.ValueRange{Values: toValues(entries, m.symbol)}
	_, err = m.svc.Spreadsheets.Values.Update(m.spreadsheetID, tab+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", m.sheetName, err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentSheets).InfoContext(ctx, "Ledger mirrored to Google Sheets",
				log.FieldMirror, m.Name(),
		log.FieldRows, len(entries))
	return nil
}

// toValues lays the ledger out exactly like the flat file.
func toValues(entries []core.Expense, symbol string) [][]interface{} {
	values := make([][]interface{}, 0, len(entries)+1)
	header := make([]interface{}, len(storage.Header))
	for i, h := range storage.Header {
		header[i] = h
	}
	values = append(values, header)
	for _, e := range entries {
		values = append(values, []interface{}{e.Date.String(), e.Amount.Format(symbol), e.Category})
	}
	return values
}

// quoteSheetName wraps a tab name for A1 notation, doubling embedded quotes.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
