package google

import (
	"context"
	"strings"
	"testing"

	"expensetracker/internal/core"
)

func TestToValues(t *testing.T) {
	values := toValues([]core.Expense{
		{Date: core.NewDate(2025, 7, 1), Amount: core.Money{Cents: 20000}, Category: "Food"},
		{Date: core.NewDate(2025, 7, 2), Amount: core.Money{Cents: 1505}, Category: "Travel"},
	}, "₹")

	if len(values) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(values))
	}
	if values[0][0] != "Date" || values[0][1] != "Amount" || values[0][2] != "Category" {
		t.Fatalf("unexpected header: %v", values[0])
	}
	if values[1][0] != "01-07-2025" || values[1][1] != "₹200.0" || values[1][2] != "Food" {
		t.Fatalf("unexpected first row: %v", values[1])
	}
	if values[2][1] != "₹15.05" {
		t.Fatalf("unexpected amount: %v", values[2][1])
	}
}

func TestToValuesEmptyLedger(t *testing.T) {
	if values := toValues(nil, "$"); len(values) != 1 {
		t.Fatalf("expected header only, got %v", values)
	}
}

func TestQuoteSheetName(t *testing.T) {
	tests := map[string]string{
		"Expenses":      "'Expenses'",
		"2025 Expenses": "'2025 Expenses'",
		"Bob's":         "'Bob''s'",
	}
	for in, want := range tests {
		if got := quoteSheetName(in); got != want {
			t.Errorf("quoteSheetName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{SheetName: "Expenses", CredentialsJSON: "{}"})
	if err == nil || err.Error() != "missing spreadsheet id" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	_, err := New(context.Background(), Options{SpreadsheetID: "sheet-123"})
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "sheet-123", CredentialsFile: "/non/existent/sa.json"})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExport_NilService(t *testing.T) {
	m := &Mirror{spreadsheetID: "sheet-123", sheetName: "Expenses"}
	if err := m.Export(context.Background(), nil); err == nil {
		t.Fatal("expected error without a service")
	}
	if m.Name() != "sheets:Expenses" {
		t.Fatalf("Name() = %q", m.Name())
	}
}
