package charts

import (
	"bytes"
	"errors"
	"testing"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestRenderCategoryBars(t *testing.T) {
	report := core.BuildReport(ledger.SampleEntries())

	img, err := RenderCategoryBars(report, 0, 0, "₹")
	if err != nil {
		t.Fatalf("RenderCategoryBars: %v", err)
	}
	if !bytes.HasPrefix(img, pngSignature) {
		t.Fatal("output is not a PNG")
	}
}

func TestRenderCategoryBars_SingleZeroLine(t *testing.T) {
	report := core.BuildReport([]core.Expense{
		{Date: core.NewDate(2025, 7, 1), Amount: core.Money{}, Category: "Rent"},
	})

	img, err := RenderCategoryBars(report, 400, 300, "$")
	if err != nil {
		t.Fatalf("RenderCategoryBars: %v", err)
	}
	if !bytes.HasPrefix(img, pngSignature) {
		t.Fatal("output is not a PNG")
	}
}

func TestRenderCategoryBars_Empty(t *testing.T) {
	if _, err := RenderCategoryBars(core.BuildReport(nil), 400, 300, "₹"); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
