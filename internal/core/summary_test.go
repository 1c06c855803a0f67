package core

import "testing"

func TestBuildReportFollowsEnumerationOrder(t *testing.T) {
	d := NewDate(2025, 7, 1)
	r := BuildReport([]Expense{
		{Date: d, Amount: Money{Cents: 15000}, Category: "Travel"},
		{Date: d, Amount: Money{Cents: 20000}, Category: "Food"},
		{Date: d, Amount: Money{Cents: 5000}, Category: "Food"},
	})
	if len(r.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", r.Lines)
	}
	if r.Lines[0].Category != "Food" || r.Lines[0].Count != 2 || r.Lines[0].Subtotal.Cents != 25000 {
		t.Fatalf("unexpected first line: %+v", r.Lines[0])
	}
	if r.Lines[1].Category != "Travel" || r.Lines[1].Count != 1 || r.Lines[1].Subtotal.Cents != 15000 {
		t.Fatalf("unexpected second line: %+v", r.Lines[1])
	}
	if r.Total.Cents != 40000 {
		t.Fatalf("total = %d", r.Total.Cents)
	}
}

func TestBuildReportKeepsForeignLabels(t *testing.T) {
	d := NewDate(2025, 7, 1)
	r := BuildReport([]Expense{
		{Date: d, Amount: Money{Cents: 100}, Category: "🥘 Food"},
		{Date: d, Amount: Money{Cents: 300}, Category: "Health"},
	})
	if len(r.Lines) != 2 || r.Lines[0].Category != "Health" || r.Lines[1].Category != "🥘 Food" {
		t.Fatalf("unexpected lines: %+v", r.Lines)
	}
	if r.Total.Cents != 400 {
		t.Fatalf("total = %d", r.Total.Cents)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(nil)
	if !r.Empty() || r.Total.Cents != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
	if _, ok := r.Line("Food"); ok {
		t.Fatal("no line expected")
	}
}
