package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("01-07-2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Day() != 1 || d.Month() != time.July || d.Year() != 2025 {
		t.Fatalf("unexpected date: %v", d.Time)
	}
	if d.String() != "01-07-2025" {
		t.Fatalf("String() = %q", d.String())
	}

	for _, bad := range []string{"", "2025-07-01", "32-01-2025", "1/7/2025"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d := DateOf(time.Date(2025, 7, 3, 23, 59, 0, 0, loc))
	if d.String() != "03-07-2025" {
		t.Fatalf("DateOf = %s", d)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 100}, Category: "Food"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{Date: Date{}, Amount: Money{Cents: 1}, Category: "Food"}, ErrInvalidDate},
		{Expense{Date: NewDate(2025, 1, 1), Amount: Money{Cents: -1}, Category: "Food"}, ErrInvalidAmount},
		{Expense{Date: NewDate(2025, 1, 1), Amount: Money{Cents: 1}, Category: "Gadgets"}, ErrInvalidCategory},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestLookupCategory(t *testing.T) {
	c, ok := LookupCategory("  travel ")
	if !ok || c.Label != "Travel" {
		t.Fatalf("expected Travel, got %+v ok=%v", c, ok)
	}
	for _, bad := range []string{"", "Groceries", "🍔 Food"} {
		if _, ok := LookupCategory(bad); ok {
			t.Errorf("LookupCategory(%q) should fail", bad)
		}
	}
	labels := CategoryLabels()
	if len(labels) != 7 || labels[0] != "Food" || labels[6] != "Health" {
		t.Fatalf("unexpected labels: %v", labels)
	}
}

func TestMoneyCheckedAdd(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int64
		want   int64
		wantOK bool
	}{
		{"small", 20000, 15000, 35000, true},
		{"zero", 0, 0, 0, true},
		{"at limit", math.MaxInt64 - 1, 1, math.MaxInt64, true},
		{"overflow", 5000000000000000000, 5000000000000000000, 5000000000000000000, false},
		{"underflow", math.MinInt64, -1, math.MinInt64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Money{Cents: tt.a}.CheckedAdd(Money{Cents: tt.b})
			if ok != tt.wantOK || got.Cents != tt.want {
				t.Errorf("CheckedAdd(%d, %d) = %d, %v; want %d, %v", tt.a, tt.b, got.Cents, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	var err error = &PersistenceError{Op: "save", Path: "expenses.csv", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Op != "save" {
		t.Fatalf("errors.As failed: %v", err)
	}
	if err.Error() != "save expenses.csv: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
