package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{"12.344", 1234, true},
		{" 2.50 ", 250, true},
		{"200", 20000, true},
		{".5", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1e3", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{".", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
			}
		}
	}
}

func TestParseMarkedAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"₹200.0", 20000, true},
		{"$ 12,50", 1250, true},
		{"€0.5", 50, true},
		{"150", 15000, true},
		{"₹-5", 0, false},
		{"₹", 0, false},
		{"₹abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMarkedAmount(tc.in)
		if tc.ok && (err != nil || got.Cents != tc.out) {
			t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{20000, "200.0"},
		{0, "0.0"},
		{1250, "12.5"},
		{1205, "12.05"},
		{5, "0.05"},
		{35000, "350.0"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
	if got := (Money{Cents: 20000}).Format("₹"); got != "₹200.0" {
		t.Errorf("Format = %q, want ₹200.0", got)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 10, 99, 100, 123456, 500000} {
		m := Money{Cents: cents}
		got, err := ParseMarkedAmount(m.Format("₹"))
		if err != nil || got != m {
			t.Fatalf("round trip of %d: got %v err=%v", cents, got, err)
		}
	}
}
