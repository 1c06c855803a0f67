package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewJSONHandler(&buf, nil), Component: ComponentLedger})
	logger.WithComponent(ComponentStorage).Info("saved", FieldRows, 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if rec[FieldComponent] != ComponentStorage {
		t.Fatalf("component = %v", rec[FieldComponent])
	}
	if rec[FieldRows] != float64(3) {
		t.Fatalf("rows = %v", rec[FieldRows])
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := Discard().WithComponent(ComponentUI)
	ctx := NewContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Fatal("expected the stored logger")
	}
	if got := FromContext(context.Background()); got == nil || got.component != "unknown" {
		t.Fatalf("unexpected fallback logger: %+v", got)
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithComponent(ComponentLedger).WithOperation(OpAdd).WithExpense("01-07-2025", 20000, "Food").WithErrorType(ErrorTypeValidation).WithError(nil)
	if len(f) != 6 {
		t.Fatalf("unexpected fields: %v", f)
	}
	if len(f.ToSlice()) != 12 {
		t.Fatalf("unexpected slice length %d", len(f.ToSlice()))
	}
}
