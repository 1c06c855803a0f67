package backend

import (
	"context"

	"expensetracker/internal/services"
	"expensetracker/internal/storage"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// BackendResult bundles the primary store with the optional mirrors and
// event feed that were successfully initialized.
type BackendResult struct {
	Store     storage.Store
	Mirrors   []services.Mirror
	Publisher services.EventPublisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Primary store
	LedgerFile     string
	CurrencySymbol string
	MalformedRows  storage.MalformedPolicy
	SQLiteDBPath   string

	// Event feed (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Sheets mirror (optional)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

// BackendType represents the type of primary store
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
