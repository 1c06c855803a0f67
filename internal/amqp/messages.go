package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/core"
)

// Routing keys for ledger events.
const (
	RoutingExpenseAdded = "expense.added"
	RoutingLedgerSaved  = "ledger.saved"
)

// ExpenseAddedMessage announces one newly logged expense.
type ExpenseAddedMessage struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseAddedMessage builds the event for e with a fresh message id.
func NewExpenseAddedMessage(e core.Expense) *ExpenseAddedMessage {
	return &ExpenseAddedMessage{
		ID:          uuid.NewString(),
		Date:        e.Date.String(),
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSavedMessage announces a successful save of the whole ledger.
type LedgerSavedMessage struct {
	ID         string    `json:"id"`
	Location   string    `json:"location"`
	Rows       int       `json:"rows"`
	TotalCents int64     `json:"total_cents"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewLedgerSavedMessage(location string, rows int, total core.Money) *LedgerSavedMessage {
	return &LedgerSavedMessage{
		ID:         uuid.NewString(),
		Location:   location,
		Rows:       rows,
		TotalCents: total.Cents,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
