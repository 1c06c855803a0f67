package ledger

import "expensetracker/internal/core"

// SampleEntries returns one demo expense per category, dated the first week
// of July 2025.
func SampleEntries() []core.Expense {
	amounts := []int64{200, 150, 5000, 320, 600, 700, 120}
	out := make([]core.Expense, len(core.Categories))
	for i, c := range core.Categories {
		out[i] = core.Expense{
			Date:     core.NewDate(2025, 7, i+1),
			Amount:   core.Money{Cents: amounts[i] * 100},
			Category: c.Label,
		}
	}
	return out
}
