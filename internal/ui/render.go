package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"expensetracker/internal/core"
)

const reportRule = "-------------------------"

// Renderer turns ledger values into styled text. It holds only the output
// profile and currency symbol; the theme is passed into every call.
type Renderer struct {
	r      *lipgloss.Renderer
	symbol string
}

// NewRenderer detects the color profile of w.
func NewRenderer(w io.Writer, symbol string) *Renderer {
	return &Renderer{r: lipgloss.NewRenderer(w), symbol: symbol}
}

// Table renders the ledger as Date / Amount / Category rows in ledger order.
func (v *Renderer) Table(theme Theme, entries []core.Expense) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Date.String(), e.Amount.Format(v.symbol), categoryCell(e.Category)})
	}

	header := v.r.NewStyle().Bold(true).Padding(0, 1).
		Foreground(theme.HeaderFg).Background(theme.HeaderBg)
	cell := v.r.NewStyle().Padding(0, 1).Foreground(theme.Text)
	amount := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.r.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 1:
				return amount
			default:
				return cell
			}
		}).
		Headers("Date", "Amount", "Category").
		Rows(rows...)
	return t.String()
}

// TotalLine renders the running total.
func (v *Renderer) TotalLine(theme Theme, total core.Money) string {
	return v.r.NewStyle().Bold(true).Foreground(theme.Accent).
		Render("Total: " + total.Format(v.symbol))
}

// Report renders the final report, or "No data available" when empty.
func (v *Renderer) Report(theme Theme, report core.Report) string {
	return v.r.NewStyle().Foreground(theme.Text).Render(ReportText(report, v.symbol))
}

// Notice renders an informational message.
func (v *Renderer) Notice(theme Theme, msg string) string {
	return v.r.NewStyle().Foreground(theme.Muted).Render(msg)
}

// Alert renders an error message.
func (v *Renderer) Alert(theme Theme, msg string) string {
	return v.r.NewStyle().Bold(true).Foreground(theme.Danger).Render(msg)
}

// Categories lists the enumeration with its selection numbers and icons.
func (v *Renderer) Categories(theme Theme) string {
	var b strings.Builder
	for i, c := range core.Categories {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
	}
	return v.r.NewStyle().Foreground(theme.Text).Render(strings.TrimRight(b.String(), "\n"))
}

// ReportText is the unstyled final report.
func ReportText(report core.Report, symbol string) string {
	if report.Empty() {
		return "No data available"
	}
	var b strings.Builder
	b.WriteString("FINAL EXPENSE REPORT\n\n")
	for _, line := range report.Lines {
		fmt.Fprintf(&b, "%s : %s (%d entries)\n", line.Category, line.Subtotal.Format(symbol), line.Count)
	}
	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("TOTAL SPENT : " + report.Total.Format(symbol))
	return b.String()
}

// categoryCell decorates enumerated labels with their icon; foreign labels
// are shown as stored.
func categoryCell(label string) string {
	if c, ok := core.LookupCategory(label); ok && c.Label == label {
		return c.String()
	}
	return label
}
