package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"expensetracker/internal/charts"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/services"
)

// Ledger is the part of the ledger service the console drives.
type Ledger interface {
	AddEntry(ctx context.Context, amountText, category string) (core.Expense, error)
	AddSample(ctx context.Context) int
	Save(ctx context.Context) (services.SaveResult, error)
	Report() core.Report
	Total() core.Money
	Entries() []core.Expense
}

var _ Ledger = (*services.LedgerService)(nil)

// Options configures a Console.
type Options struct {
	Theme          Theme
	CurrencySymbol string
	ChartFile      string
	ChartWidth     int
	ChartHeight    int
	Logger         *log.Logger
}

// Console is a line-oriented terminal front end. Each command maps onto one
// ledger operation.
type Console struct {
	ledger Ledger
	in     *bufio.Scanner
	out    io.Writer
	view   *Renderer
	theme  Theme
	opts   Options
	logger *log.Logger
}

func NewConsole(l Ledger, in io.Reader, out io.Writer, opts Options) *Console {
	if opts.Theme.Name == "" {
		opts.Theme = Light()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "₹"
	}
	if opts.ChartFile == "" {
		opts.ChartFile = "expenses_report.png"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Console{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
		view:   NewRenderer(out, opts.CurrencySymbol),
		theme:  opts.Theme,
		opts:   opts,
		logger: logger.WithComponent(log.ComponentUI),
	}
}

// Theme returns the theme currently in use.
func (c *Console) Theme() Theme { return c.theme }

// Run shows the ledger, then reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.println("Expense Tracker. Type 'help' for commands.")
	c.showLedger()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}
		if quit := c.Execute(ctx, c.in.Text()); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the session should end.
func (c *Console) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	c.logger.DebugContext(ctx, "Command received", log.FieldCommand, cmd)

	switch cmd {
	case "add", "a":
		c.add(ctx, args)
	case "list", "ls":
		c.showLedger()
	case "save", "s":
		c.save(ctx)
	case "report", "r":
		c.println(c.view.Report(c.theme, c.ledger.Report()))
	case "theme", "t":
		c.theme = c.theme.Toggle()
		c.logger.DebugContext(ctx, "Theme switched", log.FieldTheme, c.theme.Name)
		c.println(c.view.Notice(c.theme, "Theme: "+c.theme.Name))
		c.showLedger()
	case "chart":
		c.chart(ctx, args)
	case "categories", "cats":
		c.println(c.view.Categories(c.theme))
	case "sample":
		n := c.ledger.AddSample(ctx)
		c.println(c.view.Notice(c.theme, fmt.Sprintf("Added %d sample entries", n)))
		c.showLedger()
	case "help", "h", "?":
		c.println(helpText)
	case "quit", "exit", "q":
		return true
	default:
		c.println(c.view.Alert(c.theme, fmt.Sprintf("Unknown command %q. Type 'help' for commands.", cmd)))
	}
	return false
}

func (c *Console) add(ctx context.Context, args []string) {
	if len(args) < 2 {
		c.println(c.view.Alert(c.theme, "Usage: add <amount> <category>"))
		c.println(c.view.Categories(c.theme))
		return
	}
	amount, category := args[0], resolveCategory(strings.Join(args[1:], " "))

	for {
		e, err := c.ledger.AddEntry(ctx, amount, category)
		switch {
		case err == nil:
			c.println(c.view.Notice(c.theme, fmt.Sprintf("Added %s %s on %s",
				e.Amount.Format(c.opts.CurrencySymbol), e.Category, e.Date)))
			if line, ok := c.ledger.Report().Line(e.Category); ok {
				c.println(c.view.Notice(c.theme, fmt.Sprintf("%s so far: %s in %d entries",
					line.Category, line.Subtotal.Format(c.opts.CurrencySymbol), line.Count)))
			}
			c.println(c.view.TotalLine(c.theme, c.ledger.Total()))
			return
		case errors.Is(err, core.ErrInvalidAmount):
			c.println(c.view.Alert(c.theme, "Enter valid amount"))
			next, ok := c.prompt("Amount (blank to cancel): ")
			if !ok || next == "" {
				return
			}
			amount = next
		case errors.Is(err, core.ErrInvalidCategory):
			c.println(c.view.Alert(c.theme, fmt.Sprintf("Unknown category %q. Choose one of: %s",
				category, strings.Join(core.CategoryLabels(), ", "))))
			c.println(c.view.Categories(c.theme))
			return
		default:
			c.println(c.view.Alert(c.theme, err.Error()))
			return
		}
	}
}

func (c *Console) save(ctx context.Context) {
	res, err := c.ledger.Save(ctx)
	if err != nil {
		c.println(c.view.Alert(c.theme, "Error saving: "+err.Error()))
		return
	}
	c.println(c.view.Notice(c.theme, fmt.Sprintf("Saved %d entries to %s", res.Rows, res.Location)))
	if res.MirrorErr != nil {
		c.println(c.view.Alert(c.theme, "Mirror sync failed: "+res.MirrorErr.Error()))
	}
}

func (c *Console) chart(ctx context.Context, args []string) {
	path := c.opts.ChartFile
	if len(args) > 0 {
		path = args[0]
	}
	img, err := charts.RenderCategoryBars(c.ledger.Report(), c.opts.ChartWidth, c.opts.ChartHeight, c.opts.CurrencySymbol)
	if errors.Is(err, charts.ErrNoData) {
		c.println(c.view.Notice(c.theme, "No data available"))
		return
	}
	if err == nil {
		err = os.WriteFile(path, img, 0644)
	}
	logger := c.logger.WithComponent(log.ComponentCharts)
	if err != nil {
		logger.WarnContext(ctx, "Chart export failed", log.FieldOperation, log.OpReport, log.FieldPath, path, log.FieldError, err)
		c.println(c.view.Alert(c.theme, "Error writing chart: "+err.Error()))
		return
	}
	logger.InfoContext(ctx, "Chart written", log.FieldPath, path, log.FieldSuccess, true)
	c.println(c.view.Notice(c.theme, "Chart written to "+path))
}

func (c *Console) showLedger() {
	c.println(c.view.Table(c.theme, c.ledger.Entries()))
	c.println(c.view.TotalLine(c.theme, c.ledger.Total()))
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// resolveCategory accepts a 1-based selection number as well as a label.
func resolveCategory(arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(core.Categories) {
		return core.Categories[n-1].Label
	}
	return arg
}

const helpText = `Commands:
  add <amount> <category>   record an expense (category by name or number)
  list                      show all expenses and the running total
  save                      write the ledger to disk
  report                    show totals per category
  theme                     switch between light and dark
  chart [path]              write a PNG bar chart of the report
  categories                list the categories
  sample                    add the sample data set
  help                      show this help
  quit                      leave without saving`
