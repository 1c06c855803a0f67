package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

const (
	maxConcurrentMirrors  = 4
	defaultPublishTimeout = 2 * time.Second
)

// LedgerService orchestrates one session: the in-memory ledger, its primary
// store, and the optional mirrors and event feed.
type LedgerService struct {
	ledger        *ledger.Ledger
	store         storage.Store
	mirrors       []Mirror
	publisher     EventPublisher
	mirrorTimeout  time.Duration
	publishTimeout time.Duration
	logger         *log.Logger
}

// Option configures a LedgerService.
type Option func(*LedgerService)

func WithMirrors(mirrors ...Mirror) Option {
	return func(s *LedgerService) {
		s.mirrors = append(s.mirrors, mirrors...)
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *LedgerService) {
		s.publisher = p
	}
}

func WithMirrorTimeout(d time.Duration) Option {
	return func(s *LedgerService) {
		s.mirrorTimeout = d
	}
}

// WithPublishTimeout bounds each event publish so a dead broker cannot stall
// the console.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *LedgerService) {
		s.publishTimeout = d
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *LedgerService) {
		s.logger = l
	}
}

func NewLedgerService(l *ledger.Ledger, store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		ledger:         l,
		store:          store,
		mirrorTimeout:  30 * time.Second,
		publishTimeout: defaultPublishTimeout,
		logger:         log.New(log.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(log.ComponentLedger)
	return s
}

// SaveResult summarizes a successful save.
type SaveResult struct {
	Location string
	Rows     int
	// MirrorErr joins every mirror failure; the primary save still succeeded.
	MirrorErr error
}

// Load fills the ledger from the primary store and returns how many entries
// were restored. Problems are logged and swallowed: the session continues
// with whatever parsed.
func (s *LedgerService) Load(ctx context.Context) int {
	entries, err := s.store.Load(ctx)
	kept := s.ledger.Restore(entries)

	foreign := 0
	for _, e := range entries {
		if e.Validate() != nil {
			foreign++
		}
	}

	args := []any{
		log.FieldOperation, log.OpLoad,
		log.FieldPath, s.store.Location(),
		log.FieldRows, kept,
		log.FieldSkipped, len(entries) - kept,
	}
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "Ledger loaded with problems",
			append(args, log.FieldErrorType, log.ErrorTypePersistence, log.FieldError, err)...)
	case kept < len(entries):
		s.logger.WarnContext(ctx, "Ledger loaded with unusable amounts", args...)
	default:
		s.logger.InfoContext(ctx, "Ledger loaded", args...)
	}
	if foreign > 0 {
		s.logger.WarnContext(ctx, "Ledger holds records outside the category list or with invalid fields",
			log.FieldOperation, log.OpLoad,
			log.FieldErrorType, log.ErrorTypeValidation,
			log.FieldRows, foreign)
	}
	return kept
}

// AddEntry parses the amount text, appends the expense and announces it.
func (s *LedgerService) AddEntry(ctx context.Context, amountText, category string) (core.Expense, error) {
	e, err := s.ledger.AddText(amountText, category)
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected expense",
			log.FieldOperation, log.OpAdd,
			log.FieldErrorType, log.ErrorTypeValidation,
			log.FieldError, err)
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense added",
		log.NewFields().WithOperation(log.OpAdd).WithExpense(e.Date.String(), e.Amount.Cents, e.Category).ToSlice()...)

	if s.publisher != nil {
		s.publish(ctx, "expense event", func(ctx context.Context) error {
			return s.publisher.PublishExpenseAdded(ctx, e)
		})
	}
	return e, nil
}

// AddSample appends the demo data set.
func (s *LedgerService) AddSample(ctx context.Context) int {
	n := s.ledger.Restore(ledger.SampleEntries())
	s.logger.InfoContext(ctx, "Sample data added", log.FieldRows, n)
	return n
}

// Save writes the ledger to the primary store, then fans out to mirrors.
// Only a primary store failure is returned as an error.
func (s *LedgerService) Save(ctx context.Context) (SaveResult, error) {
	entries := s.ledger.Entries()
	if err := s.store.Save(ctx, entries); err != nil {
		fields := log.NewFields().
			WithOperation(log.OpSave).
			WithErrorType(log.ErrorTypePersistence).
			WithError(err)
		fields[log.FieldPath] = s.store.Location()
		s.logger.ErrorContext(ctx, "Failed to save ledger", fields.ToSlice()...)
		return SaveResult{}, err
	}

	res := SaveResult{Location: s.store.Location(), Rows: len(entries)}
	total := core.BuildReport(entries).Total
	s.logger.InfoContext(ctx, "Ledger saved",
		log.FieldOperation, log.OpSave,
		log.FieldPath, res.Location,
		log.FieldRows, res.Rows,
		log.FieldTotalCents, total.Cents)

	res.MirrorErr = s.exportMirrors(ctx, entries)

	if s.publisher != nil {
		s.publish(ctx, "save event", func(ctx context.Context) error {
			return s.publisher.PublishLedgerSaved(ctx, res.Location, res.Rows, total)
		})
	}
	return res, nil
}

// publish runs one event publish under publishTimeout and logs failures.
func (s *LedgerService) publish(ctx context.Context, what string, fn func(context.Context) error) {
	if s.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.publishTimeout)
		defer cancel()
	}
	if err := fn(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish "+what,
			log.FieldOperation, log.OpPublish,
			log.FieldErrorType, log.ErrorTypeNetwork,
			log.FieldError, err)
	}
}

func (s *LedgerService) exportMirrors(ctx context.Context, entries []core.Expense) error {
	if len(s.mirrors) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.mirrorTimeout)
	defer cancel()

	errs := make([]error, len(s.mirrors))
	var g errgroup.Group
	g.SetLimit(maxConcurrentMirrors)
	for i, m := range s.mirrors {
		i, m := i, m
		g.Go(func() error {
			start := time.Now()
			if err := m.Export(ctx, entries); err != nil {
				errs[i] = fmt.Errorf("%s: %w", m.Name(), err)
				s.logger.WarnContext(ctx, "Mirror export failed",
					log.FieldOperation, log.OpMirror,
					log.FieldMirror, m.Name(),
					log.FieldSuccess, false,
					log.FieldErrorType, log.ErrorTypeNetwork,
					log.FieldError, err)
				return nil
			}
			s.logger.DebugContext(ctx, "Mirror export done",
				log.FieldOperation, log.OpMirror,
				log.FieldMirror, m.Name(),
				log.FieldSuccess, true,
				log.FieldDuration, time.Since(start).Milliseconds())
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Total is the running total of the ledger.
func (s *LedgerService) Total() core.Money {
	return s.ledger.Total()
}

// Report groups the ledger by category.
func (s *LedgerService) Report() core.Report {
	return s.ledger.ReportByCategory()
}

// Entries returns the ledger in display order.
func (s *LedgerService) Entries() []core.Expense {
	return s.ledger.Entries()
}

// Location describes the primary store.
func (s *LedgerService) Location() string {
	return s.store.Location()
}
