package backend

import (
	"context"
	"errors"
	"fmt"

	"expensetracker/internal/amqp"
	"expensetracker/internal/log"
	"expensetracker/internal/services"
	gsheet "expensetracker/internal/sheets/google"
	"expensetracker/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend. The primary store must
// come up; the event feed and the Sheets mirror are best effort.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	policy := config.MalformedRows
	if policy == "" {
		policy = storage.SkipMalformed
	}

	var (
		result  = &BackendResult{}
		closers []func() error
	)

	switch config.Type {
	case CSVBackend:
		result.Store = storage.NewCSVStore(config.LedgerFile, config.CurrencySymbol, policy)
	case SQLiteBackend:
		store, err := storage.NewSQLiteStore(config.SQLiteDBPath, policy)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		result.Store = store
		closers = append(closers, store.Close)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	f.logger.InfoContext(ctx, "Initialized primary store",
		log.FieldBackend, config.Type.String(),
		log.FieldPath, result.Store.Location())

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events",
				log.FieldError, err)
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			result.Publisher = client
			closers = append(closers, client.Close)
		}
	}

	if config.GoogleSpreadsheetID != "" {
		mirror, err := gsheet.New(ctx, gsheet.Options{
			SpreadsheetID:   config.GoogleSpreadsheetID,
			SheetName:       config.GoogleSheetName,
			CredentialsFile: config.GoogleServiceAccountFile,
			CredentialsJSON: config.GoogleServiceAccountJSON,
			CurrencySymbol:  config.CurrencySymbol,
		})
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize Google Sheets mirror, continuing without it",
				log.FieldError, err)
		} else {
			f.logger.InfoContext(ctx, "Initialized Google Sheets mirror", log.FieldMirror, mirror.Name())
			result.Mirrors = append(result.Mirrors, mirror)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return result, nil
}

// ServiceOptions turns the optional parts of a backend into service options.
func (r *BackendResult) ServiceOptions() []services.Option {
	var opts []services.Option
	if len(r.Mirrors) > 0 {
		opts = append(opts, services.WithMirrors(r.Mirrors...))
	}
	if r.Publisher != nil {
		opts = append(opts, services.WithPublisher(r.Publisher))
	}
	return opts
}
