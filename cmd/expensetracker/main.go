package main

import (
	"context"
	"errors"
	"os"

	"expensetracker/internal/backend"
	"expensetracker/internal/cli"
	"expensetracker/internal/ledger"
	"expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/ui"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(cli.SetupLogger("info"))
	logger := cli.SetupLogger(cfg.LogLevel)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration",
			log.FieldErrorType, log.ErrorTypeConfiguration,
			log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := cli.GracefulShutdown(logger, nil)
	defer cancel()
	ctx = log.NewContext(ctx, logger)

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.StorageBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	opts := append(result.ServiceOptions(),
		services.WithMirrorTimeout(cfg.MirrorTimeout),
		services.WithLogger(logger))
	svc := services.NewLedgerService(ledger.New(), result.Store, opts...)
	svc.Load(ctx)

	console := ui.NewConsole(svc, os.Stdin, os.Stdout, ui.Options{
		Theme:          ui.ThemeByName(cfg.Theme),
		CurrencySymbol: cfg.CurrencySymbol,
		ChartFile:      cfg.ReportChartFile,
		ChartWidth:     cfg.ChartWidth,
		ChartHeight:    cfg.ChartHeight,
		Logger:         logger,
	})

	logger.Info("Starting expense tracker",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.StorageBackend,
		log.FieldPath, svc.Location())

	done := make(chan error, 1)
	go func() { done <- console.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Console stopped", log.FieldError, err)
		}
	case <-ctx.Done():
	}
	logger.Info("Expense tracker stopped", log.FieldOperation, log.OpShutdown)
}
