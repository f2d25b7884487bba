package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryStore "github.com/MrJamesThe3rd/tally/internal/category/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/tally/internal/expense/store"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	categoryHandler "github.com/MrJamesThe3rd/tally/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	healthHandler "github.com/MrJamesThe3rd/tally/internal/http/health"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/tally/internal/http/matching"
	recurringHandler "github.com/MrJamesThe3rd/tally/internal/http/recurring"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/logging"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
	recurringStore "github.com/MrJamesThe3rd/tally/internal/recurring/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.App.LogLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	if cfg.Server.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Server.SentryDSN}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return err
	}

	var (
		categoryService  = category.NewService(categoryStore.New(db), cfg.Categories.CacheTTL)
		expenseService   = expense.NewService(expenseStore.New(db), categoryService)
		recurringService = recurring.NewService(recurringStore.New(db), categoryService)
		matchingService  = matching.NewService(matchingStore.New(db), categoryService)
		importService    = importer.NewService(matchingService)
		exportService    = export.NewService(expenseService)
	)

	router := tallyHttp.New(tallyHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst:      cfg.Server.RateLimitBurst,
		Sentry:         cfg.Server.SentryDSN != "",
	}, tallyHttp.Handlers{
		Expenses:   expenseHandler.NewHandler(expenseService),
		Import:     importHandler.NewHandler(importService, expenseService),
		Export:     exportHandler.NewHandler(exportService),
		Categories: categoryHandler.NewHandler(categoryService),
		Recurring:  recurringHandler.NewHandler(recurringService),
		Matching:   matchingHandler.NewHandler(matchingService),
		Health:     healthHandler.NewHandler(db, expenseService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		return recurring.NewWorker(recurringService, cfg.Recurring.Interval).Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
