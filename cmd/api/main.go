package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	apphttp "oppscore_backend/internal/http"
	"oppscore_backend/internal/http/router"
	"oppscore_backend/internal/mcp"
	"oppscore_backend/internal/scores"
	"oppscore_backend/internal/scores/domain"
	"oppscore_backend/internal/scores/loader"
	"oppscore_backend/platform/config"
	"oppscore_backend/platform/logger"
	"oppscore_backend/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Lookup Table
	// ========================================================================

	rows, source, err := loadTable(ctx, cfg, log)
	if err != nil {
		log.Error("failed to load lookup table", "error", err, "source", source)
		panic("failed to load lookup table: " + err.Error())
	}
	log.TableLoaded(source, len(rows))

	index := domain.BuildIndex(rows)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	scoresModule := scores.NewModule(index, val, log)
	mcpModule := mcp.NewModule(scoresModule.Service(), val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Table:  index,
		Modules: []apphttp.Module{
			scoresModule,
			mcpModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(app),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

// loadTable reads the score lookup table from its configured source. The
// returned source label is used for logging only.
func loadTable(ctx context.Context, cfg *config.Config, log *logger.Logger) ([]domain.ScoreRecord, string, error) {
	if !cfg.IsObjectSource() {
		rows, err := loader.LoadFile(cfg.GetLookupTablePath())
		return rows, cfg.GetLookupTablePath(), err
	}

	source := cfg.GetLookupTableBucket() + "/" + cfg.GetLookupTableKey()

	client, err := loader.NewMinIOClient(cfg)
	if err != nil {
		return nil, source, err
	}

	var rows []domain.ScoreRecord
	err = withRetry(ctx, log, "fetch lookup table", 5, 2*time.Second, func() error {
		r, err := loader.LoadObject(ctx, client, cfg.GetLookupTableBucket(), cfg.GetLookupTableKey())
		if err != nil {
			return err
		}
		rows = r
		return nil
	})
	return rows, source, err
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
