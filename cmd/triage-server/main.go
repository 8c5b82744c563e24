package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nhle/email-triage/internal/auth"
	"github.com/nhle/email-triage/internal/ingest"
	"github.com/nhle/email-triage/internal/logging"
	"github.com/nhle/email-triage/internal/server"
	"github.com/nhle/email-triage/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash of the given password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hashing password:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("starting triage server", "addr", cfg.Addr)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *server.Config, logger *slog.Logger) error {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}
	db, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database ready", "path", cfg.DatabasePath)

	accounts, err := auth.LoadAccounts(cfg.AccountsFile)
	if err != nil {
		return err
	}
	creds, err := auth.NewCredentials(accounts)
	if err != nil {
		return err
	}
	logger.Info("accounts loaded", "count", creds.Len())

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ingester server.Ingester
	if cfg.IngestEnabled() {
		fetcher := ingest.NewIMAPFetcher(ingest.IMAPConfig{
			Host:         cfg.IMAPHost,
			Port:         cfg.IMAPPort,
			Username:     cfg.IMAPUser,
			Password:     cfg.IMAPPassword,
			TLS:          cfg.IMAPTLS,
			LookbackDays: cfg.IngestLookbackDays,
			Limit:        cfg.IngestLimit,
		})
		poller := ingest.NewPoller(fetcher, db, cfg.IngestInterval, logger)
		poller.Start(ctx)
		defer poller.Stop()
		ingester = poller
		logger.Info("ingestion enabled", "host", cfg.IMAPHost, "interval", cfg.IngestInterval)
	}

	srv := server.New(server.Deps{
		Store:        db,
		Credentials:  creds,
		Tokens:       tokens,
		Logger:       logger,
		AuthRequired: cfg.AuthRequired,
		Ingest:       ingester,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("listening, press Ctrl+C to stop", "addr", cfg.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
