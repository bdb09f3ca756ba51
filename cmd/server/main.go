// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ponto-intake/internal/common/config"
	"ponto-intake/internal/common/database"
	"ponto-intake/internal/common/logger"
	"ponto-intake/internal/mail"
	"ponto-intake/internal/notify"
	"ponto-intake/internal/server"
	"ponto-intake/internal/store"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting adjustment intake service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx := context.Background()

	st := buildStore(cfg, log, zapLog)
	transport := buildTransport(ctx, cfg, log, zapLog)
	notifier := notify.NewComposer(transport, cfg.Notifications.HREmail, cfg.Mail.FromEmail, log)

	handler := server.New(st, notifier, log, cfg.Server.AllowedOrigins)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLog.Info("Server exited")
}

// buildStore selects the persistence backend and, for PostgreSQL, applies
// pending migrations when the connection target is configured. A missing
// target is not fatal here: the gateway reports it per request.
func buildStore(cfg *config.Config, log logger.Logger, zapLog *zap.Logger) store.Store {
	switch cfg.Storage.Backend {
	case config.StorageBackendSpreadsheet:
		zapLog.Info("using spreadsheet store",
			zap.String("path", cfg.Storage.Spreadsheet.Path),
			zap.String("sheet", cfg.Storage.Spreadsheet.Sheet),
		)
		return store.NewSpreadsheetStore(cfg.Storage.Spreadsheet.Path, cfg.Storage.Spreadsheet.Sheet, log)

	default:
		dsn := cfg.Storage.Postgres.DSN()
		if dsn == "" {
			zapLog.Warn("DATABASE_URL not configured, storage routes will fail until it is set")
			return store.NewPostgresStore(dsn, log)
		}

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := database.NewPostgres(dsn)
		if err != nil {
			zapLog.Fatal("postgres open failed", zap.Error(err))
		}
		defer client.Close()

		if err := client.Ping(migrateCtx); err != nil {
			zapLog.Fatal("postgres ping failed", zap.Error(err))
		}
		if err := client.RunMigrations(migrateCtx, "./migrations"); err != nil {
			zapLog.Fatal("migrations failed", zap.Error(err))
		}
		zapLog.Info("PostgreSQL connected, migrations applied")

		return store.NewPostgresStore(dsn, log)
	}
}

func buildTransport(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) mail.Transport {
	switch cfg.Mail.Provider {
	case config.MailProviderSES:
		transport, err := mail.NewSESTransport(ctx, cfg.Mail.SES.Region, log)
		if err != nil {
			zapLog.Fatal("SES transport init failed", zap.Error(err))
		}
		zapLog.Info("using SES mail transport", zap.String("region", cfg.Mail.SES.Region))
		return transport

	default:
		zapLog.Info("using SMTP mail transport",
			zap.String("host", cfg.Mail.SMTP.Host),
			zap.Int("port", cfg.Mail.SMTP.Port),
		)
		return mail.NewSMTPTransport(cfg.Mail.SMTP, log)
	}
}
