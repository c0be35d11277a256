package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/pratik-mahalle/streamvault/docs"
	"github.com/pratik-mahalle/streamvault/internal/api/handlers"
	"github.com/pratik-mahalle/streamvault/internal/api/router"
	"github.com/pratik-mahalle/streamvault/internal/backup"
	"github.com/pratik-mahalle/streamvault/internal/config"
	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/validator"
	"github.com/pratik-mahalle/streamvault/internal/repository/sqlstore"
	"github.com/pratik-mahalle/streamvault/internal/services"
	"github.com/pratik-mahalle/streamvault/internal/worker"
	"github.com/pratik-mahalle/streamvault/migrations"
)

// @title StreamVault API
// @version 1.0
// @description Record console for streaming-service accounts handed out to clients.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Format: "console"}).ErrorWithErr(err, "Failed to load config")
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"driver":      cfg.Database.Driver,
	}).Info("Starting StreamVault API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		schema, err := migrations.GetFS(cfg.Database.Driver)
		if err != nil {
			log.Fatalf("Failed to load migrations: %v", err)
		}
		if _, err := sqlstore.RunMigrations(ctx, db, cfg.Database.Driver, schema, log); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Repositories
	accountRepo := sqlstore.NewAccountRepository(db, cfg.Database.Driver)

	// Services
	rules := account.Rules{EnforceDateOrder: cfg.Accounts.EnforceDateOrder}
	accountService := services.NewAccountService(accountRepo, validator.New(), rules, log)
	transferService := services.NewTransferService(accountService, log)

	// Background jobs
	scheduler := worker.NewScheduler(log)
	if err := scheduler.Add(cfg.Accounts.ExpiryScanCron, worker.NewExpiryScanner(accountService, log)); err != nil {
		log.Fatalf("Failed to schedule expiry scan: %v", err)
	}

	if cfg.Backup.Enabled() {
		uploader, err := backup.NewS3Uploader(ctx, cfg.Backup)
		if err != nil {
			log.Fatalf("Failed to configure backups: %v", err)
		}
		job := backup.NewJob(transferService, uploader, cfg.Backup.Prefix, log)
		if err := scheduler.Add(cfg.Backup.Schedule, job); err != nil {
			log.Fatalf("Failed to schedule backups: %v", err)
		}
	}

	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Publish the lifecycle gauges before the first tick
	go func() {
		if err := scheduler.RunNow(ctx, worker.ExpiryScanJob); err != nil {
			log.ErrorWithErr(err, "Initial expiry scan failed")
		}
	}()

	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(accountRepo, cfg.Database.Driver, log),
		Account:  handlers.NewAccountHandler(accountService, log),
		Transfer: handlers.NewTransferHandler(transferService, log, cfg.Server.MaxImportBytes),
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}

	log.Info("Server stopped")
}

