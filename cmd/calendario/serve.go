package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfmartins/calendario/internal/calendar"
	"github.com/lfmartins/calendario/internal/config"
	"github.com/lfmartins/calendario/internal/events"
	"github.com/lfmartins/calendario/internal/server"
	"github.com/lfmartins/calendario/internal/store"
	"github.com/lfmartins/calendario/internal/store/file"
	"github.com/lfmartins/calendario/internal/store/postgres"
	calsync "github.com/lfmartins/calendario/internal/sync"
	"github.com/lfmartins/calendario/internal/upload"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calendario HTTP server",
	// Override PersistentPreRunE so we don't build an API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		// Load configuration.
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		// Pick the document store: Postgres when a database URL is set,
		// the flat JSON file otherwise.
		var st store.Store
		if cfg.DatabaseURL != "" {
			st, err = postgres.New(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			logger.Info("using postgres store")
		} else {
			st = file.New(cfg.DataFile)
			logger.Info("using file store", "path", cfg.DataFile)
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (CALENDARIO_NATS_URL not set)")
		}

		// Upload directory is created at startup.
		uploads, err := upload.New(cfg.UploadDir)
		if err != nil {
			publisher.Close()
			st.Close()
			return err
		}

		repo := calendar.New(st)
		calServer := server.New(repo, uploads, publisher)

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: calServer.NewHTTPHandler(),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the backup scheduler if a destination is configured.
		var scheduler *calsync.Scheduler
		if cfg.BackupInterval > 0 && cfg.BackupS3Bucket != "" {
			s3Dest, err := calsync.NewS3Destination(
				context.Background(),
				cfg.BackupS3Bucket,
				cfg.BackupS3Key,
				cfg.BackupS3Region,
				cfg.BackupS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 backup destination", "err", err)
			} else {
				scheduler = calsync.NewScheduler(st, []calsync.Destination{s3Dest}, cfg.BackupInterval, logger)
				scheduler.Start()
				logger.Info("backup scheduler started", "interval", cfg.BackupInterval, "bucket", cfg.BackupS3Bucket)
			}
		}

		logger.Info("calendario server started",
			"http_addr", cfg.HTTPAddr,
			"upload_dir", cfg.UploadDir,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("backup scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&configFile, "config", "", "path to TOML config file")
}
