package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"assetconsole/internal/core/config"
	"assetconsole/internal/core/container"
	"assetconsole/internal/core/logger"
	"assetconsole/internal/core/routes"
	"assetconsole/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func NewServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Env, cfg.LogLevel)
			defer log.Sync()

			migrate, _ := cmd.Flags().GetBool("migrate")
			if migrate && cfg.AuditEnabled() {
				if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, log); err != nil {
					return fmt.Errorf("migrate database: %w", err)
				}
			}

			return serve(cmd.Context(), cfg, log)
		},
	}
	serveCmd.Flags().Bool("migrate", true, "Apply audit log migrations before starting")

	return serveCmd
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	app, err := container.NewAppContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	go app.Registry.Run(ctx)

	server := &http.Server{
		Addr:              cfg.Host,
		Handler:           routes.NewRouter(app),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("assetconsole starting", zap.String("addr", cfg.Host), zap.String("backend", cfg.BackendBaseURL))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return server.Close()
	}

	log.Info("shutdown complete")
	return nil
}
