package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/storeadmin/internal/core"
	_ "github.com/JonMunkholm/storeadmin/internal/core/entities" // Register all entities
	"github.com/JonMunkholm/storeadmin/internal/database"
	"github.com/JonMunkholm/storeadmin/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the back-office HTTP server and blocks until SIGINT or SIGTERM,
then drains in-flight requests for up to SERVER_SHUTDOWN_TIMEOUT.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"db_max_conns", cfg.Database.MaxConns,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"list_cache_enabled", cfg.Cache.Enabled,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		slog.Info("schema applied", "tables", len(database.Tables()))
	}

	var cache *core.ListingCache
	if cfg.Cache.Enabled {
		cache = core.NewListingCache(cfg.Cache.MaxEntries)
	}

	service := core.NewService(core.NewStore(pool), cache)
	slog.Info("entities registered", "count", core.EntityCount())

	server := web.NewServer(service, cache, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
