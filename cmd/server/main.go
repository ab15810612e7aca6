package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ganot/squadboard/internal/config"
	"github.com/ganot/squadboard/internal/domain/metrics"
	"github.com/ganot/squadboard/internal/fixture"
	"github.com/ganot/squadboard/internal/mcp"
	"github.com/ganot/squadboard/internal/store"
	"github.com/ganot/squadboard/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.Log, cfg.Transport.Mode == "stdio")

	err = run(cfg, logger)
	if err != nil {
		logger.Error("server stopped", "error", err)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	opts := metrics.Options{
		CompletedStatus: cfg.Report.CompletedStatus,
		Locale:          cfg.Report.Locale,
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("report options: %w", err)
	}

	if cfg.DB.Driver == store.DriverSQLite {
		if err := ensureDBDir(cfg.DB.Path); err != nil {
			return fmt.Errorf("prepare database path: %w", err)
		}
	}

	db, err := store.New(cfg.DB.Driver, cfg.DB.DataSource())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connected", "driver", db.Driver())

	if cfg.DB.Migrate {
		if err := db.RunMigrations(); err != nil {
			return err
		}
	}

	if cfg.DB.SeedPath != "" {
		if err := seed(ctx, db, cfg.DB.SeedPath, logger); err != nil {
			return err
		}
	}

	svc := metrics.NewService(store.NewSnapshotRepository(db), opts, logger)
	mcpServer := mcp.NewServer(mcp.Config{
		Service: svc,
		Version: version,
		Logger:  logger,
	})

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, mcpServer)
	}

	var mcpHandler http.Handler
	if cfg.Transport.MCPEnabled {
		mcpHandler = mcp.NewHTTPHandler(mcpServer)
	}
	router := transport.NewServer(transport.Config{
		Service:        svc,
		Logger:         logger,
		RequestTimeout: cfg.Server.RequestTimeout,
		MCP:            mcpHandler,
	})
	return runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port)
}

func seed(ctx context.Context, db *store.DB, path string, logger *slog.Logger) error {
	dataset, err := fixture.LoadFile(path)
	if err != nil {
		return err
	}
	seeded, err := fixture.SeedIfEmpty(ctx, store.NewWriter(db), dataset)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	if seeded {
		logger.Info("store seeded", "path", path, "engineers", len(dataset.Engineers), "projects", len(dataset.Projects))
	} else {
		logger.Info("store already populated, seed skipped", "path", path)
	}
	return nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
