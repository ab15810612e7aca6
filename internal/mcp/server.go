package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/squadboard/internal/domain/metrics"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReportService defines the report operations exposed as tools.
type ReportService interface {
	GetEngineerMetrics(ctx context.Context) ([]metrics.EngineerMetrics, error)
	GetProjectSummary(ctx context.Context) (metrics.ProjectReport, error)
	GetSquadNames(ctx context.Context) ([]string, error)
	GetStatusBreakdown(ctx context.Context) ([]metrics.StatusCount, error)
	GetSquadDistribution(ctx context.Context) ([]metrics.SquadCount, error)
	GetTeamOverview(ctx context.Context) (metrics.TeamOverview, error)
}

// Config contains server configuration.
type Config struct {
	Service ReportService
	Version string
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "squadboard",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Service, logger)

	return server
}

// NewHTTPHandler serves server over streamable HTTP.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)
}
