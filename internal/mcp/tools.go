package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, svc ReportService, logger *slog.Logger) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_engineer_metrics",
		Description: "Workload and performance per engineer: projects as PIC, as supporting engineer, deduplicated total, completed, ongoing, performance percent",
	}, engineerMetricsHandler(svc, logger))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_summary",
		Description: "Project status rows with status, complexity, PIC, squad and supporting engineers, plus projects excluded for unresolved references",
	}, projectSummaryHandler(svc, logger))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_squad_names",
		Description: "Distinct squad names in name order",
	}, squadNamesHandler(svc, logger))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_status_breakdown",
		Description: "Number of projects per status",
	}, statusBreakdownHandler(svc, logger))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_squad_distribution",
		Description: "Number of engineers per squad, largest first",
	}, squadDistributionHandler(svc, logger))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_team_overview",
		Description: "Total engineers, engineers with ongoing projects, and average performance",
	}, teamOverviewHandler(svc, logger))
}

func engineerMetricsHandler(svc ReportService, logger *slog.Logger) sdkmcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		rows, err := svc.GetEngineerMetrics(ctx)
		if err != nil {
			return nil, nil, toolError(ctx, logger, "get_engineer_metrics", err)
		}
		return nil, EngineerMetricsResult{Engineers: rows}, nil
	}
}

func projectSummaryHandler(svc ReportService, logger *slog.Logger) sdkmcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		report, err := svc.GetProjectSummary(ctx)
		if err != nil {
			return nil, nil, toolError(ctx, logger, "get_project_summary", err)
		}
		return nil, ProjectSummaryResult{Projects: report.Projects, Anomalies: report.Anomalies}, nil
	}
}

func squadNamesHandler(svc ReportService, logger *slog.Logger) sdkmcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		names, err := svc.GetSquadNames(ctx)
		if err != nil {
			return nil, nil, toolError(ctx, logger, "get_squad_names", err)
		}
		return nil, SquadNamesResult{Squads: names}, nil
	}
}

func statusBreakdownHandler(svc ReportService, logger *slog.Logger) sdkmcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		counts, err := svc.GetStatusBreakdown(ctx)
		if err != nil {
			return nil, nil, toolError(ctx, logger, "get_status_breakdown", err)
		}
		return nil, StatusBreakdownResult{Statuses: counts}, nil
	}
}

func squadDistributionHandler(svc ReportService, logger *slog.Logger) sdkmcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		dist, err := svc.GetSquadDistribution(ctx)
		if err != nil {
			return nil, nil, toolError(ctx, logger, "get_squad_distribution", err)
		}
		return nil, SquadDistributionResult{Squads: dist}, nil
	}
}

func teamOverviewHandler(svc ReportService, logger *slog.Logger) sdkmcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		overview, err := svc.GetTeamOverview(ctx)
		if err != nil {
			return nil, nil, toolError(ctx, logger, "get_team_overview", err)
		}
		return nil, TeamOverviewResult{TeamOverview: overview}, nil
	}
}

// toolError logs the underlying cause and returns the mapped error.
func toolError(ctx context.Context, logger *slog.Logger, tool string, err error) error {
	apiErr := MapError(err)
	logger.ErrorContext(ctx, "tool failed", "tool", tool, "code", apiErr.Code, "error", err)
	return apiErr
}
