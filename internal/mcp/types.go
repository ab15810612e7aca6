package mcp

import "github.com/ganot/squadboard/internal/domain/metrics"

// Tool outputs wrap slices so structured content is always a JSON object.

type EngineerMetricsResult struct {
	Engineers []metrics.EngineerMetrics `json:"engineers"`
}

type ProjectSummaryResult struct {
	Projects  []metrics.ProjectSummary `json:"projects"`
	Anomalies []metrics.Anomaly        `json:"anomalies"`
}

type SquadNamesResult struct {
	Squads []string `json:"squads"`
}

type StatusBreakdownResult struct {
	Statuses []metrics.StatusCount `json:"statuses"`
}

type SquadDistributionResult struct {
	Squads []metrics.SquadCount `json:"squads"`
}

type TeamOverviewResult struct {
	metrics.TeamOverview
}
