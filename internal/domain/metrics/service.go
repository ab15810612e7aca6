package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/squadboard/internal/domain/entity"
)

// Service computes reports from a fresh snapshot on every call. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	repo   Repository
	opts   Options
	logger *slog.Logger
}

// NewService creates a new metrics service.
func NewService(repo Repository, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, opts: opts, logger: logger}
}

// GetEngineerMetrics returns every engineer's metrics ordered by name.
func (s *Service) GetEngineerMetrics(ctx context.Context) ([]EngineerMetrics, error) {
	report, err := s.engineerReport(ctx)
	if err != nil {
		return nil, err
	}
	return report.Engineers, nil
}

// GetProjectSummary returns project summaries ordered by register code along
// with the projects that were excluded for unresolved references.
func (s *Service) GetProjectSummary(ctx context.Context) (ProjectReport, error) {
	_, report, err := s.projectReport(ctx)
	return report, err
}

// GetSquadNames returns distinct squad names in order.
func (s *Service) GetSquadNames(ctx context.Context) ([]string, error) {
	squads, err := s.repo.ListSquads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return SquadNames(squads, s.opts)
}

// GetStatusBreakdown counts summarized projects per status.
func (s *Service) GetStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	snap, report, err := s.projectReport(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStatusBreakdown(snap.Statuses, report), nil
}

// GetSquadDistribution counts engineers per squad.
func (s *Service) GetSquadDistribution(ctx context.Context) ([]SquadCount, error) {
	report, err := s.engineerReport(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeSquadDistribution(report.Engineers), nil
}

// GetTeamOverview returns headline numbers across engineers.
func (s *Service) GetTeamOverview(ctx context.Context) (TeamOverview, error) {
	report, err := s.engineerReport(ctx)
	if err != nil {
		return TeamOverview{}, err
	}
	return ComputeTeamOverview(report.Engineers), nil
}

func (s *Service) engineerReport(ctx context.Context) (EngineerReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return EngineerReport{}, err
	}
	report, err := ComputeEngineerMetrics(snap, s.opts)
	if err != nil {
		return EngineerReport{}, fmt.Errorf("computing engineer metrics: %w", err)
	}
	s.logAnomalies(ctx, snap.ID, "engineer_metrics", report.Anomalies)
	return report, nil
}

func (s *Service) projectReport(ctx context.Context) (*entity.Snapshot, ProjectReport, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, ProjectReport{}, err
	}
	report, err := ComputeProjectSummary(snap, s.opts)
	if err != nil {
		return nil, ProjectReport{}, fmt.Errorf("computing project summary: %w", err)
	}
	s.logAnomalies(ctx, snap.ID, "project_summary", report.Anomalies)
	return snap, report, nil
}

func (s *Service) load(ctx context.Context) (*entity.Snapshot, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	s.logger.DebugContext(ctx, "snapshot loaded",
		"snapshot_id", snap.ID,
		"engineers", len(snap.Engineers),
		"projects", len(snap.Projects),
		"assignments", len(snap.Assignments),
	)
	return snap, nil
}

func (s *Service) logAnomalies(ctx context.Context, snapshotID, view string, anomalies []Anomaly) {
	for _, a := range anomalies {
		s.logger.WarnContext(ctx, "data anomaly",
			"view", view,
			"snapshot_id", snapshotID,
			"kind", a.Kind,
			"entity", a.Entity,
			"key", a.Key,
			"ref", a.Ref,
		)
	}
}
