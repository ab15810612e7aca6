package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ganot/squadboard/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	selectSquads       = `SELECT id, squad_name FROM pic_squad`
	selectStatuses     = `SELECT id, status_name FROM status`
	selectComplexities = `SELECT id, complexity_level FROM complexity`
	selectEngineers    = `
		SELECT user_ad, name, vendor, email, phone, pic_squad_id, created_at
		FROM engineer
	`
	selectProjects = `
		SELECT register_code, project_app, tanggal_migrasi, status_id, complexity_id,
			total_bp, scenario, remark, pic, pic_squad_id
		FROM projects
	`
	selectAssignments = `SELECT register_code, user_ad FROM project_engineers`
)

// SnapshotRepository implements repository.SnapshotRepository over SQL
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// LoadSnapshot reads all six collections inside one transaction so the
// aggregation sees a consistent view.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, r.db.snapshotTxOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		squads       []squadRow
		statuses     []statusRow
		complexities []complexityRow
		engineers    []engineerRow
		projects     []projectRow
		assignments  []assignmentRow
	)

	reads := []struct {
		name  string
		dest  any
		query string
	}{
		{"squads", &squads, selectSquads},
		{"statuses", &statuses, selectStatuses},
		{"complexities", &complexities, selectComplexities},
		{"engineers", &engineers, selectEngineers},
		{"projects", &projects, selectProjects},
		{"assignments", &assignments, selectAssignments},
	}
	for _, read := range reads {
		if err := sqlx.SelectContext(ctx, tx, read.dest, read.query); err != nil {
			return nil, fmt.Errorf("failed to select %s: %w", read.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	snap := &entity.Snapshot{
		ID:           uuid.NewString(),
		LoadedAt:     time.Now().UTC(),
		Engineers:    make([]entity.Engineer, 0, len(engineers)),
		Squads:       make([]entity.Squad, 0, len(squads)),
		Statuses:     make([]entity.Status, 0, len(statuses)),
		Complexities: make([]entity.Complexity, 0, len(complexities)),
		Projects:     make([]entity.Project, 0, len(projects)),
		Assignments:  make([]entity.Assignment, 0, len(assignments)),
	}
	for _, row := range squads {
		snap.Squads = append(snap.Squads, entity.Squad{ID: row.ID, Name: row.Name})
	}
	for _, row := range statuses {
		snap.Statuses = append(snap.Statuses, entity.Status{ID: row.ID, Name: row.Name})
	}
	for _, row := range complexities {
		snap.Complexities = append(snap.Complexities, entity.Complexity{ID: row.ID, Level: row.Level})
	}
	for _, row := range engineers {
		snap.Engineers = append(snap.Engineers, row.entity())
	}
	for _, row := range projects {
		snap.Projects = append(snap.Projects, row.entity())
	}
	for _, row := range assignments {
		snap.Assignments = append(snap.Assignments, entity.Assignment{ProjectCode: row.ProjectCode, EngineerID: row.EngineerID})
	}

	return snap, nil
}

// ListSquads returns every squad
func (r *SnapshotRepository) ListSquads(ctx context.Context) ([]entity.Squad, error) {
	var rows []squadRow
	if err := r.db.SelectContext(ctx, &rows, selectSquads); err != nil {
		return nil, fmt.Errorf("failed to list squads: %w", err)
	}

	squads := make([]entity.Squad, 0, len(rows))
	for _, row := range rows {
		squads = append(squads, entity.Squad{ID: row.ID, Name: row.Name})
	}
	return squads, nil
}
