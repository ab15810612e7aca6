package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/squadboard/internal/domain/entity"
	"github.com/ganot/squadboard/internal/repository"
)

// Writer implements repository.EntityWriter for SQL
type Writer struct {
	db *DB
}

// NewWriter creates a new Writer
func NewWriter(db *DB) *Writer {
	return &Writer{db: db}
}

// CreateSquad inserts a squad
func (w *Writer) CreateSquad(ctx context.Context, squad *entity.Squad) error {
	if strings.TrimSpace(squad.Name) == "" {
		return fmt.Errorf("squad %d: %w", squad.ID, repository.ErrInvalidInput)
	}
	_, err := w.db.NamedExecContext(ctx,
		`INSERT INTO pic_squad (id, squad_name) VALUES (:id, :squad_name)`,
		squadRow{ID: squad.ID, Name: squad.Name},
	)
	if err != nil {
		return mapWriteError("failed to create squad", err)
	}
	return nil
}

// CreateStatus inserts a project status
func (w *Writer) CreateStatus(ctx context.Context, status *entity.Status) error {
	if strings.TrimSpace(status.Name) == "" {
		return fmt.Errorf("status %d: %w", status.ID, repository.ErrInvalidInput)
	}
	_, err := w.db.NamedExecContext(ctx,
		`INSERT INTO status (id, status_name) VALUES (:id, :status_name)`,
		statusRow{ID: status.ID, Name: status.Name},
	)
	if err != nil {
		return mapWriteError("failed to create status", err)
	}
	return nil
}

// CreateComplexity inserts a complexity level
func (w *Writer) CreateComplexity(ctx context.Context, complexity *entity.Complexity) error {
	if strings.TrimSpace(complexity.Level) == "" {
		return fmt.Errorf("complexity %d: %w", complexity.ID, repository.ErrInvalidInput)
	}
	_, err := w.db.NamedExecContext(ctx,
		`INSERT INTO complexity (id, complexity_level) VALUES (:id, :complexity_level)`,
		complexityRow{ID: complexity.ID, Level: complexity.Level},
	)
	if err != nil {
		return mapWriteError("failed to create complexity", err)
	}
	return nil
}

// CreateEngineer inserts an engineer, stamping CreatedAt when unset
func (w *Writer) CreateEngineer(ctx context.Context, engineer *entity.Engineer) error {
	if strings.TrimSpace(engineer.ID) == "" || strings.TrimSpace(engineer.Name) == "" {
		return fmt.Errorf("engineer %q: %w", engineer.ID, repository.ErrInvalidInput)
	}
	if engineer.CreatedAt.IsZero() {
		engineer.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO engineer (user_ad, name, vendor, email, phone, pic_squad_id, created_at)
		VALUES (:user_ad, :name, :vendor, :email, :phone, :pic_squad_id, :created_at)
	`
	if _, err := w.db.NamedExecContext(ctx, query, newEngineerRow(engineer)); err != nil {
		return mapWriteError("failed to create engineer", err)
	}
	return nil
}

// CreateProject inserts a project
func (w *Writer) CreateProject(ctx context.Context, project *entity.Project) error {
	if strings.TrimSpace(project.RegisterCode) == "" || strings.TrimSpace(project.PICEngineerID) == "" {
		return fmt.Errorf("project %q: %w", project.RegisterCode, repository.ErrInvalidInput)
	}

	query := `
		INSERT INTO projects (
			register_code, project_app, tanggal_migrasi, status_id, complexity_id,
			total_bp, scenario, remark, pic, pic_squad_id
		) VALUES (
			:register_code, :project_app, :tanggal_migrasi, :status_id, :complexity_id,
			:total_bp, :scenario, :remark, :pic, :pic_squad_id
		)
	`
	if _, err := w.db.NamedExecContext(ctx, query, newProjectRow(project)); err != nil {
		return mapWriteError("failed to create project", err)
	}
	return nil
}

// CreateAssignment links a supporting engineer to a project
func (w *Writer) CreateAssignment(ctx context.Context, assignment *entity.Assignment) error {
	if strings.TrimSpace(assignment.ProjectCode) == "" || strings.TrimSpace(assignment.EngineerID) == "" {
		return fmt.Errorf("assignment: %w", repository.ErrInvalidInput)
	}
	_, err := w.db.NamedExecContext(ctx,
		`INSERT INTO project_engineers (register_code, user_ad) VALUES (:register_code, :user_ad)`,
		assignmentRow{ProjectCode: assignment.ProjectCode, EngineerID: assignment.EngineerID},
	)
	if err != nil {
		return mapWriteError("failed to create assignment", err)
	}
	return nil
}

// CountEngineers returns the number of engineer rows
func (w *Writer) CountEngineers(ctx context.Context) (int, error) {
	var n int
	if err := w.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM engineer`); err != nil {
		return 0, fmt.Errorf("failed to count engineers: %w", err)
	}
	return n, nil
}
