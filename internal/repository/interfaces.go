package repository

import (
	"context"

	"github.com/ganot/squadboard/internal/domain/entity"
)

// SnapshotRepository reads the entity collections.
type SnapshotRepository interface {
	LoadSnapshot(ctx context.Context) (*entity.Snapshot, error)
	ListSquads(ctx context.Context) ([]entity.Squad, error)
}

// EntityWriter inserts entity rows. It is used for seeding; the aggregation
// views never write.
type EntityWriter interface {
	CreateSquad(ctx context.Context, squad *entity.Squad) error
	CreateStatus(ctx context.Context, status *entity.Status) error
	CreateComplexity(ctx context.Context, complexity *entity.Complexity) error
	CreateEngineer(ctx context.Context, engineer *entity.Engineer) error
	CreateProject(ctx context.Context, project *entity.Project) error
	CreateAssignment(ctx context.Context, assignment *entity.Assignment) error
	CountEngineers(ctx context.Context) (int, error)
}
