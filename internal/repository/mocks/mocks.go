package mocks

import (
	"context"

	"github.com/ganot/squadboard/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock for repository.SnapshotRepository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) LoadSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*entity.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) ListSquads(ctx context.Context) ([]entity.Squad, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entity.Squad); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EntityWriter is a mock for repository.EntityWriter.
type EntityWriter struct {
	mock.Mock
}

func (m *EntityWriter) CreateSquad(ctx context.Context, squad *entity.Squad) error {
	args := m.Called(ctx, squad)
	return args.Error(0)
}

func (m *EntityWriter) CreateStatus(ctx context.Context, status *entity.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *EntityWriter) CreateComplexity(ctx context.Context, complexity *entity.Complexity) error {
	args := m.Called(ctx, complexity)
	return args.Error(0)
}

func (m *EntityWriter) CreateEngineer(ctx context.Context, engineer *entity.Engineer) error {
	args := m.Called(ctx, engineer)
	return args.Error(0)
}

func (m *EntityWriter) CreateProject(ctx context.Context, project *entity.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *EntityWriter) CreateAssignment(ctx context.Context, assignment *entity.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *EntityWriter) CountEngineers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
