package metrics

import (
	"context"

	"github.com/ganot/squadboard/internal/domain/entity"
)

// Repository provides read access to the entity store.
type Repository interface {
	LoadSnapshot(ctx context.Context) (*entity.Snapshot, error)
	ListSquads(ctx context.Context) ([]entity.Squad, error)
}
