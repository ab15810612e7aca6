package store

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/squadboard/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func seedSnapshot(t *testing.T, w *Writer) {
	t.Helper()
	ctx := context.Background()

	squadID := int64(1)
	migrated := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, w.CreateSquad(ctx, &entity.Squad{ID: 1, Name: "Payments"}))
	require.NoError(t, w.CreateStatus(ctx, &entity.Status{ID: 1, Name: "Preparation"}))
	require.NoError(t, w.CreateStatus(ctx, &entity.Status{ID: 3, Name: "Documentation"}))
	require.NoError(t, w.CreateComplexity(ctx, &entity.Complexity{ID: 1, Level: "High"}))
	require.NoError(t, w.CreateEngineer(ctx, &entity.Engineer{
		ID: "e1", Name: "Ayu", Vendor: "Acme", Email: "ayu@example.com", Phone: "081", SquadID: &squadID,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}))
	require.NoError(t, w.CreateEngineer(ctx, &entity.Engineer{ID: "e2", Name: "Budi"}))
	require.NoError(t, w.CreateProject(ctx, &entity.Project{
		RegisterCode: "P1", AppName: "Ledger", MigrationDate: &migrated, StatusID: 3, ComplexityID: 1,
		TotalBP: 12, Scenario: "lift", Remark: "ok", PICEngineerID: "e1", SquadID: 1,
	}))
	require.NoError(t, w.CreateProject(ctx, &entity.Project{
		RegisterCode: "P2", AppName: "Wallet", StatusID: 1, ComplexityID: 1, PICEngineerID: "e1", SquadID: 1,
	}))
	require.NoError(t, w.CreateAssignment(ctx, &entity.Assignment{ProjectCode: "P1", EngineerID: "e2"}))
}

func TestSnapshotRepository_LoadSnapshot(t *testing.T) {
	db := NewTestDB(t)
	seedSnapshot(t, NewWriter(db))
	repo := NewSnapshotRepository(db)

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)
	require.False(t, snap.LoadedAt.IsZero())

	require.Len(t, snap.Squads, 1)
	require.Len(t, snap.Statuses, 2)
	require.Len(t, snap.Complexities, 1)
	require.Len(t, snap.Engineers, 2)
	require.Len(t, snap.Projects, 2)
	require.Equal(t, []entity.Assignment{{ProjectCode: "P1", EngineerID: "e2"}}, snap.Assignments)

	idx := entity.NewIndex(snap)
	ayu := idx.Engineers["e1"]
	require.Equal(t, "Ayu", ayu.Name)
	require.NotNil(t, ayu.SquadID)
	require.Equal(t, int64(1), *ayu.SquadID)
	require.True(t, ayu.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.Nil(t, idx.Engineers["e2"].SquadID)

	p1 := idx.Projects["P1"]
	require.Equal(t, "Ledger", p1.AppName)
	require.Equal(t, "e1", p1.PICEngineerID)
	require.Equal(t, int64(12), p1.TotalBP)
	require.NotNil(t, p1.MigrationDate)
	require.Equal(t, "2025-03-14", p1.MigrationDate.Format("2006-01-02"))
	require.Nil(t, idx.Projects["P2"].MigrationDate)
}

func TestSnapshotRepository_EmptyStore(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Engineers)
	require.Empty(t, snap.Projects)
	require.NotNil(t, snap.Engineers)
}

func TestSnapshotRepository_DistinctIDs(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	first, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	second, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestSnapshotRepository_CanceledContext(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadSnapshot(ctx)
	require.Error(t, err)
}

func TestSnapshotRepository_ClosedDB(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.LoadSnapshot(context.Background())
	require.Error(t, err)

	_, err = repo.ListSquads(context.Background())
	require.Error(t, err)
}

func TestSnapshotRepository_ListSquads(t *testing.T) {
	db := NewTestDB(t)
	w := NewWriter(db)
	ctx := context.Background()
	require.NoError(t, w.CreateSquad(ctx, &entity.Squad{ID: 2, Name: "Core"}))
	require.NoError(t, w.CreateSquad(ctx, &entity.Squad{ID: 1, Name: "Payments"}))

	squads, err := NewSnapshotRepository(db).ListSquads(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []entity.Squad{{ID: 1, Name: "Payments"}, {ID: 2, Name: "Core"}}, squads)
}
