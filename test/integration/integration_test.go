package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/ganot/squadboard/internal/domain/metrics"
	"github.com/ganot/squadboard/internal/fixture"
	"github.com/ganot/squadboard/internal/store"
	"github.com/stretchr/testify/require"
)

const sampleDatasetPath = "../../internal/fixture/testdata/sample.yaml"

type testEnv struct {
	db  *store.DB
	svc *metrics.Service
}

func newTestEnv(t *testing.T, driver, dsn string, opts metrics.Options) *testEnv {
	t.Helper()
	db, err := store.New(driver, dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	dataset, err := fixture.LoadFile(sampleDatasetPath)
	require.NoError(t, err)
	seeded, err := fixture.SeedIfEmpty(context.Background(), store.NewWriter(db), dataset)
	require.NoError(t, err)
	require.True(t, seeded)

	return &testEnv{
		db:  db,
		svc: metrics.NewService(store.NewSnapshotRepository(db), opts, nil),
	}
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEngineerMetrics_EndToEnd(t *testing.T) {
	env := newTestEnv(t, store.DriverSQLite, ":memory:", metrics.Options{})
	ctx := context.Background()

	rows, err := env.svc.GetEngineerMetrics(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byName := map[string]metrics.EngineerMetrics{}
	for _, r := range rows {
		byName[r.Name] = r
	}

	ayu := byName["Ayu"]
	require.Equal(t, "Payments", ayu.SquadName)
	require.Equal(t, 3, ayu.TotalProjects)
	require.Equal(t, 2, ayu.TotalProjectsAsPIC)
	require.Equal(t, 2, ayu.TotalProjectsAsEngineer)
	require.Equal(t, 2, ayu.CompletedProjects)
	require.Equal(t, 66.67, ayu.Performance)

	budi := byName["Budi"]
	require.Zero(t, budi.TotalProjects)
	require.Equal(t, 100, budi.Efficiency)

	citra := byName["Citra"]
	require.Equal(t, 33.33, citra.Performance)
}

func TestProjectSummary_EndToEnd(t *testing.T) {
	env := newTestEnv(t, store.DriverSQLite, ":memory:", metrics.Options{})

	report, err := env.svc.GetProjectSummary(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Anomalies)

	var codes, engineers []string
	for _, p := range report.Projects {
		codes = append(codes, p.RegisterCode)
		engineers = append(engineers, p.Engineers)
	}
	require.Equal(t, []string{"P1", "P2", "P3", "P4"}, codes)
	require.Equal(t, []string{"Citra", "Ayu", "Ayu, Citra", "N/A"}, engineers)
	require.Equal(t, "2025-01-15", report.Projects[0].MigrationDate.UTC().Format("2006-01-02"))
}

func TestProjectSummary_DanglingReferences(t *testing.T) {
	env := newTestEnv(t, store.DriverSQLite, ":memory:", metrics.Options{})
	ctx := context.Background()

	_, err := env.db.ExecContext(ctx, `
		INSERT INTO projects (register_code, project_app, status_id, complexity_id, total_bp, scenario, remark, pic, pic_squad_id)
		VALUES ('P9', 'Orphan', 99, 1, 0, '', '', 'e1', 1)
	`)
	require.NoError(t, err)
	_, err = env.db.ExecContext(ctx, `INSERT INTO project_engineers (register_code, user_ad) VALUES ('P9', 'e2'), ('PX', 'e2')`)
	require.NoError(t, err)

	report, err := env.svc.GetProjectSummary(ctx)
	require.NoError(t, err)
	require.Len(t, report.Projects, 4)
	require.Equal(t, []metrics.Anomaly{
		{Kind: metrics.AnomalyUnknownProject, Entity: "assignment", Key: "e2", Ref: "PX"},
		{Kind: metrics.AnomalyUnknownStatus, Entity: "project", Key: "P9", Ref: "99"},
	}, report.Anomalies)

	// P9 still exists as a project, so it counts toward the engineers' sets.
	rows, err := env.svc.GetEngineerMetrics(ctx)
	require.NoError(t, err)
	for _, r := range rows {
		switch r.Name {
		case "Ayu":
			require.Equal(t, 4, r.TotalProjects)
			require.Equal(t, 3, r.TotalProjectsAsPIC)
		case "Budi":
			require.Equal(t, 1, r.TotalProjects)
			require.Equal(t, 1, r.TotalProjectsAsEngineer)
		}
	}
}

func TestAggregates_EndToEnd(t *testing.T) {
	env := newTestEnv(t, store.DriverSQLite, ":memory:", metrics.Options{})
	ctx := context.Background()

	names, err := env.svc.GetSquadNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Core Banking", "Payments"}, names)

	breakdown, err := env.svc.GetStatusBreakdown(ctx)
	require.NoError(t, err)
	require.Equal(t, []metrics.StatusCount{
		{StatusID: 1, StatusName: "Preparation", Count: 1},
		{StatusID: 2, StatusName: "Execution", Count: 1},
		{StatusID: 3, StatusName: "Documentation", Count: 2},
	}, breakdown)

	overview, err := env.svc.GetTeamOverview(ctx)
	require.NoError(t, err)
	require.Equal(t, metrics.TeamOverview{TotalEngineers: 3, ActiveEngineers: 2, AveragePerformance: 33.3}, overview)
}

func TestConcurrentReads(t *testing.T) {
	env := newTestEnv(t, store.DriverSQLite, ":memory:", metrics.Options{Locale: "id"})
	ctx := context.Background()

	want, err := env.svc.GetEngineerMetrics(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	results := make(chan []metrics.EngineerMetrics, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := env.svc.GetEngineerMetrics(ctx)
			if err != nil {
				errs <- err
				return
			}
			results <- rows
		}()
	}
	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		require.NoError(t, err)
	}
	for rows := range results {
		require.Equal(t, want, rows)
	}
}

func TestStoreUnavailable(t *testing.T) {
	env := newTestEnv(t, store.DriverSQLite, ":memory:", metrics.Options{})
	require.NoError(t, env.db.Close())

	_, err := env.svc.GetEngineerMetrics(context.Background())
	require.ErrorIs(t, err, metrics.ErrStoreUnavailable)
}

// TestPostgres runs the sample against a live PostgreSQL when
// SQUADBOARD_TEST_PG_DSN is set. The database must be empty.
func TestPostgres(t *testing.T) {
	dsn := os.Getenv("SQUADBOARD_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("SQUADBOARD_TEST_PG_DSN not set")
	}
	env := newTestEnv(t, store.DriverPostgres, dsn, metrics.Options{})
	t.Cleanup(func() {
		_, _ = env.db.Exec(`DROP TABLE IF EXISTS project_engineers, projects, engineer, complexity, status, pic_squad`)
	})

	rows, err := env.svc.GetEngineerMetrics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, 66.67, rows[0].Performance)

	report, err := env.svc.GetProjectSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Projects, 4)
}
