package testserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/ganot/squadboard/internal/domain/metrics"
	"github.com/ganot/squadboard/internal/fixture"
	"github.com/ganot/squadboard/internal/mcp"
	"github.com/ganot/squadboard/internal/store"
	"github.com/ganot/squadboard/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is an HTTP server over a seeded in-memory store.
type TestServer struct {
	Server  *httptest.Server
	DB      *store.DB
	Service *metrics.Service
}

// New seeds an in-memory SQLite store with dataset and serves the HTTP API
// and MCP endpoint over it. A nil dataset leaves the store empty.
func New(t *testing.T, dataset *fixture.Dataset, opts metrics.Options) *TestServer {
	t.Helper()

	db, err := store.New(store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	if dataset != nil {
		require.NoError(t, fixture.Apply(context.Background(), store.NewWriter(db), dataset))
	}

	svc := metrics.NewService(store.NewSnapshotRepository(db), opts, nil)
	mcpServer := mcp.NewServer(mcp.Config{Service: svc, Version: "test"})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Service: svc,
		MCP:     mcp.NewHTTPHandler(mcpServer),
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Service: svc}
}

// LoadDataset reads a YAML dataset or fails the test.
func LoadDataset(t *testing.T, path string) *fixture.Dataset {
	t.Helper()
	d, err := fixture.LoadFile(path)
	require.NoError(t, err)
	return d
}
