package functional_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/squadboard/internal/domain/metrics"
	"github.com/ganot/squadboard/internal/mcp"
	"github.com/ganot/squadboard/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func connectHTTP(t *testing.T, ts *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decode[T any](t *testing.T, value any) T {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestMCP_StreamableHTTP(t *testing.T) {
	ts := testserver.New(t, testserver.LoadDataset(t, sampleDatasetPath), metrics.Options{})
	session := connectHTTP(t, ts)
	ctx := context.Background()

	require.Equal(t, "squadboard", session.InitializeResult().ServerInfo.Name)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_project_summary", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	summary := decode[mcp.ProjectSummaryResult](t, res.StructuredContent)
	require.Len(t, summary.Projects, 4)
	require.Empty(t, summary.Anomalies)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_team_overview", Arguments: map[string]any{}})
	require.NoError(t, err)
	overview := decode[mcp.TeamOverviewResult](t, res.StructuredContent)
	require.Equal(t, 3, overview.TotalEngineers)
	require.Equal(t, 33.3, overview.AveragePerformance)
}

func TestMCP_ToolErrorOnMissingCompletedStatus(t *testing.T) {
	ts := testserver.New(t, testserver.LoadDataset(t, sampleDatasetPath), metrics.Options{CompletedStatus: "Closed"})
	session := connectHTTP(t, ts)

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "get_engineer_metrics", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.True(t, res.IsError)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "COMPLETED_STATUS_UNKNOWN")
}
