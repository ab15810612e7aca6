package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `squadboard reports engineer workload and project status from the team's migration tracker.

Every tool reads one consistent snapshot and recomputes from scratch; results are never stale and never partial.

Tools:
- get_engineer_metrics: one row per engineer, ordered by name.
- get_project_summary: one row per project, ordered by register code, plus anomalies.
- get_squad_names, get_status_breakdown, get_squad_distribution, get_team_overview: dashboard aggregates.

Docs:
- squadboard://docs/metrics (how counts and performance are derived)
- squadboard://docs/anomalies (what happens to rows with dangling references)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "squadboard://docs/metrics",
		Name:        "docs_metrics",
		Title:       "Engineer metrics",
		Description: "Definitions of the engineer metric fields.",
		Content: `# Engineer metrics

An engineer reaches a project in two ways: as its PIC, or through a support
assignment. Both are collected as sets of register codes.

- ` + "`total_projects_as_pic`" + `: distinct projects where the engineer is PIC.
- ` + "`total_projects_as_engineer`" + `: distinct projects the engineer is assigned to.
- ` + "`total_projects`" + `: size of the union of the two sets. A project reached both
  ways counts once, so this is never the sum of the two fields above.
- ` + "`completed_projects`" + `: projects in the union whose status is the completed
  status (Documentation unless configured otherwise).
- ` + "`ongoing_projects`" + `: ` + "`total_projects - completed_projects`" + `.
- ` + "`performance`" + `: completed share in percent, two decimals; 0 with no projects.
- ` + "`efficiency`" + `: always 100.

Engineers without any project are listed with zero counts.
`,
	},
	{
		URI:         "squadboard://docs/anomalies",
		Name:        "docs_anomalies",
		Title:       "Data anomalies",
		Description: "How rows with unresolved references are reported.",
		Content: `# Data anomalies

A project whose status, complexity, PIC or squad does not exist is left out
of ` + "`projects`" + ` and listed in ` + "`anomalies`" + ` instead. Nothing is filled in.

Assignments that point at a missing project or engineer are ignored and
listed as anomalies. An engineer whose squad is missing keeps its row with an
empty ` + "`squad_name`" + `.

Each anomaly carries ` + "`kind`" + `, ` + "`entity`" + `, ` + "`key`" + ` (the row) and ` + "`ref`" + ` (the
missing reference).
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
