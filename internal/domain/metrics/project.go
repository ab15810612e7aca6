package metrics

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/ganot/squadboard/internal/domain/entity"
)

// ComputeProjectSummary derives one row per project, ordered by register code.
//
// A project whose status, complexity, PIC or squad does not resolve is left
// out of Projects and reported in Anomalies; no placeholder values are filled in.
func ComputeProjectSummary(snap *entity.Snapshot, opts Options) (ProjectReport, error) {
	order, err := newNameOrder(opts.Locale)
	if err != nil {
		return ProjectReport{}, err
	}

	idx := entity.NewIndex(snap)
	var anomalies []Anomaly

	// project code -> distinct supporting engineer ids
	support := make(map[string]map[string]struct{})
	for _, a := range snap.Assignments {
		if _, ok := idx.Projects[a.ProjectCode]; !ok {
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyUnknownProject,
				Entity: "assignment",
				Key:    a.EngineerID,
				Ref:    a.ProjectCode,
			})
			continue
		}
		if _, ok := idx.Engineers[a.EngineerID]; !ok {
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyUnknownEngineer,
				Entity: "assignment",
				Key:    a.ProjectCode,
				Ref:    a.EngineerID,
			})
			continue
		}
		ids, ok := support[a.ProjectCode]
		if !ok {
			ids = make(map[string]struct{})
			support[a.ProjectCode] = ids
		}
		ids[a.EngineerID] = struct{}{}
	}

	rows := make([]ProjectSummary, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		status, hasStatus := idx.Statuses[p.StatusID]
		complexity, hasComplexity := idx.Complexities[p.ComplexityID]
		pic, hasPIC := idx.Engineers[p.PICEngineerID]
		squad, hasSquad := idx.Squads[p.SquadID]

		missing := projectAnomalies(p, hasStatus, hasComplexity, hasPIC, hasSquad)
		if len(missing) > 0 {
			anomalies = append(anomalies, missing...)
			continue
		}

		rows = append(rows, ProjectSummary{
			RegisterCode:    p.RegisterCode,
			AppName:         p.AppName,
			MigrationDate:   p.MigrationDate,
			StatusName:      status.Name,
			ComplexityLevel: complexity.Level,
			TotalBP:         p.TotalBP,
			Scenario:        p.Scenario,
			Remark:          p.Remark,
			PICName:         pic.Name,
			SquadName:       squad.Name,
			Engineers:       engineerNames(support[p.RegisterCode], idx, order),
		})
	}

	slices.SortFunc(rows, func(a, b ProjectSummary) int {
		return cmp.Compare(a.RegisterCode, b.RegisterCode)
	})

	return ProjectReport{Projects: rows, Anomalies: normalizeAnomalies(anomalies)}, nil
}

func projectAnomalies(p entity.Project, hasStatus, hasComplexity, hasPIC, hasSquad bool) []Anomaly {
	var out []Anomaly
	add := func(kind AnomalyKind, ref string) {
		out = append(out, Anomaly{Kind: kind, Entity: "project", Key: p.RegisterCode, Ref: ref})
	}
	if !hasStatus {
		add(AnomalyUnknownStatus, strconv.FormatInt(p.StatusID, 10))
	}
	if !hasComplexity {
		add(AnomalyUnknownComplexity, strconv.FormatInt(p.ComplexityID, 10))
	}
	if !hasPIC {
		add(AnomalyUnknownPIC, p.PICEngineerID)
	}
	if !hasSquad {
		add(AnomalyUnknownSquad, strconv.FormatInt(p.SquadID, 10))
	}
	return out
}

// engineerNames joins the supporting engineer names in name order.
func engineerNames(ids map[string]struct{}, idx entity.Index, order nameOrder) string {
	if len(ids) == 0 {
		return NoEngineers
	}
	engineers := make([]entity.Engineer, 0, len(ids))
	for id := range ids {
		engineers = append(engineers, idx.Engineers[id])
	}
	slices.SortFunc(engineers, func(a, b entity.Engineer) int {
		return cmp.Or(order.compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	names := make([]string, len(engineers))
	for i, e := range engineers {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}
