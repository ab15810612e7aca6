package metrics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ganot/squadboard/internal/domain/entity"
)

// codeSet is a set of project register codes.
type codeSet map[string]struct{}

func (s codeSet) union(other codeSet) codeSet {
	out := make(codeSet, len(s)+len(other))
	for code := range s {
		out[code] = struct{}{}
	}
	for code := range other {
		out[code] = struct{}{}
	}
	return out
}

func addCode(sets map[string]codeSet, key, code string) {
	set, ok := sets[key]
	if !ok {
		set = make(codeSet)
		sets[key] = set
	}
	set[code] = struct{}{}
}

// ComputeEngineerMetrics derives one row per engineer, ordered by name.
//
// A project reachable both as PIC and through an assignment counts once:
// the PIC and assignment references are collected into separate sets keyed
// by register code and only their union is counted.
func ComputeEngineerMetrics(snap *entity.Snapshot, opts Options) (EngineerReport, error) {
	order, err := newNameOrder(opts.Locale)
	if err != nil {
		return EngineerReport{}, err
	}

	idx := entity.NewIndex(snap)

	// With no projects nothing can be completed, so an empty status table is fine.
	var completedID int64
	if len(snap.Projects) > 0 {
		completedID, err = resolveCompletedStatus(snap.Statuses, opts.completedStatus())
		if err != nil {
			return EngineerReport{}, err
		}
	}

	var anomalies []Anomaly

	picSets := make(map[string]codeSet)
	for _, p := range snap.Projects {
		addCode(picSets, p.PICEngineerID, p.RegisterCode)
	}

	assignedSets := make(map[string]codeSet)
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
		addCode(assignedSets, a.EngineerID, a.ProjectCode)
	}

	rows := make([]EngineerMetrics, 0, len(snap.Engineers))
	for _, e := range snap.Engineers {
		squadName := ""
		if e.SquadID != nil {
			if squad, ok := idx.Squads[*e.SquadID]; ok {
				squadName = squad.Name
			} else {
				anomalies = append(anomalies, Anomaly{
					Kind:   AnomalyUnknownSquad,
					Entity: "engineer",
					Key:    e.ID,
					Ref:    strconv.FormatInt(*e.SquadID, 10),
				})
			}
		}

		pic := picSets[e.ID]
		assigned := assignedSets[e.ID]
		all := pic.union(assigned)

		completed := 0
		for code := range all {
			if idx.Projects[code].StatusID == completedID {
				completed++
			}
		}

		rows = append(rows, EngineerMetrics{
			ID:                      e.ID,
			Name:                    e.Name,
			Vendor:                  e.Vendor,
			Email:                   e.Email,
			Phone:                   e.Phone,
			SquadName:               squadName,
			CreatedAt:               e.CreatedAt,
			TotalProjects:           len(all),
			TotalProjectsAsPIC:      len(pic),
			TotalProjectsAsEngineer: len(assigned),
			CompletedProjects:       completed,
			OngoingProjects:         len(all) - completed,
			Performance:             performance(completed, len(all)),
			Efficiency:              FixedEfficiency,
		})
	}

	slices.SortStableFunc(rows, func(a, b EngineerMetrics) int {
		return cmp.Or(order.compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return EngineerReport{Engineers: rows, Anomalies: normalizeAnomalies(anomalies)}, nil
}

// performance is the completed share in percent, rounded half away from zero
// to two decimals.
func performance(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)*10000/float64(total)) / 100
}

// resolveCompletedStatus picks the lowest status id whose name matches.
func resolveCompletedStatus(statuses []entity.Status, name string) (int64, error) {
	found := false
	var id int64
	for _, s := range statuses {
		if !strings.EqualFold(strings.TrimSpace(s.Name), name) {
			continue
		}
		if !found || s.ID < id {
			id = s.ID
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrCompletedStatusUnknown, name)
	}
	return id, nil
}

func normalizeAnomalies(anomalies []Anomaly) []Anomaly {
	if len(anomalies) == 0 {
		return []Anomaly{}
	}
	slices.SortFunc(anomalies, func(a, b Anomaly) int {
		return cmp.Or(
			cmp.Compare(a.Entity, b.Entity),
			cmp.Compare(a.Key, b.Key),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Ref, b.Ref),
		)
	})
	return slices.Compact(anomalies)
}
