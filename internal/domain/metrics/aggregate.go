package metrics

import (
	"cmp"
	"math"
	"slices"

	"github.com/ganot/squadboard/internal/domain/entity"
)

// SquadNames returns the distinct squad names in name order.
func SquadNames(squads []entity.Squad, opts Options) ([]string, error) {
	order, err := newNameOrder(opts.Locale)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(squads))
	names := make([]string, 0, len(squads))
	for _, s := range squads {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	slices.SortFunc(names, order.compare)
	return names, nil
}

// ComputeStatusBreakdown counts summarized projects per status, ordered by
// status id. Statuses without projects are listed with a zero count.
func ComputeStatusBreakdown(statuses []entity.Status, report ProjectReport) []StatusCount {
	byName := make(map[string]int, len(statuses))
	for _, p := range report.Projects {
		byName[p.StatusName]++
	}

	sorted := slices.Clone(statuses)
	slices.SortFunc(sorted, func(a, b entity.Status) int { return cmp.Compare(a.ID, b.ID) })

	out := make([]StatusCount, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, StatusCount{StatusID: s.ID, StatusName: s.Name, Count: byName[s.Name]})
	}
	return out
}

// ComputeSquadDistribution counts engineers per squad, largest first.
func ComputeSquadDistribution(engineers []EngineerMetrics) []SquadCount {
	counts := make(map[string]int)
	for _, e := range engineers {
		name := e.SquadName
		if name == "" {
			name = NoSquad
		}
		counts[name]++
	}

	out := make([]SquadCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, SquadCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b SquadCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// ComputeTeamOverview summarizes engineer rows. Active engineers have at least
// one ongoing project.
func ComputeTeamOverview(engineers []EngineerMetrics) TeamOverview {
	overview := TeamOverview{TotalEngineers: len(engineers)}
	if len(engineers) == 0 {
		return overview
	}
	var sum float64
	for _, e := range engineers {
		if e.OngoingProjects > 0 {
			overview.ActiveEngineers++
		}
		sum += e.Performance
	}
	overview.AveragePerformance = math.Round(sum/float64(len(engineers))*10) / 10
	return overview
}
