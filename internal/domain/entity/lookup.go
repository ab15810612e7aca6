package entity

// Index holds id lookups over a snapshot.
type Index struct {
	Engineers    map[string]Engineer
	Squads       map[int64]Squad
	Statuses     map[int64]Status
	Complexities map[int64]Complexity
	Projects     map[string]Project
}

// NewIndex builds lookups for every keyed collection in the snapshot.
// Later rows win when a key repeats.
func NewIndex(snap *Snapshot) Index {
	idx := Index{
		Engineers:    make(map[string]Engineer, len(snap.Engineers)),
		Squads:       make(map[int64]Squad, len(snap.Squads)),
		Statuses:     make(map[int64]Status, len(snap.Statuses)),
		Complexities: make(map[int64]Complexity, len(snap.Complexities)),
		Projects:     make(map[string]Project, len(snap.Projects)),
	}
	for _, e := range snap.Engineers {
		idx.Engineers[e.ID] = e
	}
	for _, s := range snap.Squads {
		idx.Squads[s.ID] = s
	}
	for _, s := range snap.Statuses {
		idx.Statuses[s.ID] = s
	}
	for _, c := range snap.Complexities {
		idx.Complexities[c.ID] = c
	}
	for _, p := range snap.Projects {
		idx.Projects[p.RegisterCode] = p
	}
	return idx
}
