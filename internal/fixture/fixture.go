// Package fixture loads entity datasets from YAML and writes them to a store.
package fixture

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ganot/squadboard/internal/domain/entity"
	"github.com/ganot/squadboard/internal/repository"
	"gopkg.in/yaml.v3"
)

// Dataset is a complete set of entity rows.
type Dataset struct {
	Squads       []entity.Squad      `yaml:"squads"`
	Statuses     []entity.Status     `yaml:"statuses"`
	Complexities []entity.Complexity `yaml:"complexities"`
	Engineers    []entity.Engineer   `yaml:"engineers"`
	Projects     []entity.Project    `yaml:"projects"`
	Assignments  []entity.Assignment `yaml:"assignments"`
}

// Parse decodes a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &ds, nil
}

// LoadFile reads and decodes a YAML dataset file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// Snapshot returns the dataset as an in-memory snapshot.
func (d *Dataset) Snapshot(id string) *entity.Snapshot {
	return &entity.Snapshot{
		ID:           id,
		LoadedAt:     time.Now().UTC(),
		Engineers:    d.Engineers,
		Squads:       d.Squads,
		Statuses:     d.Statuses,
		Complexities: d.Complexities,
		Projects:     d.Projects,
		Assignments:  d.Assignments,
	}
}

// Apply inserts every row, lookups first.
func Apply(ctx context.Context, w repository.EntityWriter, d *Dataset) error {
	for i := range d.Squads {
		if err := w.CreateSquad(ctx, &d.Squads[i]); err != nil {
			return fmt.Errorf("seed squad %d: %w", d.Squads[i].ID, err)
		}
	}
	for i := range d.Statuses {
		if err := w.CreateStatus(ctx, &d.Statuses[i]); err != nil {
			return fmt.Errorf("seed status %d: %w", d.Statuses[i].ID, err)
		}
	}
	for i := range d.Complexities {
		if err := w.CreateComplexity(ctx, &d.Complexities[i]); err != nil {
			return fmt.Errorf("seed complexity %d: %w", d.Complexities[i].ID, err)
		}
	}
	for i := range d.Engineers {
		if err := w.CreateEngineer(ctx, &d.Engineers[i]); err != nil {
			return fmt.Errorf("seed engineer %s: %w", d.Engineers[i].ID, err)
		}
	}
	for i := range d.Projects {
		if err := w.CreateProject(ctx, &d.Projects[i]); err != nil {
			return fmt.Errorf("seed project %s: %w", d.Projects[i].RegisterCode, err)
		}
	}
	for i := range d.Assignments {
		if err := w.CreateAssignment(ctx, &d.Assignments[i]); err != nil {
			return fmt.Errorf("seed assignment %s/%s: %w", d.Assignments[i].ProjectCode, d.Assignments[i].EngineerID, err)
		}
	}
	return nil
}

// SeedIfEmpty applies the dataset only when the store has no engineers.
// It reports whether rows were written.
func SeedIfEmpty(ctx context.Context, w repository.EntityWriter, d *Dataset) (bool, error) {
	n, err := w.CountEngineers(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := Apply(ctx, w, d); err != nil {
		return false, err
	}
	return true, nil
}
