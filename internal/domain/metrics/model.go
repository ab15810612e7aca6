package metrics

import (
	"fmt"
	"time"
)

const (
	// FixedEfficiency is reported for every engineer; no efficiency formula exists yet.
	FixedEfficiency = 100
	// NoEngineers is the engineers value for projects without assignments.
	NoEngineers = "N/A"
	// NoSquad labels engineers without a squad in the squad distribution.
	NoSquad = "No Squad"
)

// EngineerMetrics is the workload and performance row for one engineer.
type EngineerMetrics struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Vendor                  string    `json:"vendor"`
	Email                   string    `json:"email"`
	Phone                   string    `json:"phone"`
	SquadName               string    `json:"squad_name"`
	CreatedAt               time.Time `json:"created_at"`
	TotalProjects           int       `json:"total_projects"`
	TotalProjectsAsPIC      int       `json:"total_projects_as_pic"`
	TotalProjectsAsEngineer int       `json:"total_projects_as_engineer"`
	CompletedProjects       int       `json:"completed_projects"`
	OngoingProjects         int       `json:"ongoing_projects"`
	Performance             float64   `json:"performance"`
	Efficiency              int       `json:"efficiency"`
}

// ProjectSummary is the denormalized status row for one project.
type ProjectSummary struct {
	RegisterCode    string     `json:"register_code"`
	AppName         string     `json:"app_name"`
	MigrationDate   *time.Time `json:"migration_date"`
	StatusName      string     `json:"status_name"`
	ComplexityLevel string     `json:"complexity_level"`
	TotalBP         int64      `json:"total_bp"`
	Scenario        string     `json:"scenario"`
	Remark          string     `json:"remark"`
	PICName         string     `json:"pic_name"`
	SquadName       string     `json:"squad_name"`
	Engineers       string     `json:"engineers"`
}

// AnomalyKind classifies an unresolved reference.
type AnomalyKind string

const (
	AnomalyUnknownStatus     AnomalyKind = "unknown_status"
	AnomalyUnknownComplexity AnomalyKind = "unknown_complexity"
	AnomalyUnknownPIC        AnomalyKind = "unknown_pic"
	AnomalyUnknownSquad      AnomalyKind = "unknown_squad"
	AnomalyUnknownProject    AnomalyKind = "unknown_project"
	AnomalyUnknownEngineer   AnomalyKind = "unknown_engineer"
)

// Anomaly records a row whose reference did not resolve.
type Anomaly struct {
	Kind   AnomalyKind `json:"kind"`
	Entity string      `json:"entity"`
	Key    string      `json:"key"`
	Ref    string      `json:"ref"`
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s %s references missing %s (%s)", a.Entity, a.Key, a.Ref, a.Kind)
}

// EngineerReport is the output of ComputeEngineerMetrics.
type EngineerReport struct {
	Engineers []EngineerMetrics `json:"engineers"`
	Anomalies []Anomaly         `json:"anomalies"`
}

// ProjectReport is the output of ComputeProjectSummary. Projects with
// unresolved references are listed in Anomalies instead of Projects.
type ProjectReport struct {
	Projects  []ProjectSummary `json:"projects"`
	Anomalies []Anomaly        `json:"anomalies"`
}

// StatusCount is the number of summarized projects in one status.
type StatusCount struct {
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
	Count      int    `json:"count"`
}

// SquadCount is the number of engineers in one squad.
type SquadCount struct {
	Name  string `json:"name"`
	Count int    `json:"value"`
}

// TeamOverview holds headline numbers across all engineers.
type TeamOverview struct {
	TotalEngineers     int     `json:"total_engineers"`
	ActiveEngineers    int     `json:"active_engineers"`
	AveragePerformance float64 `json:"average_performance"`
}
