package entity

import "time"

// Engineer is a person who can be PIC of projects or assigned to support them.
type Engineer struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Vendor    string    `json:"vendor" yaml:"vendor"`
	Email     string    `json:"email" yaml:"email"`
	Phone     string    `json:"phone" yaml:"phone"`
	SquadID   *int64    `json:"squad_id,omitempty" yaml:"squad_id,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Squad is a named grouping of engineers.
type Squad struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Status is a project lifecycle state.
type Status struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Complexity is a project complexity level.
type Complexity struct {
	ID    int64  `json:"id" yaml:"id"`
	Level string `json:"level" yaml:"level"`
}

// Project is a migration project identified by its register code.
type Project struct {
	RegisterCode  string     `json:"register_code" yaml:"register_code"`
	AppName       string     `json:"app_name" yaml:"app_name"`
	MigrationDate *time.Time `json:"migration_date,omitempty" yaml:"migration_date,omitempty"`
	StatusID      int64      `json:"status_id" yaml:"status_id"`
	ComplexityID  int64      `json:"complexity_id" yaml:"complexity_id"`
	TotalBP       int64      `json:"total_bp" yaml:"total_bp"`
	Scenario      string     `json:"scenario" yaml:"scenario"`
	Remark        string     `json:"remark" yaml:"remark"`
	PICEngineerID string     `json:"pic_engineer_id" yaml:"pic_engineer_id"`
	SquadID       int64      `json:"squad_id" yaml:"squad_id"`
}

// Assignment links a supporting engineer to a project.
type Assignment struct {
	ProjectCode string `json:"project_code" yaml:"project_code"`
	EngineerID  string `json:"engineer_id" yaml:"engineer_id"`
}

// Snapshot is one consistent read of every collection.
type Snapshot struct {
	ID           string       `json:"id"`
	LoadedAt     time.Time    `json:"loaded_at"`
	Engineers    []Engineer   `json:"engineers"`
	Squads       []Squad      `json:"squads"`
	Statuses     []Status     `json:"statuses"`
	Complexities []Complexity `json:"complexities"`
	Projects     []Project    `json:"projects"`
	Assignments  []Assignment `json:"assignments"`
}
