package store

import (
	"database/sql"
	"time"

	"github.com/ganot/squadboard/internal/domain/entity"
)

type squadRow struct {
	ID   int64  `db:"id"`
	Name string `db:"squad_name"`
}

type statusRow struct {
	ID   int64  `db:"id"`
	Name string `db:"status_name"`
}

type complexityRow struct {
	ID    int64  `db:"id"`
	Level string `db:"complexity_level"`
}

type engineerRow struct {
	ID        string        `db:"user_ad"`
	Name      string        `db:"name"`
	Vendor    string        `db:"vendor"`
	Email     string        `db:"email"`
	Phone     string        `db:"phone"`
	SquadID   sql.NullInt64 `db:"pic_squad_id"`
	CreatedAt time.Time     `db:"created_at"`
}

type projectRow struct {
	RegisterCode  string       `db:"register_code"`
	AppName       string       `db:"project_app"`
	MigrationDate sql.NullTime `db:"tanggal_migrasi"`
	StatusID      int64        `db:"status_id"`
	ComplexityID  int64        `db:"complexity_id"`
	TotalBP       int64        `db:"total_bp"`
	Scenario      string       `db:"scenario"`
	Remark        string       `db:"remark"`
	PIC           string       `db:"pic"`
	SquadID       int64        `db:"pic_squad_id"`
}

type assignmentRow struct {
	ProjectCode string `db:"register_code"`
	EngineerID  string `db:"user_ad"`
}

func (r engineerRow) entity() entity.Engineer {
	e := entity.Engineer{
		ID:        r.ID,
		Name:      r.Name,
		Vendor:    r.Vendor,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
	if r.SquadID.Valid {
		id := r.SquadID.Int64
		e.SquadID = &id
	}
	return e
}

func newEngineerRow(e *entity.Engineer) engineerRow {
	row := engineerRow{
		ID:        e.ID,
		Name:      e.Name,
		Vendor:    e.Vendor,
		Email:     e.Email,
		Phone:     e.Phone,
		CreatedAt: e.CreatedAt,
	}
	if e.SquadID != nil {
		row.SquadID = sql.NullInt64{Int64: *e.SquadID, Valid: true}
	}
	return row
}

func (r projectRow) entity() entity.Project {
	p := entity.Project{
		RegisterCode:  r.RegisterCode,
		AppName:       r.AppName,
		StatusID:      r.StatusID,
		ComplexityID:  r.ComplexityID,
		TotalBP:       r.TotalBP,
		Scenario:      r.Scenario,
		Remark:        r.Remark,
		PICEngineerID: r.PIC,
		SquadID:       r.SquadID,
	}
	if r.MigrationDate.Valid {
		d := r.MigrationDate.Time
		p.MigrationDate = &d
	}
	return p
}

func newProjectRow(p *entity.Project) projectRow {
	row := projectRow{
		RegisterCode: p.RegisterCode,
		AppName:      p.AppName,
		StatusID:     p.StatusID,
		ComplexityID: p.ComplexityID,
		TotalBP:      p.TotalBP,
		Scenario:     p.Scenario,
		Remark:       p.Remark,
		PIC:          p.PICEngineerID,
		SquadID:      p.SquadID,
	}
	if p.MigrationDate != nil {
		row.MigrationDate = sql.NullTime{Time: *p.MigrationDate, Valid: true}
	}
	return row
}
