package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// DB wraps a SQL database connection to the entity store
type DB struct {
	*sqlx.DB
	driver string
}

// New opens the entity store with the given driver
func New(driver, dataSourceName string) (*DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection keeps :memory: databases and connection pragmas shared.
		db.SetMaxOpenConns(1)

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return &DB{DB: db, driver: driver}, nil
}

// Driver returns the database/sql driver name in use.
func (db *DB) Driver() string {
	return db.driver
}

// snapshotTxOptions returns the transaction options for a consistent
// multi-table read.
func (db *DB) snapshotTxOptions() *sql.TxOptions {
	if db.driver == DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}

// RunMigrations creates the entity tables if they do not exist. The DDL is
// valid for both SQLite and PostgreSQL.
func (db *DB) RunMigrations() error {
	migration := `
-- Squads
CREATE TABLE IF NOT EXISTS pic_squad (
    id INTEGER PRIMARY KEY,
    squad_name TEXT NOT NULL
);

-- Project statuses
CREATE TABLE IF NOT EXISTS status (
    id INTEGER PRIMARY KEY,
    status_name TEXT NOT NULL
);

-- Complexity levels
CREATE TABLE IF NOT EXISTS complexity (
    id INTEGER PRIMARY KEY,
    complexity_level TEXT NOT NULL
);

-- Engineers
CREATE TABLE IF NOT EXISTS engineer (
    user_ad TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    vendor TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    pic_squad_id INTEGER REFERENCES pic_squad(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_engineer_squad ON engineer(pic_squad_id);

-- Projects; lookup columns are not constrained so that upstream anomalies
-- stay visible to the reports.
CREATE TABLE IF NOT EXISTS projects (
    register_code TEXT PRIMARY KEY,
    project_app TEXT NOT NULL,
    tanggal_migrasi DATE,
    status_id INTEGER NOT NULL,
    complexity_id INTEGER NOT NULL,
    total_bp INTEGER NOT NULL DEFAULT 0,
    scenario TEXT NOT NULL DEFAULT '',
    remark TEXT NOT NULL DEFAULT '',
    pic TEXT NOT NULL,
    pic_squad_id INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_pic ON projects(pic);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status_id);

-- Support assignments (many-to-many)
CREATE TABLE IF NOT EXISTS project_engineers (
    register_code TEXT NOT NULL,
    user_ad TEXT NOT NULL,
    PRIMARY KEY (register_code, user_ad)
);
CREATE INDEX IF NOT EXISTS idx_project_engineers_user ON project_engineers(user_ad);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
