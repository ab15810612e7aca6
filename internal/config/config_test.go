package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points the .env lookup at an empty directory and clears the
// variables the loader reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SQUADBOARD_ENV_FILE", filepath.Join(dir, ".env"))
	for _, key := range []string{
		"SQUADBOARD_CONFIG_PATH",
		"SQUADBOARD_SERVER_PORT",
		"SQUADBOARD_DB_DRIVER",
		"SQUADBOARD_DB_PATH",
		"SQUADBOARD_DB_DSN",
		"SQUADBOARD_LOG_LEVEL",
		"SQUADBOARD_TRANSPORT_MODE",
		"SQUADBOARD_REPORT_LOCALE",
		"DATABASE_URL",
		"DATABASE_SSL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "squadboard.db", cfg.DB.DataSource())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  request_timeout: 5s
db:
  path: /var/lib/squadboard/data.db
log:
  level: debug
report:
  locale: id
`), 0o600))
	t.Setenv("SQUADBOARD_CONFIG_PATH", path)
	t.Setenv("SQUADBOARD_SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, "/var/lib/squadboard/data.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "id", cfg.Report.Locale)
	require.Equal(t, "Documentation", cfg.Report.CompletedStatus)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SQUADBOARD_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SQUADBOARD_LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DatabaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/metrics")
	t.Setenv("DATABASE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "pgx", cfg.DB.Driver)
	require.Equal(t, "postgres://app:secret@db:5432/metrics?sslmode=require", cfg.DB.DataSource())
}

func TestLoad_InvalidPort(t *testing.T) {
	isolate(t)
	t.Setenv("SQUADBOARD_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("SQUADBOARD_CONFIG_PATH", filepath.Join(dir, "absent.yaml"))

	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DB.Driver = "mysql"
	cfg.Transport.Mode = "grpc"
	err := cfg.Validate()
	require.ErrorContains(t, err, `unsupported db.driver "mysql"`)
	require.ErrorContains(t, err, `unsupported transport.mode "grpc"`)

	cfg = Default()
	cfg.DB.Driver = "pgx"
	require.ErrorContains(t, cfg.Validate(), "db.dsn is required")

	cfg = Default()
	cfg.Transport.Mode = "stdio"
	cfg.Server.Port = 0
	require.NoError(t, cfg.Validate())
}

func TestDataSource(t *testing.T) {
	cases := []struct {
		name string
		db   DBConfig
		want string
	}{
		{"sqlite", DBConfig{Driver: "sqlite", Path: "x.db", SSL: true}, "x.db"},
		{"pgx plain", DBConfig{Driver: "pgx", DSN: "postgres://h/db"}, "postgres://h/db"},
		{"pgx url query", DBConfig{Driver: "pgx", DSN: "postgres://h/db?application_name=sb", SSL: true}, "postgres://h/db?application_name=sb&sslmode=require"},
		{"pgx keyword", DBConfig{Driver: "pgx", DSN: "host=h dbname=db", SSL: true}, "host=h dbname=db sslmode=require"},
		{"pgx explicit mode", DBConfig{Driver: "pgx", DSN: "postgres://h/db?sslmode=disable", SSL: true}, "postgres://h/db?sslmode=disable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.db.DataSource())
		})
	}
}
