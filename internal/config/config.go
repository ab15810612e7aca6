package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SQUADBOARD_"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	DB        DBConfig        `yaml:"db" envPrefix:"DB_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Transport TransportConfig `yaml:"transport" envPrefix:"TRANSPORT_"`
	Report    ReportConfig    `yaml:"report" envPrefix:"REPORT_"`
}

type ServerConfig struct {
	Host           string        `yaml:"host" env:"HOST"`
	Port           int           `yaml:"port" env:"PORT"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

type DBConfig struct {
	// Driver is "sqlite" or "pgx".
	Driver string `yaml:"driver" env:"DRIVER"`
	// Path is the SQLite database file.
	Path string `yaml:"path" env:"PATH"`
	// DSN is the PostgreSQL connection string.
	DSN      string `yaml:"dsn" env:"DSN"`
	SSL      bool   `yaml:"ssl" env:"SSL"`
	Migrate  bool   `yaml:"migrate" env:"MIGRATE"`
	SeedPath string `yaml:"seed_path" env:"SEED_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	Path  string `yaml:"path" env:"PATH"`
}

type TransportConfig struct {
	// Mode is "http" or "stdio".
	Mode       string `yaml:"mode" env:"MODE"`
	MCPEnabled bool   `yaml:"mcp_enabled" env:"MCP_ENABLED"`
}

type ReportConfig struct {
	CompletedStatus string `yaml:"completed_status" env:"COMPLETED_STATUS"`
	Locale          string `yaml:"locale" env:"LOCALE"`
}

// deploymentEnv holds the unprefixed variables used by existing deployments.
type deploymentEnv struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DatabaseSSL bool   `env:"DATABASE_SSL"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			RequestTimeout: 30 * time.Second,
		},
		DB: DBConfig{
			Driver:  "sqlite",
			Path:    "squadboard.db",
			Migrate: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode:       "http",
			MCPEnabled: true,
		},
		Report: ReportConfig{
			CompletedStatus: "Documentation",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file, an optional
// .env file and environment variables, in that order.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(envPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	envFile := os.Getenv(envPrefix + "ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotEnv(envFile); err != nil {
		return Config{}, err
	}

	var deploy deploymentEnv
	if err := env.Parse(&deploy); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if deploy.DatabaseURL != "" {
		cfg.DB.Driver = "pgx"
		cfg.DB.DSN = deploy.DatabaseURL
	}
	if deploy.DatabaseSSL {
		cfg.DB.SSL = true
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected at use time.
func (c Config) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case "sqlite":
		if c.DB.Path == "" {
			errs = append(errs, errors.New("db.path is required for the sqlite driver"))
		}
	case "pgx":
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("db.dsn is required for the pgx driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported db.driver %q", c.DB.Driver))
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		errs = append(errs, fmt.Errorf("unsupported transport.mode %q", c.Transport.Mode))
	}
	if c.Transport.Mode == "http" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Errorf("invalid server.port %d", c.Server.Port))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// DataSource returns the driver-specific connection string.
func (c DBConfig) DataSource() string {
	if c.Driver != "pgx" {
		return c.Path
	}
	if !c.SSL || strings.Contains(c.DSN, "sslmode=") {
		return c.DSN
	}
	if strings.Contains(c.DSN, "://") {
		if strings.Contains(c.DSN, "?") {
			return c.DSN + "&sslmode=require"
		}
		return c.DSN + "?sslmode=require"
	}
	return strings.TrimSpace(c.DSN + " sslmode=require")
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv sets variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
