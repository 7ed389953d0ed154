// Package config loads process configuration from the environment, with
// an optional .env file underneath it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

type Config struct {
	Env  string
	Port int

	DatabaseURL     string
	DBDriver        string
	AutoMigrate     bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	LogLevel    string
	CORSOrigins []string
}

func Default() Config {
	return Config{
		Env:             EnvDevelopment,
		Port:            4000,
		DatabaseURL:     "postgres://localhost:5432/quora_db",
		DBDriver:        DriverPgx,
		AutoMigrate:     true,
		MaxOpenConns:    10,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		LogLevel:        "info",
		CORSOrigins:     []string{"*"},
	}
}

// Load reads envFiles (".env" when none are given) into the process
// environment without overriding variables that are already set, then
// builds the configuration from the environment. Missing env files are
// ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = strings.ToLower(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.DBDriver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	var err error
	if c.Port, err = intEnv("PORT", c.Port); err != nil {
		return err
	}
	if c.MaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", c.MaxOpenConns); err != nil {
		return err
	}
	if c.MaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", c.MaxIdleConns); err != nil {
		return err
	}
	if v := os.Getenv("DB_CONN_MAX_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DB_CONN_MAX_LIFETIME %q: %w", v, err)
		}
		c.ConnMaxLifetime = d
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_AUTO_MIGRATE %q: %w", v, err)
		}
		c.AutoMigrate = b
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use --database-url or DATABASE_URL)")
	}
	switch c.DBDriver {
	case DriverPgx, DriverPQ:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %q or %q)", c.DBDriver, DriverPgx, DriverPQ)
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return errors.New("connection pool sizes must not be negative")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
