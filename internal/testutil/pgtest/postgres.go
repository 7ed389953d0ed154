// Package pgtest runs a disposable PostgreSQL server for integration tests.
package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/emilythestrangee/quora-clone/backend/internal/config"
	"github.com/emilythestrangee/quora-clone/backend/internal/database"
)

const postgresImage = "postgres:16-alpine"

// PostgresContainer is a disposable PostgreSQL server for integration tests.
type PostgresContainer struct {
	container *tcpostgres.PostgresContainer
	DSN       string
}

// StartPostgres launches a PostgreSQL container. Callers decide whether a
// failure (usually no Docker daemon) skips or fails their tests.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("quora_test"),
		tcpostgres.WithUsername("quora"),
		tcpostgres.WithPassword("quora"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		if ctr != nil {
			_ = testcontainers.TerminateContainer(ctr)
		}
		return nil, err
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}
	return &PostgresContainer{container: ctr, DSN: dsn}, nil
}

func (p *PostgresContainer) Terminate() error {
	return testcontainers.TerminateContainer(p.container)
}

// Config returns a configuration pointing at the container with the
// given driver.
func (p *PostgresContainer) Config(driver string) config.Config {
	cfg := config.Default()
	cfg.DatabaseURL = p.DSN
	cfg.DBDriver = driver
	cfg.ConnMaxLifetime = time.Minute
	return cfg
}

// OpenStore connects a migrated store to the container and closes it when
// the test ends.
func (p *PostgresContainer) OpenStore(t *testing.T, driver string) *database.Store {
	t.Helper()

	store, err := database.Open(context.Background(), p.Config(driver), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// ResetTables empties every table and restarts the id sequences.
func ResetTables(t *testing.T, store *database.Store) {
	t.Helper()

	err := store.GetDB().Exec(`TRUNCATE questions, answers, question_votes, answer_votes RESTART IDENTITY`).Error
	if err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
}
