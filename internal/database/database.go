package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/emilythestrangee/quora-clone/backend/internal/config"
	"github.com/emilythestrangee/quora-clone/backend/internal/logging"
	"github.com/emilythestrangee/quora-clone/backend/internal/models"
)

// Store is the data-access handle shared by all requests. Each call takes a
// pooled connection for the duration of its statement and hands it back
// when the statement finishes, whether or not it succeeded.
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL with the configured database/sql driver,
// sizes the pool and, when enabled, creates the tables.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Store, error) {
	sqlDB, err := sql.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	var gormLog gormlogger.Interface = logging.NewGormLogger(log, time.Second)
	if cfg.LogLevel == "debug" {
		gormLog = gormLog.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLog,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error initializing gorm: %w", err)
	}

	log.Info("database connected", zap.String("driver", cfg.DBDriver))

	store := New(db)
	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		log.Info("database tables created/verified")
	}
	return store, nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates any missing tables and indexes. No foreign keys are
// declared: answers and votes outlive the rows they point at.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.Question{},
		&models.Answer{},
		&models.QuestionVote{},
		&models.AnswerVote{},
	)
	if err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}
	return nil
}

// Health pings the database and reports pool statistics. The "status" key
// is "up" or "down".
func (s *Store) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stats := make(map[string]string)

	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db error: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB exposes the underlying gorm handle.
func (s *Store) GetDB() *gorm.DB {
	return s.db
}
