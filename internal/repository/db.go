package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// Open connects to Postgres through the pgx stdlib driver and wraps the pool in gorm.
func Open(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, *sql.DB, error) {
	dsn := cfg.DBConnectionString
	// Local databases run without TLS; elsewhere the DSN carries its own sslmode.
	if cfg.IsDevelopment() && !strings.Contains(dsn, "sslmode") {
		dsn += dsnSeparator(dsn) + "sslmode=disable"
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open DB connection: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}
	logger.Info().Msg("Database connection successful")
	return db, sqlDB, nil
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Assignment{},
		&model.Notification{},
	)
}

func dsnSeparator(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return "&"
		}
		return "?"
	}
	return " "
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
