package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"garage-be/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// NewConnection opens and pings a database for the given config driver name
func NewConnection(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == config.DriverSQLite {
		// SQLite allows one writer at a time
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies the embedded goose migrations for the driver's dialect
func RunMigrations(db *sql.DB, driver string, logger *zap.SugaredLogger) error {
	dialect, dir := "postgres", "migrations/postgres"
	if driver == config.DriverSQLite {
		dialect, dir = "sqlite3", "migrations/sqlite"
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{logger})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Open connects using cfg and migrates the schema
func Open(cfg *config.Config, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := NewConnection(cfg.Driver(), cfg.DSN())
	if err != nil {
		return nil, err
	}
	logger.Infow("connected to database", "driver", cfg.Driver())

	if err := RunMigrations(db, cfg.Driver(), logger); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("database migrations completed")

	return db, nil
}

type gooseLogger struct {
	l *zap.SugaredLogger
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.l.Fatalf(format, v...) }
func (g gooseLogger) Printf(format string, v ...interface{}) { g.l.Debugf(format, v...) }
