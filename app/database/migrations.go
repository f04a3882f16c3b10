package database

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"campusdesk/app/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationDir = "migrations"

func prepareGoose() error {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(gooseLogger{})
	return goose.SetDialect("postgres")
}

// RunMigrations applies every pending migration.
func RunMigrations(db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	logger.L().Info("running database migrations")
	if err := goose.Up(db.DB, migrationDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersion(db.DB)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.L().Info("database migrations completed", zap.Int64("version", version))
	return nil
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.Down(db.DB, migrationDir)
}

// MigrationStatus prints the applied/pending state of every migration.
func MigrationStatus(db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.Status(db.DB, migrationDir)
}

type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.L().Sugar().Fatalf(format, v...)
}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.L().Sugar().Infof(format, v...)
}
