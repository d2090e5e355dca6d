package models

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

// MigrateAdapter runs the SQL migrations that cover what AutoMigrate cannot
// express (partial indexes and the like).
type MigrateAdapter struct {
	db         *gorm.DB
	sourcePath string
}

// NewMigrateAdapter creates a new migration adapter
func NewMigrateAdapter(db *gorm.DB, sourcePath string) *MigrateAdapter {
	if sourcePath == "" {
		sourcePath = "file://migrations"
	}
	return &MigrateAdapter{db: db, sourcePath: sourcePath}
}

// RunMigrations applies all pending migrations
func (m *MigrateAdapter) RunMigrations() error {
	migration, err := m.instance()
	if err != nil {
		return err
	}
	if err := migration.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// Version gets the current migration version
func (m *MigrateAdapter) Version() (uint, bool, error) {
	migration, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	return migration.Version()
}

func (m *MigrateAdapter) instance() (*migrate.Migrate, error) {
	sqlDB, err := m.db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get sql.DB from gorm: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}

	migration, err := migrate.NewWithDatabaseInstance(m.sourcePath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migration instance: %w", err)
	}
	return migration, nil
}
