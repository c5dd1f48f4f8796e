package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations.
type Migrator struct {
	databaseURL string
	logger      zerolog.Logger
}

// NewMigrator creates a Migrator for databaseURL.
func NewMigrator(databaseURL string, logger zerolog.Logger) *Migrator {
	return &Migrator{databaseURL: databaseURL, logger: logger}
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	instance, err := migrate.NewWithSourceInstance("iofs", source, m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return instance, nil
}

// Up runs all pending migrations.
func (m *Migrator) Up() error {
	instance, err := m.instance()
	if err != nil {
		return err
	}
	defer instance.Close()

	if err := instance.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("database migrations: no change")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logger.Info().Msg("database migrations: applied successfully")
	return nil
}

// Down rolls back the last migration.
func (m *Migrator) Down() error {
	instance, err := m.instance()
	if err != nil {
		return err
	}
	defer instance.Close()

	if err := instance.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	m.logger.Info().Msg("database migrations: rolled back successfully")
	return nil
}
