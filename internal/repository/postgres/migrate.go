package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/leandrochavesf/gofinances/ledger-backend/db/migrations"
	"github.com/rs/zerolog/log"
)

// MigrateDirection selects which way migrations are applied
type MigrateDirection int

const (
	MigrateUp MigrateDirection = iota
	MigrateDown
)

// RunMigrations applies the embedded schema migrations through the given pool
func RunMigrations(pool *pgxpool.Pool, direction MigrateDirection) error {
	// A separate database/sql handle so golang-migrate can hold its advisory lock
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create pgx migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch direction {
	case MigrateDown:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", verr)
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")

	return nil
}
