// Package helper runs the SQL migrations under migrations/postgres against the write node.
package helper

//nolint:revive
import (
	"bistro/config"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

func open(cfg *config.Config) (*migrate.Migrate, error) {
	pg := cfg.DB.Postgres
	dsn := pg.DSN(pg.Write, url.Values{"x-migrations-table": {pg.MigrationTable}})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}

	return mig, nil
}

// run applies step to a fresh migrate instance. Having nothing to do is not an error.
func run(cfg *config.Config, name string, step func(*migrate.Migrate) error) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}
	defer mig.Close()

	err = step(mig)
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Str("action", name).Msg("Schema already current")

		return nil
	}

	if err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}

	log.Info().Str("action", name).Msg("Migrations applied")

	return nil
}

// Up applies every pending migration.
func Up(cfg *config.Config) error {
	return run(cfg, "up", (*migrate.Migrate).Up)
}

// StepUp applies the next pending migration.
func StepUp(cfg *config.Config) error {
	return run(cfg, "step-up", func(m *migrate.Migrate) error { return m.Steps(1) })
}

// Down rolls back the latest migration.
func Down(cfg *config.Config) error {
	return run(cfg, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Drop rolls back every migration.
func Drop(cfg *config.Config) error {
	return run(cfg, "drop", (*migrate.Migrate).Down)
}

// Version reports the applied schema version. A fresh database reports version 0.
func Version(cfg *config.Config) (uint, bool, error) {
	mig, err := open(cfg)
	if err != nil {
		return 0, false, err
	}
	defer mig.Close()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}

	return version, dirty, nil
}
