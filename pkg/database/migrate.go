package database

import (
	"errors"
	"fmt"
	"io/fs"

	"travel-booking/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrate applies every pending up migration found in dir of migrations.
func Migrate(migrations fs.FS, dir string, config utils.DatabaseConfig, log *zap.Logger) error {
	source, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, ConnString("pgx5", config))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("Database schema up to date",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
