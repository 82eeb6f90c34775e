// Package dbtest opens throwaway sqlite databases with the schema applied.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/app/migrations"
	"github.com/yigit/talentbridge/internal/config"
	"github.com/yigit/talentbridge/internal/db"
)

// New returns a migrated database backed by a file in the test's temp dir
func New(t testing.TB) *db.Database {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")

	database, err := db.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.NewMigrator(database, zerolog.Nop()).Migrate(context.Background()))
	return database
}
