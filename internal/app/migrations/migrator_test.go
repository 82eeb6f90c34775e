package migrations_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/app/migrations"
	"github.com/yigit/talentbridge/internal/db/dbtest"
)

func TestMigrate_CreatesSchemaAndIsIdempotent(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	// second run must skip the recorded version
	require.NoError(t, migrations.NewMigrator(database, zerolog.Nop()).Migrate(ctx))

	var versions int
	require.NoError(t, database.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 1, versions)

	for _, table := range []string{"users", "sessions", "documents", "jobs", "applications", "messages"} {
		var name string
		err := database.DB.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_MessageCheckRejectsSelfMessages(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	_, err := database.DB.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role_type, created_at, updated_at) VALUES ('ann', 'x', 'CANDIDATE', '2024-01-01 00:00:00', '2024-01-01 00:00:00')`)
	require.NoError(t, err)

	_, err = database.DB.ExecContext(ctx,
		`INSERT INTO messages (sender_id, recipient_id, content, created_at) VALUES (1, 1, 'hi', '2024-01-01 00:00:00')`)
	assert.Error(t, err)
}
