package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/aztectemple/internal/client/tokenstore"
	"github.com/dmitrijs2005/aztectemple/internal/logging"

	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "aztec.db"))
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "goose_db_version"))
	require.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "aztec.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "metadata"))
}

// The token written through one client must be visible to the next one
// opened on the same file, which is how a restart behaves.
func TestToken_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "aztec.db")

	db, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	c, err := NewHTTPClient(ctx, "http://example.invalid/api", tokenstore.New(db), logging.Discard())
	require.NoError(t, err)
	require.NoError(t, c.SetToken(ctx, "persisted"))
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	c, err = NewHTTPClient(ctx, "http://example.invalid/api", tokenstore.New(db), logging.Discard())
	require.NoError(t, err)
	require.Equal(t, "persisted", c.Token())

	require.NoError(t, c.ClearToken(ctx))
	got, err := tokenstore.New(db).Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
