package statsdb

import (
	"context"
	"database/sql"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTestDataset(t *testing.T, dir string) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dir, "cebl.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE players (
			player_id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			current_team TEXT
		);
		INSERT INTO players VALUES ('cebl-001', 'Jalen Harris', 'Scarborough Shooting Stars');
		INSERT INTO players VALUES ('cebl-002', 'Jordan Smith', 'Vancouver Bandits');
	`)
	require.NoError(t, err)
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	seedTestDataset(t, dir)
	r := NewRegistry(dir, log.New(io.Discard, "", 0))
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRegistryExecute(t *testing.T) {
	r := newTestRegistry(t)

	rows, err := r.Execute(context.Background(), "cebl",
		"SELECT player_id, full_name FROM players ORDER BY player_id")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jalen Harris", rows[0]["full_name"])
	assert.Equal(t, "cebl-002", rows[1]["player_id"])
}

func TestRegistryExecuteRejectsWrites(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Execute(context.Background(), "cebl", "DELETE FROM players")
	assert.ErrorIs(t, err, ErrQueryRejected)
}

func TestRegistryUnknownDataset(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Execute(context.Background(), "nba", "SELECT 1")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestRegistryMissingDatabaseFile(t *testing.T) {
	r := NewRegistry(t.TempDir(), log.New(io.Discard, "", 0))

	_, err := r.Execute(context.Background(), "ccaa", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRegistrySchema(t *testing.T) {
	r := newTestRegistry(t)

	ddl, err := r.Schema(context.Background(), "cebl")
	require.NoError(t, err)
	assert.Contains(t, ddl, "CREATE TABLE players")
	assert.Contains(t, ddl, "full_name")
}
