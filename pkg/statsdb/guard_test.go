package statsdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardQuery_AllowsReadOnlySelects(t *testing.T) {
	queries := []string{
		"SELECT * FROM player_season_stats",
		"select player_name, ppg from player_season_stats where season = '2025'",
		"  SELECT COUNT(*) FROM teams;",
		"WITH ranked AS (SELECT player_name, ppg FROM player_season_stats) SELECT * FROM ranked LIMIT 10",
		"SELECT name FROM players WHERE notes LIKE '%updated roster%'",
	}

	for _, q := range queries {
		assert.NoError(t, GuardQuery(q), "query should pass: %s", q)
	}
}

func TestGuardQuery_RejectsWrites(t *testing.T) {
	queries := map[string]string{
		"insert":    "INSERT INTO players (name) VALUES ('x')",
		"update":    "UPDATE players SET name = 'x'",
		"delete":    "DELETE FROM players",
		"drop":      "DROP TABLE players",
		"alter":     "ALTER TABLE players ADD COLUMN x TEXT",
		"create":    "CREATE TABLE evil (id INTEGER)",
		"attach":    "ATTACH DATABASE '/tmp/evil.db' AS evil",
		"pragma":    "PRAGMA writable_schema = 1",
		"lowercase": "delete from players",
	}

	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			err := GuardQuery(q)
			assert.ErrorIs(t, err, ErrQueryRejected)
		})
	}
}

func TestGuardQuery_RejectsStackedStatements(t *testing.T) {
	err := GuardQuery("SELECT * FROM players; DROP TABLE players")
	assert.ErrorIs(t, err, ErrQueryRejected)

	err = GuardQuery("SELECT 1; SELECT 2")
	assert.ErrorIs(t, err, ErrQueryRejected)
}

func TestGuardQuery_RejectsEmbeddedWriteInSelect(t *testing.T) {
	// Keywords are matched as words anywhere, even inside subquery text.
	err := GuardQuery("SELECT * FROM players WHERE id IN (DELETE FROM players)")
	assert.ErrorIs(t, err, ErrQueryRejected)
}

func TestGuardQuery_RejectsEmptyAndNonSelect(t *testing.T) {
	assert.ErrorIs(t, GuardQuery(""), ErrQueryRejected)
	assert.ErrorIs(t, GuardQuery("   "), ErrQueryRejected)
	assert.ErrorIs(t, GuardQuery("EXPLAIN SELECT 1"), ErrQueryRejected)
}

func TestGuardQuery_AllowsKeywordsAsSubstrings(t *testing.T) {
	// "created_at" contains CREATE but is not the keyword.
	assert.NoError(t, GuardQuery("SELECT created_at, updated_at FROM games"))
}

func TestDatasetForLeague(t *testing.T) {
	dataset, err := DatasetForLeague("CEBL")
	assert.NoError(t, err)
	assert.Equal(t, "cebl", dataset)

	dataset, err = DatasetForLeague("u sports")
	assert.NoError(t, err)
	assert.Equal(t, "usports", dataset)

	_, err = DatasetForLeague("NBA")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}
