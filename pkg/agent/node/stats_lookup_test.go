package node

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/statsdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStatsRegistry(t *testing.T) *statsdb.Registry {
	t.Helper()
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "cebl.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE players (player_id TEXT PRIMARY KEY, full_name TEXT);
		CREATE TABLE player_season_stats (player_id TEXT, season TEXT, ppg REAL);
		INSERT INTO players VALUES ('cebl-001', 'Jalen Harris');
		INSERT INTO player_season_stats VALUES ('cebl-001', '2025', 21.4);
	`)
	require.NoError(t, err)

	r := statsdb.NewRegistry(dir, discardLogger())
	t.Cleanup(func() { r.Close() })
	return r
}

func planJSON(query, summary string) string {
	return fmt.Sprintf(`{"sql_query": %q, "db_name": "cebl", "summary_text": %q}`, query, summary)
}

func runStatsLookup(t *testing.T, provider *fakeProvider, st *state.AgentState) state.StatsLookupUpdate {
	t.Helper()
	n := NewStatsLookup(provider, seedStatsRegistry(t), discardLogger())
	upd, intr, err := n.Run(context.Background(), st)
	require.NoError(t, err)
	require.Nil(t, intr)
	su, ok := upd.(state.StatsLookupUpdate)
	require.True(t, ok)
	return su
}

func statsState() *state.AgentState {
	st := state.New("s1")
	st.League = "CEBL"
	st.UserQuery = "who scores the most?"
	return st
}

func TestStatsLookupRunsGeneratedQuery(t *testing.T) {
	provider := &fakeProvider{response: planJSON(
		"SELECT p.full_name, s.ppg FROM players p JOIN player_season_stats s ON s.player_id = p.player_id WHERE s.season = '2025' ORDER BY s.ppg DESC LIMIT 50",
		"Jalen Harris leads the league in scoring.",
	)}

	upd := runStatsLookup(t, provider, statsState())

	assert.Empty(t, upd.Error)
	require.NotNil(t, upd.QueryResult)
	require.Len(t, upd.QueryResult.Data, 1)
	assert.Equal(t, "Jalen Harris", upd.QueryResult.Data[0]["full_name"])
	assert.Equal(t, "cebl", upd.QueryResult.DbName)
	assert.Equal(t, "Jalen Harris leads the league in scoring.", upd.QueryResult.SummaryText)
	// The prompt is grounded on the live schema.
	assert.Contains(t, provider.prompt, "CREATE TABLE players")
}

func TestStatsLookupZeroRowsIsNotAnError(t *testing.T) {
	provider := &fakeProvider{response: planJSON(
		"SELECT full_name FROM players WHERE full_name = 'Nobody'", "",
	)}

	upd := runStatsLookup(t, provider, statsState())

	assert.Empty(t, upd.Error)
	assert.Equal(t, "The query ran successfully but returned no rows.", upd.QueryResult.SummaryText)
	assert.Empty(t, upd.QueryResult.Data)
}

func TestStatsLookupRejectsWritePlans(t *testing.T) {
	provider := &fakeProvider{response: planJSON("DELETE FROM players", "")}

	upd := runStatsLookup(t, provider, statsState())

	require.NotEmpty(t, upd.Error)
	assert.Contains(t, upd.QueryResult.SummaryText, "I encountered an error:")
}

func TestStatsLookupBadSQLGetsFriendlyMessage(t *testing.T) {
	provider := &fakeProvider{response: planJSON("SELECT nope FROM players", "")}

	upd := runStatsLookup(t, provider, statsState())

	assert.Equal(t, "the query referenced a column that does not exist.", upd.Error)
}

func TestStatsLookupUnknownLeague(t *testing.T) {
	st := statsState()
	st.League = "NBA"

	upd := runStatsLookup(t, &fakeProvider{}, st)
	assert.Contains(t, upd.Error, `I don't have data for the league "NBA".`)
}
