package node

import (
	"context"
	"errors"
	"testing"

	"scouting-agent-be/pkg/agent/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRouter(t *testing.T, provider *fakeProvider, st *state.AgentState) state.RouterUpdate {
	t.Helper()
	upd, intr, err := NewRouter(provider, discardLogger()).Run(context.Background(), st)
	require.NoError(t, err)
	require.Nil(t, intr)
	ru, ok := upd.(state.RouterUpdate)
	require.True(t, ok)
	return ru
}

func TestRouterParsesDecision(t *testing.T) {
	provider := &fakeProvider{response: `Here you go:
{"intent": "stats_query", "entities": {"player_name": "Jalen Harris", "league": "", "season": "", "query_context": "scoring stats"}}`}

	st := state.New("s1")
	st.BeginTurn("how many points does jalen harris average?")
	upd := runRouter(t, provider, st)

	assert.Equal(t, state.IntentStatsQuery, upd.Intent)
	assert.Equal(t, "Jalen Harris", upd.PlayerName)
	assert.Equal(t, DefaultLeague, upd.League)
	assert.Equal(t, DefaultSeason, upd.Entities.Season)
	assert.Equal(t, 1, upd.RoutingIteration)
	assert.False(t, upd.WorkComplete)
}

func TestRouterUnknownIntentFallsBackToText(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "buy_tickets", "entities": {}}`}

	st := state.New("s1")
	st.BeginTurn("get me tickets")
	upd := runRouter(t, provider, st)

	assert.Equal(t, state.IntentTextResponse, upd.Intent)
}

func TestRouterDegradesOnProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model offline")}

	st := state.New("s1")
	st.BeginTurn("hello")
	upd := runRouter(t, provider, st)

	assert.Equal(t, state.IntentTextResponse, upd.Intent)
	assert.NotEmpty(t, upd.Error)
}

func TestRouterDegradesOnGarbageOutput(t *testing.T) {
	provider := &fakeProvider{response: "I think the user wants stats, probably."}

	st := state.New("s1")
	st.BeginTurn("hello")
	upd := runRouter(t, provider, st)

	assert.Equal(t, state.IntentTextResponse, upd.Intent)
	assert.NotEmpty(t, upd.Error)
}

func TestRouterTerminateMarksWorkComplete(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "terminate", "entities": {}}`}

	st := state.New("s1")
	st.BeginTurn("thanks, that's all")
	upd := runRouter(t, provider, st)

	assert.Equal(t, state.IntentTerminate, upd.Intent)
	assert.True(t, upd.WorkComplete)
}

func TestRouterForcesTerminateAtIterationBound(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "stats_query", "entities": {}}`}

	st := state.New("s1")
	st.BeginTurn("more stats")
	st.RoutingIteration = MaxRoutingIterations
	upd := runRouter(t, provider, st)

	assert.Equal(t, state.IntentTerminate, upd.Intent)
	assert.True(t, upd.WorkComplete)
	assert.NotEmpty(t, upd.Error)
	// The model was never consulted.
	assert.Empty(t, provider.prompt)
}

func TestRouterCounterResetsOnNewTurn(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "stats_query", "entities": {}}`}

	// A long session never trips the bound: the counter limits re-route
	// loops inside one turn, not the number of turns.
	st := state.New("s1")
	for i := 0; i < MaxRoutingIterations+2; i++ {
		st.BeginTurn("who leads the league in scoring?")
		upd := runRouter(t, provider, st)
		assert.Equal(t, state.IntentStatsQuery, upd.Intent)
		assert.Equal(t, 1, upd.RoutingIteration)
		assert.Empty(t, upd.Error)
		st.Apply(upd)
	}
}

func TestRouterPromptCarriesHistory(t *testing.T) {
	provider := &fakeProvider{response: `{"intent": "text_response", "entities": {}}`}

	st := state.New("s1")
	st.AppendMessage(state.RoleUser, "who leads the cebl in scoring?")
	st.AppendMessage(state.RoleModel, "Jalen Harris leads with 21.4 ppg.")
	st.BeginTurn("tell me more about him")
	runRouter(t, provider, st)

	assert.Contains(t, provider.prompt, "<conversation_history>")
	assert.Contains(t, provider.prompt, "who leads the cebl in scoring?")
	assert.Contains(t, provider.prompt, "tell me more about him")
}
