package node

import (
	"context"
	"errors"
	"testing"

	"scouting-agent-be/pkg/agent/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runComposer(t *testing.T, provider *fakeProvider, st *state.AgentState) *state.AgentResponse {
	t.Helper()
	upd, intr, err := NewGenerateResponse(provider, discardLogger()).Run(context.Background(), st)
	require.NoError(t, err)
	require.Nil(t, intr)
	ru, ok := upd.(state.ResponseUpdate)
	require.True(t, ok)
	require.NotNil(t, ru.Response)
	return ru.Response
}

func TestComposerErrorTakesPriority(t *testing.T) {
	st := state.New("s1")
	st.Error = "No players found matching 'Nobody'"
	st.QueryResult = &state.QueryResult{SummaryText: "should not surface"}

	resp := runComposer(t, &fakeProvider{}, st)
	assert.Equal(t, state.ResponseTypeText, resp.ResponseType)
	assert.Equal(t, "No players found matching 'Nobody'", resp.MainResponse)
}

func TestComposerScoutingReport(t *testing.T) {
	st := state.New("s1")
	st.ScoutingReport = &state.ScoutingReport{
		ReportId:      "SR-20250830150405",
		PlayerProfile: state.PlayerProfile{Name: "Jalen Harris"},
	}
	st.RenderJobId = "job-42"

	resp := runComposer(t, &fakeProvider{}, st)
	assert.Equal(t, state.ResponseTypeScoutingPlan, resp.ResponseType)
	assert.Contains(t, resp.MainResponse, "Scouting report generated for Jalen Harris.")
	assert.Contains(t, resp.MainResponse, "being prepared")
	assert.Equal(t, "job-42", resp.JobId)
}

func TestComposerScoutingReportWithPdf(t *testing.T) {
	st := state.New("s1")
	st.ScoutingReport = &state.ScoutingReport{
		PlayerProfile: state.PlayerProfile{Name: "Jalen Harris"},
	}
	st.PdfUrl = "/reports/SR-20250830150405.pdf"

	resp := runComposer(t, &fakeProvider{}, st)
	assert.Contains(t, resp.MainResponse, "PDF available for download.")
	assert.Equal(t, "/reports/SR-20250830150405.pdf", resp.PdfUrl)
}

func TestComposerQueryResult(t *testing.T) {
	st := state.New("s1")
	st.QueryResult = &state.QueryResult{
		SummaryText: "Jalen Harris leads the CEBL with 21.4 points per game.",
		Data:        []map[string]any{{"full_name": "Jalen Harris", "ppg": 21.4}},
	}

	resp := runComposer(t, &fakeProvider{}, st)
	assert.Equal(t, state.ResponseTypeQueryResult, resp.ResponseType)
	assert.Equal(t, st.QueryResult.SummaryText, resp.MainResponse)
	assert.Len(t, resp.Data, 1)
}

func TestComposerClarificationList(t *testing.T) {
	st := state.New("s1")
	st.Candidates = []state.PlayerCandidate{
		{FullName: "Jordan Smith", League: "CEBL", Team: "Vancouver Bandits"},
		{FullName: "Jordan Smithson", League: "CEBL"},
	}

	resp := runComposer(t, &fakeProvider{}, st)
	assert.Equal(t, state.ResponseTypeText, resp.ResponseType)
	assert.Contains(t, resp.MainResponse, "I found 2 players matching that name.")
	assert.Contains(t, resp.MainResponse, "1. Jordan Smith (CEBL, Vancouver Bandits)")
	assert.Contains(t, resp.MainResponse, "2. Jordan Smithson (CEBL)")
}

func TestComposerBioText(t *testing.T) {
	st := state.New("s1")
	st.BioText = "Jalen Harris is a scoring guard."

	resp := runComposer(t, &fakeProvider{}, st)
	assert.Equal(t, "Jalen Harris is a scoring guard.", resp.MainResponse)
}

func TestComposerConverses(t *testing.T) {
	st := state.New("s1")
	st.BeginTurn("hey there")

	provider := &fakeProvider{response: "Hello! Ask me about Canadian basketball."}
	resp := runComposer(t, provider, st)
	assert.Equal(t, "Hello! Ask me about Canadian basketball.", resp.MainResponse)
	// The chat history includes the priming message plus the user turn.
	require.Len(t, provider.history, 2)
	assert.Equal(t, "hey there", provider.history[1].Content)
}

func TestComposerConverseFallback(t *testing.T) {
	st := state.New("s1")
	st.BeginTurn("hey there")

	resp := runComposer(t, &fakeProvider{err: errors.New("model offline")}, st)
	assert.Contains(t, resp.MainResponse, "CEBL, U SPORTS, CCAA and HoopQueens")
}
