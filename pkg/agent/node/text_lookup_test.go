package node

import (
	"context"
	"errors"
	"testing"

	"scouting-agent-be/pkg/agent/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTextLookup(t *testing.T, n *TextLookup, st *state.AgentState) state.TextLookupUpdate {
	t.Helper()
	upd, intr, err := n.Run(context.Background(), st)
	require.NoError(t, err)
	require.Nil(t, intr)
	tu, ok := upd.(state.TextLookupUpdate)
	require.True(t, ok)
	return tu
}

func TestTextLookupRequiresPlayerName(t *testing.T) {
	n := NewTextLookup(&fakeProvider{}, &stubSearcher{}, &stubFetcher{}, discardLogger())
	upd := runTextLookup(t, n, state.New("s1"))
	assert.Equal(t, "No player name provided", upd.Error)
}

func TestTextLookupNoMatches(t *testing.T) {
	n := NewTextLookup(&fakeProvider{}, &stubSearcher{}, &stubFetcher{}, discardLogger())
	st := state.New("s1")
	st.PlayerName = "Nobody Nowhere"
	upd := runTextLookup(t, n, st)
	assert.Equal(t, "No players found matching 'Nobody Nowhere'", upd.Error)
}

func TestTextLookupAmbiguousReturnsCandidates(t *testing.T) {
	hits := []state.PlayerCandidate{
		{PlayerId: "a", FullName: "Jordan Smith", League: "CEBL"},
		{PlayerId: "b", FullName: "Jordan Smithson", League: "CEBL"},
	}
	n := NewTextLookup(&fakeProvider{}, &stubSearcher{hits: hits}, &stubFetcher{}, discardLogger())
	st := state.New("s1")
	st.PlayerName = "Jordan"
	upd := runTextLookup(t, n, st)

	assert.Empty(t, upd.Error)
	assert.Empty(t, upd.BioText)
	assert.Len(t, upd.Candidates, 2)
}

func TestTextLookupSingleMatchProducesBio(t *testing.T) {
	hits := []state.PlayerCandidate{{PlayerId: "cebl-001", FullName: "Jalen Harris", League: "CEBL"}}
	n := NewTextLookup(
		&fakeProvider{response: "Jalen Harris is a scoring guard for Scarborough."},
		&stubSearcher{hits: hits},
		&stubFetcher{detail: sampleDetail()},
		discardLogger(),
	)
	st := state.New("s1")
	st.PlayerName = "Jalen Harris"
	upd := runTextLookup(t, n, st)

	assert.Equal(t, "Jalen Harris is a scoring guard for Scarborough.", upd.BioText)
	require.NotNil(t, upd.PlayerDetail)
	assert.Equal(t, "cebl-001", upd.PlayerDetail.PlayerId)
}

func TestTextLookupFallsBackToFactualBio(t *testing.T) {
	hits := []state.PlayerCandidate{{PlayerId: "cebl-001", FullName: "Jalen Harris", League: "CEBL"}}
	n := NewTextLookup(
		&fakeProvider{err: errors.New("model offline")},
		&stubSearcher{hits: hits},
		&stubFetcher{detail: sampleDetail()},
		discardLogger(),
	)
	st := state.New("s1")
	st.PlayerName = "Jalen Harris"
	upd := runTextLookup(t, n, st)

	assert.Contains(t, upd.BioText, "Jalen Harris")
	assert.Contains(t, upd.BioText, "21.4")
}
