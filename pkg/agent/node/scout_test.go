package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"scouting-agent-be/pkg/agent/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisJSON = `{
	"archetype": "Scoring Playmaker",
	"archetype_description": "Creates for himself and others.",
	"strengths": [{"title": "Shot creation", "description": "Gets to his spots."}],
	"weaknesses": [{"title": "Defense", "description": "Loses focus off ball."}],
	"trajectory_analysis": [{"season": "2025", "ppg": 21.4, "trend_description": "up", "percentage_change": 11.5}],
	"trajectory_summary": "Trending up.",
	"national_team_assessments": [{"team_type": "Senior 5v5", "fit_rating": "Good Fit", "rationale": "Scoring punch off the bench."}],
	"final_recommendation": {"verdict_title": "Roster candidate", "summary": "Bring to camp.", "best_use_cases": ["bench scoring"], "overall_grade_domestic": "A", "overall_grade_national": "B"}
}`

func confirmedState() *state.AgentState {
	st := state.New("s1")
	st.PlayerId = "cebl-001"
	st.PlayerName = "Jalen Harris"
	st.League = "CEBL"
	st.ScoutingConfirmed = true
	return st
}

func runScout(t *testing.T, s *Scout, st *state.AgentState) state.ScoutUpdate {
	t.Helper()
	upd, intr, err := s.Run(context.Background(), st)
	require.NoError(t, err)
	require.Nil(t, intr)
	su, ok := upd.(state.ScoutUpdate)
	require.True(t, ok)
	return su
}

func TestScoutBuildsReport(t *testing.T) {
	scheduler := &stubScheduler{jobId: "job-42"}
	s := NewScout(&fakeProvider{response: analysisJSON}, &stubFetcher{detail: sampleDetail()}, scheduler, discardLogger())
	s.now = func() time.Time {
		return time.Date(2025, 8, 30, 15, 4, 5, 0, time.UTC)
	}

	upd := runScout(t, s, confirmedState())

	require.NotNil(t, upd.ScoutingReport)
	assert.Equal(t, "SR-20250830150405", upd.ScoutingReport.ReportId)
	assert.Equal(t, "Jalen Harris", upd.ScoutingReport.PlayerProfile.Name)
	assert.Equal(t, "Scoring Playmaker", upd.ScoutingReport.Archetype)
	assert.Equal(t, "job-42", upd.JobId)
	assert.Empty(t, upd.PdfUrl)
	assert.Equal(t, "s1", scheduler.sessionId)
}

func TestScoutRequiresPlayer(t *testing.T) {
	s := NewScout(&fakeProvider{response: analysisJSON}, &stubFetcher{detail: sampleDetail()}, &stubScheduler{}, discardLogger())
	upd := runScout(t, s, state.New("s1"))
	assert.Equal(t, "No player name provided", upd.Error)
	assert.Nil(t, upd.ScoutingReport)
}

func TestScoutAnalysisFailure(t *testing.T) {
	s := NewScout(&fakeProvider{response: "not json at all"}, &stubFetcher{detail: sampleDetail()}, &stubScheduler{}, discardLogger())
	upd := runScout(t, s, confirmedState())
	assert.Contains(t, upd.Error, "Scouting analysis failed")
	assert.Nil(t, upd.ScoutingReport)
}

func TestScoutDeliversReportWhenSchedulingFails(t *testing.T) {
	scheduler := &stubScheduler{err: errors.New("renderer down")}
	s := NewScout(&fakeProvider{response: analysisJSON}, &stubFetcher{detail: sampleDetail()}, scheduler, discardLogger())

	upd := runScout(t, s, confirmedState())

	require.NotNil(t, upd.ScoutingReport)
	assert.Empty(t, upd.PdfUrl)
	assert.Empty(t, upd.JobId)
	assert.Empty(t, upd.Error)
}
