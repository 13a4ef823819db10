package node

import (
	"context"
	"io"
	"log"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
	// last prompt seen, for assertions
	prompt  string
	history []llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.history = history
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

type stubSearcher struct {
	hits []state.PlayerCandidate
	err  error
}

func (s *stubSearcher) Search(ctx context.Context, name, league string) ([]state.PlayerCandidate, error) {
	return s.hits, s.err
}

type stubFetcher struct {
	detail *state.PlayerDetail
	err    error
}

func (s *stubFetcher) FetchDetail(ctx context.Context, playerId, league string) (*state.PlayerDetail, error) {
	return s.detail, s.err
}

type stubScheduler struct {
	pdfUrl    string
	jobId     string
	err       error
	sessionId string
}

func (s *stubScheduler) Schedule(ctx context.Context, sessionId string, report *state.ScoutingReport) (string, string, error) {
	s.sessionId = sessionId
	return s.pdfUrl, s.jobId, s.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func sampleDetail() *state.PlayerDetail {
	return &state.PlayerDetail{
		PlayerId:    "cebl-001",
		FullName:    "Jalen Harris",
		Position:    "G",
		Height:      "6'5\"",
		Age:         26,
		CurrentTeam: "Scarborough Shooting Stars",
		League:      "CEBL",
		SeasonStats: []state.SeasonStat{
			{Season: "2024", GamesPlayed: 18, PointsPerGame: 19.2, ReboundsPerGame: 3.9, AssistsPerGame: 3.5},
			{Season: "2025", GamesPlayed: 20, PointsPerGame: 21.4, ReboundsPerGame: 4.1, AssistsPerGame: 3.8},
		},
	}
}
