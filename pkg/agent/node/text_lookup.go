package node

import (
	"context"
	"fmt"
	"log"
	"strings"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/llm"
)

// TextLookup resolves a player referenced in conversation and produces a
// short textual profile. An ambiguous name yields a candidate list for the
// composer to turn into a clarification question, never an interrupt.
type TextLookup struct {
	provider llm.LLMProvider
	searcher PlayerSearcher
	fetcher  PlayerDetailFetcher
	logger   *log.Logger
}

func NewTextLookup(provider llm.LLMProvider, searcher PlayerSearcher, fetcher PlayerDetailFetcher, logger *log.Logger) *TextLookup {
	return &TextLookup{provider: provider, searcher: searcher, fetcher: fetcher, logger: logger}
}

func (t *TextLookup) Name() string { return state.NodeTextLookup }

func (t *TextLookup) Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	name := st.PlayerName
	if name == "" && st.Entities != nil {
		name = st.Entities.PlayerName
	}
	if name == "" {
		return state.TextLookupUpdate{Error: "No player name provided"}, nil, nil
	}

	league := st.League
	if league == "" && st.Entities != nil {
		league = st.Entities.League
	}

	candidates, err := t.searcher.Search(ctx, name, league)
	if err != nil {
		t.logger.Printf("[TEXT_LOOKUP] search failed for %q: %v", name, err)
		return state.TextLookupUpdate{Error: "Player search is unavailable right now. Please try again."}, nil, nil
	}

	switch {
	case len(candidates) == 0:
		return state.TextLookupUpdate{Error: fmt.Sprintf("No players found matching '%s'", name)}, nil, nil
	case len(candidates) > 1:
		// Ambiguity becomes a clarification answer for the composer.
		return state.TextLookupUpdate{Candidates: candidates}, nil, nil
	}

	hit := candidates[0]
	detail, err := t.fetcher.FetchDetail(ctx, hit.PlayerId, hit.League)
	if err != nil {
		t.logger.Printf("[TEXT_LOOKUP] detail fetch failed for %s: %v", hit.PlayerId, err)
		return state.TextLookupUpdate{Error: fmt.Sprintf("I found %s but could not load their profile.", hit.FullName)}, nil, nil
	}

	bio, err := t.summarize(ctx, detail)
	if err != nil {
		// Fall back to a plain factual line rather than failing the turn.
		t.logger.Printf("[TEXT_LOOKUP] bio generation failed for %s: %v", detail.PlayerId, err)
		bio = factualBio(detail)
	}

	return state.TextLookupUpdate{PlayerDetail: detail, BioText: bio}, nil, nil
}

func (t *TextLookup) summarize(ctx context.Context, detail *state.PlayerDetail) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Write a short factual profile (3-4 sentences) of this basketball player.\n")
	prompt.WriteString("Do not invent numbers, only use the data given.\n\n")
	prompt.WriteString(fmt.Sprintf("Name: %s\n", detail.FullName))
	prompt.WriteString(fmt.Sprintf("League: %s\n", detail.League))
	if detail.CurrentTeam != "" {
		prompt.WriteString(fmt.Sprintf("Team: %s\n", detail.CurrentTeam))
	}
	if detail.Position != "" {
		prompt.WriteString(fmt.Sprintf("Position: %s\n", detail.Position))
	}
	for _, s := range detail.SeasonStats {
		prompt.WriteString(fmt.Sprintf("Season %s: %d GP, %.1f PPG, %.1f RPG, %.1f APG\n",
			s.Season, s.GamesPlayed, s.PointsPerGame, s.ReboundsPerGame, s.AssistsPerGame))
	}
	return t.provider.Generate(ctx, prompt.String(), llm.WithTemperature(0.4))
}

func factualBio(detail *state.PlayerDetail) string {
	var b strings.Builder
	b.WriteString(detail.FullName)
	if detail.Position != "" {
		b.WriteString(" plays " + detail.Position)
	}
	if detail.CurrentTeam != "" {
		b.WriteString(" for " + detail.CurrentTeam)
	}
	b.WriteString(" in the " + detail.League + ".")
	if len(detail.SeasonStats) > 0 {
		latest := detail.SeasonStats[len(detail.SeasonStats)-1]
		b.WriteString(fmt.Sprintf(" In %s they averaged %.1f points, %.1f rebounds and %.1f assists over %d games.",
			latest.Season, latest.PointsPerGame, latest.ReboundsPerGame, latest.AssistsPerGame, latest.GamesPlayed))
	}
	return b.String()
}
