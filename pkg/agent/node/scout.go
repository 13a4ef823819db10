package node

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/llm"
)

// Scout generates the full evaluation for a confirmed player and hands the
// finished report to the rendering pipeline.
type Scout struct {
	provider  llm.LLMProvider
	fetcher   PlayerDetailFetcher
	scheduler ReportScheduler
	logger    *log.Logger
	now       func() time.Time
}

func NewScout(provider llm.LLMProvider, fetcher PlayerDetailFetcher, scheduler ReportScheduler, logger *log.Logger) *Scout {
	return &Scout{
		provider:  provider,
		fetcher:   fetcher,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Scout) Name() string { return state.NodeScout }

func (s *Scout) Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error) {
	if st.PlayerId == "" {
		return state.ScoutUpdate{Error: "No player name provided"}, nil, nil
	}

	detail, err := s.fetcher.FetchDetail(ctx, st.PlayerId, st.League)
	if err != nil {
		s.logger.Printf("[SCOUT] detail fetch failed for %s: %v", st.PlayerId, err)
		return state.ScoutUpdate{Error: fmt.Sprintf("Could not load the profile for %s.", st.PlayerName)}, nil, nil
	}

	analysis, err := s.analyze(ctx, detail)
	if err != nil {
		s.logger.Printf("[SCOUT] analysis failed for %s: %v", st.PlayerId, err)
		return state.ScoutUpdate{Error: fmt.Sprintf("Scouting analysis failed for %s. Please try again.", detail.FullName)}, nil, nil
	}

	generatedAt := s.now().UTC()
	report := &state.ScoutingReport{
		ReportId:    "SR-" + generatedAt.Format("20060102150405"),
		GeneratedAt: generatedAt,
		PlayerProfile: state.PlayerProfile{
			Name:        detail.FullName,
			Position:    detail.Position,
			Height:      detail.Height,
			Age:         detail.Age,
			CurrentTeam: detail.CurrentTeam,
			League:      detail.League,
			PhotoUrl:    detail.PhotoUrl,
		},
		PlayerDetail:            detail,
		Archetype:               analysis.Archetype,
		ArchetypeDescription:    analysis.ArchetypeDescription,
		Strengths:               analysis.Strengths,
		Weaknesses:              analysis.Weaknesses,
		TrajectoryAnalysis:      analysis.TrajectoryAnalysis,
		TrajectorySummary:       analysis.TrajectorySummary,
		NationalTeamAssessments: analysis.NationalTeamAssessments,
		FinalRecommendation:     analysis.FinalRecommendation,
	}

	pdfUrl, jobId, err := s.scheduler.Schedule(ctx, st.SessionId, report)
	if err != nil {
		// The report itself is still delivered; only the document failed.
		s.logger.Printf("[SCOUT] render scheduling failed for %s: %v", report.ReportId, err)
		return state.ScoutUpdate{ScoutingReport: report}, nil, nil
	}

	return state.ScoutUpdate{ScoutingReport: report, PdfUrl: pdfUrl, JobId: jobId}, nil, nil
}

func (s *Scout) analyze(ctx context.Context, detail *state.PlayerDetail) (*state.ScoutingAnalysis, error) {
	prompt := s.buildPrompt(detail)
	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.5))
	if err != nil {
		return nil, fmt.Errorf("llm generate: %w", err)
	}

	jsonContent := extractJSON(raw)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var analysis state.ScoutingAnalysis
	if err := json.Unmarshal([]byte(jsonContent), &analysis); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if analysis.Archetype == "" {
		return nil, fmt.Errorf("analysis missing archetype")
	}
	return &analysis, nil
}

func (s *Scout) buildPrompt(detail *state.PlayerDetail) string {
	var prompt strings.Builder

	prompt.WriteString("<role>\n")
	prompt.WriteString("You are a professional basketball scout evaluating players for Canadian\n")
	prompt.WriteString("national team programs. Be specific and grounded in the data.\n")
	prompt.WriteString("</role>\n\n")

	prompt.WriteString("<player>\n")
	prompt.WriteString(fmt.Sprintf("Name: %s\n", detail.FullName))
	prompt.WriteString(fmt.Sprintf("League: %s\n", detail.League))
	if detail.CurrentTeam != "" {
		prompt.WriteString(fmt.Sprintf("Team: %s\n", detail.CurrentTeam))
	}
	if detail.Position != "" {
		prompt.WriteString(fmt.Sprintf("Position: %s\n", detail.Position))
	}
	if detail.Height != "" {
		prompt.WriteString(fmt.Sprintf("Height: %s\n", detail.Height))
	}
	if detail.Age > 0 {
		prompt.WriteString(fmt.Sprintf("Age: %d\n", detail.Age))
	}
	for _, st := range detail.SeasonStats {
		prompt.WriteString(fmt.Sprintf("Season %s (%s): %d GP, %.1f PPG, %.1f RPG, %.1f APG\n",
			st.Season, st.Team, st.GamesPlayed, st.PointsPerGame, st.ReboundsPerGame, st.AssistsPerGame))
	}
	prompt.WriteString("</player>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY this JSON, no other text:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"archetype\": \"e.g. Scoring Playmaker, 3&D Wing, Floor General\",\n")
	prompt.WriteString("  \"archetype_description\": \"one paragraph\",\n")
	prompt.WriteString("  \"strengths\": [{\"title\": \"...\", \"description\": \"...\"}],\n")
	prompt.WriteString("  \"weaknesses\": [{\"title\": \"...\", \"description\": \"...\"}],\n")
	prompt.WriteString("  \"trajectory_analysis\": [{\"season\": \"...\", \"ppg\": 0.0, \"trend_description\": \"...\", \"percentage_change\": 0.0}],\n")
	prompt.WriteString("  \"trajectory_summary\": \"one paragraph\",\n")
	prompt.WriteString("  \"national_team_assessments\": [{\"team_type\": \"Senior 5v5|U21|U19|3x3\", \"fit_rating\": \"Strong Fit|Good Fit|Depth Consideration|Developmental|Not Recommended\", \"rationale\": \"...\"}],\n")
	prompt.WriteString("  \"final_recommendation\": {\"verdict_title\": \"...\", \"summary\": \"...\", \"best_use_cases\": [\"...\"], \"overall_grade_domestic\": \"A-F\", \"overall_grade_national\": \"A-F\"}\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
