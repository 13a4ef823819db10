package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"scouting-agent-be/internal/constant"
	"scouting-agent-be/internal/pkg/logger"
	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/statsdb"
)

// ISearchService resolves player names against the league stats databases.
// It backs both the search API and the agent's player resolution.
type ISearchService interface {
	SearchPlayers(ctx context.Context, name, league string) ([]state.PlayerCandidate, error)
	GetPlayerDetail(ctx context.Context, playerId, league string) (*state.PlayerDetail, error)

	// Aliases satisfying the agent node dependency contracts.
	Search(ctx context.Context, name, league string) ([]state.PlayerCandidate, error)
	FetchDetail(ctx context.Context, playerId, league string) (*state.PlayerDetail, error)
}

type searchService struct {
	registry *statsdb.Registry
	logger   logger.ILogger
}

func NewSearchService(registry *statsdb.Registry, logger logger.ILogger) ISearchService {
	return &searchService{registry: registry, logger: logger}
}

func (s *searchService) Search(ctx context.Context, name, league string) ([]state.PlayerCandidate, error) {
	return s.SearchPlayers(ctx, name, league)
}

func (s *searchService) FetchDetail(ctx context.Context, playerId, league string) (*state.PlayerDetail, error) {
	return s.GetPlayerDetail(ctx, playerId, league)
}

// SearchPlayers fuzzy-matches a name across one league, or every league when
// none is given. Hits below the score cutoff are dropped.
func (s *searchService) SearchPlayers(ctx context.Context, name, league string) ([]state.PlayerCandidate, error) {
	leagues := statsdb.Leagues()
	if league != "" {
		leagues = []string{league}
	}

	var hits []state.PlayerCandidate
	for _, lg := range leagues {
		dataset, err := statsdb.DatasetForLeague(lg)
		if err != nil {
			if league != "" {
				return nil, err
			}
			continue
		}

		rows, err := s.registry.Execute(ctx, dataset,
			"SELECT player_id, full_name, current_team, position FROM players")
		if err != nil {
			// A missing league file should not sink a cross-league search.
			if league == "" {
				s.logger.Warn("SEARCH", "skipping league during search", map[string]interface{}{
					"league": lg,
					"error":  err.Error(),
				})
				continue
			}
			return nil, err
		}

		for _, row := range rows {
			fullName, _ := row["full_name"].(string)
			score := matchScore(name, fullName)
			if score < constant.SearchMinScore {
				continue
			}
			playerId, _ := row["player_id"].(string)
			team, _ := row["current_team"].(string)
			position, _ := row["position"].(string)
			hits = append(hits, state.PlayerCandidate{
				PlayerId: playerId,
				FullName: fullName,
				League:   lg,
				Team:     team,
				Position: position,
				Score:    score,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > constant.SearchMaxResults {
		hits = hits[:constant.SearchMaxResults]
	}
	return hits, nil
}

func (s *searchService) GetPlayerDetail(ctx context.Context, playerId, league string) (*state.PlayerDetail, error) {
	dataset, err := statsdb.DatasetForLeague(league)
	if err != nil {
		return nil, err
	}

	rows, err := s.registry.Execute(ctx, dataset,
		"SELECT player_id, full_name, position, height, age, current_team, photo_url FROM players WHERE player_id = ?",
		playerId)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("player %s not found in %s", playerId, league)
	}

	row := rows[0]
	detail := &state.PlayerDetail{
		PlayerId: playerId,
		League:   league,
	}
	detail.FullName, _ = row["full_name"].(string)
	detail.Position, _ = row["position"].(string)
	detail.Height, _ = row["height"].(string)
	detail.CurrentTeam, _ = row["current_team"].(string)
	detail.PhotoUrl, _ = row["photo_url"].(string)
	if age, ok := row["age"].(int64); ok {
		detail.Age = int(age)
	}

	statRows, err := s.registry.Execute(ctx, dataset,
		"SELECT season, team, games_played, ppg, rpg, apg FROM player_season_stats WHERE player_id = ? ORDER BY season",
		playerId)
	if err != nil {
		return nil, err
	}
	for _, sr := range statRows {
		stat := state.SeasonStat{}
		stat.Season, _ = sr["season"].(string)
		stat.Team, _ = sr["team"].(string)
		if gp, ok := sr["games_played"].(int64); ok {
			stat.GamesPlayed = int(gp)
		}
		stat.PointsPerGame = asFloat(sr["ppg"])
		stat.ReboundsPerGame = asFloat(sr["rpg"])
		stat.AssistsPerGame = asFloat(sr["apg"])
		detail.SeasonStats = append(detail.SeasonStats, stat)
	}

	return detail, nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// matchScore rates how well a query matches a player name on a 0-100 scale.
// Exact match 100, prefix/substring 90, otherwise the share of query tokens
// found in the name.
func matchScore(query, name string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(strings.TrimSpace(name))
	if q == "" || n == "" {
		return 0
	}
	if q == n {
		return 100
	}
	if strings.HasPrefix(n, q) || strings.Contains(n, q) {
		return 90
	}

	qTokens := strings.Fields(q)
	nTokens := strings.Fields(n)
	if len(qTokens) == 0 {
		return 0
	}

	matched := 0
	for _, qt := range qTokens {
		for _, nt := range nTokens {
			if qt == nt || strings.HasPrefix(nt, qt) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(qTokens)) * 100
}
