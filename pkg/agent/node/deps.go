package node

import (
	"context"
	"strings"

	"scouting-agent-be/pkg/agent/state"
)

// MaxRoutingIterations bounds how many re-route loops a single turn may
// take before the router forces termination, so a misbehaving model cannot
// loop a turn forever. The counter resets on every fresh user message.
const MaxRoutingIterations = 10

// DefaultSeason is assumed when the user does not name one.
const DefaultSeason = "2025"

// DefaultLeague is assumed when the user does not name one.
const DefaultLeague = "CEBL"

// PlayerSearcher resolves a free-text player name to candidates.
type PlayerSearcher interface {
	Search(ctx context.Context, name, league string) ([]state.PlayerCandidate, error)
}

// PlayerDetailFetcher loads the full record for a resolved player.
type PlayerDetailFetcher interface {
	FetchDetail(ctx context.Context, playerId, league string) (*state.PlayerDetail, error)
}

// ReportScheduler hands a finished report to the rendering pipeline. It
// returns a document URL when rendering completed inline, or a job id when
// rendering continues in the background. Exactly one of the two is set.
type ReportScheduler interface {
	Schedule(ctx context.Context, sessionId string, report *state.ScoutingReport) (pdfUrl string, jobId string, err error)
}

// extractJSON isolates JSON content from response
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
