package constant

// Report render job statuses.
const (
	ReportJobStatusPending    = "pending"
	ReportJobStatusProcessing = "processing"
	ReportJobStatusCompleted  = "completed"
	ReportJobStatusFailed     = "failed"
)

// RenderReportTopicName is the in-process queue topic for PDF render jobs.
const RenderReportTopicName = "RENDER_SCOUTING_REPORT"

// SearchMinScore is the fuzzy-match cutoff (0-100) below which player search
// hits are discarded.
const SearchMinScore = 80.0

// SearchMaxResults caps how many candidates a player search returns.
const SearchMaxResults = 20
