package state

// Workflow node identifiers. NodeInterrupt and NodeError are wire sentinels,
// not schedulable nodes.
const (
	NodeRouter           = "router"
	NodeStatsLookup      = "stats_lookup"
	NodeTextLookup       = "text_lookup"
	NodeConfirmScouting  = "confirm_scouting_report"
	NodeScout            = "scout"
	NodeGenerateResponse = "generate_response"

	NodeInterrupt = "__interrupt__"
	NodeError     = "error"
)

// Update is the tagged union of node outputs. Each node execution produces
// exactly one Update; the tag is the node identifier and drives both event
// serialization and state merging.
type Update interface {
	Node() string
}

// RouterUpdate is the router node's output.
type RouterUpdate struct {
	Intent           Intent    `json:"intent"`
	Entities         *Entities `json:"entities,omitempty"`
	PlayerName       string    `json:"player_name,omitempty"`
	League           string    `json:"league,omitempty"`
	UserQuery        string    `json:"user_query,omitempty"`
	RoutingIteration int       `json:"routing_iteration"`
	WorkComplete     bool      `json:"work_complete"`
	Error            string    `json:"error,omitempty"`
}

func (RouterUpdate) Node() string { return NodeRouter }

// StatsLookupUpdate carries the query result of the stats handler.
type StatsLookupUpdate struct {
	QueryResult *QueryResult `json:"query_result"`
	Error       string       `json:"error,omitempty"`
}

func (StatsLookupUpdate) Node() string { return NodeStatsLookup }

// TextLookupUpdate carries resolved bio content, or the candidate list when
// the entity was ambiguous and the handler asks for clarification instead.
type TextLookupUpdate struct {
	PlayerDetail *PlayerDetail     `json:"player_detail,omitempty"`
	Candidates   []PlayerCandidate `json:"candidates,omitempty"`
	BioText      string            `json:"bio_text,omitempty"`
	Error        string            `json:"error,omitempty"`
}

func (TextLookupUpdate) Node() string { return NodeTextLookup }

// ConfirmScoutingUpdate is the confirmation gate's terminal output for a
// turn: either a confirmed player binding or a cancellation/error.
type ConfirmScoutingUpdate struct {
	PlayerId          string            `json:"player_id,omitempty"`
	PlayerName        string            `json:"player_name,omitempty"`
	League            string            `json:"league,omitempty"`
	Candidates        []PlayerCandidate `json:"candidates,omitempty"`
	ScoutingConfirmed bool              `json:"scouting_report_confirmed"`
	Error             string            `json:"error,omitempty"`
}

func (ConfirmScoutingUpdate) Node() string { return NodeConfirmScouting }

// ScoutUpdate carries the finished report plus the rendering outcome. PdfUrl
// is set when rendering finished within the turn, JobId when it is still
// running in the background.
type ScoutUpdate struct {
	ScoutingReport *ScoutingReport `json:"scouting_report"`
	PdfUrl         string          `json:"pdf_url,omitempty"`
	JobId          string          `json:"job_id,omitempty"`
	Error          string          `json:"error,omitempty"`
}

func (ScoutUpdate) Node() string { return NodeScout }

// ResponseUpdate is the composer's final output for a turn.
type ResponseUpdate struct {
	Response *AgentResponse `json:"response"`
}

func (ResponseUpdate) Node() string { return NodeGenerateResponse }

// Apply merges a node output into the state. The switch is exhaustive over
// the union; unknown updates are ignored rather than corrupting state.
func (s *AgentState) Apply(u Update) {
	switch v := u.(type) {
	case RouterUpdate:
		s.Intent = v.Intent
		if v.Entities != nil {
			s.Entities = v.Entities
		}
		if v.PlayerName != "" {
			s.PlayerName = v.PlayerName
		}
		if v.League != "" {
			s.League = v.League
		}
		if v.UserQuery != "" {
			s.UserQuery = v.UserQuery
		}
		s.RoutingIteration = v.RoutingIteration
		if v.Error != "" {
			s.Error = v.Error
		}
	case StatsLookupUpdate:
		s.QueryResult = v.QueryResult
		s.Error = v.Error
	case TextLookupUpdate:
		if v.PlayerDetail != nil {
			s.PlayerDetail = v.PlayerDetail
			s.PlayerId = v.PlayerDetail.PlayerId
			s.PlayerName = v.PlayerDetail.FullName
			s.League = v.PlayerDetail.League
		}
		if len(v.Candidates) > 0 {
			s.Candidates = v.Candidates
		}
		s.BioText = v.BioText
		if v.Error != "" {
			s.Error = v.Error
		}
	case ConfirmScoutingUpdate:
		s.ScoutingConfirmed = v.ScoutingConfirmed
		if len(v.Candidates) > 0 {
			s.Candidates = v.Candidates
		}
		if v.PlayerId != "" {
			s.PlayerId = v.PlayerId
			s.PlayerName = v.PlayerName
			s.League = v.League
		}
		if v.Error != "" {
			s.Error = v.Error
		}
	case ScoutUpdate:
		s.ScoutingReport = v.ScoutingReport
		s.PdfUrl = v.PdfUrl
		s.RenderJobId = v.JobId
		if v.Error != "" {
			s.Error = v.Error
		}
	case ResponseUpdate:
		s.Response = v.Response
	}
}
