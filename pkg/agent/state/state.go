package state

// Intent is the closed set of classifications the router can produce.
type Intent string

const (
	IntentStatsQuery     Intent = "stats_query"
	IntentScoutingReport Intent = "scouting_report"
	IntentTextResponse   Intent = "text_response"
	IntentExtractPlayer  Intent = "extract_player_from_results"
	IntentContinueChain  Intent = "continue_chain"
	IntentTerminate      Intent = "terminate"
)

// ResponseType discriminates the final user-facing response shape.
type ResponseType string

const (
	ResponseTypeText         ResponseType = "text_response"
	ResponseTypeQueryResult  ResponseType = "query_result"
	ResponseTypeScoutingPlan ResponseType = "scouting_report_plan"
)

// Message roles match the chat history convention used by the LLM providers.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of conversation history carried in the agent state.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Entities holds what the router extracted from the user message.
type Entities struct {
	PlayerName   string `json:"player_name,omitempty"`
	League       string `json:"league"`
	Season       string `json:"season"`
	QueryContext string `json:"query_context,omitempty"`
}

// ResumeValue is the typed answer to an outstanding interrupt. Exactly one
// field is set: Index for player selection, Confirm for report confirmation.
type ResumeValue struct {
	Index   *int  `json:"index,omitempty"`
	Confirm *bool `json:"confirm,omitempty"`
}

// PlayerCandidate is one fuzzy-search hit offered for disambiguation.
type PlayerCandidate struct {
	PlayerId string  `json:"player_id"`
	FullName string  `json:"full_name"`
	League   string  `json:"league"`
	Team     string  `json:"team,omitempty"`
	Position string  `json:"position,omitempty"`
	Score    float64 `json:"score"`
}

// SeasonStat is a single season line for a player.
type SeasonStat struct {
	Season          string  `json:"season"`
	Team            string  `json:"team,omitempty"`
	GamesPlayed     int     `json:"games_played"`
	PointsPerGame   float64 `json:"points_per_game"`
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	AssistsPerGame  float64 `json:"assists_per_game"`
}

// PlayerDetail is the full player record backing bio lookups and scouting.
type PlayerDetail struct {
	PlayerId    string       `json:"player_id"`
	FullName    string       `json:"full_name"`
	Position    string       `json:"position,omitempty"`
	Height      string       `json:"height,omitempty"`
	Age         int          `json:"age,omitempty"`
	CurrentTeam string       `json:"current_team,omitempty"`
	League      string       `json:"league"`
	PhotoUrl    string       `json:"photo_url,omitempty"`
	SeasonStats []SeasonStat `json:"season_stats,omitempty"`
}

// AgentResponse is the consolidated output of the generate_response node.
type AgentResponse struct {
	ResponseType   ResponseType     `json:"response_type"`
	MainResponse   string           `json:"main_response"`
	QueryResult    *QueryResult     `json:"query_result,omitempty"`
	ScoutingReport *ScoutingReport  `json:"scouting_report,omitempty"`
	PdfUrl         string           `json:"pdf_url,omitempty"`
	JobId          string           `json:"job_id,omitempty"`
	ChartConfig    *ChartConfig     `json:"chart_config,omitempty"`
	Data           []map[string]any `json:"data,omitempty"`
}

// AgentState is the full conversation state threaded through the workflow.
// It is what gets checkpointed when a node suspends on an interrupt, so every
// field must survive a JSON round trip.
type AgentState struct {
	SessionId string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	UserQuery string    `json:"user_query"`

	Intent   Intent    `json:"intent,omitempty"`
	Entities *Entities `json:"entities,omitempty"`

	PlayerId   string `json:"player_id,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
	League     string `json:"league,omitempty"`

	PlayerDetail *PlayerDetail `json:"player_detail,omitempty"`
	BioText      string        `json:"bio_text,omitempty"`

	QueryResult       *QueryResult    `json:"query_result,omitempty"`
	ScoutingConfirmed bool            `json:"scouting_report_confirmed"`
	ScoutingReport    *ScoutingReport `json:"scouting_report,omitempty"`
	PdfUrl            string          `json:"pdf_url,omitempty"`
	RenderJobId       string          `json:"render_job_id,omitempty"`

	Error            string         `json:"error,omitempty"`
	RoutingIteration int            `json:"routing_iteration"`
	Response         *AgentResponse `json:"response,omitempty"`

	// Suspension bookkeeping. Candidates is the list the selection interrupt
	// was raised over; Resume is bound by the engine on re-entry and consumed
	// by the suspended node.
	Candidates []PlayerCandidate `json:"candidates,omitempty"`
	Resume     *ResumeValue      `json:"-"`
}

// New returns a fresh idle state for a session.
func New(sessionId string) *AgentState {
	return &AgentState{SessionId: sessionId}
}

// AppendMessage adds one turn to the conversation history.
func (s *AgentState) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// BeginTurn resets per-turn fields before the router runs. Only the
// conversation history carries across turns; the routing counter bounds
// re-route loops within a single turn, so it starts at zero every time.
func (s *AgentState) BeginTurn(userQuery string) {
	s.UserQuery = userQuery
	s.Intent = ""
	s.Entities = nil
	s.RoutingIteration = 0
	s.PlayerDetail = nil
	s.BioText = ""
	s.QueryResult = nil
	s.ScoutingConfirmed = false
	s.ScoutingReport = nil
	s.PdfUrl = ""
	s.RenderJobId = ""
	s.Error = ""
	s.Response = nil
	s.Candidates = nil
	s.Resume = nil
	s.AppendMessage(RoleUser, userQuery)
}
