package dto

// ChatRequest is one turn submitted to the agent stream endpoint.
// UserInput is a string for fresh messages; for resumes it is the typed
// answer to the outstanding interrupt (an index or a boolean).
type ChatRequest struct {
	SessionId     string `json:"session_id" validate:"required"`
	UserInput     any    `json:"user_input" validate:"required"`
	IsResume      bool   `json:"is_resume"`
	InterruptType string `json:"interrupt_type" validate:"required_if=IsResume true"`
}

// HistoryTurnResponse is one message of a session's stored conversation.
type HistoryTurnResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// HistoryResponse is the full stored conversation of a session.
type HistoryResponse struct {
	SessionId string                `json:"session_id"`
	Turns     []HistoryTurnResponse `json:"turns"`
}
