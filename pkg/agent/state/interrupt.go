package state

// InterruptType discriminates the two human-in-the-loop suspension points.
type InterruptType string

const (
	InterruptPlayerSelection      InterruptType = "player_selection_for_scouting"
	InterruptScoutingConfirmation InterruptType = "scouting_confirmation"
)

// Valid reports whether t is a known interrupt type.
func (t InterruptType) Valid() bool {
	return t == InterruptPlayerSelection || t == InterruptScoutingConfirmation
}

// Interrupt is a deliberate suspension awaiting a typed user answer.
// The payload fields are type-specific: SearchResults for player selection,
// the player binding fields for scouting confirmation.
type Interrupt struct {
	Type          InterruptType     `json:"type"`
	Message       string            `json:"message"`
	SearchResults []PlayerCandidate `json:"search_results,omitempty"`
	PlayerName    string            `json:"player_name,omitempty"`
	PlayerId      string            `json:"player_id,omitempty"`
	League        string            `json:"league,omitempty"`
}

// InterruptEnvelope is the wire wrapper for one interrupt. The streaming
// protocol emits the sentinel node with a one-element array of these; the
// array shape exists only at the serialization boundary.
type InterruptEnvelope struct {
	Value *Interrupt `json:"value"`
	Id    string     `json:"id"`
}
