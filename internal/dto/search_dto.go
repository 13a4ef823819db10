package dto

// SearchPlayersRequest is bound from query parameters.
type SearchPlayersRequest struct {
	Name   string `query:"name" validate:"required,min=2"`
	League string `query:"league"`
}

// PlayerSearchHit is one match returned by the player search endpoint.
type PlayerSearchHit struct {
	PlayerId string  `json:"player_id"`
	FullName string  `json:"full_name"`
	League   string  `json:"league"`
	Team     string  `json:"team,omitempty"`
	Position string  `json:"position,omitempty"`
	Score    float64 `json:"score"`
}
