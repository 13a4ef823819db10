package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one persisted message of a session's conversation history.
type ChatTurn struct {
	Id        uuid.UUID
	SessionId string
	Role      string
	Content   string
	CreatedAt time.Time
}

// ReportJob tracks one background PDF render of a scouting report.
type ReportJob struct {
	Id        uuid.UUID
	SessionId string
	ReportId  string
	Status    string
	PdfUrl    string
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}
