package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "report_rendered").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent holds the common fields every event carries.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// EventTypeReportRendered fires when a scouting report PDF finished rendering.
const EventTypeReportRendered = "report_rendered"

// NewReportRendered builds the event published after a render job completes.
func NewReportRendered(jobId, reportId, sessionId, pdfUrl string) Event {
	return BaseEvent{
		Type: EventTypeReportRendered,
		Data: map[string]interface{}{
			"job_id":     jobId,
			"report_id":  reportId,
			"session_id": sessionId,
			"pdf_url":    pdfUrl,
		},
		OccurredAt: time.Now(),
	}
}
