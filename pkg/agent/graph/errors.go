package graph

import (
	"context"
	"errors"
	"strings"

	"scouting-agent-be/pkg/agent/checkpoint"
	"scouting-agent-be/pkg/agent/sessionguard"
)

// Protocol errors: the request does not fit the session's current state.
// These fail the turn without advancing the checkpoint.
var (
	ErrNoPendingInterrupt   = errors.New("no interrupt is outstanding for this session")
	ErrInterruptOutstanding = errors.New("an interrupt is outstanding; resume it before sending a new message")
	ErrInterruptMismatch    = errors.New("resume type does not match the outstanding interrupt")
	ErrBadResumeValue       = errors.New("invalid resume value")
	ErrEmptyInput           = errors.New("user input must be a non-empty string")
)

// User-facing error strings emitted on the error sentinel.
const (
	MsgStateUnavailable = "state_unavailable: your session could not be loaded, please try again"
	MsgSessionBusy      = "Your previous request is still being processed. Please wait for it to finish."
	MsgTimeout          = "The request timed out. Please try again."
	MsgConnection       = "A backing service could not be reached. Please try again shortly."
	MsgGeneric          = "Something went wrong while processing your request. Please try rephrasing."
)

// userFacingError maps internal failures onto stable client-safe strings.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, sessionguard.ErrSessionBusy):
		return MsgSessionBusy
	case errors.Is(err, checkpoint.ErrUnavailable):
		return MsgStateUnavailable
	case errors.Is(err, ErrNoPendingInterrupt),
		errors.Is(err, ErrInterruptOutstanding),
		errors.Is(err, ErrInterruptMismatch),
		errors.Is(err, ErrBadResumeValue),
		errors.Is(err, ErrEmptyInput):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "timeout"):
		return MsgTimeout
	case strings.Contains(s, "connection"), strings.Contains(s, "refused"),
		strings.Contains(s, "unreachable"):
		return MsgConnection
	default:
		return MsgGeneric
	}
}
