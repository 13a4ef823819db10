package graph

import (
	"context"
	"fmt"
	"log"
	"strings"

	"scouting-agent-be/pkg/agent/checkpoint"
	"scouting-agent-be/pkg/agent/sessionguard"
	"scouting-agent-be/pkg/agent/state"
	"scouting-agent-be/pkg/agent/stream"

	"github.com/google/uuid"
)

// Node is one workflow step. Run returns the node's output, or an interrupt
// to suspend on, or an error for unhandled failures. Handler-level failures
// are expected to come back inside the Update's error field, not as err.
type Node interface {
	Name() string
	Run(ctx context.Context, st *state.AgentState) (state.Update, *state.Interrupt, error)
}

// Input is one client request: a fresh message or an interrupt resume.
type Input struct {
	SessionId     string
	UserInput     any
	IsResume      bool
	InterruptType state.InterruptType
}

// Engine sequences router -> handler -> (interrupt/resume) -> composer and
// persists a checkpoint at every suspension and turn boundary.
type Engine struct {
	nodes  map[string]Node
	store  checkpoint.Store
	locker sessionguard.Locker
	logger *log.Logger
}

func NewEngine(store checkpoint.Store, locker sessionguard.Locker, logger *log.Logger, nodes ...Node) *Engine {
	m := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		m[n.Name()] = n
	}
	return &Engine{nodes: m, store: store, locker: locker, logger: logger}
}

// Stream executes one turn, emitting one event per node execution in order.
// Every outcome terminates the stream: a final response, an interrupt
// sentinel, or an error sentinel.
func (e *Engine) Stream(ctx context.Context, in Input, emit stream.Emitter) error {
	release, err := e.locker.Acquire(ctx, in.SessionId)
	if err != nil {
		emit.Emit(stream.ErrorEvent(userFacingError(err)))
		return err
	}
	defer release()

	cp, err := e.store.Load(ctx, in.SessionId)
	if err != nil {
		emit.Emit(stream.ErrorEvent(MsgStateUnavailable))
		return fmt.Errorf("load checkpoint: %w", err)
	}

	st, current, err := e.entryPoint(in, cp)
	if err != nil {
		emit.Emit(stream.ErrorEvent(userFacingError(err)))
		return err
	}

	for current != "" {
		node, ok := e.nodes[current]
		if !ok {
			emit.Emit(stream.ErrorEvent(MsgGeneric))
			return fmt.Errorf("unknown node %q", current)
		}

		upd, intr, err := node.Run(ctx, st)
		if err != nil {
			// Unhandled failure: terminate the stream, leave the checkpoint
			// where it was so a clean retry is possible.
			e.logger.Printf("[ENGINE] node %s failed: %v", current, err)
			emit.Emit(stream.ErrorEvent(userFacingError(err)))
			return err
		}

		if upd != nil {
			st.Apply(upd)
		}

		if intr != nil {
			// Persist the suspension before telling the client about it so a
			// resume can never arrive for a checkpoint that was not written.
			cp := &checkpoint.Checkpoint{
				SessionId:     in.SessionId,
				Node:          current,
				InterruptType: intr.Type,
				State:         st,
			}
			if err := e.store.Save(ctx, cp); err != nil {
				emit.Emit(stream.ErrorEvent(MsgStateUnavailable))
				return fmt.Errorf("save checkpoint: %w", err)
			}
			return emit.Emit(stream.InterruptEvent(intr, current+":"+uuid.NewString()))
		}

		if upd != nil {
			if err := emit.Emit(stream.UpdateEvent(upd)); err != nil {
				return err
			}
		}
		current = next(current, st)
	}

	if st.Response != nil && st.Response.MainResponse != "" {
		st.AppendMessage(state.RoleModel, st.Response.MainResponse)
	}
	st.Resume = nil
	idle := &checkpoint.Checkpoint{SessionId: in.SessionId, State: st}
	if err := e.store.Save(ctx, idle); err != nil {
		emit.Emit(stream.ErrorEvent(MsgStateUnavailable))
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// entryPoint validates the request against the session's checkpoint and
// returns the state plus the node to start from.
func (e *Engine) entryPoint(in Input, cp *checkpoint.Checkpoint) (*state.AgentState, string, error) {
	if in.IsResume {
		if !cp.Suspended() {
			return nil, "", ErrNoPendingInterrupt
		}
		if in.InterruptType != cp.InterruptType {
			return nil, "", fmt.Errorf("%w: outstanding %q, got %q",
				ErrInterruptMismatch, cp.InterruptType, in.InterruptType)
		}
		rv, err := parseResume(in.UserInput, cp.InterruptType)
		if err != nil {
			return nil, "", err
		}
		st := cp.State
		st.SessionId = in.SessionId
		st.Resume = rv
		return st, cp.Node, nil
	}

	if cp.Suspended() {
		return nil, "", ErrInterruptOutstanding
	}
	text, ok := in.UserInput.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return nil, "", ErrEmptyInput
	}

	st := state.New(in.SessionId)
	if cp != nil && cp.State != nil {
		st = cp.State
		st.SessionId = in.SessionId
	}
	st.BeginTurn(text)
	return st, state.NodeRouter, nil
}

// next implements the conditional edges of the state machine. An empty
// string terminates the turn.
func next(current string, st *state.AgentState) string {
	switch current {
	case state.NodeRouter:
		return routeAfterRouter(st)
	case state.NodeConfirmScouting:
		if st.ScoutingConfirmed {
			return state.NodeScout
		}
		return state.NodeGenerateResponse
	case state.NodeStatsLookup, state.NodeTextLookup, state.NodeScout:
		return state.NodeGenerateResponse
	default:
		return ""
	}
}

func routeAfterRouter(st *state.AgentState) string {
	switch st.Intent {
	case state.IntentStatsQuery:
		return state.NodeStatsLookup
	case state.IntentScoutingReport:
		return state.NodeConfirmScouting
	case state.IntentExtractPlayer:
		return state.NodeTextLookup
	default:
		// terminate, continue_chain and plain text responses are composed
		// directly; the router marked the routing work as complete.
		return state.NodeGenerateResponse
	}
}

// parseResume converts the raw request value into a typed resume value.
// Types never coerce: a boolean for a selection interrupt (or vice versa) is
// a protocol error.
func parseResume(v any, t state.InterruptType) (*state.ResumeValue, error) {
	switch t {
	case state.InterruptPlayerSelection:
		switch n := v.(type) {
		case int:
			return &state.ResumeValue{Index: &n}, nil
		case float64:
			// JSON numbers decode as float64; only integral values are valid.
			i := int(n)
			if float64(i) != n {
				return nil, fmt.Errorf("%w: selection index must be an integer", ErrBadResumeValue)
			}
			return &state.ResumeValue{Index: &i}, nil
		default:
			return nil, fmt.Errorf("%w: %s expects a numeric index", ErrBadResumeValue, t)
		}
	case state.InterruptScoutingConfirmation:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a boolean", ErrBadResumeValue, t)
		}
		return &state.ResumeValue{Confirm: &b}, nil
	default:
		return nil, fmt.Errorf("%w: unknown interrupt type %q", ErrBadResumeValue, t)
	}
}
