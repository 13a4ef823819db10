package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"scouting-agent-be/pkg/agent/state"
)

// ErrUnavailable signals that the backing session store cannot be reached.
// The engine fails the turn before any node executes when Load returns it.
var ErrUnavailable = errors.New("session state store unavailable")

// Checkpoint is everything needed to resume a session exactly where it
// paused. Node and InterruptType are empty when the session is idle.
type Checkpoint struct {
	SessionId     string
	Node          string
	InterruptType state.InterruptType
	State         *state.AgentState
	UpdatedAt     time.Time
}

// Suspended reports whether an interrupt is outstanding for the session.
func (c *Checkpoint) Suspended() bool {
	return c != nil && c.Node != "" && c.InterruptType != ""
}

// Clone returns a deep copy. Loads must hand out copies, not the stored
// checkpoint itself: the engine mutates the state during a turn and only
// persists it on Save, so a failed turn must leave the stored state as it
// was. The state round trips through JSON, which is the same shape it is
// persisted in.
func (c *Checkpoint) Clone() *Checkpoint {
	if c == nil {
		return nil
	}
	out := *c
	if c.State != nil {
		raw, err := json.Marshal(c.State)
		if err != nil {
			return &out
		}
		var st state.AgentState
		if err := json.Unmarshal(raw, &st); err != nil {
			return &out
		}
		out.State = &st
	}
	return &out
}

// Store persists workflow checkpoints keyed by session id. Save must be
// atomic: the whole checkpoint is written or none of it.
type Store interface {
	Load(ctx context.Context, sessionId string) (*Checkpoint, error)
	Save(ctx context.Context, cp *Checkpoint) error
	Clear(ctx context.Context, sessionId string) error
}

// MemoryStore is a process-local Store for tests and single-node setups.
type MemoryStore struct {
	mu  sync.RWMutex
	cps map[string]*Checkpoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cps: make(map[string]*Checkpoint)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionId string) (*Checkpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp, ok := m.cps[sessionId]
	if !ok {
		return nil, nil
	}
	return cp.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, cp *Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp.UpdatedAt = time.Now()
	m.cps[cp.SessionId] = cp
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cps, sessionId)
	return nil
}
