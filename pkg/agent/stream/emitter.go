package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"scouting-agent-be/pkg/agent/state"
)

// Event is the atomic wire unit: one node execution, one NDJSON line.
type Event struct {
	Node   string `json:"node"`
	Output any    `json:"output"`
}

// UpdateEvent wraps a node output for the wire.
func UpdateEvent(u state.Update) Event {
	return Event{Node: u.Node(), Output: u}
}

// InterruptEvent wraps an interrupt in the sentinel shape: a one-element
// array of {value, id}. Callers decode it back into an Interrupt immediately;
// the array convention exists only on the wire.
func InterruptEvent(intr *state.Interrupt, id string) Event {
	return Event{
		Node:   state.NodeInterrupt,
		Output: []state.InterruptEnvelope{{Value: intr, Id: id}},
	}
}

// ErrorEvent is the terminating error sentinel with a plain string payload.
func ErrorEvent(message string) Event {
	return Event{Node: state.NodeError, Output: message}
}

// Emitter receives node events in execution order.
type Emitter interface {
	Emit(ev Event) error
}

type flusher interface {
	Flush() error
}

// NDJSON writes one newline-terminated JSON object per event and flushes
// after every line so the client renders partial progress.
type NDJSON struct {
	mu sync.Mutex
	w  io.Writer
}

func NewNDJSON(w io.Writer) *NDJSON {
	return &NDJSON{w: w}
}

func (e *NDJSON) Emit(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event for node %s: %w", ev.Node, err)
	}
	line = append(line, '\n')
	if _, err := e.w.Write(line); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if f, ok := e.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush event: %w", err)
		}
	}
	return nil
}

// Collector buffers events in memory. Used by tests and the history recorder.
type Collector struct {
	mu     sync.Mutex
	Events []Event
}

func (c *Collector) Emit(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, ev)
	return nil
}

// Tee fans one event out to several emitters, stopping at the first failure.
func Tee(emitters ...Emitter) Emitter {
	return teeEmitter(emitters)
}

type teeEmitter []Emitter

func (t teeEmitter) Emit(ev Event) error {
	for _, e := range t {
		if err := e.Emit(ev); err != nil {
			return err
		}
	}
	return nil
}
