package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"scouting-agent-be/pkg/agent/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNDJSONWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	e := NewNDJSON(&buf)

	require.NoError(t, e.Emit(UpdateEvent(state.RouterUpdate{Intent: state.IntentStatsQuery, RoutingIteration: 1})))
	require.NoError(t, e.Emit(ErrorEvent("Something went wrong")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "router", first["node"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "error", second["node"])
	assert.Equal(t, "Something went wrong", second["output"])
}

func TestNDJSONFlushesBufferedWriter(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriterSize(&buf, 64*1024)
	e := NewNDJSON(bw)

	require.NoError(t, e.Emit(ErrorEvent("boom")))
	// Without the flush the line would still sit in the bufio buffer.
	assert.Contains(t, buf.String(), "boom")
}

func TestInterruptEventWireShape(t *testing.T) {
	intr := &state.Interrupt{
		Type:    state.InterruptScoutingConfirmation,
		Message: "Generate a full scouting report for Jalen Harris (CEBL)?",
	}

	var buf bytes.Buffer
	require.NoError(t, NewNDJSON(&buf).Emit(InterruptEvent(intr, "confirm_scouting_report:abc")))

	var decoded struct {
		Node   string `json:"node"`
		Output []struct {
			Value *state.Interrupt `json:"value"`
			Id    string           `json:"id"`
		} `json:"output"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, state.NodeInterrupt, decoded.Node)
	require.Len(t, decoded.Output, 1)
	assert.Equal(t, state.InterruptScoutingConfirmation, decoded.Output[0].Value.Type)
	assert.Equal(t, "confirm_scouting_report:abc", decoded.Output[0].Id)
}

type failingEmitter struct{}

func (failingEmitter) Emit(Event) error { return errors.New("sink closed") }

func TestTeeStopsAtFirstFailure(t *testing.T) {
	var col Collector
	tee := Tee(&col, failingEmitter{}, &col)

	err := tee.Emit(ErrorEvent("x"))
	require.Error(t, err)
	// The first emitter saw the event, the one after the failure did not.
	assert.Len(t, col.Events, 1)
}
