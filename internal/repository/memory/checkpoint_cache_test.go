package memory

import (
	"testing"

	"scouting-agent-be/pkg/agent/checkpoint"
	"scouting-agent-be/pkg/agent/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointCacheRoundTrip(t *testing.T) {
	c := NewCheckpointCache()

	_, found := c.Get("missing")
	assert.False(t, found)

	st := state.New("s1")
	st.AppendMessage(state.RoleUser, "hello")
	c.Save(&checkpoint.Checkpoint{SessionId: "s1", State: st})

	got, found := c.Get("s1")
	require.True(t, found)
	assert.Equal(t, "s1", got.SessionId)
	require.Len(t, got.State.Messages, 1)

	c.Delete("s1")
	_, found = c.Get("s1")
	assert.False(t, found)
}

func TestCheckpointCacheGetReturnsCopy(t *testing.T) {
	c := NewCheckpointCache()
	st := state.New("s1")
	st.AppendMessage(state.RoleUser, "hello")
	c.Save(&checkpoint.Checkpoint{SessionId: "s1", State: st})

	got, found := c.Get("s1")
	require.True(t, found)
	got.State.AppendMessage(state.RoleModel, "scribble")
	got.Node = "confirm_scouting_report"

	again, found := c.Get("s1")
	require.True(t, found)
	assert.Len(t, again.State.Messages, 1)
	assert.Empty(t, again.Node)
}
