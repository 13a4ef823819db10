package sessionguard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockerSerializesPerSession(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "s1")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionBusy)

	// Other sessions never contend.
	release2, err := l.Acquire(ctx, "s2")
	require.NoError(t, err)
	release2()

	release()
	release3, err := l.Acquire(ctx, "s1")
	require.NoError(t, err)
	release3()
}
