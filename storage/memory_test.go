package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemoryStorage()

	_, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "k", "v1"))
	require.NoError(t, m.Set(ctx, "k", "v2"))

	v, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, m.SetCalls())
}

func TestMemoryStorage_FailNextSets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemoryStorage()
	m.FailNextSets(2)

	assert.ErrorIs(t, m.Set(ctx, "k", "a"), ErrInjected)
	assert.ErrorIs(t, m.Set(ctx, "k", "b"), ErrInjected)
	require.NoError(t, m.Set(ctx, "k", "c"))

	v, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "c", v)
	assert.Equal(t, 3, m.SetCalls())
}

func TestMemoryStorage_FailNextGets(t *testing.T) {
	t.Parallel()
	m := NewMemoryStorage()
	m.FailNextGets(1)

	_, _, err := m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrInjected)

	_, found, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemoryStorage()
	assert.ErrorIs(t, m.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStorage_Closed(t *testing.T) {
	t.Parallel()
	m := NewMemoryStorage()
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Set(context.Background(), "k", "v"), ErrClosed)
	_, _, err := m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryStorage_Ping(t *testing.T) {
	t.Parallel()
	m := NewMemoryStorage()
	require.NoError(t, Ping(context.Background(), m))

	require.NoError(t, m.Close())
	assert.ErrorIs(t, Ping(context.Background(), m), ErrClosed)
}

func TestPing_BackendWithoutPinger(t *testing.T) {
	t.Parallel()
	m := NewMemoryStorage()
	require.NoError(t, m.Close())

	// Embedding only the interface hides Ping.
	var kv KeyValueStorage = struct{ KeyValueStorage }{m}
	assert.NoError(t, Ping(context.Background(), kv))
}
