package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore(ctx)

	key := PendingRequestsKey(uuid.New(), 0)
	_, ok, err := s.GetInt(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetInt(ctx, key, 3, time.Minute))
	v, ok, err := s.GetInt(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	require.NoError(t, s.Delete(ctx, key))
	_, ok, _ = s.GetInt(ctx, key)
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore(ctx)

	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.SetInt(ctx, "k", 1, time.Second))

	s.now = func() time.Time { return now.Add(2 * time.Second) }
	_, ok, _ := s.GetInt(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_IncrDoesNotExpire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore(ctx)

	key := PendingRequestsGenKey(uuid.New())
	n, err := s.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	now := time.Now()
	s.now = func() time.Time { return now.Add(24 * time.Hour) }
	n, err = s.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
