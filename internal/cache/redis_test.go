package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis реализует только команды, которые использует RedisStore.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = fmt.Sprint(value)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestRedisStore_SetGetDeleteWithPrefix(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := NewRedisStore(rdb, "skillswap:")
	key := PendingRequestsKey(uuid.New(), 0)

	_, ok, err := s.GetInt(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "redis.Nil должен означать промах")

	require.NoError(t, s.SetInt(ctx, key, 4, 30*time.Second))
	assert.Equal(t, "4", rdb.data["skillswap:"+key])
	assert.Equal(t, 30*time.Second, rdb.ttl["skillswap:"+key])

	v, ok, err := s.GetInt(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	require.NoError(t, s.Delete(ctx, key))
	assert.NotContains(t, rdb.data, "skillswap:"+key)
	require.NoError(t, s.Delete(ctx))
}

func TestRedisStore_Incr(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := NewRedisStore(rdb, "p:")
	key := PendingRequestsGenKey(uuid.New())

	n, err := s.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.Incr(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "2", rdb.data["p:"+key])
}

func TestRedisStore_Errors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := NewRedisStore(rdb, "")

	rdb.data["bad"] = "not-a-number"
	_, ok, err := s.GetInt(ctx, "bad")
	assert.Error(t, err)
	assert.False(t, ok)

	down := errors.New("connection refused")
	rdb.err = down
	_, _, err = s.GetInt(ctx, "k")
	assert.ErrorIs(t, err, down)
	assert.ErrorIs(t, s.SetInt(ctx, "k", 1, time.Second), down)
	assert.ErrorIs(t, s.Delete(ctx, "k"), down)
	_, err = s.Incr(ctx, "k")
	assert.ErrorIs(t, err, down)
}
