package idempotency

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRedis эмулирует нужные команды Redis в памяти
type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string]string{}}
}

func (m *memoryRedis) SetNX(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (m *memoryRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryRedis) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	rdb := newMemoryRedis()
	store := NewStore(rdb, time.Hour)

	_, started, err := store.Begin(ctx, "create_assignment", 1, "key-1")
	require.NoError(t, err)
	assert.True(t, started)

	// второй запрос с тем же ключом, пока первый выполняется
	_, _, err = store.Begin(ctx, "create_assignment", 1, "key-1")
	assert.ErrorIs(t, err, ErrInProgress)

	require.NoError(t, store.Complete(ctx, "create_assignment", 1, "key-1", 77))

	id, started, err := store.Begin(ctx, "create_assignment", 1, "key-1")
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, int64(77), id)

	// ключи изолированы по координатору
	_, started, err = store.Begin(ctx, "create_assignment", 2, "key-1")
	require.NoError(t, err)
	assert.True(t, started)
}

func TestStore_AbortReleasesKey(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryRedis(), time.Hour)

	_, started, err := store.Begin(ctx, "s", 1, "k")
	require.NoError(t, err)
	require.True(t, started)

	require.NoError(t, store.Abort(ctx, "s", 1, "k"))

	_, started, err = store.Begin(ctx, "s", 1, "k")
	require.NoError(t, err)
	assert.True(t, started)
}

func TestStore_DisabledWithoutClient(t *testing.T) {
	store := NewStore(nil, time.Hour)
	assert.False(t, store.Enabled())

	_, started, err := store.Begin(context.Background(), "s", 1, "k")
	require.NoError(t, err)
	assert.True(t, started)
	assert.NoError(t, store.Complete(context.Background(), "s", 1, "k", 1))
}

func TestStore_RedisError(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.err = errors.New("connection refused")

	_, _, err := NewStore(rdb, time.Hour).Begin(context.Background(), "s", 1, "k")
	assert.ErrorIs(t, err, ErrStore)
}
