package progresscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/summitlist-backend/internal/domain"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), s
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c, _ := newCache(t)
	ctx := context.Background()
	userID, listID := uuid.New(), uuid.New()
	want := domain.ProgressSummary{CompletedCount: 7, RequiredCount: 48, Percent: 14.6}

	_, ok, err := c.Get(ctx, userID, listID)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := c.Set(ctx, userID, listID, 0, want)
	require.NoError(t, err)
	assert.True(t, stored)

	got, ok, err := c.Get(ctx, userID, listID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	// Keys are per user.
	_, ok, err = c.Get(ctx, uuid.New(), listID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Expires(t *testing.T) {
	t.Parallel()

	c, s := newCache(t)
	ctx := context.Background()
	userID, listID := uuid.New(), uuid.New()

	_, err := c.Set(ctx, userID, listID, 0, domain.ProgressSummary{RequiredCount: 1})
	require.NoError(t, err)
	s.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, userID, listID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	c, _ := newCache(t)
	ctx := context.Background()
	userID := uuid.New()
	l1, l2, l3 := uuid.New(), uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{l1, l2, l3} {
		_, err := c.Set(ctx, userID, id, 0, domain.ProgressSummary{RequiredCount: 4})
		require.NoError(t, err)
	}

	require.NoError(t, c.Invalidate(ctx, userID, l1, l2))
	require.NoError(t, c.Invalidate(ctx, userID))

	_, ok, _ := c.Get(ctx, userID, l1)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, userID, l2)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, userID, l3)
	assert.True(t, ok)

	gen, err := c.Generation(ctx, userID, l1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	gen, err = c.Generation(ctx, userID, l3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestCache_SetSkippedAfterInvalidate(t *testing.T) {
	t.Parallel()

	c, _ := newCache(t)
	ctx := context.Background()
	userID, listID := uuid.New(), uuid.New()

	// A reader takes the generation, then a write invalidates the list
	// before the reader's summary is stored.
	gen, err := c.Generation(ctx, userID, listID)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, userID, listID))

	stored, err := c.Set(ctx, userID, listID, gen, domain.ProgressSummary{CompletedCount: 3, RequiredCount: 4})
	require.NoError(t, err)
	assert.False(t, stored)

	_, ok, err := c.Get(ctx, userID, listID)
	require.NoError(t, err)
	assert.False(t, ok, "stale summary written after invalidate")

	// A reader that starts after the invalidate stores normally.
	gen, err = c.Generation(ctx, userID, listID)
	require.NoError(t, err)
	stored, err = c.Set(ctx, userID, listID, gen, domain.ProgressSummary{CompletedCount: 4, RequiredCount: 4})
	require.NoError(t, err)
	assert.True(t, stored)

	got, ok, err := c.Get(ctx, userID, listID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, got.CompletedCount)
}

func TestCache_GenerationExpires(t *testing.T) {
	t.Parallel()

	c, s := newCache(t)
	ctx := context.Background()
	userID, listID := uuid.New(), uuid.New()

	require.NoError(t, c.Invalidate(ctx, userID, listID))
	assert.True(t, s.TTL(genKey(userID, listID)) > 0)

	s.FastForward(generationTTL + time.Second)

	gen, err := c.Generation(ctx, userID, listID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestCache_CorruptEntry(t *testing.T) {
	t.Parallel()

	c, s := newCache(t)
	userID, listID := uuid.New(), uuid.New()
	require.NoError(t, s.Set(key(userID, listID), "{not json"))

	_, ok, err := c.Get(context.Background(), userID, listID)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCache_ServerDown(t *testing.T) {
	t.Parallel()

	c, s := newCache(t)
	s.Close()

	_, _, err := c.Get(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
	_, err = c.Set(context.Background(), uuid.New(), uuid.New(), 0, domain.ProgressSummary{})
	assert.Error(t, err)
	_, err = c.Generation(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
}
