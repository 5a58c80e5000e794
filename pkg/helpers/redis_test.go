package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func TestRedisJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	var got cachedThing
	hit, err := RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, RedisSetJSON(ctx, rdb, "k", cachedThing{Name: "juan"}, time.Minute))
	hit, err = RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "juan", got.Name)

	assert.Error(t, RedisSetJSON(ctx, rdb, "k", cachedThing{}, 0))

	require.NoError(t, RedisDel(ctx, rdb, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestRedisGetJSON_CorruptEntryIsDropped(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, mr.Set("k", "{not json"))

	var got cachedThing
	hit, err := RedisGetJSON(context.Background(), rdb, "k", &got)
	assert.False(t, hit)
	assert.ErrorContains(t, err, "corrupt entry")
	assert.False(t, mr.Exists("k"))
}
