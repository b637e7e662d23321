package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNull(t *testing.T) {
	ctx := context.Background()
	c := NewNull()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestKey(t *testing.T) {
	a := Key("route", map[string]int{"x": 1}, "en")
	b := Key("route", map[string]int{"x": 1}, "en")
	c := Key("route", map[string]int{"x": 1}, "hi")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "route:"))
	assert.Len(t, strings.TrimPrefix(a, "route:"), 64)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	src := []byte("route")
	require.NoError(t, m.Set(ctx, "a", src, time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("forever"), 0))
	src[0] = 'R'

	got, hit, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "route", string(got), "stored value is a copy")

	now = now.Add(time.Minute)
	_, hit, _ = m.Get(ctx, "a")
	assert.False(t, hit, "expired at exactly ttl")
	assert.Equal(t, 1, m.Len())

	_, hit, _ = m.Get(ctx, "b")
	assert.True(t, hit)

	require.NoError(t, m.Delete(ctx, "b"))
	_, hit, _ = m.Get(ctx, "b")
	assert.False(t, hit)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, m.Set(ctx, "long", []byte("2"), time.Hour))
	now = now.Add(time.Minute)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	require.NoError(t, m.Close())
	assert.Zero(t, m.Len())
}

func TestRedis(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	r, err := NewRedis(ctx, RedisConfig{Addr: srv.Addr(), Prefix: "indoornav:"})
	require.NoError(t, err)
	defer r.Close()

	_, hit, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, r.Set(ctx, "k", []byte("segments"), time.Minute))
	assert.True(t, srv.Exists("indoornav:k"))
	assert.Equal(t, time.Minute, srv.TTL("indoornav:k"))

	data, hit, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "segments", string(data))

	srv.FastForward(2 * time.Minute)
	_, hit, err = r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, r.Set(ctx, "k2", []byte("x"), 0))
	require.NoError(t, r.Delete(ctx, "k2"))
	assert.False(t, srv.Exists("indoornav:k2"))
}

func TestRedis_URL(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	r, err := NewRedis(ctx, RedisConfig{URL: "redis://" + srv.Addr() + "/0"})
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = NewRedis(ctx, RedisConfig{URL: "://bad"})
	require.Error(t, err)
}

func TestRedis_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedis(ctx, RedisConfig{Addr: addr})
	require.Error(t, err)
}
