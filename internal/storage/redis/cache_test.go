package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/homestay/internal/booking"
	"github.com/avstrong/homestay/internal/pricing"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c := NewWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), time.Minute)

	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func sampleEstimate() *booking.Estimate {
	q := pricing.New(pricing.DefaultSchedule()).Quote(pricing.Suite,
		time.Date(2025, time.June, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC))

	e := &booking.Estimate{Quote: q, Extras: []booking.Charge{}, GrandTotal: q.TotalPrice}
	e.AddCharge("Extra bed", 1800)

	return e
}

func TestCache_RoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.GetEstimate(ctx, "k")
	require.ErrorIs(t, err, booking.ErrCacheMiss)

	want := sampleEstimate()
	require.NoError(t, c.SaveEstimate(ctx, "k", want))
	assert.True(t, mr.Exists(keyPrefix+"k"))

	got, err := c.GetEstimate(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.SaveEstimate(ctx, "k", sampleEstimate()))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"k"))

	mr.FastForward(2 * time.Minute)

	_, err := c.GetEstimate(ctx, "k")
	assert.ErrorIs(t, err, booking.ErrCacheMiss)
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr := newCache(t)

	require.NoError(t, mr.Set(keyPrefix+"k", "{not json"))

	_, err := c.GetEstimate(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, booking.ErrCacheMiss)
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	ctx := context.Background()

	assert.Error(t, c.Ping(ctx))
	assert.Error(t, c.SaveEstimate(ctx, "k", sampleEstimate()))

	_, err := c.GetEstimate(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, booking.ErrCacheMiss)
}
