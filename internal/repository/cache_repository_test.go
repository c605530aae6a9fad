package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
)

func newCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheRepository(client, nil), srv
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo, srv := newCacheRepo(t)
	ctx := context.Background()

	stats := models.VoucherStats{BenefitID: testBenefitID, Pending: 2, Total: 2}
	require.NoError(t, repo.Set(ctx, "vouchers:stats:benefit-1", stats, time.Minute))
	assert.True(t, srv.Exists(cacheNamespace+"vouchers:stats:benefit-1"))

	var got models.VoucherStats
	require.NoError(t, repo.Get(ctx, "vouchers:stats:benefit-1", &got))
	assert.Equal(t, stats, got)

	srv.FastForward(2 * time.Minute)
	require.ErrorIs(t, repo.Get(ctx, "vouchers:stats:benefit-1", &got), appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDelete(t *testing.T) {
	repo, srv := newCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, repo.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, repo.Delete(ctx, "a", "b"))
	assert.False(t, srv.Exists(cacheNamespace+"a"))
	assert.False(t, srv.Exists(cacheNamespace+"b"))
}

func TestCacheRepositoryCorruptEntryIsMiss(t *testing.T) {
	repo, srv := newCacheRepo(t)
	require.NoError(t, srv.Set(cacheNamespace+"broken", "{not json"))

	var got models.VoucherStats
	require.ErrorIs(t, repo.Get(context.Background(), "broken", &got), appErrors.ErrCacheMiss)
	assert.False(t, srv.Exists(cacheNamespace+"broken"))
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	var got int
	require.ErrorIs(t, repo.Get(context.Background(), "k", &got), appErrors.ErrCacheMiss)
	require.NoError(t, repo.Set(context.Background(), "k", 1, time.Minute))
	require.NoError(t, repo.Delete(context.Background(), "k"))
	require.NoError(t, repo.Close())
}
