package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marcai/internal/domain"
)

func newTestCache(t *testing.T) (*RedisPublicPageCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisPublicPageCache(client, 5*time.Minute), mr
}

func testPage() *domain.PublicPage {
	return &domain.PublicPage{
		Profile: domain.PublicProfile{
			ID:   "prof-1",
			Name: "Ana",
			Slug: "studio-ana",
		},
		Services: []domain.Service{
			{ID: "svc-1", ProfileID: "prof-1", Name: "Haircut", DurationMinutes: 30, Active: true},
		},
	}
}

func TestPublicPageCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "studio-ana", testPage()))

	got, err := c.Get(ctx, "studio-ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "prof-1", got.Profile.ID)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "Haircut", got.Services[0].Name)
}

func TestPublicPageCache_MissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), "unknown")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPublicPageCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("public_page:studio-ana", "{not json"))

	got, err := c.Get(context.Background(), "studio-ana")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPublicPageCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "studio-ana", testPage()))
	require.NoError(t, c.Invalidate(ctx, "studio-ana"))

	assert.False(t, mr.Exists("public_page:studio-ana"))
}

func TestPublicPageCache_EntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "studio-ana", testPage()))
	mr.FastForward(6 * time.Minute)

	got, err := c.Get(ctx, "studio-ana")
	require.NoError(t, err)
	assert.Nil(t, got)
}
