package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

type fakePageCache struct {
	pages    map[string]*domain.PublicPage
	getErr   error
	sets     int
	getCalls int
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{pages: make(map[string]*domain.PublicPage)}
}

func (f *fakePageCache) Get(ctx context.Context, slug string) (*domain.PublicPage, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.pages[slug], nil
}

func (f *fakePageCache) Set(ctx context.Context, slug string, page *domain.PublicPage) error {
	f.sets++
	f.pages[slug] = page
	return nil
}

func (f *fakePageCache) Invalidate(ctx context.Context, slug string) error {
	delete(f.pages, slug)
	return nil
}

type stubPublicProfileRepo struct {
	stubProfileRepo
	bySlug map[string]*domain.Profile
	calls  int
}

func (s *stubPublicProfileRepo) GetBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	s.calls++
	p, ok := s.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type stubPublicCatalogRepo struct {
	stubCatalogRepo
	listed []domain.Service
}

func (s *stubPublicCatalogRepo) ListByProfile(ctx context.Context, profileID string, activeOnly bool) ([]domain.Service, error) {
	return s.listed, nil
}

func TestPublicPage_CacheMissThenHit(t *testing.T) {
	profiles := &stubPublicProfileRepo{bySlug: map[string]*domain.Profile{
		"studio-ana": {ID: "prof-1", Name: "Ana", Slug: "studio-ana"},
	}}
	catalog := &stubPublicCatalogRepo{listed: []domain.Service{
		{ID: "svc-1", ProfileID: "prof-1", Name: "Haircut", Active: true},
	}}
	pageCache := newFakePageCache()

	svc := NewPublicService(profiles, catalog, pageCache, zap.NewNop())

	page, err := svc.Page(context.Background(), "studio-ana")
	require.NoError(t, err)
	assert.Equal(t, "prof-1", page.Profile.ID)
	require.Len(t, page.Services, 1)
	assert.Equal(t, 1, pageCache.sets)
	assert.Equal(t, 1, profiles.calls)

	_, err = svc.Page(context.Background(), "studio-ana")
	require.NoError(t, err)
	assert.Equal(t, 1, profiles.calls, "second read is served from cache")
}

func TestPublicPage_UnknownSlug(t *testing.T) {
	profiles := &stubPublicProfileRepo{bySlug: map[string]*domain.Profile{}}
	svc := NewPublicService(profiles, &stubPublicCatalogRepo{}, newFakePageCache(), zap.NewNop())

	_, err := svc.Page(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublicPage_CacheErrorFallsThrough(t *testing.T) {
	profiles := &stubPublicProfileRepo{bySlug: map[string]*domain.Profile{
		"studio-ana": {ID: "prof-1", Slug: "studio-ana"},
	}}
	pageCache := newFakePageCache()
	pageCache.getErr = errors.New("redis down")

	svc := NewPublicService(profiles, &stubPublicCatalogRepo{}, pageCache, zap.NewNop())

	page, err := svc.Page(context.Background(), "studio-ana")

	require.NoError(t, err, "a broken cache never breaks the page")
	assert.Equal(t, "prof-1", page.Profile.ID)
}

func TestPublicPage_NilCache(t *testing.T) {
	profiles := &stubPublicProfileRepo{bySlug: map[string]*domain.Profile{
		"studio-ana": {ID: "prof-1", Slug: "studio-ana"},
	}}

	svc := NewPublicService(profiles, &stubPublicCatalogRepo{}, nil, zap.NewNop())

	page, err := svc.Page(context.Background(), "studio-ana")

	require.NoError(t, err)
	assert.Equal(t, "prof-1", page.Profile.ID)
}
