package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marcai/internal/cache"
	"marcai/internal/domain"
	"marcai/internal/repository"
)

type PublicServiceImpl struct {
	profileRepo repository.ProfileRepository
	catalogRepo repository.ServiceCatalogRepository
	cache       cache.PublicPageCache
	logger      *zap.Logger
}

func NewPublicService(profileRepo repository.ProfileRepository, catalogRepo repository.ServiceCatalogRepository, cache cache.PublicPageCache, logger *zap.Logger) *PublicServiceImpl {
	return &PublicServiceImpl{
		profileRepo: profileRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Page loads the public agenda payload for a slug: profile plus active
// services. The payload is read-through cached; availability is not part of
// it and is always read fresh.
func (s *PublicServiceImpl) Page(ctx context.Context, slug string) (*domain.PublicPage, error) {
	if s.cache != nil {
		page, err := s.cache.Get(ctx, slug)
		if err != nil {
			s.logger.Warn("public page cache read", zap.String("slug", slug), zap.Error(err))
		} else if page != nil {
			return page, nil
		}
	}

	profile, err := s.profileRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("fetching public profile", zap.String("slug", slug), zap.Error(err))
		return nil, errors.New("could not load the booking page")
	}

	services, err := s.catalogRepo.ListByProfile(ctx, profile.ID, true)
	if err != nil {
		s.logger.Error("fetching public services", zap.String("slug", slug), zap.Error(err))
		return nil, errors.New("could not load the booking page")
	}

	page := &domain.PublicPage{
		Profile:  profile.Public(),
		Services: services,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, slug, page); err != nil {
			s.logger.Warn("public page cache write", zap.String("slug", slug), zap.Error(err))
		}
	}

	return page, nil
}
