package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marcai/internal/cache"
	"marcai/internal/domain"
	"marcai/internal/repository"
)

type CatalogServiceImpl struct {
	repo        repository.ServiceCatalogRepository
	profileRepo repository.ProfileRepository
	cache       cache.PublicPageCache
	logger      *zap.Logger
}

func NewCatalogService(repo repository.ServiceCatalogRepository, profileRepo repository.ProfileRepository, cache cache.PublicPageCache, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:        repo,
		profileRepo: profileRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (s *CatalogServiceImpl) Create(ctx context.Context, profileID string, dto domain.CreateServiceDTO) (string, error) {
	id, err := s.repo.Create(ctx, profileID, dto)
	if err != nil {
		s.logger.Error("creating service", zap.String("profileID", profileID), zap.Error(err))
		return "", errors.New("could not create the service")
	}

	s.invalidate(ctx, profileID)

	return id, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, profileID, id string) (*domain.Service, error) {
	svc, err := s.owned(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, profileID, id string, dto domain.UpdateServiceDTO) error {
	if _, err := s.owned(ctx, profileID, id); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating service", zap.String("id", id), zap.Error(err))
		return errors.New("could not update the service")
	}

	s.invalidate(ctx, profileID)

	return nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, profileID, id string) error {
	if _, err := s.owned(ctx, profileID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("deactivating service", zap.String("id", id), zap.Error(err))
		return errors.New("could not remove the service")
	}

	s.invalidate(ctx, profileID)

	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context, profileID string) ([]domain.Service, error) {
	services, err := s.repo.ListByProfile(ctx, profileID, false)
	if err != nil {
		s.logger.Error("listing services", zap.String("profileID", profileID), zap.Error(err))
		return nil, errors.New("could not list the services")
	}
	return services, nil
}

func (s *CatalogServiceImpl) owned(ctx context.Context, profileID, id string) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("fetching service", zap.String("id", id), zap.Error(err))
		return nil, errors.New("could not load the service")
	}

	if svc.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}

	return svc, nil
}

func (s *CatalogServiceImpl) invalidate(ctx context.Context, profileID string) {
	if s.cache == nil {
		return
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		s.logger.Warn("loading profile for cache invalidation", zap.Error(err))
		return
	}

	if err := s.cache.Invalidate(ctx, profile.Slug); err != nil {
		s.logger.Warn("invalidating public page cache", zap.String("slug", profile.Slug), zap.Error(err))
	}
}
