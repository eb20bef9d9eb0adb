package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marcai/internal/cache"
	"marcai/internal/domain"
	"marcai/internal/repository"
	"marcai/internal/storage"
	"marcai/pkg/validator"
)

type ProfileServiceImpl struct {
	repo        repository.ProfileRepository
	fileStorage storage.FileStorage
	cache       cache.PublicPageCache
	logger      *zap.Logger
}

func NewProfileService(repo repository.ProfileRepository, fileStorage storage.FileStorage, cache cache.PublicPageCache, logger *zap.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		cache:       cache,
		logger:      logger,
	}
}

func (s *ProfileServiceImpl) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("fetching profile", zap.String("id", id), zap.Error(err))
		return nil, errors.New("profile not found")
	}
	return profile, nil
}

func (s *ProfileServiceImpl) Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) error {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("profile not found")
	}

	if dto.Slug != nil {
		if !validator.ValidateSlug(*dto.Slug) {
			return domain.NewValidationError("slug", "slug may contain lowercase letters, digits and hyphens only")
		}
		if existing, err := s.repo.GetBySlug(ctx, *dto.Slug); err == nil && existing.ID != id {
			return errors.New("this booking page address is already taken")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating profile", zap.String("id", id), zap.Error(err))
		return errors.New("could not update the profile")
	}

	// The public page may render either slug until the old entry expires.
	s.invalidate(ctx, profile.Slug)
	if dto.Slug != nil {
		s.invalidate(ctx, *dto.Slug)
	}

	return nil
}

func (s *ProfileServiceImpl) UploadAvatar(ctx context.Context, id string, data []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("file storage is not configured")
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", errors.New("profile not found")
	}

	url, err := s.fileStorage.UploadFile(ctx, data, filename)
	if err != nil {
		s.logger.Error("uploading avatar", zap.String("id", id), zap.Error(err))
		return "", errors.New("could not upload the image")
	}

	if profile.AvatarURL != nil {
		if err := s.fileStorage.DeleteFile(ctx, *profile.AvatarURL); err != nil {
			s.logger.Warn("deleting previous avatar", zap.Error(err))
		}
	}

	if err := s.repo.UpdateAvatar(ctx, id, &url); err != nil {
		s.logger.Error("saving avatar url", zap.String("id", id), zap.Error(err))
		return "", errors.New("could not update the profile")
	}

	s.invalidate(ctx, profile.Slug)

	return url, nil
}

func (s *ProfileServiceImpl) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("invalidating public page cache", zap.String("slug", slug), zap.Error(err))
	}
}
