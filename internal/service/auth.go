package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marcai/config"
	"marcai/internal/domain"
	"marcai/internal/repository"
	"marcai/pkg/validator"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	ProfileID string `json:"profile_id"`
}

type AuthServiceImpl struct {
	authRepo    repository.AuthRepository
	profileRepo repository.ProfileRepository
	jwtConfig   config.JWTConfig
	logger      *zap.Logger
}

func NewAuthService(authRepo repository.AuthRepository, profileRepo repository.ProfileRepository, jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:    authRepo,
		profileRepo: profileRepo,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (string, error) {
	if dto.Slug == "" {
		dto.Slug = validator.Slugify(dto.Name)
	}

	if !validator.ValidateSlug(dto.Slug) {
		return "", domain.NewValidationError("slug", "slug may contain lowercase letters, digits and hyphens only")
	}

	existing, err := s.profileRepo.GetByEmail(ctx, dto.Email)
	if err == nil && existing != nil {
		return "", errors.New("a profile with this email already exists")
	}

	existing, err = s.profileRepo.GetBySlug(ctx, dto.Slug)
	if err == nil && existing != nil {
		return "", errors.New("this booking page address is already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hashing password", zap.Error(err))
		return "", errors.New("could not register the profile")
	}

	profileID, err := s.profileRepo.Create(ctx, domain.Profile{
		Name:         dto.Name,
		Email:        dto.Email,
		Slug:         dto.Slug,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		s.logger.Error("creating profile", zap.Error(err))
		return "", errors.New("could not register the profile")
	}

	return profileID, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Warn("profile not found on login", zap.String("email", dto.Email), zap.Error(err))
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("wrong password", zap.String("profileID", profile.ID))
		return nil, errors.New("invalid email or password")
	}

	if !profile.IsActive {
		return nil, errors.New("account is deactivated")
	}

	tokens, err := s.generateTokens(profile.ID)
	if err != nil {
		s.logger.Error("generating tokens", zap.Error(err))
		return nil, errors.New("could not authenticate")
	}

	session := domain.Session{
		ID:           uuid.New().String(),
		ProfileID:    profile.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	if err := s.authRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("saving session", zap.Error(err))
		return nil, errors.New("could not authenticate")
	}

	return tokens, nil
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("session lookup failed", zap.Error(err))
		return nil, errors.New("invalid refresh token")
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.authRepo.DeleteSession(ctx, session.ID)
		return nil, errors.New("refresh token expired")
	}

	profile, err := s.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		s.logger.Error("profile not found for session", zap.String("profileID", session.ProfileID), zap.Error(err))
		return nil, errors.New("profile not found")
	}

	if !profile.IsActive {
		return nil, errors.New("account is deactivated")
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Warn("deleting old session", zap.Error(err))
	}

	tokens, err := s.generateTokens(profile.ID)
	if err != nil {
		s.logger.Error("generating tokens", zap.Error(err))
		return nil, errors.New("could not refresh tokens")
	}

	newSession := domain.Session{
		ID:           uuid.New().String(),
		ProfileID:    profile.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	if err := s.authRepo.CreateSession(ctx, newSession); err != nil {
		s.logger.Error("saving new session", zap.Error(err))
		return nil, errors.New("could not refresh tokens")
	}

	return tokens, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("session not found on logout", zap.Error(err))
		return nil
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Error("deleting session", zap.Error(err))
		return errors.New("could not log out")
	}

	return nil
}

// LogoutAll revokes every session of the profile, so all refresh tokens stop
// working at once.
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, profileID string) error {
	if err := s.authRepo.DeleteSessionsByProfileID(ctx, profileID); err != nil {
		s.logger.Error("deleting sessions", zap.String("profileID", profileID), zap.Error(err))
		return errors.New("could not log out")
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	return claims.ProfileID, nil
}

func (s *AuthServiceImpl) generateTokens(profileID string) (*domain.Tokens, error) {
	accessClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ProfileID: profileID,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ProfileID: profileID,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
