package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marcai/config"
	"marcai/internal/domain"
)

type stubAuthRepo struct {
	sessions       map[string]domain.Session
	deleteAllErr   error
	deletedProfile string
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{sessions: make(map[string]domain.Session)}
}

func (s *stubAuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubAuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	for _, session := range s.sessions {
		if session.RefreshToken == refreshToken {
			found := session
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubAuthRepo) DeleteSession(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *stubAuthRepo) DeleteSessionsByProfileID(ctx context.Context, profileID string) error {
	if s.deleteAllErr != nil {
		return s.deleteAllErr
	}
	s.deletedProfile = profileID
	for id, session := range s.sessions {
		if session.ProfileID == profileID {
			delete(s.sessions, id)
		}
	}
	return nil
}

type registerProfileRepo struct {
	stubProfileRepo
	created domain.Profile
}

func (s *registerProfileRepo) Create(ctx context.Context, profile domain.Profile) (string, error) {
	s.created = profile
	return "prof-new", nil
}

func newAuthFixture(repo *stubAuthRepo) *AuthServiceImpl {
	return NewAuthService(repo, &stubProfileRepo{}, config.JWTConfig{SigningKey: "test-key"}, zap.NewNop())
}

func TestRegister_DerivesSlugFromName(t *testing.T) {
	profiles := &registerProfileRepo{}
	svc := NewAuthService(newStubAuthRepo(), profiles, config.JWTConfig{SigningKey: "test-key"}, zap.NewNop())

	id, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Ana  Silva!",
		Email:    "ana@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "prof-new", id)
	assert.Equal(t, "ana-silva", profiles.created.Slug)
}

func TestRegister_KeepsExplicitSlug(t *testing.T) {
	profiles := &registerProfileRepo{}
	svc := NewAuthService(newStubAuthRepo(), profiles, config.JWTConfig{SigningKey: "test-key"}, zap.NewNop())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Slug:     "studio-ana",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "studio-ana", profiles.created.Slug)
}

func TestRegister_InvalidSlug(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), &registerProfileRepo{}, config.JWTConfig{SigningKey: "test-key"}, zap.NewNop())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Ana Silva",
		Email:    "ana@example.com",
		Slug:     "Bad_Slug",
		Password: "secret1",
	})

	assert.True(t, domain.IsValidationError(err))
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	repo := newStubAuthRepo()
	repo.sessions["s1"] = domain.Session{ID: "s1", ProfileID: "prof-1", RefreshToken: "rt-1"}
	repo.sessions["s2"] = domain.Session{ID: "s2", ProfileID: "prof-1", RefreshToken: "rt-2"}
	repo.sessions["s3"] = domain.Session{ID: "s3", ProfileID: "prof-2", RefreshToken: "rt-3"}

	svc := newAuthFixture(repo)

	err := svc.LogoutAll(context.Background(), "prof-1")

	require.NoError(t, err)
	assert.Equal(t, "prof-1", repo.deletedProfile)
	assert.Len(t, repo.sessions, 1, "only the other profile's session survives")
	_, ok := repo.sessions["s3"]
	assert.True(t, ok)
}

func TestLogoutAll_StoreError(t *testing.T) {
	repo := newStubAuthRepo()
	repo.deleteAllErr = errors.New("connection reset")

	svc := newAuthFixture(repo)

	err := svc.LogoutAll(context.Background(), "prof-1")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "connection reset", "raw store error stays out of the message")
}
