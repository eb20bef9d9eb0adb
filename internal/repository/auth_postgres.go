package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"marcai/internal/domain"
)

type AuthRepo struct {
	db DB
}

func NewAuthRepository(db DB) *AuthRepo {
	return &AuthRepo{db: db}
}

func (r *AuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	query := `
		INSERT INTO sessions (id, profile_id, refresh_token, user_agent, ip, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.ProfileID,
		session.RefreshToken,
		session.UserAgent,
		session.IP,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	return nil
}

func (r *AuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	query := `
		SELECT id, profile_id, refresh_token, user_agent, ip, expires_at, created_at
		FROM sessions
		WHERE refresh_token = $1
	`

	var s domain.Session
	err := r.db.QueryRow(ctx, query, refreshToken).Scan(
		&s.ID,
		&s.ProfileID,
		&s.RefreshToken,
		&s.UserAgent,
		&s.IP,
		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching session: %w", err)
	}

	return &s, nil
}

func (r *AuthRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

func (r *AuthRepo) DeleteSessionsByProfileID(ctx context.Context, profileID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE profile_id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("deleting profile sessions: %w", err)
	}

	return nil
}
