package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"marcai/internal/domain"
)

type ProfileRepo struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, name, email, slug, company_name, whatsapp_phone, avatar_url, password_hash, is_active, created_at, updated_at`

func (r *ProfileRepo) Create(ctx context.Context, profile domain.Profile) (string, error) {
	query := `
		INSERT INTO profiles (id, name, email, slug, company_name, whatsapp_phone, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8, $8)
		RETURNING id
	`

	id := uuid.New().String()
	now := time.Now()

	err := r.db.QueryRow(ctx, query,
		id,
		profile.Name,
		profile.Email,
		profile.Slug,
		profile.CompanyName,
		profile.WhatsAppPhone,
		profile.PasswordHash,
		now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating profile: %w", err)
	}

	return id, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getBy(ctx, "id", id)
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getBy(ctx, "email", email)
}

func (r *ProfileRepo) GetBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *ProfileRepo) getBy(ctx context.Context, column, value string) (*domain.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE %s = $1`, profileColumns, column)

	var p domain.Profile
	err := r.db.QueryRow(ctx, query, value).Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Slug,
		&p.CompanyName,
		&p.WhatsAppPhone,
		&p.AvatarURL,
		&p.PasswordHash,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching profile by %s: %w", column, err)
	}

	return &p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}

	if dto.CompanyName != nil {
		updateFields = append(updateFields, fmt.Sprintf("company_name = $%d", argCount))
		args = append(args, *dto.CompanyName)
		argCount++
	}

	if dto.WhatsAppPhone != nil {
		updateFields = append(updateFields, fmt.Sprintf("whatsapp_phone = $%d", argCount))
		args = append(args, *dto.WhatsAppPhone)
		argCount++
	}

	if dto.Slug != nil {
		updateFields = append(updateFields, fmt.Sprintf("slug = $%d", argCount))
		args = append(args, *dto.Slug)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ProfileRepo) UpdateAvatar(ctx context.Context, id string, avatarURL *string) error {
	query := `UPDATE profiles SET avatar_url = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, avatarURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating profile avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
