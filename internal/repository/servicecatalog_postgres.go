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

type ServiceCatalogRepo struct {
	db DB
}

func NewServiceCatalogRepository(db DB) *ServiceCatalogRepo {
	return &ServiceCatalogRepo{db: db}
}

func (r *ServiceCatalogRepo) Create(ctx context.Context, profileID string, dto domain.CreateServiceDTO) (string, error) {
	query := `
		INSERT INTO services (id, profile_id, name, duration_minutes, price_cents, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	active := true
	if dto.Active != nil {
		active = *dto.Active
	}

	id := uuid.New().String()
	err := r.db.QueryRow(ctx, query,
		id,
		profileID,
		dto.Name,
		dto.DurationMinutes,
		dto.PriceCents,
		active,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating service: %w", err)
	}

	return id, nil
}

func (r *ServiceCatalogRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `
		SELECT id, profile_id, name, duration_minutes, price_cents, active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var s domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.ProfileID,
		&s.Name,
		&s.DurationMinutes,
		&s.PriceCents,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching service: %w", err)
	}

	return &s, nil
}

func (r *ServiceCatalogRepo) Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Name != nil {
		updateFields = append(updateFields, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *dto.Name)
		argCount++
	}

	if dto.DurationMinutes != nil {
		updateFields = append(updateFields, fmt.Sprintf("duration_minutes = $%d", argCount))
		args = append(args, *dto.DurationMinutes)
		argCount++
	}

	if dto.PriceCents != nil {
		updateFields = append(updateFields, fmt.Sprintf("price_cents = $%d", argCount))
		args = append(args, *dto.PriceCents)
		argCount++
	}

	if dto.Active != nil {
		updateFields = append(updateFields, fmt.Sprintf("active = $%d", argCount))
		args = append(args, *dto.Active)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE services SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceCatalogRepo) Delete(ctx context.Context, id string) error {
	// Soft delete keeps old appointments pointing at a resolvable service.
	query := `UPDATE services SET active = false, updated_at = $1 WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivating service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceCatalogRepo) ListByProfile(ctx context.Context, profileID string, activeOnly bool) ([]domain.Service, error) {
	query := `
		SELECT id, profile_id, name, duration_minutes, price_cents, active, created_at, updated_at
		FROM services
		WHERE profile_id = $1
	`
	if activeOnly {
		query += ` AND active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.ID,
			&s.ProfileID,
			&s.Name,
			&s.DurationMinutes,
			&s.PriceCents,
			&s.Active,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning service row: %w", err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service rows: %w", err)
	}

	return services, nil
}
