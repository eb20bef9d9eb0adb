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

type ExpenseRepo struct {
	db DB
}

func NewExpenseRepository(db DB) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

func (r *ExpenseRepo) Create(ctx context.Context, profileID string, dto domain.CreateExpenseDTO) (string, error) {
	query := `
		INSERT INTO expenses (id, profile_id, description, category, amount_cents, date, recurring, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
		RETURNING id
	`

	id := uuid.New().String()
	err := r.db.QueryRow(ctx, query,
		id,
		profileID,
		dto.Description,
		dto.Category,
		dto.AmountCents,
		dto.Date,
		dto.Recurring,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating expense: %w", err)
	}

	return id, nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `
		SELECT id, profile_id, description, category, amount_cents, TO_CHAR(date, 'YYYY-MM-DD'), recurring, created_at
		FROM expenses
		WHERE id = $1
	`

	var e domain.Expense
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.ProfileID,
		&e.Description,
		&e.Category,
		&e.AmountCents,
		&e.Date,
		&e.Recurring,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching expense: %w", err)
	}

	return &e, nil
}

func (r *ExpenseRepo) Update(ctx context.Context, id string, dto domain.UpdateExpenseDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Description != nil {
		updateFields = append(updateFields, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *dto.Description)
		argCount++
	}

	if dto.Category != nil {
		updateFields = append(updateFields, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *dto.Category)
		argCount++
	}

	if dto.AmountCents != nil {
		updateFields = append(updateFields, fmt.Sprintf("amount_cents = $%d", argCount))
		args = append(args, *dto.AmountCents)
		argCount++
	}

	if dto.Date != nil {
		updateFields = append(updateFields, fmt.Sprintf("date = $%d::date", argCount))
		args = append(args, *dto.Date)
		argCount++
	}

	if dto.Recurring != nil {
		updateFields = append(updateFields, fmt.Sprintf("recurring = $%d", argCount))
		args = append(args, *dto.Recurring)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE expenses SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ExpenseRepo) ListByMonth(ctx context.Context, profileID, from, to string) ([]domain.Expense, error) {
	query := `
		SELECT id, profile_id, description, category, amount_cents, TO_CHAR(date, 'YYYY-MM-DD'), recurring, created_at
		FROM expenses
		WHERE profile_id = $1
		AND date >= $2::date
		AND date <= $3::date
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, profileID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(
			&e.ID,
			&e.ProfileID,
			&e.Description,
			&e.Category,
			&e.AmountCents,
			&e.Date,
			&e.Recurring,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning expense row: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}
