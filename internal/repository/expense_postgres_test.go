package repository

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marcai/internal/domain"
)

func TestExpenseRepo_Update_TouchesUpdatedAt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	amount := int64(12000)
	mock.ExpectExec(`UPDATE expenses SET amount_cents = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs(amount, pgxmock.AnyArg(), "exp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewExpenseRepository(mock)
	err = repo.Update(context.Background(), "exp-1", domain.UpdateExpenseDTO{AmountCents: &amount})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_Update_NoFieldsIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewExpenseRepository(mock)
	err = repo.Update(context.Background(), "exp-1", domain.UpdateExpenseDTO{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepo_Update_MissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	amount := int64(500)
	mock.ExpectExec(`UPDATE expenses`).
		WithArgs(amount, pgxmock.AnyArg(), "exp-missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewExpenseRepository(mock)
	err = repo.Update(context.Background(), "exp-missing", domain.UpdateExpenseDTO{AmountCents: &amount})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
