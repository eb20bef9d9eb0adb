package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marcai/internal/domain"
	"marcai/internal/repository"
)

type ExpenseServiceImpl struct {
	repo   repository.ExpenseRepository
	logger *zap.Logger
}

func NewExpenseService(repo repository.ExpenseRepository, logger *zap.Logger) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, profileID string, dto domain.CreateExpenseDTO) (string, error) {
	if _, err := parseDate(dto.Date); err != nil {
		return "", domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
	}

	id, err := s.repo.Create(ctx, profileID, dto)
	if err != nil {
		s.logger.Error("creating expense", zap.String("profileID", profileID), zap.Error(err))
		return "", errors.New("could not save the expense")
	}

	return id, nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, profileID, id string, dto domain.UpdateExpenseDTO) error {
	if _, err := s.owned(ctx, profileID, id); err != nil {
		return err
	}

	if dto.Date != nil {
		if _, err := parseDate(*dto.Date); err != nil {
			return domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating expense", zap.String("id", id), zap.Error(err))
		return errors.New("could not update the expense")
	}

	return nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, profileID, id string) error {
	if _, err := s.owned(ctx, profileID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("deleting expense", zap.String("id", id), zap.Error(err))
		return errors.New("could not delete the expense")
	}

	return nil
}

func (s *ExpenseServiceImpl) ListByMonth(ctx context.Context, profileID, month string) ([]domain.Expense, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, domain.NewValidationError("month", "invalid month, expected YYYY-MM")
	}

	expenses, err := s.repo.ListByMonth(ctx, profileID, from, to)
	if err != nil {
		s.logger.Error("listing expenses", zap.String("profileID", profileID), zap.Error(err))
		return nil, errors.New("could not list the expenses")
	}

	return expenses, nil
}

func (s *ExpenseServiceImpl) owned(ctx context.Context, profileID, id string) (*domain.Expense, error) {
	expense, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("fetching expense", zap.String("id", id), zap.Error(err))
		return nil, errors.New("could not load the expense")
	}

	if expense.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}

	return expense, nil
}
