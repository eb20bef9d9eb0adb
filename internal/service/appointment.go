package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marcai/internal/domain"
	"marcai/internal/repository"
)

type AppointmentServiceImpl struct {
	repo   repository.AppointmentRepository
	logger *zap.Logger
}

func NewAppointmentService(repo repository.AppointmentRepository, logger *zap.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, profileID, id string) (*domain.Appointment, error) {
	return s.owned(ctx, profileID, id)
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, profileID, id string, dto domain.UpdateAppointmentDTO) error {
	appt, err := s.owned(ctx, profileID, id)
	if err != nil {
		return err
	}

	if dto.DiscountCents != nil && *dto.DiscountCents > appt.PriceCents {
		return domain.NewValidationError("discount_cents", "discount cannot exceed the price")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating appointment", zap.String("id", id), zap.Error(err))
		return errors.New("could not update the appointment")
	}

	return nil
}

// Cancel marks the appointment canceled. The row stays in place, so the slot
// remains blocked and the history keeps its price snapshot.
func (s *AppointmentServiceImpl) Cancel(ctx context.Context, profileID, id string) error {
	if _, err := s.owned(ctx, profileID, id); err != nil {
		return err
	}

	status := domain.AppointmentStatusCancelled
	if err := s.repo.Update(ctx, id, domain.UpdateAppointmentDTO{Status: &status}); err != nil {
		s.logger.Error("canceling appointment", zap.String("id", id), zap.Error(err))
		return errors.New("could not cancel the appointment")
	}

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing appointments", zap.Error(err))
		return nil, 0, errors.New("could not list the appointments")
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("counting appointments", zap.Error(err))
		return appointments, len(appointments), nil
	}

	return appointments, count, nil
}

func (s *AppointmentServiceImpl) owned(ctx context.Context, profileID, id string) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("fetching appointment", zap.String("id", id), zap.Error(err))
		return nil, errors.New("could not load the appointment")
	}

	if appt.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}

	return appt, nil
}
