package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"marcai/internal/domain"
	"marcai/internal/repository"
)

type SummaryServiceImpl struct {
	appointments repository.AppointmentRepository
	expenses     repository.ExpenseRepository
	logger       *zap.Logger
}

func NewSummaryService(appointments repository.AppointmentRepository, expenses repository.ExpenseRepository, logger *zap.Logger) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		appointments: appointments,
		expenses:     expenses,
		logger:       logger,
	}
}

// Monthly rolls up a month of appointments and expenses. Per appointment the
// forecast is max(price - discount, 0); the month's receivable is
// max(forecast - paid, 0); net is what was actually paid minus costs. Every
// row in the month counts, canceled ones included.
func (s *SummaryServiceImpl) Monthly(ctx context.Context, profileID, month string) (*domain.MonthlySummary, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, domain.NewValidationError("month", "invalid month, expected YYYY-MM")
	}

	appointments, err := s.appointments.List(ctx, domain.AppointmentFilter{
		ProfileID: profileID,
		StartDate: &from,
		EndDate:   &to,
	})
	if err != nil {
		s.logger.Error("listing appointments for summary", zap.Error(err))
		return nil, errors.New("could not compute the summary")
	}

	expenses, err := s.expenses.ListByMonth(ctx, profileID, from, to)
	if err != nil {
		s.logger.Error("listing expenses for summary", zap.Error(err))
		return nil, errors.New("could not compute the summary")
	}

	summary := &domain.MonthlySummary{Month: month}

	byDay := make(map[string]*domain.DaySummary)
	byService := make(map[string]*domain.ServiceSummary)

	for _, appt := range appointments {
		forecast := appt.TotalCents()
		paid := maxInt64(appt.PaidCents, 0)

		summary.ForecastCents += forecast
		summary.PaidCents += paid
		summary.Appointments++

		day, ok := byDay[appt.Date]
		if !ok {
			day = &domain.DaySummary{Date: appt.Date}
			byDay[appt.Date] = day
		}
		day.ForecastCents += forecast
		day.PaidCents += paid

		name := appt.ServiceName
		if name == "" {
			name = "(service)"
		}
		svc, ok := byService[name]
		if !ok {
			svc = &domain.ServiceSummary{ServiceName: name}
			byService[name] = svc
		}
		svc.Count++
		svc.ForecastCents += forecast
		svc.PaidCents += paid
	}

	for _, e := range expenses {
		summary.CostCents += e.AmountCents
	}

	summary.ReceivableCents = maxInt64(summary.ForecastCents-summary.PaidCents, 0)
	summary.NetCents = summary.PaidCents - summary.CostCents

	summary.ByDay = make([]domain.DaySummary, 0, len(byDay))
	for _, day := range byDay {
		day.ReceivableCents = maxInt64(day.ForecastCents-day.PaidCents, 0)
		summary.ByDay = append(summary.ByDay, *day)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date < summary.ByDay[j].Date
	})

	summary.ByService = make([]domain.ServiceSummary, 0, len(byService))
	for _, svc := range byService {
		summary.ByService = append(summary.ByService, *svc)
	}
	sort.Slice(summary.ByService, func(i, j int) bool {
		return summary.ByService[i].ForecastCents > summary.ByService[j].ForecastCents
	})

	return summary, nil
}

func parseDate(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}

// monthBounds expands "YYYY-MM" into the first and last calendar dates of the
// month.
func monthBounds(month string) (string, string, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", err
	}

	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
