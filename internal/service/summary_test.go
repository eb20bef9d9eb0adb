package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

type stubSummaryAppointmentRepo struct {
	stubAppointmentRepo
	appointments []domain.Appointment
	gotFilter    domain.AppointmentFilter
}

func (s *stubSummaryAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	s.gotFilter = filter
	return s.appointments, nil
}

type stubExpenseRepo struct {
	expenses []domain.Expense
	listErr  error
}

func (s *stubExpenseRepo) Create(ctx context.Context, profileID string, dto domain.CreateExpenseDTO) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	return nil, domain.ErrNotFound
}

func (s *stubExpenseRepo) Update(ctx context.Context, id string, dto domain.UpdateExpenseDTO) error {
	return errors.New("not implemented")
}

func (s *stubExpenseRepo) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (s *stubExpenseRepo) ListByMonth(ctx context.Context, profileID, from, to string) ([]domain.Expense, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.expenses, nil
}

func TestMonthly_Rollup(t *testing.T) {
	appts := &stubSummaryAppointmentRepo{appointments: []domain.Appointment{
		{Date: "2026-08-10", ServiceName: "Haircut", Status: domain.AppointmentStatusDone, PriceCents: 10000, DiscountCents: 1000, PaidCents: 9000},
		{Date: "2026-08-10", ServiceName: "Haircut", Status: domain.AppointmentStatusScheduled, PriceCents: 10000, PaidCents: 0},
		{Date: "2026-08-12", ServiceName: "Massage", Status: domain.AppointmentStatusConfirmed, PriceCents: 20000, PaidCents: 5000},
		{Date: "2026-08-15", ServiceName: "Haircut", Status: domain.AppointmentStatusCancelled, PriceCents: 10000},
	}}
	expenses := &stubExpenseRepo{expenses: []domain.Expense{
		{AmountCents: 3000},
		{AmountCents: 2000},
	}}

	svc := NewSummaryService(appts, expenses, zap.NewNop())

	summary, err := svc.Monthly(context.Background(), "prof-1", "2026-08")

	require.NoError(t, err)
	assert.Equal(t, "2026-08", summary.Month)
	assert.Equal(t, 4, summary.Appointments, "canceled rows still count")
	assert.Equal(t, int64(49000), summary.ForecastCents, "9000+10000+20000+10000")
	assert.Equal(t, int64(14000), summary.PaidCents)
	assert.Equal(t, int64(35000), summary.ReceivableCents)
	assert.Equal(t, int64(5000), summary.CostCents)
	assert.Equal(t, int64(9000), summary.NetCents, "paid minus costs, not forecast")

	require.Len(t, summary.ByDay, 3)
	assert.Equal(t, "2026-08-10", summary.ByDay[0].Date)
	assert.Equal(t, int64(19000), summary.ByDay[0].ForecastCents)
	assert.Equal(t, int64(10000), summary.ByDay[0].ReceivableCents)

	require.Len(t, summary.ByService, 2)
	assert.Equal(t, "Haircut", summary.ByService[0].ServiceName, "sorted by forecast, highest first")
	assert.Equal(t, 3, summary.ByService[0].Count)
}

func TestMonthly_FilterSpansWholeMonth(t *testing.T) {
	appts := &stubSummaryAppointmentRepo{}
	svc := NewSummaryService(appts, &stubExpenseRepo{}, zap.NewNop())

	_, err := svc.Monthly(context.Background(), "prof-1", "2026-02")

	require.NoError(t, err)
	require.NotNil(t, appts.gotFilter.StartDate)
	require.NotNil(t, appts.gotFilter.EndDate)
	assert.Equal(t, "2026-02-01", *appts.gotFilter.StartDate)
	assert.Equal(t, "2026-02-28", *appts.gotFilter.EndDate)
	assert.Equal(t, "prof-1", appts.gotFilter.ProfileID)
}

func TestMonthly_OverpaidMonthHasZeroReceivable(t *testing.T) {
	appts := &stubSummaryAppointmentRepo{appointments: []domain.Appointment{
		{Date: "2026-08-01", Status: domain.AppointmentStatusDone, PriceCents: 5000, PaidCents: 8000},
	}}
	svc := NewSummaryService(appts, &stubExpenseRepo{}, zap.NewNop())

	summary, err := svc.Monthly(context.Background(), "prof-1", "2026-08")

	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.ReceivableCents)
}

func TestMonthly_NegativePaidClampedToZero(t *testing.T) {
	appts := &stubSummaryAppointmentRepo{appointments: []domain.Appointment{
		{Date: "2026-08-01", Status: domain.AppointmentStatusScheduled, PriceCents: 5000, PaidCents: -100},
	}}
	expenses := &stubExpenseRepo{expenses: []domain.Expense{{AmountCents: 1000}}}
	svc := NewSummaryService(appts, expenses, zap.NewNop())

	summary, err := svc.Monthly(context.Background(), "prof-1", "2026-08")

	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.PaidCents)
	assert.Equal(t, int64(-1000), summary.NetCents)
}

func TestMonthly_BadMonth(t *testing.T) {
	svc := NewSummaryService(&stubSummaryAppointmentRepo{}, &stubExpenseRepo{}, zap.NewNop())

	_, err := svc.Monthly(context.Background(), "prof-1", "08-2026")

	assert.True(t, domain.IsValidationError(err))
}

func TestMonthBounds_LeapYear(t *testing.T) {
	from, to, err := monthBounds("2028-02")

	require.NoError(t, err)
	assert.Equal(t, "2028-02-01", from)
	assert.Equal(t, "2028-02-29", to)
}
