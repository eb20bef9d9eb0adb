package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marcai/internal/domain"
	"marcai/internal/slots"
)

type stubCatalogRepo struct {
	services map[string]*domain.Service
}

func (s *stubCatalogRepo) Create(ctx context.Context, profileID string, dto domain.CreateServiceDTO) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubCatalogRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return svc, nil
}

func (s *stubCatalogRepo) Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error {
	return errors.New("not implemented")
}

func (s *stubCatalogRepo) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (s *stubCatalogRepo) ListByProfile(ctx context.Context, profileID string, activeOnly bool) ([]domain.Service, error) {
	return nil, errors.New("not implemented")
}

type stubAppointmentRepo struct {
	bookedTimes []string
	// laterTimes, when set, is returned by every ListBookedTimes call after
	// the first, simulating a slot taken between preflight and refresh.
	laterTimes []string
	listCalls  int
	createErr  error
	created    []domain.Appointment
	listErr    error
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, appt)
	return "appt-1", nil
}

func (s *stubAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAppointmentRepo) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) error {
	return errors.New("not implemented")
}

func (s *stubAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	return 0, errors.New("not implemented")
}

func (s *stubAppointmentRepo) ListBookedTimes(ctx context.Context, profileID, serviceID, date string) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.listCalls++
	if s.listCalls > 1 && s.laterTimes != nil {
		return s.laterTimes, nil
	}
	return s.bookedTimes, nil
}

type stubProfileRepo struct {
	profile *domain.Profile
}

func (s *stubProfileRepo) Create(ctx context.Context, profile domain.Profile) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if s.profile == nil {
		return nil, domain.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProfileRepo) GetBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProfileRepo) Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) error {
	return errors.New("not implemented")
}

func (s *stubProfileRepo) UpdateAvatar(ctx context.Context, id string, avatarURL *string) error {
	return errors.New("not implemented")
}

func price(v int64) *int64 { return &v }

func newBookingFixture(appts *stubAppointmentRepo, duration int) *BookingServiceImpl {
	catalog := &stubCatalogRepo{services: map[string]*domain.Service{
		"svc-1": {
			ID:              "svc-1",
			ProfileID:       "prof-1",
			Name:            "Haircut",
			DurationMinutes: duration,
			PriceCents:      price(5000),
			Active:          true,
		},
	}}
	profiles := &stubProfileRepo{}
	window := slots.Window{StartHour: 8, EndHour: 18}

	return NewBookingService(appts, catalog, profiles, nil, window, zap.NewNop())
}

func validRequest() domain.BookingRequest {
	return domain.BookingRequest{
		ServiceID:   "svc-1",
		Date:        "2026-09-14",
		Time:        "09:00",
		ClientName:  "Maria Silva",
		ClientPhone: "11999990000",
	}
}

func TestAvailability_SubtractsBookedTimes(t *testing.T) {
	appts := &stubAppointmentRepo{bookedTimes: []string{"9:0"}}
	svc := newBookingFixture(appts, 30)
	svc.window = slots.Window{StartHour: 8, EndHour: 10}

	session, err := svc.Availability(context.Background(), "prof-1", "svc-1", "2026-09-14")

	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, session.Candidates)
	assert.Equal(t, []string{"09:00"}, session.Blocked)
	assert.Equal(t, []string{"08:00", "08:30", "09:30"}, session.Available)
}

func TestAvailability_HourlyGridForLongService(t *testing.T) {
	appts := &stubAppointmentRepo{bookedTimes: []string{"09:00"}}
	svc := newBookingFixture(appts, 60)
	svc.window = slots.Window{StartHour: 8, EndHour: 10}

	session, err := svc.Availability(context.Background(), "prof-1", "svc-1", "2026-09-14")

	require.NoError(t, err)
	assert.Equal(t, []string{"08:00"}, session.Available)
}

func TestAvailability_UnknownService(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	_, err := svc.Availability(context.Background(), "prof-1", "missing", "2026-09-14")

	assert.True(t, domain.IsValidationError(err))
}

func TestAvailability_WrongOwner(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	_, err := svc.Availability(context.Background(), "someone-else", "svc-1", "2026-09-14")

	assert.True(t, domain.IsValidationError(err))
}

func TestAvailability_BadDate(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	_, err := svc.Availability(context.Background(), "prof-1", "svc-1", "14/09/2026")

	assert.True(t, domain.IsValidationError(err))
}

func TestBook_Committed(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	result, err := svc.Book(context.Background(), "prof-1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)
	require.NotNil(t, result.Appointment)
	assert.Equal(t, "appt-1", result.Appointment.ID)
	assert.Equal(t, int64(5000), result.Appointment.PriceCents, "price snapshot at booking time")
	assert.Equal(t, domain.AppointmentStatusScheduled, result.Appointment.Status)
	assert.NotContains(t, result.Available, "09:00", "the committed slot leaves the offer")

	require.Len(t, appts.created, 1)
	assert.Equal(t, "09:00", appts.created[0].Time)
	assert.Equal(t, "2026-09-14", appts.created[0].Date)
}

func TestBook_NormalizesTime(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	req := validRequest()
	req.Time = "9:0"

	result, err := svc.Book(context.Background(), "prof-1", req)

	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.State)
	require.Len(t, appts.created, 1)
	assert.Equal(t, "09:00", appts.created[0].Time)
}

func TestBook_ShortName_NoStoreWrite(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	req := validRequest()
	req.ClientName = " A "

	result, err := svc.Book(context.Background(), "prof-1", req)

	assert.Equal(t, StateRejectedLocal, result.State)
	assert.True(t, domain.IsValidationError(err))
	assert.Empty(t, appts.created, "local rejection must not reach the store")
}

func TestBook_ShortPhone(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)

	req := validRequest()
	req.ClientPhone = "123"

	result, err := svc.Book(context.Background(), "prof-1", req)

	assert.Equal(t, StateRejectedLocal, result.State)
	assert.True(t, domain.IsValidationError(err))
}

func TestBook_TimeOffGrid(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 60)

	req := validRequest()
	req.Time = "09:30"

	result, err := svc.Book(context.Background(), "prof-1", req)

	assert.Equal(t, StateRejectedLocal, result.State)
	assert.True(t, domain.IsValidationError(err))
}

func TestBook_StaleSelection(t *testing.T) {
	appts := &stubAppointmentRepo{bookedTimes: []string{"09:00"}}
	svc := newBookingFixture(appts, 30)

	result, err := svc.Book(context.Background(), "prof-1", validRequest())

	assert.Equal(t, StateRejectedStale, result.State)
	assert.ErrorIs(t, err, domain.ErrStaleSelection)
	assert.NotContains(t, result.Available, "09:00")
	assert.Contains(t, result.Available, "09:30", "refreshed availability comes back with the rejection")
	assert.Empty(t, appts.created)
}

func TestBook_ConflictOnInsert(t *testing.T) {
	// The preflight read sees the slot free; the insert loses the race.
	appts := &stubAppointmentRepo{
		createErr:  domain.ErrSlotConflict,
		laterTimes: []string{"09:00"},
	}
	svc := newBookingFixture(appts, 30)

	result, err := svc.Book(context.Background(), "prof-1", validRequest())

	assert.Equal(t, StateRejectedConflict, result.State)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.NotContains(t, result.Available, "09:00", "the contested slot leaves the refreshed offer")
}

func TestBook_InfraError(t *testing.T) {
	appts := &stubAppointmentRepo{createErr: errors.New("connection reset")}
	svc := newBookingFixture(appts, 30)

	result, err := svc.Book(context.Background(), "prof-1", validRequest())

	assert.Equal(t, StateRejectedInfra, result.State)
	assert.True(t, domain.IsInfraError(err))
	assert.NotContains(t, err.Error(), "connection reset", "raw store errors stay out of user-facing messages")
}

func TestBook_InactiveService(t *testing.T) {
	appts := &stubAppointmentRepo{}
	svc := newBookingFixture(appts, 30)
	svc.catalog.(*stubCatalogRepo).services["svc-1"].Active = false

	result, err := svc.Book(context.Background(), "prof-1", validRequest())

	assert.Equal(t, StateRejectedLocal, result.State)
	assert.True(t, domain.IsValidationError(err))
}
