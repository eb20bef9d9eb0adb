package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"marcai/internal/domain"
	"marcai/internal/notification"
	"marcai/internal/repository"
	"marcai/internal/slots"
)

// BookingState tracks a booking attempt through the transactor. Every
// rejected state is terminal for the attempt; the client starts a fresh
// attempt from Idle after acting on the rejection.
type BookingState string

const (
	StateIdle             BookingState = "idle"
	StateValidating       BookingState = "validating"
	StateCommitting       BookingState = "committing"
	StateCommitted        BookingState = "committed"
	StateRejectedLocal    BookingState = "rejected_local"
	StateRejectedStale    BookingState = "rejected_stale"
	StateRejectedConflict BookingState = "rejected_conflict"
	StateRejectedInfra    BookingState = "rejected_infra"
)

// BookingResult is the terminal outcome of one booking attempt. On a stale or
// conflict rejection, Available carries a refreshed availability read so the
// client can re-prompt without another round trip.
type BookingResult struct {
	State       BookingState
	Appointment *domain.Appointment
	Available   []string
}

const (
	minClientNameLen  = 2
	minClientPhoneLen = 8
)

type BookingServiceImpl struct {
	appointments repository.AppointmentRepository
	catalog      repository.ServiceCatalogRepository
	profiles     repository.ProfileRepository
	notifier     notification.Notifier
	window       slots.Window
	logger       *zap.Logger
}

func NewBookingService(
	appointments repository.AppointmentRepository,
	catalog repository.ServiceCatalogRepository,
	profiles repository.ProfileRepository,
	notifier notification.Notifier,
	window slots.Window,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		appointments: appointments,
		catalog:      catalog,
		profiles:     profiles,
		notifier:     notifier,
		window:       window,
		logger:       logger,
	}
}

// Availability computes the booking session for one (profile, service, date)
// selection: candidate grid minus booked times. It is re-run on every
// selection change and once more right before commit; the result is a
// point-in-time read, never a reservation.
func (s *BookingServiceImpl) Availability(ctx context.Context, profileID, serviceID, date string) (*domain.BookingSession, error) {
	svc, err := s.activeService(ctx, profileID, serviceID)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
	}

	blocked, err := s.fetchBlocked(ctx, profileID, serviceID, date)
	if err != nil {
		return nil, err
	}

	return s.session(profileID, serviceID, date, svc.DurationMinutes, blocked), nil
}

// Book runs the transactor state machine for one attempt. Local validation
// never touches the store; the insert itself is the atomicity boundary, and
// the uniqueness constraint is the only arbiter between two clients racing
// for the same slot.
func (s *BookingServiceImpl) Book(ctx context.Context, profileID string, req domain.BookingRequest) (*BookingResult, error) {
	// Validating.
	svc, err := s.activeService(ctx, profileID, req.ServiceID)
	if err != nil {
		if domain.IsValidationError(err) {
			return &BookingResult{State: StateRejectedLocal}, err
		}
		return &BookingResult{State: StateRejectedInfra}, err
	}

	clientName := strings.TrimSpace(req.ClientName)
	if len(clientName) < minClientNameLen {
		return &BookingResult{State: StateRejectedLocal},
			domain.NewValidationError("client_name", "name is too short")
	}

	clientPhone := strings.TrimSpace(req.ClientPhone)
	if len(clientPhone) < minClientPhoneLen {
		return &BookingResult{State: StateRejectedLocal},
			domain.NewValidationError("client_phone", "phone is too short")
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return &BookingResult{State: StateRejectedLocal},
			domain.NewValidationError("date", "invalid date, expected YYYY-MM-DD")
	}

	slot := slots.Normalize(req.Time)
	if !slots.Contains(s.window, svc.DurationMinutes, slot) {
		return &BookingResult{State: StateRejectedLocal},
			domain.NewValidationError("time", "time is outside the booking window")
	}

	// Pre-submit availability refresh. Catching a stale selection here keeps
	// plain re-picks off the store; the constraint still backs the race that
	// slips past it.
	blocked, err := s.fetchBlocked(ctx, profileID, req.ServiceID, req.Date)
	if err != nil {
		return &BookingResult{State: StateRejectedInfra}, err
	}

	if blocked.Has(slot) {
		return &BookingResult{
			State:     StateRejectedStale,
			Available: slots.Available(slots.Candidates(s.window, svc.DurationMinutes), blocked),
		}, domain.ErrStaleSelection
	}

	// Committing. Date and time are taken literally in the professional's
	// local wall clock; no timezone reinterpretation.
	var hh, mm int
	if _, err := fmt.Sscanf(slot, "%d:%d", &hh, &mm); err != nil {
		return &BookingResult{State: StateRejectedLocal},
			domain.NewValidationError("time", "invalid time, expected HH:MM")
	}

	startsAt := time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, time.Local)
	endsAt := startsAt.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	appt := domain.Appointment{
		ProfileID:   profileID,
		ServiceID:   svc.ID,
		ClientName:  clientName,
		ClientPhone: clientPhone,
		Date:        req.Date,
		Time:        slot,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		PriceCents:  svc.PriceSnapshot(),
		Status:      domain.AppointmentStatusScheduled,
		ServiceName: svc.Name,
	}

	id, err := s.appointments.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			// The expected concurrent-booking collision: someone else's
			// insert won. Refresh and re-prompt.
			s.logger.Info("booking slot conflict",
				zap.String("profileID", profileID),
				zap.String("serviceID", req.ServiceID),
				zap.String("date", req.Date),
				zap.String("time", slot))

			refreshed, ferr := s.fetchBlocked(ctx, profileID, req.ServiceID, req.Date)
			if ferr != nil {
				refreshed = blocked
				refreshed.Add(slot)
			}
			return &BookingResult{
				State:     StateRejectedConflict,
				Available: slots.Available(slots.Candidates(s.window, svc.DurationMinutes), refreshed),
			}, domain.ErrSlotConflict
		}

		// Raw store errors are for the log; callers get the classified,
		// user-safe message. No automatic retry of the write.
		s.logger.Error("booking insert failed", zap.Error(err),
			zap.String("profileID", profileID),
			zap.String("serviceID", req.ServiceID))
		return &BookingResult{State: StateRejectedInfra},
			domain.NewInfraError("could not confirm the booking", err)
	}

	appt.ID = id
	blocked.Add(slot)

	s.notifyAsync(profileID, &appt)

	return &BookingResult{
		State:       StateCommitted,
		Appointment: &appt,
		Available:   slots.Available(slots.Candidates(s.window, svc.DurationMinutes), blocked),
	}, nil
}

func (s *BookingServiceImpl) session(profileID, serviceID, date string, duration int, blocked slots.BlockedSet) *domain.BookingSession {
	candidates := slots.Candidates(s.window, duration)
	return &domain.BookingSession{
		ProfileID:  profileID,
		ServiceID:  serviceID,
		Date:       date,
		Candidates: candidates,
		Blocked:    blocked.Times(),
		Available:  slots.Available(candidates, blocked),
	}
}

func (s *BookingServiceImpl) activeService(ctx context.Context, profileID, serviceID string) (*domain.Service, error) {
	svc, err := s.catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("service_id", "select a valid service")
		}
		s.logger.Error("fetching service for booking", zap.Error(err), zap.String("serviceID", serviceID))
		return nil, domain.NewInfraError("could not load the service", err)
	}

	if svc.ProfileID != profileID || !svc.Active {
		return nil, domain.NewValidationError("service_id", "select a valid service")
	}

	return svc, nil
}

func (s *BookingServiceImpl) fetchBlocked(ctx context.Context, profileID, serviceID, date string) (slots.BlockedSet, error) {
	times, err := s.appointments.ListBookedTimes(ctx, profileID, serviceID, date)
	if err != nil {
		s.logger.Error("fetching booked times", zap.Error(err),
			zap.String("profileID", profileID),
			zap.String("serviceID", serviceID),
			zap.String("date", date))
		return nil, domain.NewInfraError("could not load availability", err)
	}

	return slots.NewBlockedSet(times), nil
}

// notifyAsync fires the WhatsApp confirmation without gating the booking
// response. A failed notification is logged and dropped.
func (s *BookingServiceImpl) notifyAsync(profileID string, appt *domain.Appointment) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		profile, err := s.profiles.GetByID(ctx, profileID)
		if err != nil {
			s.logger.Warn("loading profile for booking notification", zap.Error(err))
			return
		}

		n := notification.BookingConfirmed{
			AppointmentID: appt.ID,
			CompanyName:   profile.DisplayName(),
			ClientName:    appt.ClientName,
			ClientPhone:   appt.ClientPhone,
			ServiceName:   appt.ServiceName,
			StartsAt:      appt.StartsAt,
			PriceCents:    appt.PriceCents,
		}
		if profile.WhatsAppPhone != nil {
			n.Phone = *profile.WhatsAppPhone
		}

		if err := s.notifier.SendBookingConfirmed(ctx, n); err != nil {
			s.logger.Warn("sending booking notification", zap.Error(err),
				zap.String("appointmentID", appt.ID))
		}
	}()
}
