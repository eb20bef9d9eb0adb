package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusDone      AppointmentStatus = "done"
	AppointmentStatusCancelled AppointmentStatus = "canceled"
)

// Appointment is a booked slot. Date is the calendar date ("YYYY-MM-DD") and
// Time the wall-clock slot ("HH:MM"), both literal in the professional's local
// time; StartsAt/EndsAt are derived from them at booking. PriceCents is a
// snapshot of the service price at booking time, not a live reference.
type Appointment struct {
	ID            string            `json:"id"`
	ProfileID     string            `json:"profile_id"`
	ServiceID     string            `json:"service_id"`
	ClientName    string            `json:"client_name"`
	ClientPhone   string            `json:"client_phone"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	StartsAt      time.Time         `json:"starts_at"`
	EndsAt        time.Time         `json:"ends_at"`
	PriceCents    int64             `json:"price_cents"`
	DiscountCents int64             `json:"discount_cents"`
	PaidCents     int64             `json:"paid_cents"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	ServiceName string `json:"service_name,omitempty"`
}

// TotalCents is the amount owed for the appointment after discount, floored
// at zero.
func (a *Appointment) TotalCents() int64 {
	return maxCents(a.PriceCents-a.DiscountCents, 0)
}

// RemainingCents is what is still receivable, floored at zero.
func (a *Appointment) RemainingCents() int64 {
	return maxCents(a.TotalCents()-a.PaidCents, 0)
}

func maxCents(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// BookingRequest is the public booking submission for a professional's slug.
type BookingRequest struct {
	ServiceID   string `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
}

type UpdateAppointmentDTO struct {
	Status        *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled confirmed done canceled"`
	DiscountCents *int64             `json:"discount_cents" binding:"omitempty,gte=0"`
	PaidCents     *int64             `json:"paid_cents" binding:"omitempty,gte=0"`
}

type AppointmentFilter struct {
	ProfileID string
	ServiceID *string
	Status    *AppointmentStatus
	StartDate *string
	EndDate   *string
	Limit     int
	Offset    int
}

// BookingSession is the availability payload for one (profile, service, date)
// selection: the full candidate grid, the blocked subset, and their difference.
// It is a point-in-time read with no authority; the uniqueness constraint in
// the store decides the actual booking outcome.
type BookingSession struct {
	ProfileID  string   `json:"profile_id"`
	ServiceID  string   `json:"service_id"`
	Date       string   `json:"date"`
	Candidates []string `json:"candidates"`
	Blocked    []string `json:"blocked"`
	Available  []string `json:"available"`
}
