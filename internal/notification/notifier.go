// Package notification pushes booking confirmations to the professional.
// Sending is fire-and-forget from the booking flow's perspective: a failure
// never blocks or revokes a committed booking.
package notification

import (
	"context"
	"time"
)

// BookingConfirmed is the payload for a committed booking.
type BookingConfirmed struct {
	AppointmentID string
	Phone         string
	CompanyName   string
	ClientName    string
	ClientPhone   string
	ServiceName   string
	StartsAt      time.Time
	PriceCents    int64
}

type Notifier interface {
	SendBookingConfirmed(ctx context.Context, n BookingConfirmed) error
}

// Noop is used when no WhatsApp credentials are configured.
type Noop struct{}

func (Noop) SendBookingConfirmed(ctx context.Context, n BookingConfirmed) error {
	return nil
}
