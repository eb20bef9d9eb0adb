package domain

import "time"

// Service is a bookable offering of a professional. PriceCents is nullable:
// nil means the service has not been priced yet, and bookings snapshot zero.
type Service struct {
	ID              string    `json:"id"`
	ProfileID       string    `json:"profile_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      *int64    `json:"price_cents"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PriceSnapshot is the amount copied onto an appointment at booking time.
func (s *Service) PriceSnapshot() int64 {
	if s.PriceCents == nil {
		return 0
	}
	return *s.PriceCents
}

type CreateServiceDTO struct {
	Name            string `json:"name" binding:"required,min=2"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	PriceCents      *int64 `json:"price_cents" binding:"omitempty,gte=0"`
	Active          *bool  `json:"active"`
}

type UpdateServiceDTO struct {
	Name            *string `json:"name" binding:"omitempty,min=2"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,gt=0"`
	PriceCents      *int64  `json:"price_cents" binding:"omitempty,gte=0"`
	Active          *bool   `json:"active"`
}
