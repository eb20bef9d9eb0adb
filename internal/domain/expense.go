package domain

import "time"

// Expense is a cost entry the professional records for a month (rent,
// supplies, fees). Amounts are integer cents, single currency.
type Expense struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profile_id"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Date        string    `json:"date"`
	Recurring   bool      `json:"recurring"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateExpenseDTO struct {
	Description *string `json:"description"`
	Category    *string `json:"category"`
	AmountCents int64   `json:"amount_cents" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required"`
	Recurring   bool    `json:"recurring"`
}

type UpdateExpenseDTO struct {
	Description *string `json:"description"`
	Category    *string `json:"category"`
	AmountCents *int64  `json:"amount_cents" binding:"omitempty,gt=0"`
	Date        *string `json:"date"`
	Recurring   *bool   `json:"recurring"`
}
