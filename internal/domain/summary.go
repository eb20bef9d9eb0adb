package domain

// MonthlySummary aggregates a month of appointments and expenses.
// ForecastCents is the sum of max(price - discount, 0) per appointment,
// PaidCents the sum of payments, ReceivableCents max(forecast - paid, 0).
type MonthlySummary struct {
	Month           string           `json:"month"`
	ForecastCents   int64            `json:"forecast_cents"`
	PaidCents       int64            `json:"paid_cents"`
	ReceivableCents int64            `json:"receivable_cents"`
	CostCents       int64            `json:"cost_cents"`
	NetCents        int64            `json:"net_cents"`
	Appointments    int              `json:"appointments"`
	ByDay           []DaySummary     `json:"by_day"`
	ByService       []ServiceSummary `json:"by_service"`
}

type DaySummary struct {
	Date            string `json:"date"`
	ForecastCents   int64  `json:"forecast_cents"`
	PaidCents       int64  `json:"paid_cents"`
	ReceivableCents int64  `json:"receivable_cents"`
}

type ServiceSummary struct {
	ServiceName   string `json:"service_name"`
	Count         int    `json:"count"`
	ForecastCents int64  `json:"forecast_cents"`
	PaidCents     int64  `json:"paid_cents"`
}
