package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"marcai/internal/domain"
)

type AppointmentRepo struct {
	db DB
}

func NewAppointmentRepository(db DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Create inserts the appointment row. There is deliberately no availability
// pre-check here: the UNIQUE (profile_id, service_id, date, time) constraint
// is the sole arbiter of a slot, and a violation is reported as
// domain.ErrSlotConflict for the caller to treat as the normal collision
// outcome.
func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (string, error) {
	query := `
		INSERT INTO appointments (id, profile_id, service_id, client_name, client_phone, date, time, starts_at, ends_at, price_cents, discount_cents, paid_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9, $10, 0, 0, $11, $12, $12)
		RETURNING id
	`

	id := uuid.New().String()
	err := r.db.QueryRow(ctx, query,
		id,
		appt.ProfileID,
		appt.ServiceID,
		appt.ClientName,
		appt.ClientPhone,
		appt.Date,
		appt.Time,
		appt.StartsAt,
		appt.EndsAt,
		appt.PriceCents,
		appt.Status,
		time.Now(),
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			return "", fmt.Errorf("%w: %s %s", domain.ErrSlotConflict, appt.Date, appt.Time)
		}
		return "", fmt.Errorf("creating appointment: %w", err)
	}

	return id, nil
}

const appointmentColumns = `
	a.id, a.profile_id, a.service_id, a.client_name, a.client_phone,
	TO_CHAR(a.date, 'YYYY-MM-DD'), TO_CHAR(a.time, 'HH24:MI'),
	a.starts_at, a.ends_at, a.price_cents, a.discount_cents, a.paid_cents,
	a.status, a.created_at, a.updated_at, s.name AS service_name
`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.ProfileID,
		&a.ServiceID,
		&a.ClientName,
		&a.ClientPhone,
		&a.Date,
		&a.Time,
		&a.StartsAt,
		&a.EndsAt,
		&a.PriceCents,
		&a.DiscountCents,
		&a.PaidCents,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.ServiceName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		WHERE a.id = $1
	`, appointmentColumns)

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}

	return appt, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) error {
	var updateFields []string
	var args []interface{}
	argCount := 1

	if dto.Status != nil {
		updateFields = append(updateFields, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *dto.Status)
		argCount++
	}

	if dto.DiscountCents != nil {
		updateFields = append(updateFields, fmt.Sprintf("discount_cents = $%d", argCount))
		args = append(args, *dto.DiscountCents)
		argCount++
	}

	if dto.PaidCents != nil {
		updateFields = append(updateFields, fmt.Sprintf("paid_cents = $%d", argCount))
		args = append(args, *dto.PaidCents)
		argCount++
	}

	if len(updateFields) == 0 {
		return nil
	}

	updateFields = append(updateFields, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE appointments SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions := []string{"a.profile_id = $1"}
	args := []interface{}{filter.ProfileID}
	argCount := 2

	conditions, args, argCount = appendAppointmentFilter(conditions, args, argCount, filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		WHERE %s
		ORDER BY a.starts_at DESC
	`, appointmentColumns, strings.Join(conditions, " AND "))

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		appointments = append(appointments, *appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	conditions := []string{"a.profile_id = $1"}
	args := []interface{}{filter.ProfileID}
	argCount := 2

	conditions, args, _ = appendAppointmentFilter(conditions, args, argCount, filter)

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM appointments a
		WHERE %s
	`, strings.Join(conditions, " AND "))

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting appointments: %w", err)
	}

	return count, nil
}

func appendAppointmentFilter(conditions []string, args []interface{}, argCount int, filter domain.AppointmentFilter) ([]string, []interface{}, int) {
	if filter.ServiceID != nil {
		conditions = append(conditions, fmt.Sprintf("a.service_id = $%d", argCount))
		args = append(args, *filter.ServiceID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	return conditions, args, argCount
}

// ListBookedTimes is the point-in-time availability read. Cancelled rows still
// block their slot; the original scheduler does not free them either, and a
// freed-on-cancel slot would bypass the uniqueness constraint on re-insert.
func (r *AppointmentRepo) ListBookedTimes(ctx context.Context, profileID, serviceID, date string) ([]string, error) {
	query := `
		SELECT TO_CHAR(time, 'HH24:MI')
		FROM appointments
		WHERE profile_id = $1
		AND service_id = $2
		AND date = $3::date
	`

	rows, err := r.db.Query(ctx, query, profileID, serviceID, date)
	if err != nil {
		return nil, fmt.Errorf("fetching booked times: %w", err)
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning booked time: %w", err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booked times: %w", err)
	}

	return times, nil
}
