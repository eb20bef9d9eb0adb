package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marcai/internal/domain"
)

// DB is the slice of pgxpool.Pool the repositories use. pgxmock satisfies it
// in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repositories struct {
	Profile     ProfileRepository
	Catalog     ServiceCatalogRepository
	Appointment AppointmentRepository
	Expense     ExpenseRepository
	Auth        AuthRepository
}

func NewRepositories(db DB) *Repositories {
	return &Repositories{
		Profile:     NewProfileRepository(db),
		Catalog:     NewServiceCatalogRepository(db),
		Appointment: NewAppointmentRepository(db),
		Expense:     NewExpenseRepository(db),
		Auth:        NewAuthRepository(db),
	}
}

type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Profile, error)
	Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) error
	UpdateAvatar(ctx context.Context, id string, avatarURL *string) error
}

type ServiceCatalogRepository interface {
	Create(ctx context.Context, profileID string, dto domain.CreateServiceDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Update(ctx context.Context, id string, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id string) error
	ListByProfile(ctx context.Context, profileID string, activeOnly bool) ([]domain.Service, error)
}

type AppointmentRepository interface {
	// Create performs the single constraint-checked insert that decides a
	// booking. A violation of the slot uniqueness constraint comes back as
	// domain.ErrSlotConflict.
	Create(ctx context.Context, appt domain.Appointment) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, id string, dto domain.UpdateAppointmentDTO) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	// ListBookedTimes is the availability read: every appointment time for
	// the (profile, service, date) tuple, as "HH24:MI" strings.
	ListBookedTimes(ctx context.Context, profileID, serviceID, date string) ([]string, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, profileID string, dto domain.CreateExpenseDTO) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Update(ctx context.Context, id string, dto domain.UpdateExpenseDTO) error
	Delete(ctx context.Context, id string) error
	ListByMonth(ctx context.Context, profileID, from, to string) ([]domain.Expense, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByProfileID(ctx context.Context, profileID string) error
}
