package service

import (
	"context"

	"go.uber.org/zap"

	"marcai/config"
	"marcai/internal/cache"
	"marcai/internal/domain"
	"marcai/internal/notification"
	"marcai/internal/repository"
	"marcai/internal/slots"
	"marcai/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       cache.PublicPageCache
	Notifier    notification.Notifier
}

type Services struct {
	Auth        AuthService
	Profile     ProfileService
	Catalog     CatalogService
	Public      PublicService
	Booking     BookingService
	Appointment AppointmentService
	Expense     ExpenseService
	Summary     SummaryService
}

func NewServices(deps Deps) *Services {
	window := slots.Window{
		StartHour: deps.Config.Booking.StartHour,
		EndHour:   deps.Config.Booking.EndHour,
	}

	return &Services{
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.Profile, deps.Config.JWT, deps.Logger),
		Profile:     NewProfileService(deps.Repos.Profile, deps.FileStorage, deps.Cache, deps.Logger),
		Catalog:     NewCatalogService(deps.Repos.Catalog, deps.Repos.Profile, deps.Cache, deps.Logger),
		Public:      NewPublicService(deps.Repos.Profile, deps.Repos.Catalog, deps.Cache, deps.Logger),
		Booking:     NewBookingService(deps.Repos.Appointment, deps.Repos.Catalog, deps.Repos.Profile, deps.Notifier, window, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Logger),
		Expense:     NewExpenseService(deps.Repos.Expense, deps.Logger),
		Summary:     NewSummaryService(deps.Repos.Appointment, deps.Repos.Expense, deps.Logger),
	}
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (string, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, profileID string) error
	ParseToken(ctx context.Context, token string) (string, error)
}

type ProfileService interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, id string, dto domain.UpdateProfileDTO) error
	UploadAvatar(ctx context.Context, id string, data []byte, filename string) (string, error)
}

type CatalogService interface {
	Create(ctx context.Context, profileID string, dto domain.CreateServiceDTO) (string, error)
	GetByID(ctx context.Context, profileID, id string) (*domain.Service, error)
	Update(ctx context.Context, profileID, id string, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, profileID, id string) error
	List(ctx context.Context, profileID string) ([]domain.Service, error)
}

type PublicService interface {
	Page(ctx context.Context, slug string) (*domain.PublicPage, error)
}

type BookingService interface {
	Availability(ctx context.Context, profileID, serviceID, date string) (*domain.BookingSession, error)
	Book(ctx context.Context, profileID string, req domain.BookingRequest) (*BookingResult, error)
}

type AppointmentService interface {
	GetByID(ctx context.Context, profileID, id string) (*domain.Appointment, error)
	Update(ctx context.Context, profileID, id string, dto domain.UpdateAppointmentDTO) error
	Cancel(ctx context.Context, profileID, id string) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

type ExpenseService interface {
	Create(ctx context.Context, profileID string, dto domain.CreateExpenseDTO) (string, error)
	Update(ctx context.Context, profileID, id string, dto domain.UpdateExpenseDTO) error
	Delete(ctx context.Context, profileID, id string) error
	ListByMonth(ctx context.Context, profileID, month string) ([]domain.Expense, error)
}

type SummaryService interface {
	Monthly(ctx context.Context, profileID, month string) (*domain.MonthlySummary, error)
}
