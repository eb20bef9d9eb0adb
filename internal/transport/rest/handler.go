package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"marcai/config"
	"marcai/internal/service"
)

type Handler struct {
	services      *service.Services
	logger        *zap.Logger
	config        *config.Config
	publicLimiter *rateLimiter
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services:      services,
		logger:        logger,
		config:        config,
		publicLimiter: newRateLimiter(config.HTTP.PublicRateRPS, config.HTTP.PublicRateBurst),
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
			auth.POST("/logout-all", h.authMiddleware(), h.logoutAll)
		}

		public := api.Group("/public")
		public.Use(h.publicRateLimitMiddleware())
		{
			public.GET("/:slug", h.getPublicPage)
			public.GET("/:slug/availability", h.getAvailability)
			public.POST("/:slug/bookings", h.createBooking)
		}

		profile := api.Group("/profile")
		profile.Use(h.authMiddleware())
		{
			profile.GET("", h.getProfile)
			profile.PUT("", h.updateProfile)
			profile.POST("/avatar", h.uploadAvatar)
		}

		services := api.Group("/services")
		services.Use(h.authMiddleware())
		{
			services.POST("", h.createService)
			services.GET("", h.listServices)
			services.GET("/:id", h.getServiceByID)
			services.PUT("/:id", h.updateService)
			services.DELETE("/:id", h.deleteService)
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.GET("", h.listAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.DELETE("/:id", h.cancelAppointment)
		}

		expenses := api.Group("/expenses")
		expenses.Use(h.authMiddleware())
		{
			expenses.POST("", h.createExpense)
			expenses.GET("", h.listExpenses)
			expenses.PUT("/:id", h.updateExpense)
			expenses.DELETE("/:id", h.deleteExpense)
		}

		api.GET("/summary", h.authMiddleware(), h.getMonthlySummary)
	}
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    h.config.Name,
		"version": h.config.Version,
	})
}
