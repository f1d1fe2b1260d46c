package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/cityreporter/city-reporter-api/internal/api/handler"
	"github.com/cityreporter/city-reporter-api/internal/api/middleware"
	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
	healthhandlers "github.com/cityreporter/city-reporter-api/internal/infrastructure/http/handlers"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Auth      ports.AuthService
	Reports   ports.ReportService
	Admin     ports.AdminService
	Tokens    ports.TokenService
	Users     ports.UserRepository
	Limiter   middleware.SubmissionLimiter
	Health    *healthhandlers.HealthHandler
	Readiness *healthhandlers.ReadinessHandler
	Log       zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("cityreporter"))
	e.Use(middleware.Authenticate(d.Tokens, d.Users))

	authHandler := handler.NewAuthHandler(d.Auth)
	reportHandler := handler.NewReportHandler(d.Reports)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Reports)

	requireAuth := middleware.RequireAuth()
	moderators := middleware.RequireRole(domain.RoleAdmin, domain.RoleModerator, domain.RoleTechnician)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.PUT("/me", authHandler.UpdateMe, requireAuth)
	auth.POST("/change-password", authHandler.ChangePassword, requireAuth)

	// --- Reports ---
	reports := e.Group("/api/reports")
	reports.GET("", reportHandler.List)
	reports.GET("/statistics", reportHandler.Statistics)
	reports.GET("/nearby", reportHandler.Nearby)
	reports.GET("/my", reportHandler.My, requireAuth)
	reports.POST("", reportHandler.Create, requireAuth, middleware.LimitSubmissions(d.Limiter))
	reports.GET("/:id", reportHandler.Get)
	reports.PUT("/:id/status", reportHandler.UpdateStatus, moderators)
	reports.DELETE("/:id", reportHandler.Delete, adminOnly)

	// --- Admin ---
	admin := e.Group("/api/admin", adminOnly)
	admin.GET("/reports", adminHandler.ListReports)
	admin.GET("/reports/status/:status", adminHandler.ListReportsByStatus)
	admin.PUT("/reports/:id/status", reportHandler.UpdateStatus)
	admin.DELETE("/reports/:id", reportHandler.Delete)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id/toggle-active", adminHandler.ToggleActive)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)
	admin.GET("/dashboard/stats", adminHandler.DashboardStats)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/health", d.Health.Liveness)
	e.GET("/health/ready", d.Readiness.Readiness)

	return e
}
