package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/cityreporter/city-reporter-api/internal/api"
	"github.com/cityreporter/city-reporter-api/internal/core/service"
	"github.com/cityreporter/city-reporter-api/internal/infrastructure/config"
	"github.com/cityreporter/city-reporter-api/internal/infrastructure/db/mysql"
	redisinfra "github.com/cityreporter/city-reporter-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/cityreporter/city-reporter-api/internal/infrastructure/http/handlers"
	"github.com/cityreporter/city-reporter-api/pkg/logger"
)

// @title City Reporter API
// @version 1.0
// @description Citizen issue-reporting backend with JWT authentication, role-gated report lifecycle, and geo search.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("configuration load failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	gormDB, err := mysql.Connect(cfg.MySQL.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	if err := mysql.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("mysql migrate failed")
	}

	redisClient, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	userRepo := mysql.NewUserRepository(gormDB)
	reportRepo := mysql.NewReportRepository(gormDB)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	reportService := service.NewReportService(reportRepo, userRepo, log)
	adminService := service.NewAdminService(userRepo, reportRepo, redisinfra.NewStatsCache(redisClient), log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Reports:   reportService,
		Admin:     adminService,
		Tokens:    tokenService,
		Users:     userRepo,
		Limiter:   redisinfra.NewSubmissionLimiter(redisClient, cfg.ReportsPerDay),
		Health:    healthhandlers.NewHealthHandler(),
		Readiness: healthhandlers.NewReadinessHandler(gormDB, redisClient),
		Log:       log,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
