package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

const (
	dashboardCacheKey = "stats:dashboard"
	dashboardCacheTTL = time.Minute
	recentReportLimit = 10
)

// AdminService implements user management and dashboard statistics. All
// routes reaching it are ADMIN-gated.
type AdminService struct {
	users   ports.UserRepository
	reports ports.ReportRepository
	cache   ports.StatsCache // nil disables caching
	log     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, reports ports.ReportRepository, cache ports.StatsCache, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, reports: reports, cache: cache, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context, page, size int) (*ports.UserPage, error) {
	page, size = normalizePage(page, size)
	items, total, err := s.users.List(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.UserPage{
		Content:       items,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}, nil
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ToggleActive flips the account's active flag.
func (s *AdminService) ToggleActive(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Active = !user.Active
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("toggle active: %w", err)
	}

	s.log.Info().Str("user_id", id).Bool("active", user.Active).Msg("user activation toggled")
	return user, nil
}

func (s *AdminService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("user role updated")
	return user, nil
}

// DashboardStats aggregates totals, per-status counts and the most recent
// reports. Results are cached briefly; a cache failure degrades to a live
// aggregation rather than an error.
func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	if s.cache != nil {
		var cached ports.DashboardStats
		found, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err != nil {
			s.log.Warn().Err(err).Msg("dashboard cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	totalReports, err := s.reports.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	byStatus := make(map[string]int64, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		n, err := s.reports.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		byStatus[string(status)] = n
	}

	recent, err := s.reports.FindRecent(ctx, recentReportLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	stats := &ports.DashboardStats{
		TotalReports:    totalReports,
		TotalUsers:      totalUsers,
		ReportsByStatus: byStatus,
		RecentReports:   recent,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return stats, nil
}
