package ports

import (
	"context"
	"time"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// UserPage is one zero-indexed page of users.
type UserPage struct {
	Content       []*domain.User
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
	First         bool
	Last          bool
}

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	TotalReports    int64            `json:"totalReports"`
	TotalUsers      int64            `json:"totalUsers"`
	ReportsByStatus map[string]int64 `json:"reportsByStatus"`
	RecentReports   []*domain.Report `json:"recentReports"`
}

// StatsCache is the short-TTL cache in front of dashboard aggregation.
type StatsCache interface {
	// Get unmarshals the cached value into v; found is false on miss.
	Get(ctx context.Context, key string, v any) (found bool, err error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

// AdminService implements user management and dashboard statistics.
// Every operation is reachable only through ADMIN-gated routes.
type AdminService interface {
	ListUsers(ctx context.Context, page, size int) (*UserPage, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ToggleActive(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
