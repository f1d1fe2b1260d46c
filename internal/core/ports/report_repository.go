package ports

import (
	"context"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// NearbyFilter constrains a query to a great-circle radius around a point.
type NearbyFilter struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// ReportFilter carries all query parameters for listing reports.
type ReportFilter struct {
	Status   domain.ReportStatus   // optional
	Category domain.ReportCategory // optional
	OwnerID  string                // optional: scope to one user's reports
	Nearby   *NearbyFilter         // optional: radius search
	Page     int                   // zero-indexed
	Size     int                   // defaults to 20 when <= 0
	SortBy   string                // defaults to creation time
	SortAsc  bool                  // defaults to descending
}

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	// FindPage returns a page of reports matching filter and the total count.
	FindPage(ctx context.Context, filter ReportFilter) ([]*domain.Report, int64, error)
	CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
	// FindRecent returns the n most recently created reports.
	FindRecent(ctx context.Context, n int) ([]*domain.Report, error)
	Save(ctx context.Context, r *domain.Report) error
	AddComment(ctx context.Context, c *domain.Comment) error
	// DeleteByID removes a report and its photos/comments.
	// Returns domain.ErrReportNotFound when absent.
	DeleteByID(ctx context.Context, id string) error

	// WithTx runs fn inside one store transaction, handing it
	// transaction-scoped report and user repositories. Report mutations and
	// their point-award side effects must commit or roll back together.
	WithTx(ctx context.Context, fn func(reports ReportRepository, users UserRepository) error) error
}
