package ports

import (
	"context"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// CreateReportInput carries validated data for a new report. Validation of
// lengths, coordinate ranges and required fields happens at the HTTP
// boundary before this DTO is built.
type CreateReportInput struct {
	Title       string
	Description string
	Category    domain.ReportCategory
	Latitude    float64
	Longitude   float64
	Address     string
	PhotoURLs   []string
}

// UpdateStatusInput carries a status transition request. Actor identifies
// the moderating caller; a non-empty comment is appended as official.
type UpdateStatusInput struct {
	Status    domain.ReportStatus
	Comment   string
	ActorID   string
	ActorName string
}

// ListReportsInput carries the public list endpoint parameters.
type ListReportsInput struct {
	Status   domain.ReportStatus
	Category domain.ReportCategory
	UserID   string
	Page     int
	Size     int
	SortBy   string
	SortAsc  bool
}

// NearbyInput carries a radius search around a point.
type NearbyInput struct {
	Lat      float64
	Lng      float64
	RadiusKm float64 // defaults to 5.0 when <= 0
	Page     int
	Size     int
}

// ReportPage is one zero-indexed page of reports.
type ReportPage struct {
	Content       []*domain.Report
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
	First         bool
	Last          bool
}

// NewReportPage computes the page envelope for a result set.
func NewReportPage(content []*domain.Report, total int64, page, size int) *ReportPage {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ReportPage{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// ReportStatistics is the public aggregate over report statuses.
type ReportStatistics struct {
	TotalReports      int64 `json:"totalReports"`
	ResolvedReports   int64 `json:"resolvedReports"`
	PendingReports    int64 `json:"pendingReports"`
	InProgressReports int64 `json:"inProgressReports"`
}

// ReportService defines the report lifecycle use cases.
type ReportService interface {
	// Create stores a new report with status NEW and awards the creation
	// points to the owner in the same transaction.
	Create(ctx context.Context, userID string, input CreateReportInput) (*domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, input ListReportsInput) (*ReportPage, error)
	ListByOwner(ctx context.Context, ownerID string, page, size int) (*ReportPage, error)
	// UpdateStatus sets any target status (there is no transition table),
	// refreshes updated_at, and awards resolution points when the report
	// newly becomes RESOLVED.
	UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
	Nearby(ctx context.Context, input NearbyInput) (*ReportPage, error)
	Statistics(ctx context.Context) (*ReportStatistics, error)
}
