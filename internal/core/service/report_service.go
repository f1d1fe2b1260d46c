package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityreporter/city-reporter-api/internal/api/metrics"
	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

const defaultNearbyRadiusKm = 5.0

// ReportService implements the report lifecycle. Status transitions carry
// no legality table: any moderating caller may set any target status.
// What is enforced: creation starts at NEW and awards points to the
// creator; a transition into RESOLVED awards points to the owner;
// updated_at is refreshed on every status write; award and report write
// commit in one transaction.
type ReportService struct {
	reports ports.ReportRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, users ports.UserRepository, log zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, users: users, log: log}
}

// Create stores a new NEW report owned by userID and awards the creation
// points atomically with the insert.
func (s *ReportService) Create(ctx context.Context, userID string, input ports.CreateReportInput) (*domain.Report, error) {
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := &domain.Report{
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      domain.StatusNew,
		Priority:    domain.PriorityNormal,
		Location:    domain.Coordinates{Lat: input.Latitude, Lng: input.Longitude},
		Address:     input.Address,
		PhotoURLs:   input.PhotoURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.reports.WithTx(ctx, func(reports ports.ReportRepository, users ports.UserRepository) error {
		if err := reports.Create(ctx, report); err != nil {
			return err
		}
		owner.Points += domain.PointsForCreation
		return users.Save(ctx, owner)
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create report")
		return nil, fmt.Errorf("create report: %w", err)
	}

	metrics.ReportsCreatedTotal.WithLabelValues(string(report.Category)).Inc()
	metrics.PointsAwardedTotal.WithLabelValues("creation").Add(domain.PointsForCreation)
	s.log.Info().
		Str("report_id", report.ID).
		Str("user_id", owner.ID).
		Str("category", string(report.Category)).
		Msg("report created")

	return report, nil
}

func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.reports.FindByID(ctx, id)
}

func (s *ReportService) List(ctx context.Context, input ports.ListReportsInput) (*ports.ReportPage, error) {
	page, size := normalizePage(input.Page, input.Size)
	items, total, err := s.reports.FindPage(ctx, ports.ReportFilter{
		Status:   input.Status,
		Category: input.Category,
		OwnerID:  input.UserID,
		Page:     page,
		Size:     size,
		SortBy:   input.SortBy,
		SortAsc:  input.SortAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return ports.NewReportPage(items, total, page, size), nil
}

func (s *ReportService) ListByOwner(ctx context.Context, ownerID string, page, size int) (*ports.ReportPage, error) {
	page, size = normalizePage(page, size)
	items, total, err := s.reports.FindPage(ctx, ports.ReportFilter{
		OwnerID: ownerID,
		Page:    page,
		Size:    size,
	})
	if err != nil {
		return nil, fmt.Errorf("list own reports: %w", err)
	}
	return ports.NewReportPage(items, total, page, size), nil
}

// UpdateStatus writes the target status and its side effects in one
// transaction. Re-setting the current status refreshes updated_at but is a
// no-op for the point award, so repeated RESOLVED calls award once.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, input ports.UpdateStatusInput) (*domain.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := report.Status
	awardResolution := input.Status == domain.StatusResolved && previous != domain.StatusResolved

	report.Status = input.Status
	report.UpdatedAt = time.Now().UTC()

	err = s.reports.WithTx(ctx, func(reports ports.ReportRepository, users ports.UserRepository) error {
		if err := reports.Save(ctx, report); err != nil {
			return err
		}
		if input.Comment != "" {
			comment := &domain.Comment{
				ReportID:  report.ID,
				AuthorID:  input.ActorID,
				Author:    input.ActorName,
				Content:   input.Comment,
				Official:  true,
				CreatedAt: report.UpdatedAt,
			}
			if err := reports.AddComment(ctx, comment); err != nil {
				return err
			}
			report.Comments = append(report.Comments, *comment)
		}
		if awardResolution {
			owner, err := users.FindByID(ctx, report.OwnerID)
			if err != nil {
				return err
			}
			owner.Points += domain.PointsForResolution
			return users.Save(ctx, owner)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("report_id", id).Msg("failed to update report status")
		return nil, fmt.Errorf("update status: %w", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(previous), string(input.Status)).Inc()
	if awardResolution {
		metrics.PointsAwardedTotal.WithLabelValues("resolution").Add(domain.PointsForResolution)
	}
	s.log.Info().
		Str("report_id", id).
		Str("from", string(previous)).
		Str("to", string(input.Status)).
		Str("actor_id", input.ActorID).
		Msg("report status updated")

	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.reports.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Msg("report deleted")
	return nil
}

// Nearby returns reports within the great-circle radius of the point.
func (s *ReportService) Nearby(ctx context.Context, input ports.NearbyInput) (*ports.ReportPage, error) {
	radius := input.RadiusKm
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}
	page, size := normalizePage(input.Page, input.Size)

	items, total, err := s.reports.FindPage(ctx, ports.ReportFilter{
		Nearby: &ports.NearbyFilter{Lat: input.Lat, Lng: input.Lng, RadiusKm: radius},
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby reports: %w", err)
	}
	return ports.NewReportPage(items, total, page, size), nil
}

// Statistics aggregates live status counts.
func (s *ReportService) Statistics(ctx context.Context) (*ports.ReportStatistics, error) {
	total, err := s.reports.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	stats := &ports.ReportStatistics{TotalReports: total}
	for status, dst := range map[domain.ReportStatus]*int64{
		domain.StatusResolved:   &stats.ResolvedReports,
		domain.StatusNew:        &stats.PendingReports,
		domain.StatusInProgress: &stats.InProgressReports,
	} {
		n, err := s.reports.CountByStatus(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("statistics: %w", err)
		}
		*dst = n
	}
	return stats, nil
}

// normalizePage applies the zero-indexed defaults: page 0, size 20.
func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	return page, size
}
