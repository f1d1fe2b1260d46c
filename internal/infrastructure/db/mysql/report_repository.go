package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

// haversineSQL computes the great-circle distance in km between a report's
// coordinates and a query point. Args: lat, lng, lat.
const haversineSQL = "(6371 * ACOS(LEAST(1.0, " +
	"COS(RADIANS(?)) * COS(RADIANS(latitude)) * COS(RADIANS(longitude) - RADIANS(?)) + " +
	"SIN(RADIANS(?)) * SIN(RADIANS(latitude)))))"

// sortColumns whitelists API sort fields against store columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
	"category":  "category",
	"priority":  "priority",
	"title":     "title",
}

// ReportRepository is the GORM-backed report store.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts the report and its photo rows.
func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	rec := toReportRecord(report)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	for i, url := range report.PhotoURLs {
		photo := photoRecord{ReportID: report.ID, Position: i, URL: url}
		if err := r.db.WithContext(ctx).Create(&photo).Error; err != nil {
			return fmt.Errorf("insert photo: %w", err)
		}
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	var row reportRow
	err := r.db.WithContext(ctx).
		Table("reports").
		Select("reports.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = reports.user_id").
		Where("reports.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}

	report := toDomainReport(row)
	if err := r.loadPhotos(ctx, map[string]*domain.Report{report.ID: report}); err != nil {
		return nil, err
	}
	if err := r.loadComments(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// FindPage returns one page of reports matching filter plus the total count.
// Comments are omitted from page results; photos are batch-loaded.
func (r *ReportRepository) FindPage(ctx context.Context, filter ports.ReportFilter) ([]*domain.Report, int64, error) {
	base := r.db.WithContext(ctx).Table("reports")

	if filter.Status != "" {
		base = base.Where("reports.status = ?", string(filter.Status))
	}
	if filter.Category != "" {
		base = base.Where("reports.category = ?", string(filter.Category))
	}
	if filter.OwnerID != "" {
		base = base.Where("reports.user_id = ?", filter.OwnerID)
	}
	if nb := filter.Nearby; nb != nil {
		base = base.Where(haversineSQL+" <= ?", nb.Lat, nb.Lng, nb.Lat, nb.RadiusKm)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortAsc {
		direction = "ASC"
	}

	var rows []reportRow
	err := base.
		Select("reports.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = reports.user_id").
		Order(fmt.Sprintf("reports.%s %s", column, direction)).
		Offset(filter.Page * filter.Size).
		Limit(filter.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]*domain.Report, 0, len(rows))
	byID := make(map[string]*domain.Report, len(rows))
	for _, row := range rows {
		report := toDomainReport(row)
		reports = append(reports, report)
		byID[report.ID] = report
	}
	if err := r.loadPhotos(ctx, byID); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ReportRepository) CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&reportRecord{}).
		Where("status = ?", string(status)).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count by status: %w", err)
	}
	return n, nil
}

func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&reportRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

func (r *ReportRepository) FindRecent(ctx context.Context, n int) ([]*domain.Report, error) {
	var rows []reportRow
	err := r.db.WithContext(ctx).
		Table("reports").
		Select("reports.*, users.name AS owner_name").
		Joins("JOIN users ON users.id = reports.user_id").
		Order("reports.created_at DESC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent reports: %w", err)
	}

	reports := make([]*domain.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, toDomainReport(row))
	}
	return reports, nil
}

// Save writes the mutable report columns.
func (r *ReportRepository) Save(ctx context.Context, report *domain.Report) error {
	rec := toReportRecord(report)
	result := r.db.WithContext(ctx).Model(&reportRecord{}).
		Where("id = ?", report.ID).
		Updates(map[string]any{
			"status":     rec.Status,
			"priority":   rec.Priority,
			"updated_at": rec.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("save report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	rec := commentRecord{
		ID:         c.ID,
		ReportID:   c.ReportID,
		AuthorID:   c.AuthorID,
		AuthorName: c.Author,
		Content:    c.Content,
		Official:   c.Official,
		CreatedAt:  c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// DeleteByID removes the report with its photos and comments.
func (r *ReportRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&reportRecord{})
		if result.Error != nil {
			return fmt.Errorf("delete report: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrReportNotFound
		}
		if err := tx.Where("report_id = ?", id).Delete(&photoRecord{}).Error; err != nil {
			return fmt.Errorf("delete photos: %w", err)
		}
		if err := tx.Where("report_id = ?", id).Delete(&commentRecord{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		return nil
	})
}

// WithTx runs fn against transaction-scoped repositories so report writes
// and point awards commit or roll back together.
func (r *ReportRepository) WithTx(ctx context.Context, fn func(reports ports.ReportRepository, users ports.UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewReportRepository(tx), NewUserRepository(tx))
	})
}

func (r *ReportRepository) loadPhotos(ctx context.Context, byID map[string]*domain.Report) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	var photos []photoRecord
	err := r.db.WithContext(ctx).
		Where("report_id IN ?", ids).
		Order("report_id, position").
		Find(&photos).Error
	if err != nil {
		return fmt.Errorf("load photos: %w", err)
	}

	for _, p := range photos {
		if report, ok := byID[p.ReportID]; ok {
			report.PhotoURLs = append(report.PhotoURLs, p.URL)
		}
	}
	return nil
}

func (r *ReportRepository) loadComments(ctx context.Context, report *domain.Report) error {
	var recs []commentRecord
	err := r.db.WithContext(ctx).
		Where("report_id = ?", report.ID).
		Order("created_at").
		Find(&recs).Error
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}

	for _, rec := range recs {
		report.Comments = append(report.Comments, toDomainComment(rec))
	}
	return nil
}
