package mysql

import (
	"time"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// The record types are the only domain↔store mapping layer. Domain types
// stay free of persistence tags.

type userRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:100;not null"`
	Phone        string    `gorm:"size:20"`
	Role         string    `gorm:"size:20;not null"`
	Active       bool      `gorm:"not null;default:true"`
	Points       int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

type reportRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:36;not null;index"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000;not null"`
	Category    string    `gorm:"size:30;not null;index"`
	Status      string    `gorm:"size:20;not null;index"`
	Priority    string    `gorm:"size:10;not null"`
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	Address     string    `gorm:"size:500;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (reportRecord) TableName() string { return "reports" }

type photoRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	ReportID string `gorm:"size:36;not null;index"`
	Position int    `gorm:"not null"`
	URL      string `gorm:"type:text;not null"`
}

func (photoRecord) TableName() string { return "report_photos" }

type commentRecord struct {
	ID         string    `gorm:"primaryKey;size:36"`
	ReportID   string    `gorm:"size:36;not null;index"`
	AuthorID   string    `gorm:"size:36;not null"`
	AuthorName string    `gorm:"size:100;not null"`
	Content    string    `gorm:"size:1000;not null"`
	Official   bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (commentRecord) TableName() string { return "report_comments" }

// reportRow is a report joined with its owner's display name.
type reportRow struct {
	reportRecord
	OwnerName string
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         string(u.Role),
		Active:       u.Active,
		Points:       u.Points,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomainUser(r userRecord) *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Phone:        r.Phone,
		Role:         domain.Role(r.Role),
		Active:       r.Active,
		Points:       r.Points,
		CreatedAt:    r.CreatedAt,
	}
}

func toReportRecord(r *domain.Report) reportRecord {
	return reportRecord{
		ID:          r.ID,
		UserID:      r.OwnerID,
		Title:       r.Title,
		Description: r.Description,
		Category:    string(r.Category),
		Status:      string(r.Status),
		Priority:    string(r.Priority),
		Latitude:    r.Location.Lat,
		Longitude:   r.Location.Lng,
		Address:     r.Address,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainReport(row reportRow) *domain.Report {
	return &domain.Report{
		ID:          row.ID,
		OwnerID:     row.UserID,
		OwnerName:   row.OwnerName,
		Title:       row.Title,
		Description: row.Description,
		Category:    domain.ReportCategory(row.Category),
		Status:      domain.ReportStatus(row.Status),
		Priority:    domain.Priority(row.Priority),
		Location:    domain.Coordinates{Lat: row.Latitude, Lng: row.Longitude},
		Address:     row.Address,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDomainComment(r commentRecord) domain.Comment {
	return domain.Comment{
		ID:        r.ID,
		ReportID:  r.ReportID,
		AuthorID:  r.AuthorID,
		Author:    r.AuthorName,
		Content:   r.Content,
		Official:  r.Official,
		CreatedAt: r.CreatedAt,
	}
}
