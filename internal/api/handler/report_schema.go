package handler

import (
	"time"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

// errorResponse is the standard envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type createReportRequest struct {
	Title       string   `json:"title"       validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=1000"`
	Category    string   `json:"category"    validate:"required,oneof=ROAD_DAMAGE LIGHTING TRAFFIC_SIGNS ILLEGAL_DUMPING VANDALISM GREEN_AREAS SIDEWALK PLAYGROUND PUBLIC_TRANSPORT OTHER"`
	Latitude    *float64 `json:"latitude"    validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude"   validate:"required,gte=-180,lte=180"`
	Address     string   `json:"address"     validate:"required,max=500"`
	PhotoURLs   []string `json:"photoUrls"   validate:"omitempty,max=10"`
}

type updateStatusRequest struct {
	Status  string `json:"status"  validate:"required,oneof=NEW IN_REVIEW ACCEPTED IN_PROGRESS RESOLVED REJECTED DUPLICATE"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// Response-only types owned by the transport layer. The JSON contract is
// intentionally decoupled from the domain types.

type commentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	Content    string    `json:"content"`
	IsOfficial bool      `json:"isOfficial"`
	CreatedAt  time.Time `json:"createdAt"`
}

type reportResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	UserName    string            `json:"userName"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Address     string            `json:"address"`
	PhotoURLs   []string          `json:"photoUrls"`
	Comments    []commentResponse `json:"comments"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type reportPageResponse struct {
	Content       []reportResponse `json:"content"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	First         bool             `json:"first"`
	Last          bool             `json:"last"`
}

func toReportResponse(r *domain.Report) reportResponse {
	comments := make([]commentResponse, 0, len(r.Comments))
	for _, cm := range r.Comments {
		comments = append(comments, commentResponse{
			ID:         cm.ID,
			UserID:     cm.AuthorID,
			UserName:   cm.Author,
			Content:    cm.Content,
			IsOfficial: cm.Official,
			CreatedAt:  cm.CreatedAt,
		})
	}

	photos := r.PhotoURLs
	if photos == nil {
		photos = []string{}
	}

	return reportResponse{
		ID:          r.ID,
		UserID:      r.OwnerID,
		UserName:    r.OwnerName,
		Title:       r.Title,
		Description: r.Description,
		Category:    string(r.Category),
		Status:      string(r.Status),
		Priority:    string(r.Priority),
		Latitude:    r.Location.Lat,
		Longitude:   r.Location.Lng,
		Address:     r.Address,
		PhotoURLs:   photos,
		Comments:    comments,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toReportPageResponse(p *ports.ReportPage) reportPageResponse {
	content := make([]reportResponse, 0, len(p.Content))
	for _, r := range p.Content {
		content = append(content, toReportResponse(r))
	}
	return reportPageResponse{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Page:          p.Page,
		Size:          p.Size,
		First:         p.First,
		Last:          p.Last,
	}
}
