package domain

import (
	"math"
	"time"
)

// ReportStatus represents the lifecycle state of a report.
//
// There is deliberately no transition table: any moderating role may set
// any target status, including out of the terminal states RESOLVED,
// REJECTED and DUPLICATE. See the lifecycle service for the invariants
// that are enforced instead (role gate, point awards, updated_at refresh).
type ReportStatus string

const (
	StatusNew        ReportStatus = "NEW"
	StatusInReview   ReportStatus = "IN_REVIEW"
	StatusAccepted   ReportStatus = "ACCEPTED"
	StatusInProgress ReportStatus = "IN_PROGRESS"
	StatusResolved   ReportStatus = "RESOLVED"
	StatusRejected   ReportStatus = "REJECTED"
	StatusDuplicate  ReportStatus = "DUPLICATE"
)

// AllStatuses lists every lifecycle state, used for dashboard aggregation.
var AllStatuses = []ReportStatus{
	StatusNew, StatusInReview, StatusAccepted, StatusInProgress,
	StatusResolved, StatusRejected, StatusDuplicate,
}

// Valid reports whether s is one of the known statuses.
func (s ReportStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ReportCategory classifies a report. Closed set of 10 values.
type ReportCategory string

const (
	CategoryRoadDamage      ReportCategory = "ROAD_DAMAGE"
	CategoryLighting        ReportCategory = "LIGHTING"
	CategoryTrafficSigns    ReportCategory = "TRAFFIC_SIGNS"
	CategoryIllegalDumping  ReportCategory = "ILLEGAL_DUMPING"
	CategoryVandalism       ReportCategory = "VANDALISM"
	CategoryGreenAreas      ReportCategory = "GREEN_AREAS"
	CategorySidewalk        ReportCategory = "SIDEWALK"
	CategoryPlayground      ReportCategory = "PLAYGROUND"
	CategoryPublicTransport ReportCategory = "PUBLIC_TRANSPORT"
	CategoryOther           ReportCategory = "OTHER"
)

// Priority orders reports for triage.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityNormal   Priority = "NORMAL"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Coordinates represents a geographic point.
// Invariant: Lat in [-90,90], Lng in [-180,180].
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InRange reports whether the coordinates are within the valid ranges.
func (c Coordinates) InRange() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance to other in km.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLng := (other.Lng - c.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Comment is a remark attached to a report. Official comments are written
// by moderating roles during status changes.
type Comment struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"-"`
	AuthorID  string    `json:"user_id"`
	Author    string    `json:"user_name"`
	Content   string    `json:"content"`
	Official  bool      `json:"is_official"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is the core aggregate: a citizen-submitted issue with location,
// category and lifecycle status. OwnerID is immutable after creation.
type Report struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"user_id"`
	OwnerName   string         `json:"user_name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    ReportCategory `json:"category"`
	Status      ReportStatus   `json:"status"`
	Priority    Priority       `json:"priority"`
	Location    Coordinates    `json:"location"`
	Address     string         `json:"address"`
	PhotoURLs   []string       `json:"photo_urls"`
	Comments    []Comment      `json:"comments"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Point awards, committed atomically with the report write.
const (
	PointsForCreation   = 10
	PointsForResolution = 50
)
