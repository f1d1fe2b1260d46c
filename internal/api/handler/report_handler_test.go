package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cityreporter/city-reporter-api/internal/api/middleware"
	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

type stubReportService struct {
	createFn       func(ctx context.Context, userID string, input ports.CreateReportInput) (*domain.Report, error)
	getFn          func(ctx context.Context, id string) (*domain.Report, error)
	listFn         func(ctx context.Context, input ports.ListReportsInput) (*ports.ReportPage, error)
	updateStatusFn func(ctx context.Context, id string, input ports.UpdateStatusInput) (*domain.Report, error)
	nearbyFn       func(ctx context.Context, input ports.NearbyInput) (*ports.ReportPage, error)
}

func (s *stubReportService) Create(ctx context.Context, userID string, input ports.CreateReportInput) (*domain.Report, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.getFn(ctx, id)
}

func (s *stubReportService) List(ctx context.Context, input ports.ListReportsInput) (*ports.ReportPage, error) {
	return s.listFn(ctx, input)
}

func (s *stubReportService) ListByOwner(context.Context, string, int, int) (*ports.ReportPage, error) {
	return ports.NewReportPage(nil, 0, 0, 20), nil
}

func (s *stubReportService) UpdateStatus(ctx context.Context, id string, input ports.UpdateStatusInput) (*domain.Report, error) {
	return s.updateStatusFn(ctx, id, input)
}

func (s *stubReportService) Delete(context.Context, string) error { return nil }

func (s *stubReportService) Nearby(ctx context.Context, input ports.NearbyInput) (*ports.ReportPage, error) {
	return s.nearbyFn(ctx, input)
}

func (s *stubReportService) Statistics(context.Context) (*ports.ReportStatistics, error) {
	return &ports.ReportStatistics{}, nil
}

func TestReportHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubReportService{
		createFn: func(_ context.Context, userID string, input ports.CreateReportInput) (*domain.Report, error) {
			if userID != "u-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			if input.Category != domain.CategoryRoadDamage {
				t.Fatalf("unexpected category: %s", input.Category)
			}
			return &domain.Report{
				ID:       "r-1",
				OwnerID:  userID,
				Title:    input.Title,
				Category: input.Category,
				Status:   domain.StatusNew,
				Priority: domain.PriorityNormal,
				Location: domain.Coordinates{Lat: input.Latitude, Lng: input.Longitude},
			}, nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/api/reports",
		`{"title":"Pothole","description":"Deep one","category":"ROAD_DAMAGE","latitude":52.23,"longitude":21.01,"address":"Main St 1"}`)
	c.Set(middleware.CtxUserID, "u-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "NEW" || resp["userId"] != "u-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["photoUrls"].([]any); !ok {
		t.Fatalf("expected photoUrls array, got %+v", resp["photoUrls"])
	}
}

func TestReportHandler_Create_Anonymous(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewReportHandler(&stubReportService{})

	c, _ := newTestContext(e, http.MethodPost, "/api/reports", `{}`)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestReportHandler_Create_MissingCoordinates(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewReportHandler(&stubReportService{
		createFn: func(context.Context, string, ports.CreateReportInput) (*domain.Report, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(e, http.MethodPost, "/api/reports",
		`{"title":"Pothole","description":"Deep one","category":"ROAD_DAMAGE","address":"Main St 1"}`)
	c.Set(middleware.CtxUserID, "u-1")

	err := h.Create(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["latitude"]; !ok {
		t.Fatalf("expected latitude detail, got %+v", ve.Fields)
	}
}

func TestReportHandler_List_InvalidStatus(t *testing.T) {
	e := echo.New()
	h := NewReportHandler(&stubReportService{})

	c, _ := newTestContext(e, http.MethodGet, "/api/reports?status=BOGUS", "")

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %v", err)
	}
}

func TestReportHandler_List_PassesFilters(t *testing.T) {
	e := echo.New()
	stub := &stubReportService{
		listFn: func(_ context.Context, input ports.ListReportsInput) (*ports.ReportPage, error) {
			if input.Status != domain.StatusNew || input.Page != 2 || input.Size != 5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if !input.SortAsc {
				t.Fatalf("expected ascending sort")
			}
			return ports.NewReportPage(nil, 0, input.Page, input.Size), nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newTestContext(e, http.MethodGet, "/api/reports?status=NEW&page=2&size=5&sortDirection=ASC", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_UpdateStatus_PassesActor(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubReportService{
		updateStatusFn: func(_ context.Context, id string, input ports.UpdateStatusInput) (*domain.Report, error) {
			if id != "r-1" || input.Status != domain.StatusResolved {
				t.Fatalf("unexpected args: %s %+v", id, input)
			}
			if input.ActorID != "mod-1" || input.ActorName != "Mod" {
				t.Fatalf("actor not propagated: %+v", input)
			}
			return &domain.Report{ID: id, Status: input.Status}, nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newTestContext(e, http.MethodPut, "/api/reports/r-1/status",
		`{"status":"RESOLVED","comment":"done"}`)
	c.SetParamNames("id")
	c.SetParamValues("r-1")
	c.Set(middleware.CtxUserID, "mod-1")
	c.Set(middleware.CtxName, "Mod")
	c.Set(middleware.CtxRole, domain.RoleModerator)

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportHandler_Nearby_Validation(t *testing.T) {
	e := echo.New()
	h := NewReportHandler(&stubReportService{})

	// Missing coordinates.
	c, _ := newTestContext(e, http.MethodGet, "/api/reports/nearby", "")
	err := h.Nearby(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing lat, got %v", err)
	}

	// Out-of-range coordinates.
	c, _ = newTestContext(e, http.MethodGet, "/api/reports/nearby?lat=120&lng=10", "")
	var ve *ValidationError
	if err := h.Nearby(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for out-of-range lat, got %v", err)
	}

	// Negative radius.
	c, _ = newTestContext(e, http.MethodGet, "/api/reports/nearby?lat=52&lng=21&radius=-1", "")
	err = h.Nearby(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative radius, got %v", err)
	}
}

func TestReportHandler_Nearby_DefaultRadius(t *testing.T) {
	e := echo.New()
	stub := &stubReportService{
		nearbyFn: func(_ context.Context, input ports.NearbyInput) (*ports.ReportPage, error) {
			if input.RadiusKm != 5.0 {
				t.Fatalf("expected default radius 5.0, got %f", input.RadiusKm)
			}
			return ports.NewReportPage(nil, 0, 0, 20), nil
		},
	}
	h := NewReportHandler(stub)

	c, rec := newTestContext(e, http.MethodGet, "/api/reports/nearby?lat=52.23&lng=21.01", "")
	if err := h.Nearby(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
