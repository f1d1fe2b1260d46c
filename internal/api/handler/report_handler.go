package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cityreporter/city-reporter-api/internal/api/middleware"
	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

// ReportHandler handles HTTP requests for report operations.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// List handles GET /api/reports.
//
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Param        page           query  int     false  "Zero-indexed page"  default(0)
// @Param        size           query  int     false  "Page size"          default(20)
// @Param        status         query  string  false  "Filter by status"
// @Param        userId         query  string  false  "Filter by owner"
// @Param        sortBy         query  string  false  "Sort field"         default(createdAt)
// @Param        sortDirection  query  string  false  "ASC or DESC"        default(DESC)
// @Success      200  {object}  reportPageResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	status, err := optionalStatus(c.QueryParam("status"))
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListReportsInput{
		Status:  status,
		UserID:  c.QueryParam("userId"),
		Page:    queryInt(c, "page", 0),
		Size:    queryInt(c, "size", 20),
		SortBy:  c.QueryParam("sortBy"),
		SortAsc: c.QueryParam("sortDirection") == "ASC",
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportPageResponse(result))
}

// Get handles GET /api/reports/:id.
//
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  reportResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	report, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponse(report))
}

// Create handles POST /api/reports.
//
// @Summary      Submit a new report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report details"
// @Success      201   {object}  reportResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.service.Create(c.Request().Context(), userID, ports.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.ReportCategory(req.Category),
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Address:     req.Address,
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReportResponse(report))
}

// UpdateStatus handles PUT /api/reports/:id/status.
//
// @Summary      Update report status
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      updateStatusRequest  true  "Target status and optional comment"
// @Success      200   {object}  reportResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reports/{id}/status [put]
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	actorID, _, err := caller(c)
	if err != nil {
		return err
	}
	actorName, _ := c.Get(middleware.CtxName).(string)

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), ports.UpdateStatusInput{
		Status:    domain.ReportStatus(req.Status),
		Comment:   req.Comment,
		ActorID:   actorID,
		ActorName: actorName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponse(report))
}

// Delete handles DELETE /api/reports/:id.
//
// @Summary      Delete a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "report deleted"})
}

// My handles GET /api/reports/my.
//
// @Summary      List the caller's reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Zero-indexed page"  default(0)
// @Param        size  query  int  false  "Page size"          default(20)
// @Success      200  {object}  reportPageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/reports/my [get]
func (h *ReportHandler) My(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListByOwner(c.Request().Context(), userID,
		queryInt(c, "page", 0), queryInt(c, "size", 20))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportPageResponse(result))
}

// Nearby handles GET /api/reports/nearby.
//
// @Summary      List reports near a point
// @Tags         reports
// @Produce      json
// @Param        lat     query  number  true   "Latitude"
// @Param        lng     query  number  true   "Longitude"
// @Param        radius  query  number  false  "Radius in km"  default(5.0)
// @Param        page    query  int     false  "Zero-indexed page"
// @Param        size    query  int     false  "Page size"
// @Success      200  {object}  reportPageResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/reports/nearby [get]
func (h *ReportHandler) Nearby(c echo.Context) error {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		return err
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		return err
	}
	if !(domain.Coordinates{Lat: lat, Lng: lng}).InRange() {
		return &ValidationError{Fields: map[string]string{
			"lat": "latitude must be within [-90,90]",
			"lng": "longitude must be within [-180,180]",
		}}
	}

	radius := 5.0
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "radius must be a positive number")
		}
	}

	result, err := h.service.Nearby(c.Request().Context(), ports.NearbyInput{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Page:     queryInt(c, "page", 0),
		Size:     queryInt(c, "size", 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportPageResponse(result))
}

// Statistics handles GET /api/reports/statistics.
//
// @Summary      Public report statistics
// @Tags         reports
// @Produce      json
// @Success      200  {object}  ports.ReportStatistics
// @Router       /api/reports/statistics [get]
func (h *ReportHandler) Statistics(c echo.Context) error {
	stats, err := h.service.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// --- query helpers ---

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func queryFloat(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return f, nil
}

func optionalStatus(raw string) (domain.ReportStatus, error) {
	if raw == "" {
		return "", nil
	}
	status := domain.ReportStatus(raw)
	if !status.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+raw)
	}
	return status, nil
}
