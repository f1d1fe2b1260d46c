package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
	"github.com/cityreporter/city-reporter-api/internal/core/ports"
)

// AdminHandler exposes user management and dashboard statistics. Every
// route is behind the ADMIN role gate.
type AdminHandler struct {
	admin   ports.AdminService
	reports ports.ReportService
}

func NewAdminHandler(admin ports.AdminService, reports ports.ReportService) *AdminHandler {
	return &AdminHandler{admin: admin, reports: reports}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CITIZEN MODERATOR ADMIN TECHNICIAN"`
}

type userPageResponse struct {
	Content       []userResponse `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	First         bool           `json:"first"`
	Last          bool           `json:"last"`
}

type dashboardStatsResponse struct {
	TotalReports    int64            `json:"totalReports"`
	TotalUsers      int64            `json:"totalUsers"`
	ReportsByStatus map[string]int64 `json:"reportsByStatus"`
	RecentReports   []reportResponse `json:"recentReports"`
}

// ListReports handles GET /api/admin/reports.
//
// @Summary      List all reports (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reportPageResponse
// @Router       /api/admin/reports [get]
func (h *AdminHandler) ListReports(c echo.Context) error {
	result, err := h.reports.List(c.Request().Context(), ports.ListReportsInput{
		Page: queryInt(c, "page", 0),
		Size: queryInt(c, "size", 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportPageResponse(result))
}

// ListReportsByStatus handles GET /api/admin/reports/status/:status.
//
// @Summary      List reports by status (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  path  string  true  "Report status"
// @Success      200  {object}  reportPageResponse
// @Router       /api/admin/reports/status/{status} [get]
func (h *AdminHandler) ListReportsByStatus(c echo.Context) error {
	status := domain.ReportStatus(c.Param("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+c.Param("status"))
	}

	result, err := h.reports.List(c.Request().Context(), ports.ListReportsInput{
		Status: status,
		Page:   queryInt(c, "page", 0),
		Size:   queryInt(c, "size", 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportPageResponse(result))
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userPageResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	result, err := h.admin.ListUsers(c.Request().Context(),
		queryInt(c, "page", 0), queryInt(c, "size", 20))
	if err != nil {
		return err
	}

	content := make([]userResponse, 0, len(result.Content))
	for _, u := range result.Content {
		content = append(content, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, userPageResponse{
		Content:       content,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Page:          result.Page,
		Size:          result.Size,
		First:         result.First,
		Last:          result.Last,
	})
}

// GetUser handles GET /api/admin/users/:id.
//
// @Summary      Get a user (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.admin.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ToggleActive handles PUT /api/admin/users/:id/toggle-active.
//
// @Summary      Toggle user activation (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/toggle-active [put]
func (h *AdminHandler) ToggleActive(c echo.Context) error {
	user, err := h.admin.ToggleActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateRole handles PUT /api/admin/users/:id/role.
//
// @Summary      Change a user's role (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "Target role"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.admin.UpdateRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DashboardStats handles GET /api/admin/dashboard/stats.
//
// @Summary      Dashboard statistics (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardStatsResponse
// @Router       /api/admin/dashboard/stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.admin.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}

	recent := make([]reportResponse, 0, len(stats.RecentReports))
	for _, r := range stats.RecentReports {
		recent = append(recent, toReportResponse(r))
	}
	return c.JSON(http.StatusOK, dashboardStatsResponse{
		TotalReports:    stats.TotalReports,
		TotalUsers:      stats.TotalUsers,
		ReportsByStatus: stats.ReportsByStatus,
		RecentReports:   recent,
	})
}
