package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityreporter/city-reporter-api/internal/api/middleware"
	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// callerID extracts the authenticated user id injected by the auth gate.
// Routes calling this sit behind RequireAuth, so a missing id means the
// middleware chain is miswired; fail with 401 rather than panic.
func callerID(c echo.Context) (string, error) {
	id, ok := c.Get(middleware.CtxUserID).(string)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// caller extracts the full identity bound by the auth gate.
func caller(c echo.Context) (id string, role domain.Role, err error) {
	id, err = callerID(c)
	if err != nil {
		return "", "", err
	}
	role, _ = c.Get(middleware.CtxRole).(domain.Role)
	return id, role, nil
}
