package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cityreporter/city-reporter-api/internal/api/handler"
	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

func run(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrReportNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrAccountInactive, http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		code, body := run(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if body["message"] == "" {
			t.Fatalf("%v: expected a message", tc.err)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update status"), domain.ErrReportNotFound)
	code, _ := run(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped sentinel, got %d", code)
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	code, body := run(t, &handler.ValidationError{
		Fields: map[string]string{"email": "email must be a valid email"},
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	details, ok := body["details"].(map[string]any)
	if !ok || details["email"] == "" {
		t.Fatalf("expected field details, got %+v", body)
	}
}

func TestHTTPErrorHandler_EchoErrorKeepsCode(t *testing.T) {
	code, body := run(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", code)
	}
	if body["message"] != "short and stout" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestHTTPErrorHandler_UnknownErrorHidesCause(t *testing.T) {
	code, body := run(t, errors.New("dsn user=root password=hunter2"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "internal server error" {
		t.Fatalf("internal cause leaked: %v", body["message"])
	}
}
