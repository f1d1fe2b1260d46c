package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubLimiter struct {
	allowed    bool
	retryAfter int64
	err        error
}

func (l *stubLimiter) Allow(context.Context, string) (bool, int64, error) {
	return l.allowed, l.retryAfter, l.err
}

func limiterContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserID, "u-1")
	return c, rec
}

func TestLimitSubmissions_UnderLimit(t *testing.T) {
	e := echo.New()
	c, rec := limiterContext(e)

	called := false
	handler := LimitSubmissions(&stubLimiter{allowed: true})(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestLimitSubmissions_OverLimit(t *testing.T) {
	e := echo.New()
	c, rec := limiterContext(e)

	handler := LimitSubmissions(&stubLimiter{allowed: false, retryAfter: 3600})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestLimitSubmissions_LimiterFailureLetsThrough(t *testing.T) {
	e := echo.New()
	c, rec := limiterContext(e)

	handler := LimitSubmissions(&stubLimiter{err: errors.New("redis down")})(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected limiter failure to pass through, got %d", rec.Code)
	}
}
