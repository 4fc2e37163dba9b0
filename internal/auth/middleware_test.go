package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newProtectedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, TenantFromContext(c))
	}, Middleware(newTestRegistry(t)))
	return e
}

func TestMiddleware_SetsTenantOnContext(t *testing.T) {
	e := newProtectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+testCredentials["ventas"])
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Body.String(); got != "ventas" {
		t.Fatalf("expected tenant ventas, got %q", got)
	}
}

func TestMiddleware_RejectsWithoutEchoingCredential(t *testing.T) {
	e := newProtectedEcho(t)
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic tok_pagos_prod_a1b2c3d4e5f6"},
		{"unknown token", "Bearer tok_intruso_xyz"},
		{"empty token", "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
			}
			if strings.Contains(rec.Body.String(), "tok_") {
				t.Fatalf("response echoes presented credential: %s", rec.Body.String())
			}
		})
	}
}
