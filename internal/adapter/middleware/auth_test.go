package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/auth"
)

func run(t *testing.T, mws []echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	if err := handler(c); err != nil {
		t.Fatalf("chain: %v", err)
	}
	return rec, c
}

func TestJWT_ValidToken(t *testing.T) {
	tok, _, err := auth.NewAccessToken("s3cret", auth.Claims{
		EmployeeID: "e1", Name: "Anna", Role: "admin",
	}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	rec, c := run(t, []echo.MiddlewareFunc{JWT("s3cret")}, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
	if EmployeeID(c) != "e1" || EmployeeName(c) != "Anna" || Role(c) != "admin" {
		t.Fatalf("claims not stashed: %s/%s/%s", EmployeeID(c), EmployeeName(c), Role(c))
	}
}

func TestJWT_MissingOrBadToken(t *testing.T) {
	rec, _ := run(t, []echo.MiddlewareFunc{JWT("s3cret")}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing: code=%d", rec.Code)
	}
	rec, _ = run(t, []echo.MiddlewareFunc{JWT("s3cret")}, "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage: code=%d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	adminTok, _, _ := auth.NewAccessToken("s3cret", auth.Claims{EmployeeID: "e1", Role: "admin"}, time.Hour)
	workerTok, _, _ := auth.NewAccessToken("s3cret", auth.Claims{EmployeeID: "e2", Role: "worker"}, time.Hour)

	rec, _ := run(t, []echo.MiddlewareFunc{JWT("s3cret"), RequireRole("admin")}, "Bearer "+adminTok)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: code=%d", rec.Code)
	}
	rec, _ = run(t, []echo.MiddlewareFunc{JWT("s3cret"), RequireRole("admin")}, "Bearer "+workerTok)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("worker: code=%d", rec.Code)
	}
}
