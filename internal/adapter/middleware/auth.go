package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/auth"
)

const (
	ctxEmployeeID = "employee_id"
	ctxEmployee   = "employee_name"
	ctxRole       = "employee_role"
)

// JWT validates the Authorization bearer token and stashes the claims
// on the echo context.
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := auth.ParseAccessToken(secret, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set(ctxEmployeeID, claims.EmployeeID)
			c.Set(ctxEmployee, claims.Name)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRole gates a route on the role claim set by JWT.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

func EmployeeID(c echo.Context) string { s, _ := c.Get(ctxEmployeeID).(string); return s }
func EmployeeName(c echo.Context) string {
	s, _ := c.Get(ctxEmployee).(string)
	return s
}
func Role(c echo.Context) string { s, _ := c.Get(ctxRole).(string); return s }
