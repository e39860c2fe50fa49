package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/auth"
	"rapport-backend/internal/usecase/registry"
)

type AuthHandler struct {
	uc         *registry.Usecase
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthHandler(uc *registry.Usecase, jwtSecret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

type loginReq struct {
	EmployeeID string `json:"employee_id" validate:"required,hex32"`
	Pin        string `json:"pin"         validate:"required"`
}

// Login exchanges employee id + PIN for a session JWT. Unknown id and
// wrong PIN get the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	e, err := h.uc.VerifyCredentials(c.Request().Context(), req.EmployeeID, req.Pin)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "login rejected"})
	}
	token, exp, err := auth.NewAccessToken(h.jwtSecret, auth.Claims{
		EmployeeID: e.ID, Name: e.Name, Role: e.Role,
	}, h.sessionTTL)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"expires_at":   exp.Format(time.RFC3339),
	})
}
