package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainRegistry "rapport-backend/internal/domain/registry"
	domainReport "rapport-backend/internal/domain/report"
	domainSig "rapport-backend/internal/domain/signature"
	domainStore "rapport-backend/internal/domain/store"
)

// writeDomainError maps the error taxonomy onto HTTP statuses.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainReport.ErrNotFound),
		errors.Is(err, domainSig.ErrNotFound),
		errors.Is(err, domainRegistry.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domainSig.ErrTokenInvalid),
		errors.Is(err, domainSig.ErrTokenExpired):
		// both read as unauthorized; the distinction stays server-side
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "token rejected"})
	case errors.Is(err, domainReport.ErrInvalidTransition),
		errors.Is(err, domainReport.ErrSignatureActive),
		errors.Is(err, domainRegistry.ErrDuplicate):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainReport.ErrValidation),
		errors.Is(err, domainSig.ErrValidation),
		errors.Is(err, domainRegistry.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainStore.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
