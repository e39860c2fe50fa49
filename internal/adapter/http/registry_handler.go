package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/usecase/registry"
)

type RegistryHandler struct{ uc *registry.Usecase }

func NewRegistryHandler(uc *registry.Usecase) *RegistryHandler {
	return &RegistryHandler{uc: uc}
}

type createProjectReq struct {
	Name string `json:"name" validate:"required"`
}

func (h *RegistryHandler) CreateProject(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	p, err := h.uc.CreateProject(c.Request().Context(), req.Name)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id": p.ID, "name": p.Name, "status": p.Status,
	})
}

func (h *RegistryHandler) ListProjects(c echo.Context) error {
	ps, err := h.uc.ListProjects(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]map[string]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, map[string]string{"id": p.ID, "name": p.Name, "status": p.Status})
	}
	return c.JSON(http.StatusOK, out)
}

type createEmployeeReq struct {
	Name         string `json:"name"          validate:"required"`
	Role         string `json:"role"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Pin          string `json:"pin"`
}

func (h *RegistryHandler) CreateEmployee(c echo.Context) error {
	var req createEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	e, err := h.uc.CreateEmployee(c.Request().Context(), registry.CreateEmployeeInput{
		Name: req.Name, Role: req.Role,
		ContactEmail: req.ContactEmail, ContactPhone: req.ContactPhone,
		Pin: req.Pin,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	// pin_hash never leaves the service
	return c.JSON(http.StatusCreated, map[string]string{
		"id": e.ID, "name": e.Name, "role": e.Role, "status": e.Status,
	})
}
