package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/adapter/middleware"
	domain "rapport-backend/internal/domain/signature"
	"rapport-backend/internal/usecase/signature"
)

type SignatureHandler struct {
	uc       *signature.Usecase
	tokenTTL time.Duration
}

func NewSignatureHandler(uc *signature.Usecase, tokenTTL time.Duration) *SignatureHandler {
	return &SignatureHandler{uc: uc, tokenTTL: tokenTTL}
}

type issueTokenReq struct {
	WeekID      string `json:"week_id"      validate:"required,weekid"`
	EmployeeKey string `json:"employee_key" validate:"required"`
	ProjectID   string `json:"project_id"   validate:"required"`
}

// IssueToken returns the plaintext signing token exactly once; only its
// hash is stored.
func (h *SignatureHandler) IssueToken(c echo.Context) error {
	var req issueTokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	token, err := h.uc.IssueToken(c.Request().Context(), domain.Key{
		WeekID: req.WeekID, EmployeeKey: req.EmployeeKey, ProjectID: req.ProjectID,
	}, h.tokenTTL)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"token": token})
}

type signReq struct {
	Token           string `json:"token"            validate:"required"`
	SignatureMethod string `json:"signature_method" validate:"required"`
	SignatureImage  string `json:"signature_image"` // base64, optional
}

type signatureResp struct {
	WeekID             string `json:"week_id"`
	EmployeeKey        string `json:"employee_key"`
	ProjectID          string `json:"project_id"`
	Status             string `json:"status"`
	SignedAt           string `json:"signed_at,omitempty"`
	SignedByDisplay    string `json:"signed_by_display,omitempty"`
	SignatureMethod    string `json:"signature_method,omitempty"`
	DocumentRef        string `json:"document_ref,omitempty"`
	InvalidatedAt      string `json:"invalidated_at,omitempty"`
	InvalidationReason string `json:"invalidation_reason,omitempty"`
}

func toSignatureResp(s *domain.Signature) signatureResp {
	return signatureResp{
		WeekID: s.WeekID, EmployeeKey: s.EmployeeKey, ProjectID: s.ProjectID,
		Status: string(s.Status), SignedAt: s.SignedAt,
		SignedByDisplay: s.SignedByDisplay, SignatureMethod: s.SignatureMethod,
		DocumentRef:   s.DocumentRef,
		InvalidatedAt: s.InvalidatedAt, InvalidationReason: s.InvalidationReason,
	}
}

// Sign is the only token-authorized route; no session required.
func (h *SignatureHandler) Sign(c echo.Context) error {
	var req signReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	var image []byte
	if req.SignatureImage != "" {
		var err error
		image, err = base64.StdEncoding.DecodeString(req.SignatureImage)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "signature_image must be base64"})
		}
	}
	s, err := h.uc.Sign(c.Request().Context(), signature.SignInput{
		Token:           req.Token,
		SignatureMethod: req.SignatureMethod,
		SignatureImage:  image,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSignatureResp(s))
}

type invalidateReq struct {
	WeekID      string `json:"week_id"      validate:"required,weekid"`
	EmployeeKey string `json:"employee_key" validate:"required"`
	ProjectID   string `json:"project_id"   validate:"required"`
	Reason      string `json:"reason"       validate:"required"`
}

func (h *SignatureHandler) Invalidate(c echo.Context) error {
	var req invalidateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	err := h.uc.Invalidate(c.Request().Context(), domain.Key{
		WeekID: req.WeekID, EmployeeKey: req.EmployeeKey, ProjectID: req.ProjectID,
	}, req.Reason, middleware.EmployeeName(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SignatureHandler) ListWeek(c echo.Context) error {
	sigs, err := h.uc.ListWeek(c.Request().Context(), c.Param("week_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]signatureResp, 0, len(sigs))
	for i := range sigs {
		out = append(out, toSignatureResp(&sigs[i]))
	}
	return c.JSON(http.StatusOK, out)
}
