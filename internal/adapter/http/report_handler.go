package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/adapter/middleware"
	domain "rapport-backend/internal/domain/report"
	"rapport-backend/internal/usecase/report"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

type createReportReq struct {
	Date         string `json:"date"          validate:"required,datetime=2006-01-02"`
	ProjectID    string `json:"project_id"    validate:"required"`
	ProjectName  string `json:"project_name"`
	EmployeeName string `json:"employee_name" validate:"required"`
	GuestInfo    string `json:"guest_info"`

	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	PauseHours    string `json:"pause_hours"`
	TravelMinutes string `json:"travel_minutes"`
	LunchFlag     string `json:"lunch_flag"`

	WorkDescription   string `json:"work_description"`
	Material          string `json:"material"`
	MaterialOnAccount string `json:"material_on_account"`
	JointColor        string `json:"joint_color"`
	JointCode         string `json:"joint_code"`

	AsbestosRelevant    string `json:"asbestos_relevant"`
	AsbestosSampleTaken string `json:"asbestos_sample_taken"`

	Hours float64 `json:"hours" validate:"gte=0"`
}

type reportResp struct {
	ID               string  `json:"id"`
	Version          int     `json:"version"`
	Status           string  `json:"status"`
	Date             string  `json:"date"`
	ProjectID        string  `json:"project_id"`
	EmployeeName     string  `json:"employee_name"`
	Hours            float64 `json:"hours"`
	CreatedAt        string  `json:"created_at"`
	ConfirmedAt      string  `json:"confirmed_at,omitempty"`
	CorrectionReason string  `json:"correction_reason,omitempty"`
}

func toReportResp(r *domain.Report) reportResp {
	return reportResp{
		ID: r.ID, Version: r.Version, Status: string(r.Status),
		Date: r.Date, ProjectID: r.ProjectID, EmployeeName: r.EmployeeName,
		Hours: r.Hours, CreatedAt: r.CreatedAt, ConfirmedAt: r.ConfirmedAt,
		CorrectionReason: r.CorrectionReason,
	}
}

func (h *ReportHandler) Create(c echo.Context) error {
	var req createReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	r, err := h.uc.Create(c.Request().Context(), report.CreateInput{
		Date: req.Date, ProjectID: req.ProjectID, ProjectName: req.ProjectName,
		EmployeeName: req.EmployeeName, GuestInfo: req.GuestInfo,
		StartTime: req.StartTime, EndTime: req.EndTime,
		PauseHours: req.PauseHours, TravelMinutes: req.TravelMinutes, LunchFlag: req.LunchFlag,
		WorkDescription: req.WorkDescription, Material: req.Material,
		MaterialOnAccount: req.MaterialOnAccount,
		JointColor:        req.JointColor, JointCode: req.JointCode,
		AsbestosRelevant: req.AsbestosRelevant, AsbestosSampleTaken: req.AsbestosSampleTaken,
		Hours:     req.Hours,
		CreatedBy: middleware.EmployeeName(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toReportResp(r))
}

func (h *ReportHandler) Confirm(c echo.Context) error {
	r, err := h.uc.Confirm(c.Request().Context(), c.Param("id"), middleware.EmployeeName(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toReportResp(r))
}

type correctReportReq struct {
	Reason string `json:"reason" validate:"required"`

	Date            *string  `json:"date"`
	StartTime       *string  `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	PauseHours      *string  `json:"pause_hours"`
	TravelMinutes   *string  `json:"travel_minutes"`
	LunchFlag       *string  `json:"lunch_flag"`
	WorkDescription *string  `json:"work_description"`
	Material        *string  `json:"material"`
	JointColor      *string  `json:"joint_color"`
	JointCode       *string  `json:"joint_code"`
	Hours           *float64 `json:"hours"`
}

func (h *ReportHandler) Correct(c echo.Context) error {
	var req correctReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Details: ToFieldErrors(err),
		})
	}
	r, err := h.uc.Correct(c.Request().Context(), c.Param("id"), report.CorrectInput{
		Reason: req.Reason,
		Actor:  middleware.EmployeeName(c),
		Date:   req.Date, StartTime: req.StartTime, EndTime: req.EndTime,
		PauseHours: req.PauseHours, TravelMinutes: req.TravelMinutes, LunchFlag: req.LunchFlag,
		WorkDescription: req.WorkDescription, Material: req.Material,
		JointColor: req.JointColor, JointCode: req.JointCode,
		Hours: req.Hours,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toReportResp(r))
}

func (h *ReportHandler) Get(c echo.Context) error {
	r, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toReportResp(r))
}

func (h *ReportHandler) History(c echo.Context) error {
	rs, err := h.uc.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]reportResp, 0, len(rs))
	for i := range rs {
		out = append(out, toReportResp(&rs[i]))
	}
	return c.JSON(http.StatusOK, out)
}
