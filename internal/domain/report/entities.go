package report

import (
	"strconv"

	"rapport-backend/internal/domain/table"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
)

// Report is one employee/day/project work entry. The ID is the lineage
// key assigned at creation; corrections append a new row with the same
// ID and version+1, so a physical row is keyed by (ID, Version) and the
// current version is the highest one for the ID.
type Report struct {
	ID      string
	Version int
	Status  Status

	CreatedAt   string
	CreatedBy   string
	ConfirmedAt string
	ConfirmedBy string

	Date         string // YYYY-MM-DD
	ProjectID    string
	ProjectName  string
	EmployeeName string
	GuestInfo    string

	StartTime     string // HH:MM
	EndTime       string // HH:MM
	PauseHours    string
	TravelMinutes string
	LunchFlag     string

	WorkDescription   string
	Material          string
	MaterialOnAccount string
	JointColor        string
	JointCode         string

	AsbestosRelevant    string
	AsbestosSampleTaken string

	Hours            float64
	CorrectionReason string
}

// FromRow decodes a normalized Reports row. Normalization guarantees
// version and hours are parseable; fall back defensively anyway.
func FromRow(r table.Row) Report {
	v, err := strconv.Atoi(r.Get("version"))
	if err != nil || v < 1 {
		v = 1
	}
	h, err := strconv.ParseFloat(r.Get("hours"), 64)
	if err != nil || h < 0 {
		h = 0
	}
	return Report{
		ID:                  r.Get("id"),
		Version:             v,
		Status:              Status(r.Get("status")),
		CreatedAt:           r.Get("created_at"),
		CreatedBy:           r.Get("created_by"),
		ConfirmedAt:         r.Get("confirmed_at"),
		ConfirmedBy:         r.Get("confirmed_by"),
		Date:                r.Get("date"),
		ProjectID:           r.Get("project_id"),
		ProjectName:         r.Get("project_name"),
		EmployeeName:        r.Get("employee_name"),
		GuestInfo:           r.Get("guest_info"),
		StartTime:           r.Get("start_time"),
		EndTime:             r.Get("end_time"),
		PauseHours:          r.Get("pause_hours"),
		TravelMinutes:       r.Get("travel_minutes"),
		LunchFlag:           r.Get("lunch_flag"),
		WorkDescription:     r.Get("work_description"),
		Material:            r.Get("material"),
		MaterialOnAccount:   r.Get("material_on_account"),
		JointColor:          r.Get("joint_color"),
		JointCode:           r.Get("joint_code"),
		AsbestosRelevant:    r.Get("asbestos_relevant"),
		AsbestosSampleTaken: r.Get("asbestos_sample_taken"),
		Hours:               h,
		CorrectionReason:    r.Get("correction_reason"),
	}
}

// Row encodes the report back onto the canonical columns.
func (r Report) Row() table.Row {
	return table.Row{
		"id":                    r.ID,
		"version":               strconv.Itoa(r.Version),
		"status":                string(r.Status),
		"created_at":            r.CreatedAt,
		"created_by":            r.CreatedBy,
		"confirmed_at":          r.ConfirmedAt,
		"confirmed_by":          r.ConfirmedBy,
		"date":                  r.Date,
		"project_id":            r.ProjectID,
		"project_name":          r.ProjectName,
		"employee_name":         r.EmployeeName,
		"guest_info":            r.GuestInfo,
		"start_time":            r.StartTime,
		"end_time":              r.EndTime,
		"pause_hours":           r.PauseHours,
		"travel_minutes":        r.TravelMinutes,
		"lunch_flag":            r.LunchFlag,
		"work_description":      r.WorkDescription,
		"material":              r.Material,
		"material_on_account":   r.MaterialOnAccount,
		"joint_color":           r.JointColor,
		"joint_code":            r.JointCode,
		"asbestos_relevant":     r.AsbestosRelevant,
		"asbestos_sample_taken": r.AsbestosSampleTaken,
		"hours":                 strconv.FormatFloat(r.Hours, 'f', -1, 64),
		"correction_reason":     r.CorrectionReason,
	}
}
