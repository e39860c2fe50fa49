// Package report implements the report versioning state machine:
// DRAFT → CONFIRMED, with corrections appending new versions instead of
// mutating history.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	domain "rapport-backend/internal/domain/report"
	domainSig "rapport-backend/internal/domain/signature"
	"rapport-backend/internal/domain/table"
	"rapport-backend/internal/schema"
	"rapport-backend/internal/tablestore"
	"rapport-backend/pkg/id"
	"rapport-backend/pkg/ident"
)

type Usecase struct {
	tables *tablestore.Manager
	now    func() time.Time
}

func NewUsecase(tables *tablestore.Manager) *Usecase {
	return &Usecase{tables: tables, now: time.Now}
}

// WithClock overrides the clock, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

type CreateInput struct {
	Date         string
	ProjectID    string
	ProjectName  string
	EmployeeName string
	GuestInfo    string

	StartTime     string
	EndTime       string
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

	Hours     float64
	CreatedBy string
}

// Create appends a new DRAFT report at version 1.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*domain.Report, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if in.EmployeeName == "" || in.ProjectID == "" {
		return nil, fmt.Errorf("%w: employee_name and project_id are required", domain.ErrValidation)
	}
	if in.Hours < 0 {
		in.Hours = 0
	}

	r := domain.Report{
		ID:                  id.NewID32(),
		Version:             1,
		Status:              domain.StatusDraft,
		CreatedAt:           u.now().UTC().Format(schema.TimeLayout),
		CreatedBy:           in.CreatedBy,
		Date:                in.Date,
		ProjectID:           in.ProjectID,
		ProjectName:         in.ProjectName,
		EmployeeName:        in.EmployeeName,
		GuestInfo:           in.GuestInfo,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		PauseHours:          in.PauseHours,
		TravelMinutes:       in.TravelMinutes,
		LunchFlag:           in.LunchFlag,
		WorkDescription:     in.WorkDescription,
		Material:            in.Material,
		MaterialOnAccount:   in.MaterialOnAccount,
		JointColor:          in.JointColor,
		JointCode:           in.JointCode,
		AsbestosRelevant:    in.AsbestosRelevant,
		AsbestosSampleTaken: in.AsbestosSampleTaken,
		Hours:               in.Hours,
	}

	err := u.tables.Update(ctx, table.KindReports, func(t *table.Table) error {
		t.Append(r.Row())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Confirm transitions the current version DRAFT → CONFIRMED in place.
// Confirming an already-confirmed report is an invalid transition.
func (u *Usecase) Confirm(ctx context.Context, reportID, actor string) (*domain.Report, error) {
	var out domain.Report
	err := u.tables.Update(ctx, table.KindReports, func(t *table.Table) error {
		idx := currentVersionIndex(t, reportID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		r := domain.FromRow(t.Rows[idx])
		if r.Status == domain.StatusConfirmed {
			return fmt.Errorf("%w: report %s v%d already confirmed", domain.ErrInvalidTransition, r.ID, r.Version)
		}
		r.Status = domain.StatusConfirmed
		r.ConfirmedAt = u.now().UTC().Format(schema.TimeLayout)
		r.ConfirmedBy = actor
		t.Rows[idx] = r.Row()
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CorrectInput carries the mandatory reason plus optional field
// overrides; nil pointers keep the prior version's value.
type CorrectInput struct {
	Reason string
	Actor  string

	Date          *string
	GuestInfo     *string
	StartTime     *string
	EndTime       *string
	PauseHours    *string
	TravelMinutes *string
	LunchFlag     *string

	WorkDescription   *string
	Material          *string
	MaterialOnAccount *string
	JointColor        *string
	JointCode         *string

	AsbestosRelevant    *string
	AsbestosSampleTaken *string

	Hours *float64
}

// Correct appends version+1 as a new DRAFT row; the prior row is kept
// untouched for audit. Rejected while an ACTIVE weekly signature still
// covers the report's (week, employee, project) bucket — callers must
// invalidate that signature first.
func (u *Usecase) Correct(ctx context.Context, reportID string, in CorrectInput) (*domain.Report, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: correction_reason is required", domain.ErrValidation)
	}
	var out domain.Report
	err := u.tables.Update(ctx, table.KindReports, func(t *table.Table) error {
		idx := currentVersionIndex(t, reportID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		prev := domain.FromRow(t.Rows[idx])

		covered, err := u.activeSignatureCovers(ctx, prev)
		if err != nil {
			return err
		}
		if covered {
			return fmt.Errorf("%w: week %s", domain.ErrSignatureActive, ident.WeekID(mustDate(prev.Date)))
		}

		next := prev
		next.Version = prev.Version + 1
		next.Status = domain.StatusDraft
		next.CreatedAt = u.now().UTC().Format(schema.TimeLayout)
		next.CreatedBy = in.Actor
		next.ConfirmedAt = ""
		next.ConfirmedBy = ""
		next.CorrectionReason = in.Reason
		applyOverrides(&next, in)

		t.Append(next.Row())
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the current (highest) version of a report.
func (u *Usecase) Get(ctx context.Context, reportID string) (*domain.Report, error) {
	var out *domain.Report
	err := u.tables.View(ctx, table.KindReports, func(t *table.Table) error {
		idx := currentVersionIndex(t, reportID)
		if idx < 0 {
			return domain.ErrNotFound
		}
		r := domain.FromRow(t.Rows[idx])
		out = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History returns all versions of a report in ascending version order.
func (u *Usecase) History(ctx context.Context, reportID string) ([]domain.Report, error) {
	var out []domain.Report
	err := u.tables.View(ctx, table.KindReports, func(t *table.Table) error {
		for _, row := range t.Rows {
			if row.Get("id") == reportID {
				out = append(out, domain.FromRow(row))
			}
		}
		if len(out) == 0 {
			return domain.ErrNotFound
		}
		sortByVersion(out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) activeSignatureCovers(ctx context.Context, r domain.Report) (bool, error) {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		// undated report can never be inside a week bucket
		return false, nil
	}
	key := domainSig.Key{
		WeekID:      ident.WeekID(d),
		EmployeeKey: r.EmployeeName,
		ProjectID:   r.ProjectID,
	}
	covered := false
	err = u.tables.View(ctx, table.KindSignatures, func(t *table.Table) error {
		for _, row := range t.Rows {
			s := domainSig.FromRow(row)
			if s.Status == domainSig.StatusActive && key.Matches(s) {
				covered = true
				return nil
			}
		}
		return nil
	})
	return covered, err
}

func applyOverrides(r *domain.Report, in CorrectInput) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.Date, in.Date)
	set(&r.GuestInfo, in.GuestInfo)
	set(&r.StartTime, in.StartTime)
	set(&r.EndTime, in.EndTime)
	set(&r.PauseHours, in.PauseHours)
	set(&r.TravelMinutes, in.TravelMinutes)
	set(&r.LunchFlag, in.LunchFlag)
	set(&r.WorkDescription, in.WorkDescription)
	set(&r.Material, in.Material)
	set(&r.MaterialOnAccount, in.MaterialOnAccount)
	set(&r.JointColor, in.JointColor)
	set(&r.JointCode, in.JointCode)
	set(&r.AsbestosRelevant, in.AsbestosRelevant)
	set(&r.AsbestosSampleTaken, in.AsbestosSampleTaken)
	if in.Hours != nil && *in.Hours >= 0 {
		r.Hours = *in.Hours
	}
}

// currentVersionIndex finds the row holding the highest version for a
// lineage id, -1 when the id is unknown.
func currentVersionIndex(t *table.Table, reportID string) int {
	best, bestVersion := -1, 0
	for i, row := range t.Rows {
		if row.Get("id") != reportID {
			continue
		}
		if v := domain.FromRow(row).Version; v > bestVersion {
			best, bestVersion = i, v
		}
	}
	return best
}

func sortByVersion(rs []domain.Report) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Version < rs[j].Version })
}

func mustDate(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}
