// Package signature implements the weekly signature protocol: token
// issuance, token-authorized signing with document rendering, and
// signature invalidation.
package signature

import (
	"context"
	"fmt"
	"sort"
	"time"

	domainReport "rapport-backend/internal/domain/report"
	domain "rapport-backend/internal/domain/signature"
	"rapport-backend/internal/domain/table"
	"rapport-backend/internal/render"
	"rapport-backend/internal/schema"
	"rapport-backend/internal/tablestore"
	"rapport-backend/pkg/id"
	"rapport-backend/pkg/ident"
)

type Usecase struct {
	tables   *tablestore.Manager
	renderer render.Renderer
	company  string
	now      func() time.Time
}

func NewUsecase(tables *tablestore.Manager, r render.Renderer, company string) *Usecase {
	return &Usecase{tables: tables, renderer: r, company: company, now: time.Now}
}

// WithClock overrides the clock, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// IssueToken creates a pending signature record for the key holding
// only the token hash and expiry, and returns the plaintext token once.
// A prior unconsumed PENDING record for the key is replaced; an ACTIVE
// signature is left untouched and only superseded by the next signing.
func (u *Usecase) IssueToken(ctx context.Context, key domain.Key, ttl time.Duration) (string, error) {
	if key.WeekID == "" || key.EmployeeKey == "" || key.ProjectID == "" {
		return "", fmt.Errorf("%w: week_id, employee_key and project_id are required", domain.ErrValidation)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("%w: ttl must be positive", domain.ErrValidation)
	}

	token := id.NewToken()
	pending := domain.Signature{
		WeekID:         key.WeekID,
		EmployeeKey:    key.EmployeeKey,
		ProjectID:      key.ProjectID,
		Status:         domain.StatusPending,
		TokenHash:      ident.HashToken(token),
		TokenExpiresAt: u.now().UTC().Add(ttl).Format(schema.TimeLayout),
	}

	err := u.tables.Update(ctx, table.KindSignatures, func(t *table.Table) error {
		kept := t.Rows[:0]
		for _, row := range t.Rows {
			s := domain.FromRow(row)
			if s.Status == domain.StatusPending && key.Matches(s) {
				continue
			}
			kept = append(kept, row)
		}
		t.Rows = kept
		t.Append(pending.Row())
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// SignInput carries the signer's credential and presentation choices.
type SignInput struct {
	Token           string
	SignatureMethod string
	SignatureImage  []byte // optional drawn signature, stored as opaque blob
}

// Sign consumes a pending token and produces the ACTIVE signature with
// its rendered document. The WeeklySignatures table write is the single
// commit point: token consumption, supersession of the prior ACTIVE
// signature and the new record land in one write. Re-signing with an
// already-consumed token returns the existing signature unchanged.
func (u *Usecase) Sign(ctx context.Context, in SignInput) (*domain.Signature, error) {
	hash := ident.HashToken(in.Token)
	var out domain.Signature

	err := u.tables.Update(ctx, table.KindSignatures, func(t *table.Table) error {
		pendingIdx := -1
		for i, row := range t.Rows {
			s := domain.FromRow(row)
			if s.TokenHash != hash {
				continue
			}
			if s.Status == domain.StatusActive {
				// duplicate submission of a consumed token
				out = s
				return nil
			}
			if s.Status == domain.StatusPending {
				pendingIdx = i
			}
		}
		if pendingIdx < 0 {
			return domain.ErrTokenInvalid
		}
		pending := domain.FromRow(t.Rows[pendingIdx])

		exp, err := time.Parse(schema.TimeLayout, pending.TokenExpiresAt)
		if err != nil {
			return domain.ErrTokenInvalid
		}
		now := u.now().UTC()
		if now.After(exp) {
			return domain.ErrTokenExpired
		}

		key := pending.Key()
		rows, err := u.EligibleReports(ctx, key)
		if err != nil {
			return err
		}

		display := key.EmployeeKey
		serialized, err := serializeRows(rows)
		if err != nil {
			return err
		}
		fingerprint := ident.Fingerprint(key.WeekID, display, serialized)

		signedAt := now.Format(schema.TimeLayout)
		signatureText := fmt.Sprintf("Signed by %s on %s (%s)", display, signedAt, in.SignatureMethod)
		docBytes, err := u.renderer.Render(render.Document{
			CompanyName:     u.company,
			WeekID:          key.WeekID,
			EmployeeDisplay: display,
			Rows:            rows,
			SignatureText:   signatureText,
			Fingerprint:     fingerprint,
			GeneratedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("render document: %w", err)
		}

		// Opaque blobs go out before the table write so a failure here
		// leaves the token unconsumed.
		docRef := "doc-" + id.NewID32()
		if _, err := u.tables.Blobs().Write(ctx, docRef, docBytes, ""); err != nil {
			return err
		}
		imageRef := ""
		if len(in.SignatureImage) > 0 {
			imageRef = "sig-" + id.NewID32()
			if _, err := u.tables.Blobs().Write(ctx, imageRef, in.SignatureImage, ""); err != nil {
				return err
			}
		}

		// supersede the prior ACTIVE signature for the key, if any
		for i, row := range t.Rows {
			s := domain.FromRow(row)
			if s.Status == domain.StatusActive && key.Matches(s) {
				s.Status = domain.StatusInvalidated
				s.InvalidatedAt = signedAt
				s.InvalidatedBy = display
				s.InvalidationReason = "superseded"
				t.Rows[i] = s.Row()
			}
		}

		pending.Status = domain.StatusActive
		pending.SignedAt = signedAt
		pending.SignedByDisplay = display
		pending.SignatureMethod = in.SignatureMethod
		pending.SignatureImageRef = imageRef
		pending.DocumentRef = docRef
		t.Rows[pendingIdx] = pending.Row()
		out = pending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Invalidate marks the current ACTIVE signature for the key as
// INVALIDATED. It never revives report editability by itself; that
// policy stays with the caller.
func (u *Usecase) Invalidate(ctx context.Context, key domain.Key, reason, actor string) error {
	if reason == "" {
		return fmt.Errorf("%w: invalidation reason is required", domain.ErrValidation)
	}
	return u.tables.Update(ctx, table.KindSignatures, func(t *table.Table) error {
		for i, row := range t.Rows {
			s := domain.FromRow(row)
			if s.Status == domain.StatusActive && key.Matches(s) {
				s.Status = domain.StatusInvalidated
				s.InvalidatedAt = u.now().UTC().Format(schema.TimeLayout)
				s.InvalidatedBy = actor
				s.InvalidationReason = reason
				t.Rows[i] = s.Row()
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ListWeek returns every signature record for a week bucket, pending
// token records included.
func (u *Usecase) ListWeek(ctx context.Context, weekID string) ([]domain.Signature, error) {
	var out []domain.Signature
	err := u.tables.View(ctx, table.KindSignatures, func(t *table.Table) error {
		for _, row := range t.Rows {
			if row.Get("week_id") == weekID {
				out = append(out, domain.FromRow(row))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EligibleReports snapshots the reports a signature for the key covers:
// CONFIRMED, matching week/employee/project, and only the highest
// version of each lineage. Superseded versions never appear, confirmed
// or not; a lineage whose current version is an unconfirmed correction
// drops out entirely.
func (u *Usecase) EligibleReports(ctx context.Context, key domain.Key) ([]domainReport.Report, error) {
	var out []domainReport.Report
	err := u.tables.View(ctx, table.KindReports, func(t *table.Table) error {
		current := map[string]domainReport.Report{}
		for _, row := range t.Rows {
			r := domainReport.FromRow(row)
			if prev, ok := current[r.ID]; !ok || r.Version > prev.Version {
				current[r.ID] = r
			}
		}
		for _, r := range current {
			if r.Status != domainReport.StatusConfirmed {
				continue
			}
			d, err := time.Parse("2006-01-02", r.Date)
			if err != nil {
				continue
			}
			if ident.WeekID(d) != key.WeekID || r.EmployeeName != key.EmployeeKey || r.ProjectID != key.ProjectID {
				continue
			}
			out = append(out, r)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date < out[j].Date
			}
			return out[i].StartTime < out[j].StartTime
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func serializeRows(rows []domainReport.Report) ([]byte, error) {
	t := table.New(schema.Columns(table.KindReports)...)
	for _, r := range rows {
		t.Append(r.Row())
	}
	return table.EncodeCSV(t)
}
