package signature

import "rapport-backend/internal/domain/table"

type Status string

const (
	// StatusPending holds an issued-but-unconsumed signing token.
	StatusPending     Status = "PENDING"
	StatusActive      Status = "ACTIVE"
	StatusInvalidated Status = "INVALIDATED"
)

// Key identifies one weekly signature bucket. At most one ACTIVE
// signature may exist per key at any time.
type Key struct {
	WeekID      string
	EmployeeKey string
	ProjectID   string
}

func (k Key) Matches(s Signature) bool {
	return s.WeekID == k.WeekID && s.EmployeeKey == k.EmployeeKey && s.ProjectID == k.ProjectID
}

// Signature is one row of the WeeklySignatures table: either a pending
// token record or a completed (active/invalidated) signature.
type Signature struct {
	WeekID      string
	EmployeeKey string
	ProjectID   string

	SignedAt          string
	SignedByDisplay   string
	SignatureMethod   string
	SignatureImageRef string
	DocumentRef       string

	Status             Status
	InvalidatedAt      string
	InvalidatedBy      string
	InvalidationReason string

	TokenHash      string
	TokenExpiresAt string
}

func (s Signature) Key() Key {
	return Key{WeekID: s.WeekID, EmployeeKey: s.EmployeeKey, ProjectID: s.ProjectID}
}

func FromRow(r table.Row) Signature {
	return Signature{
		WeekID:             r.Get("week_id"),
		EmployeeKey:        r.Get("employee_key"),
		ProjectID:          r.Get("project_id"),
		SignedAt:           r.Get("signed_at"),
		SignedByDisplay:    r.Get("signed_by_display"),
		SignatureMethod:    r.Get("signature_method"),
		SignatureImageRef:  r.Get("signature_image_ref"),
		DocumentRef:        r.Get("document_ref"),
		Status:             Status(r.Get("status")),
		InvalidatedAt:      r.Get("invalidated_at"),
		InvalidatedBy:      r.Get("invalidated_by"),
		InvalidationReason: r.Get("invalidation_reason"),
		TokenHash:          r.Get("token_hash"),
		TokenExpiresAt:     r.Get("token_expires_at"),
	}
}

func (s Signature) Row() table.Row {
	return table.Row{
		"week_id":             s.WeekID,
		"employee_key":        s.EmployeeKey,
		"project_id":          s.ProjectID,
		"signed_at":           s.SignedAt,
		"signed_by_display":   s.SignedByDisplay,
		"signature_method":    s.SignatureMethod,
		"signature_image_ref": s.SignatureImageRef,
		"document_ref":        s.DocumentRef,
		"status":              string(s.Status),
		"invalidated_at":      s.InvalidatedAt,
		"invalidated_by":      s.InvalidatedBy,
		"invalidation_reason": s.InvalidationReason,
		"token_hash":          s.TokenHash,
		"token_expires_at":    s.TokenExpiresAt,
	}
}
