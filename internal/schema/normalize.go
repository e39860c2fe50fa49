package schema

import (
	"strconv"
	"strings"
	"time"

	"rapport-backend/internal/domain/table"
	"rapport-backend/pkg/ident"
)

// TimeLayout is the canonical timestamp encoding in all tables:
// ISO-8601 with seconds, always UTC.
const TimeLayout = "2006-01-02T15:04:05Z"

// Normalizer lifts raw tables onto the canonical schema. The clock is
// injectable so default-fill stays deterministic under test.
type Normalizer struct {
	Now func() time.Time
}

func New() *Normalizer { return &Normalizer{Now: time.Now} }

// Normalize is a pure transform: the input table is never mutated.
// Steps, in order: rebuild on the canonical header (absent columns read
// as null), migrate legacy columns into entirely-empty canonical ones,
// then apply kind-specific default fill. Idempotent; never fails —
// malformed values degrade to safe defaults.
func (n *Normalizer) Normalize(kind table.Kind, in *table.Table) *table.Table {
	cols := canonicalColumns[kind]
	out := table.New(cols...)
	if in == nil {
		return out
	}

	// Rebuild rows on the canonical header. Legacy cells are kept aside
	// for the migration step; anything else off-schema is dropped.
	legacy := legacyColumns[kind]
	legacyCells := make([]table.Row, len(in.Rows))
	for i, r := range in.Rows {
		row := make(table.Row, len(cols))
		for _, c := range cols {
			if r.Has(c) {
				row[c] = r.Get(c)
			}
		}
		keep := table.Row{}
		for old := range legacy {
			if r.Has(old) {
				keep[old] = r.Get(old)
			}
		}
		legacyCells[i] = keep
		out.Append(row)
	}

	// Migrate legacy columns, but never into partially-populated
	// canonical data.
	for old, canonical := range legacy {
		if !out.ColumnEmpty(canonical) {
			continue
		}
		for i, r := range out.Rows {
			if v := legacyCells[i].Get(old); v != "" {
				r[canonical] = v
			}
		}
	}

	n.fillDefaults(kind, out)
	return out
}

func (n *Normalizer) fillDefaults(kind table.Kind, t *table.Table) {
	switch kind {
	case table.KindProjects:
		for _, r := range t.Rows {
			if !r.Has("id") {
				if pid := ident.DeriveProjectID(r.Get("name")); pid != "" {
					r["id"] = pid
				}
			}
			if !r.Has("status") {
				r["status"] = "active"
			}
		}
	case table.KindEmployees:
		for _, r := range t.Rows {
			if !r.Has("status") {
				r["status"] = "active"
			}
			if !r.Has("role") {
				r["role"] = "worker"
			}
		}
	case table.KindReports:
		for _, r := range t.Rows {
			if !r.Has("version") {
				r["version"] = "1"
			}
			if !r.Has("status") {
				r["status"] = "DRAFT"
			}
			if !r.Has("created_at") {
				r["created_at"] = n.Now().UTC().Format(TimeLayout)
			}
			r["hours"] = CoerceHours(r.Get("hours"))
		}
	case table.KindSignatures:
		for _, r := range t.Rows {
			if !r.Has("status") {
				r["status"] = "ACTIVE"
			}
		}
	}
}

// CoerceHours parses a decimal-hours cell, accepting a comma as the
// decimal separator. Malformed or negative input degrades to "0".
func CoerceHours(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
