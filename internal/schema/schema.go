// Package schema defines the canonical column sets for the four store
// tables and the normalizer that lifts raw/legacy tabular data onto them.
package schema

import "rapport-backend/internal/domain/table"

// Canonical column order per table kind. The store round-trips these
// exactly; new columns are appended here, never reordered.
var canonicalColumns = map[table.Kind][]string{
	table.KindProjects: {
		"id", "name", "status",
	},
	table.KindEmployees: {
		"id", "name", "role", "status",
		"contact_email", "contact_phone", "pin_hash",
	},
	table.KindReports: {
		"id", "version", "status",
		"created_at", "created_by", "confirmed_at", "confirmed_by",
		"date", "project_id", "project_name", "employee_name", "guest_info",
		"start_time", "end_time", "pause_hours", "travel_minutes", "lunch_flag",
		"work_description", "material", "material_on_account",
		"joint_color", "joint_code",
		"asbestos_relevant", "asbestos_sample_taken",
		"hours", "correction_reason",
	},
	table.KindSignatures: {
		"week_id", "employee_key", "project_id",
		"signed_at", "signed_by_display", "signature_method",
		"signature_image_ref", "document_ref",
		"status", "invalidated_at", "invalidated_by", "invalidation_reason",
		"token_hash", "token_expires_at",
	},
}

// Legacy column names carried by pre-migration files, mapped to their
// canonical counterpart. Values are copied only when the canonical
// column is entirely empty across all rows.
var legacyColumns = map[table.Kind]map[string]string{
	table.KindProjects: {
		"project_name": "name",
	},
	table.KindEmployees: {
		"employee_name": "name",
		"email":         "contact_email",
		"phone":         "contact_phone",
	},
	table.KindReports: {
		"employee":    "employee_name",
		"project":     "project_name",
		"description": "work_description",
		"pause":       "pause_hours",
		"travel_time": "travel_minutes",
		"lunch":       "lunch_flag",
		"work_hours":  "hours",
	},
	table.KindSignatures: {
		"week":      "week_id",
		"employee":  "employee_key",
		"signed_by": "signed_by_display",
	},
}

// Columns returns the canonical column order for a kind.
func Columns(kind table.Kind) []string {
	return append([]string(nil), canonicalColumns[kind]...)
}
