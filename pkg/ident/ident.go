// Package ident holds the deterministic identity and credential helpers:
// project-id derivation, ISO week bucketing, token hashing and PIN hashing.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const maxProjectIDLen = 64

// DeriveProjectID derives a stable id from a project name: trimmed,
// internal spaces replaced with underscores, capped at 64 chars.
// Empty names yield an empty id (caller decides how to fail).
// The id is derived once at creation time and never recomputed.
func DeriveProjectID(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) > maxProjectIDLen {
		s = s[:maxProjectIDLen]
	}
	return s
}

// WeekID returns the ISO-8601 week bucket for a date, formatted
// "YYYY-Www" (e.g. "2024-W01"). The ISO year can differ from the
// calendar year at year boundaries.
func WeekID(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// HashToken returns the SHA-256 hex digest of a raw bearer token.
// Stored in place of the token so a leaked table cannot be replayed.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Fingerprint returns the tamper-evidence digest embedded in rendered
// weekly documents: SHA-256 over week id, employee display name and the
// serialized report rows.
func Fingerprint(weekID, employeeDisplay string, serializedRows []byte) string {
	h := sha256.New()
	h.Write([]byte(weekID))
	h.Write([]byte{0})
	h.Write([]byte(employeeDisplay))
	h.Write([]byte{0})
	h.Write(serializedRows)
	return hex.EncodeToString(h.Sum(nil))
}

// HashPin returns a bcrypt hash of the plaintext PIN using the given cost.
func HashPin(pin string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPin compares a plaintext PIN against a stored bcrypt hash.
// A malformed stored hash is a mismatch, never a panic.
func VerifyPin(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
