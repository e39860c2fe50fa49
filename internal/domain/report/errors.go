package report

import "errors"

var (
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid report transition")
	ErrValidation        = errors.New("report validation failed")
	// ErrSignatureActive rejects a correction while an ACTIVE weekly
	// signature still covers the report's week bucket.
	ErrSignatureActive = errors.New("report covered by active signature")
)
