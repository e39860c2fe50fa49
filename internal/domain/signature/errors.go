package signature

import "errors"

var (
	ErrNotFound     = errors.New("signature not found")
	ErrTokenInvalid = errors.New("signing token invalid")
	ErrTokenExpired = errors.New("signing token expired")
	ErrValidation   = errors.New("signature validation failed")
)
