// Package auth issues and verifies the HS256 session tokens handed out
// after a successful PIN login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

type Claims struct {
	EmployeeID string
	Name       string
	Role       string
}

// NewAccessToken signs an HS256 JWT with sub/name/role claims and the
// given TTL. Returns the serialized token and its expiry.
func NewAccessToken(secret string, c Claims, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().UTC().Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  c.EmployeeID,
		"name": c.Name,
		"role": c.Role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken verifies the signature and expiry and returns the
// embedded claims.
func ParseAccessToken(secret, token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	name, _ := mc["name"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{EmployeeID: sub, Name: name, Role: role}, nil
}
