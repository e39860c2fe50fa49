package auth

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	in := Claims{EmployeeID: "e1", Name: "Anna", Role: "admin"}
	tok, exp, err := NewAccessToken("secret", in, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("exp in the past: %v", exp)
	}
	got, err := ParseAccessToken("secret", tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if *got != in {
		t.Fatalf("claims=%+v want %+v", got, in)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	tok, _, err := NewAccessToken("secret", Claims{EmployeeID: "e1"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAccessToken("other", tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v", err)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	tok, _, err := NewAccessToken("secret", Claims{EmployeeID: "e1"}, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAccessToken("secret", tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v", err)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	if _, err := ParseAccessToken("secret", "not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v", err)
	}
}
