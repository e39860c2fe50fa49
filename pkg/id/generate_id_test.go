package id

import (
	"regexp"
	"testing"
)

var reHex = regexp.MustCompile(`^[a-f0-9]+$`)

func TestNewID32(t *testing.T) {
	got := NewID32()
	if len(got) != 32 {
		t.Fatalf("len=%d want 32", len(got))
	}
	if !reHex.MatchString(got) {
		t.Fatalf("not lowercase hex: %q", got)
	}
	if NewID32() == got {
		t.Fatal("two ids collided")
	}
}

func TestNewToken(t *testing.T) {
	got := NewToken()
	if len(got) != 64 {
		t.Fatalf("len=%d want 64", len(got))
	}
	if !reHex.MatchString(got) {
		t.Fatalf("not lowercase hex: %q", got)
	}
}
