package ident

import (
	"strings"
	"testing"
	"time"
)

func TestDeriveProjectID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"  Site A  ", "Site_A"},
		{"Hauptstrasse 12 West", "Hauptstrasse_12_West"},
		{"", ""},
		{"   ", ""},
		{strings.Repeat("x", 80), strings.Repeat("x", 64)},
	}
	for _, c := range cases {
		if got := DeriveProjectID(c.name); got != c.want {
			t.Fatalf("DeriveProjectID(%q)=%q want %q", c.name, got, c.want)
		}
	}
}

func TestWeekID_ISOBoundaries(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-W01"}, // Monday of ISO week 1
		{"2023-01-01", "2022-W52"}, // Sunday, still prior ISO year
		{"2021-01-01", "2020-W53"}, // 2020 had 53 ISO weeks
		{"2024-12-30", "2025-W01"}, // Monday already in next ISO year
		{"2024-06-15", "2024-W24"},
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekID(d); got != c.want {
			t.Fatalf("WeekID(%s)=%s want %s", c.date, got, c.want)
		}
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("tok")
	b := HashToken("tok")
	if a != b {
		t.Fatal("hash not deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("digest len=%d want 64", len(a))
	}
	if HashToken("other") == a {
		t.Fatal("different tokens hashed equal")
	}
}

func TestPinRoundTrip(t *testing.T) {
	h, err := HashPin("4711", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPin: %v", err)
	}
	if !VerifyPin("4711", h) {
		t.Fatal("correct PIN rejected")
	}
	if VerifyPin("0000", h) {
		t.Fatal("wrong PIN accepted")
	}
}

func TestVerifyPin_MalformedHash(t *testing.T) {
	if VerifyPin("4711", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash verified")
	}
	if VerifyPin("4711", "") {
		t.Fatal("empty hash verified")
	}
}
