package registry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "rapport-backend/internal/domain/registry"
	"rapport-backend/internal/schema"
	"rapport-backend/internal/tablestore"
	"rapport-backend/internal/testutil/storemock"
)

func newTestUsecase(t *testing.T) (*Usecase, *storemock.Store) {
	t.Helper()
	s := storemock.New()
	n := &schema.Normalizer{Now: func() time.Time {
		return time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	}}
	return NewUsecase(tablestore.New(s, nil, n), 4), s
}

func TestCreateProject_DerivesID(t *testing.T) {
	uc, _ := newTestUsecase(t)
	p, err := uc.CreateProject(context.Background(), "  Site A  ")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID != "Site_A" || p.Status != "active" {
		t.Fatalf("got %+v", p)
	}

	if _, err := uc.CreateProject(context.Background(), "Site A"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("duplicate err=%v", err)
	}
	if _, err := uc.CreateProject(context.Background(), "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty name err=%v", err)
	}
}

func TestCreateEmployee_NeverPersistsPlaintextPin(t *testing.T) {
	uc, s := newTestUsecase(t)
	e, err := uc.CreateEmployee(context.Background(), CreateEmployeeInput{
		Name: "Anna Muster", Pin: "4711", ContactEmail: "anna@example.com",
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if e.Role != "worker" || e.Status != "active" {
		t.Fatalf("defaults: %+v", e)
	}
	stored := string(s.Get("Employees"))
	if strings.Contains(stored, "4711") {
		t.Fatal("plaintext PIN persisted")
	}
	if !strings.Contains(stored, "$2a$") {
		t.Fatalf("no bcrypt hash stored:\n%s", stored)
	}
}

func TestVerifyCredentials(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()
	e, err := uc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Anna", Pin: "4711"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := uc.VerifyCredentials(ctx, e.ID, "4711")
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if got.ID != e.ID {
		t.Fatalf("got %+v", got)
	}

	// wrong PIN and unknown employee are indistinguishable
	if _, err := uc.VerifyCredentials(ctx, e.ID, "0000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("wrong pin err=%v", err)
	}
	if _, err := uc.VerifyCredentials(ctx, "nope", "4711"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown err=%v", err)
	}
}

func TestVerifyCredentials_NoPinSet(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()
	e, err := uc.CreateEmployee(ctx, CreateEmployeeInput{Name: "Ben"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.VerifyCredentials(ctx, e.ID, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}
