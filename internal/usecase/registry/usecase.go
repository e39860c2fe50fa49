// Package registry manages the master-data tables: projects (with
// derived ids) and employees (with salted PIN credentials).
package registry

import (
	"context"
	"fmt"
	"log"

	domain "rapport-backend/internal/domain/registry"
	"rapport-backend/internal/domain/table"
	"rapport-backend/internal/tablestore"
	"rapport-backend/pkg/id"
	"rapport-backend/pkg/ident"
)

type Usecase struct {
	tables     *tablestore.Manager
	bcryptCost int
}

func NewUsecase(tables *tablestore.Manager, bcryptCost int) *Usecase {
	return &Usecase{tables: tables, bcryptCost: bcryptCost}
}

// CreateProject derives the project id from the name once, at creation.
func (u *Usecase) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	pid := ident.DeriveProjectID(name)
	if pid == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}
	p := domain.Project{ID: pid, Name: name, Status: "active"}
	err := u.tables.Update(ctx, table.KindProjects, func(t *table.Table) error {
		for _, row := range t.Rows {
			if row.Get("id") == pid {
				return fmt.Errorf("%w: project %s", domain.ErrDuplicate, pid)
			}
		}
		t.Append(p.Row())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (u *Usecase) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := u.tables.View(ctx, table.KindProjects, func(t *table.Table) error {
		for _, row := range t.Rows {
			out = append(out, domain.ProjectFromRow(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type CreateEmployeeInput struct {
	Name         string
	Role         string
	ContactEmail string
	ContactPhone string
	Pin          string
}

// CreateEmployee hashes the PIN with bcrypt; the plaintext never hits
// the store.
func (u *Usecase) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: employee name is required", domain.ErrValidation)
	}
	e := domain.Employee{
		ID:           id.NewID32(),
		Name:         in.Name,
		Role:         in.Role,
		Status:       "active",
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
	}
	if e.Role == "" {
		e.Role = "worker"
	}
	if in.Pin != "" {
		h, err := ident.HashPin(in.Pin, u.bcryptCost)
		if err != nil {
			return nil, err
		}
		e.PinHash = h
	}
	err := u.tables.Update(ctx, table.KindEmployees, func(t *table.Table) error {
		t.Append(e.Row())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (u *Usecase) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var out *domain.Employee
	err := u.tables.View(ctx, table.KindEmployees, func(t *table.Table) error {
		for _, row := range t.Rows {
			if row.Get("id") == employeeID {
				e := domain.EmployeeFromRow(row)
				out = &e
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyCredentials checks an employee's PIN. Unknown employee, missing
// PIN hash and wrong PIN all surface as ErrNotFound so callers cannot
// tell which part failed; the real cause is only logged.
func (u *Usecase) VerifyCredentials(ctx context.Context, employeeID, pin string) (*domain.Employee, error) {
	e, err := u.GetEmployee(ctx, employeeID)
	if err != nil {
		log.Printf("login rejected: employee %s unknown", employeeID)
		return nil, domain.ErrNotFound
	}
	if e.Status != "active" || e.PinHash == "" || !ident.VerifyPin(pin, e.PinHash) {
		log.Printf("login rejected: employee %s credential mismatch", employeeID)
		return nil, domain.ErrNotFound
	}
	return e, nil
}
