// Package registry holds the master-data entities: projects and employees.
package registry

import (
	"errors"

	"rapport-backend/internal/domain/table"
)

var (
	ErrNotFound   = errors.New("registry entry not found")
	ErrValidation = errors.New("registry validation failed")
	ErrDuplicate  = errors.New("registry entry already exists")
)

type Project struct {
	ID     string
	Name   string
	Status string
}

func ProjectFromRow(r table.Row) Project {
	return Project{ID: r.Get("id"), Name: r.Get("name"), Status: r.Get("status")}
}

func (p Project) Row() table.Row {
	return table.Row{"id": p.ID, "name": p.Name, "status": p.Status}
}

type Employee struct {
	ID           string
	Name         string
	Role         string
	Status       string
	ContactEmail string
	ContactPhone string
	PinHash      string
}

func EmployeeFromRow(r table.Row) Employee {
	return Employee{
		ID:           r.Get("id"),
		Name:         r.Get("name"),
		Role:         r.Get("role"),
		Status:       r.Get("status"),
		ContactEmail: r.Get("contact_email"),
		ContactPhone: r.Get("contact_phone"),
		PinHash:      r.Get("pin_hash"),
	}
}

func (e Employee) Row() table.Row {
	return table.Row{
		"id":            e.ID,
		"name":          e.Name,
		"role":          e.Role,
		"status":        e.Status,
		"contact_email": e.ContactEmail,
		"contact_phone": e.ContactPhone,
		"pin_hash":      e.PinHash,
	}
}
