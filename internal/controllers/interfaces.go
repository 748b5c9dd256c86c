package controllers

import (
	"context"

	"github.com/empdesk/empdesk-console/internal/models"
)

// EmployeeAPI is the slice of the API client the controllers drive.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context, q models.ListQuery) (*models.EmployeePage, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, form models.EmployeeForm) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, form models.EmployeeForm) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// SessionStore is the slice of the session store the controllers use: a
// presence check before network calls and a clear on 401.
type SessionStore interface {
	Get() (models.Session, bool)
	Clear()
}

// ConfirmFunc asks the user to confirm a destructive action. Deletion issues
// no network call unless this returns true.
type ConfirmFunc func(prompt string) bool
