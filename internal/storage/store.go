// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/spendtrack/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or is not visible
	// to the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness constraint would be violated.
	ErrDuplicate = errors.New("already exists")
	// ErrHasDependents is returned when deleting reference data that expenses
	// still point at.
	ErrHasDependents = errors.New("has existing expenses")
	// ErrInvalidReference is returned when an expense points at a category or
	// payment method that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Users stores user accounts.
type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// References stores categories and payment methods. Every method takes the
// kind of reference data it operates on.
type References interface {
	ListReferences(ctx context.Context, kind models.RefKind) ([]models.Reference, error)
	CreateReference(ctx context.Context, kind models.RefKind, ref *models.Reference) error
	// UpsertReference creates the named record unless one already exists.
	UpsertReference(ctx context.Context, kind models.RefKind, name string) (*models.Reference, error)
	UpdateReference(ctx context.Context, kind models.RefKind, ref *models.Reference) error
	// DeleteReference removes the record, failing with ErrHasDependents while
	// any expense references it.
	DeleteReference(ctx context.Context, kind models.RefKind, id string) error
}

// Expenses stores expenses. Every method is scoped to the owning user; records
// of other users behave as if they did not exist.
type Expenses interface {
	ListExpenses(ctx context.Context, userID string, filter models.ExpenseFilter) ([]models.Expense, error)
	GetExpense(ctx context.Context, userID, id string) (*models.Expense, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, userID, id string) error
}

// Store defines the full persistence surface used by the services.
type Store interface {
	Users
	References
	Expenses

	// Close releases any resources held by the store.
	Close() error
}
