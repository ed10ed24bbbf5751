package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
)

// Sentinel errors returned by BudgetStore implementations.
var (
	// ErrBudgetNotFound indicates the requested budget does not exist.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetNameTaken indicates another budget already uses the name.
	ErrBudgetNameTaken = errors.New("budget name already exists")
)

// BudgetStore defines the driven port for budget persistence.
// Create and Rename return ErrBudgetNameTaken on a name collision.
// Rename and Delete return ErrBudgetNotFound if the budget does not exist.
// Deleting a budget removes its items by cascade.
type BudgetStore interface {
	Create(ctx context.Context, name string) (model.Budget, error)
	List(ctx context.Context) ([]model.Budget, error)
	GetByID(ctx context.Context, id int64) (*model.Budget, error)
	Rename(ctx context.Context, id int64, newName string) error
	Delete(ctx context.Context, id int64) error
}
