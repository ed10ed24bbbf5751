package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
)

// ErrItemNotFound indicates the requested item does not exist.
var ErrItemNotFound = errors.New("item not found")

// ItemStore defines the driven port for item persistence. Description and
// amount values are opaque encrypted tokens at this boundary; implementations
// store and return them byte-for-byte.
type ItemStore interface {
	// Add inserts a new item and returns its assigned id.
	Add(ctx context.Context, item model.Item) (int64, error)

	// ListByBudget returns the items of one budget, oldest first.
	ListByBudget(ctx context.Context, budgetID int64) ([]model.Item, error)

	// Update replaces both tokens of an existing item wholesale.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, id int64, descToken, amountToken string) error

	// Delete removes an item. Returns ErrItemNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}
