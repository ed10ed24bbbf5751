package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ItemStore = (*ItemRepo)(nil)

// ItemRepo is the SQLite implementation of the ItemStore port interface.
// Description and amount columns hold encrypted tokens; this layer never
// decodes them.
type ItemRepo struct {
	db *DB
}

// NewItemRepo creates a new ItemRepo backed by the given DB.
func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Add inserts a new item and returns its assigned id.
func (r *ItemRepo) Add(ctx context.Context, item model.Item) (int64, error) {
	const query = `INSERT INTO items (budget_id, description, amount, created_at) VALUES (?, ?, ?, ?)`

	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		item.BudgetID, item.Description, item.Amount, createdAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("add item to budget %d: %w", item.BudgetID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("item insert id: %w", err)
	}

	return id, nil
}

// ListByBudget returns the items of one budget ordered by id.
func (r *ItemRepo) ListByBudget(ctx context.Context, budgetID int64) ([]model.Item, error) {
	const query = `SELECT id, budget_id, description, amount, created_at FROM items WHERE budget_id = ? ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list items for budget %d: %w", budgetID, err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var createdAt string
		if err := rows.Scan(&item.ID, &item.BudgetID, &item.Description, &item.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}

		item.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for item %d: %w", item.ID, err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// Update replaces both tokens of an existing item. Returns ErrItemNotFound
// if the item does not exist.
func (r *ItemRepo) Update(ctx context.Context, id int64, descToken, amountToken string) error {
	const query = `UPDATE items SET description = ?, amount = ? WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, descToken, amountToken, id)
	if err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update item %d: %w", id, driven.ErrItemNotFound)
	}

	return nil
}

// Delete removes an item by id. Returns ErrItemNotFound if it does not exist.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete item %d: %w", id, driven.ErrItemNotFound)
	}

	return nil
}
