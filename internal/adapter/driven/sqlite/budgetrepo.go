package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BudgetStore = (*BudgetRepo)(nil)

// BudgetRepo is the SQLite implementation of the BudgetStore port interface.
type BudgetRepo struct {
	db *DB
}

// NewBudgetRepo creates a new BudgetRepo backed by the given DB.
func NewBudgetRepo(db *DB) *BudgetRepo {
	return &BudgetRepo{db: db}
}

// Create inserts a new budget and returns it with its assigned id.
// Returns ErrBudgetNameTaken if a budget with the same name already exists.
func (r *BudgetRepo) Create(ctx context.Context, name string) (model.Budget, error) {
	const query = `INSERT INTO budgets (name, created_at) VALUES (?, ?)`

	createdAt := time.Now().UTC()
	result, err := r.db.Writer.ExecContext(ctx, query, name, createdAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.Budget{}, fmt.Errorf("create budget %q: %w", name, driven.ErrBudgetNameTaken)
		}
		return model.Budget{}, fmt.Errorf("create budget %q: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Budget{}, fmt.Errorf("budget insert id: %w", err)
	}

	return model.Budget{ID: id, Name: name, CreatedAt: createdAt}, nil
}

// List returns all budgets ordered by id.
func (r *BudgetRepo) List(ctx context.Context) ([]model.Budget, error) {
	const query = `SELECT id, name, created_at FROM budgets ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}

	return budgets, nil
}

// GetByID retrieves a budget by id. Returns nil, nil if it does not exist.
func (r *BudgetRepo) GetByID(ctx context.Context, id int64) (*model.Budget, error) {
	const query = `SELECT id, name, created_at FROM budgets WHERE id = ?`

	budget, err := scanBudget(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget %d: %w", id, err)
	}

	return budget, nil
}

// Rename changes a budget's name. Returns ErrBudgetNameTaken on a collision
// and ErrBudgetNotFound if the budget does not exist.
func (r *BudgetRepo) Rename(ctx context.Context, id int64, newName string) error {
	const query = `UPDATE budgets SET name = ? WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, newName, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("rename budget %d: %w", id, driven.ErrBudgetNameTaken)
		}
		return fmt.Errorf("rename budget %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("rename budget %d: %w", id, driven.ErrBudgetNotFound)
	}

	return nil
}

// Delete removes a budget by id. Due to the foreign key cascade, all of the
// budget's items are also deleted. Returns ErrBudgetNotFound if it does not exist.
func (r *BudgetRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM budgets WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete budget %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete budget %d: %w", id, driven.ErrBudgetNotFound)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(s scanner) (*model.Budget, error) {
	var budget model.Budget
	var createdAt string

	err := s.Scan(&budget.ID, &budget.Name, &createdAt)
	if err != nil {
		return nil, err
	}

	budget.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &budget, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
