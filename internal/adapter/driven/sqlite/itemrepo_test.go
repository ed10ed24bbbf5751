package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

func TestItemRepo_AddAndList(t *testing.T) {
	db := setupTestDB(t)
	budgets := NewBudgetRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	budget, err := budgets.Create(ctx, "Groceries")
	require.NoError(t, err)

	// Tokens are opaque at this layer; any string must round-trip untouched.
	id1, err := items.Add(ctx, model.Item{BudgetID: budget.ID, Description: "desc-token-1", Amount: "amt-token-1"})
	require.NoError(t, err)
	id2, err := items.Add(ctx, model.Item{BudgetID: budget.ID, Description: "desc-token-2", Amount: "amt-token-2"})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := items.ListByBudget(ctx, budget.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "desc-token-1", got[0].Description)
	assert.Equal(t, "amt-token-1", got[0].Amount)
	assert.Equal(t, budget.ID, got[0].BudgetID)
	assert.Equal(t, "desc-token-2", got[1].Description)
}

func TestItemRepo_ListEmptyBudget(t *testing.T) {
	db := setupTestDB(t)
	budgets := NewBudgetRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	budget, err := budgets.Create(ctx, "Empty")
	require.NoError(t, err)

	got, err := items.ListByBudget(ctx, budget.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItemRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	budgets := NewBudgetRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	budget, err := budgets.Create(ctx, "Groceries")
	require.NoError(t, err)

	id, err := items.Add(ctx, model.Item{BudgetID: budget.ID, Description: "old-desc", Amount: "old-amt"})
	require.NoError(t, err)

	require.NoError(t, items.Update(ctx, id, "new-desc", "new-amt"))

	got, err := items.ListByBudget(ctx, budget.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new-desc", got[0].Description)
	assert.Equal(t, "new-amt", got[0].Amount)
}

func TestItemRepo_UpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)

	err := items.Update(context.Background(), 9999, "d", "a")
	assert.ErrorIs(t, err, driven.ErrItemNotFound)
}

func TestItemRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	budgets := NewBudgetRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	budget, err := budgets.Create(ctx, "Groceries")
	require.NoError(t, err)

	id, err := items.Add(ctx, model.Item{BudgetID: budget.ID, Description: "d", Amount: "a"})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, id))

	got, err := items.ListByBudget(ctx, budget.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItemRepo_DeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	items := NewItemRepo(db)

	err := items.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, driven.ErrItemNotFound)
}
