package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

func TestBudgetRepo_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	groceries, err := repo.Create(ctx, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", groceries.Name)
	assert.NotZero(t, groceries.ID)

	travel, err := repo.Create(ctx, "Travel")
	require.NoError(t, err)
	assert.Greater(t, travel.ID, groceries.ID)

	budgets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "Groceries", budgets[0].Name)
	assert.Equal(t, "Travel", budgets[1].Name)
	assert.False(t, budgets[0].CreatedAt.IsZero())
}

func TestBudgetRepo_CreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Groceries")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Groceries")
	assert.ErrorIs(t, err, driven.ErrBudgetNameTaken)
}

func TestBudgetRepo_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Groceries")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Groceries", got.Name)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBudgetRepo_Rename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Groceries")
	require.NoError(t, err)

	require.NoError(t, repo.Rename(ctx, created.ID, "Food"))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Food", got.Name)
}

func TestBudgetRepo_RenameCollision(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Groceries")
	require.NoError(t, err)
	travel, err := repo.Create(ctx, "Travel")
	require.NoError(t, err)

	err = repo.Rename(ctx, travel.ID, "Groceries")
	assert.ErrorIs(t, err, driven.ErrBudgetNameTaken)
}

func TestBudgetRepo_RenameMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)

	err := repo.Rename(context.Background(), 9999, "Nope")
	assert.ErrorIs(t, err, driven.ErrBudgetNotFound)
}

func TestBudgetRepo_DeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBudgetRepo(db)

	err := repo.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, driven.ErrBudgetNotFound)
}

func TestBudgetRepo_DeleteCascadesItems(t *testing.T) {
	db := setupTestDB(t)
	budgets := NewBudgetRepo(db)
	items := NewItemRepo(db)
	ctx := context.Background()

	budget, err := budgets.Create(ctx, "Groceries")
	require.NoError(t, err)
	keep, err := budgets.Create(ctx, "Travel")
	require.NoError(t, err)

	_, err = items.Add(ctx, model.Item{BudgetID: budget.ID, Description: "tok-1", Amount: "tok-2"})
	require.NoError(t, err)
	keptID, err := items.Add(ctx, model.Item{BudgetID: keep.ID, Description: "tok-3", Amount: "tok-4"})
	require.NoError(t, err)

	require.NoError(t, budgets.Delete(ctx, budget.ID))

	gone, err := items.ListByBudget(ctx, budget.ID)
	require.NoError(t, err)
	assert.Empty(t, gone, "cascade must remove the deleted budget's items")

	kept, err := items.ListByBudget(ctx, keep.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, keptID, kept[0].ID)
}
