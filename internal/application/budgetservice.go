package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ericfisherdev/budgetvault/internal/domain/model"
	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

// Validation errors returned before anything is encrypted or stored.
var (
	// ErrEmptyName indicates a blank budget name or item description.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrInvalidAmount indicates the amount is not a decimal number.
	// Amounts are validated on the way in, so every stored amount token
	// decrypts to parseable text unless the row was corrupted in storage.
	ErrInvalidAmount = errors.New("amount must be a decimal number")
)

// BudgetService orchestrates the encrypt-on-write / decrypt-on-read flow
// between the stores and the field cipher. Plaintext never crosses the
// store boundary; tokens never cross the caller boundary.
type BudgetService struct {
	budgets driven.BudgetStore
	items   driven.ItemStore
	cipher  driven.FieldCipher
}

// NewBudgetService creates a BudgetService with the required dependencies.
func NewBudgetService(budgets driven.BudgetStore, items driven.ItemStore, cipher driven.FieldCipher) *BudgetService {
	return &BudgetService{
		budgets: budgets,
		items:   items,
		cipher:  cipher,
	}
}

// CreateBudget creates a budget with the given name.
func (s *BudgetService) CreateBudget(ctx context.Context, name string) (model.Budget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Budget{}, ErrEmptyName
	}
	return s.budgets.Create(ctx, name)
}

// ListBudgets returns all budgets.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	return s.budgets.List(ctx)
}

// RenameBudget changes a budget's name.
func (s *BudgetService) RenameBudget(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	return s.budgets.Rename(ctx, id, newName)
}

// DeleteBudget removes a budget and, by cascade, all of its items.
func (s *BudgetService) DeleteBudget(ctx context.Context, id int64) error {
	return s.budgets.Delete(ctx, id)
}

// AddItem validates, encrypts, and stores one budget line. The amount must
// parse as a decimal; the original text (trimmed) is what gets encrypted,
// so it round-trips exactly as entered.
func (s *BudgetService) AddItem(ctx context.Context, budgetID int64, desc, amount string) (int64, error) {
	descToken, amountToken, err := s.sealItem(ctx, budgetID, desc, amount)
	if err != nil {
		return 0, err
	}

	return s.items.Add(ctx, model.Item{
		BudgetID:    budgetID,
		Description: descToken,
		Amount:      amountToken,
	})
}

// UpdateItem validates and encrypts replacement values for an existing item.
// Both tokens are replaced wholesale.
func (s *BudgetService) UpdateItem(ctx context.Context, budgetID, itemID int64, desc, amount string) error {
	descToken, amountToken, err := s.sealItem(ctx, budgetID, desc, amount)
	if err != nil {
		return err
	}
	return s.items.Update(ctx, itemID, descToken, amountToken)
}

// DeleteItem removes one budget line.
func (s *BudgetService) DeleteItem(ctx context.Context, itemID int64) error {
	return s.items.Delete(ctx, itemID)
}

// Summary decrypts every item of a budget and computes the total. A field
// that fails to decrypt marks only its own row; the listing always succeeds
// for the remaining rows. The total sums the rows whose amount decrypted
// and parsed; flagged rows are excluded, never silently dropped.
func (s *BudgetService) Summary(ctx context.Context, budgetID int64) (model.BudgetSummary, error) {
	budget, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return model.BudgetSummary{}, err
	}
	if budget == nil {
		return model.BudgetSummary{}, fmt.Errorf("budget %d: %w", budgetID, driven.ErrBudgetNotFound)
	}

	items, err := s.items.ListByBudget(ctx, budgetID)
	if err != nil {
		return model.BudgetSummary{}, err
	}

	summary := model.BudgetSummary{Budget: *budget}
	for _, item := range items {
		view := model.ItemView{
			ID:          item.ID,
			Description: s.openField(item.Description),
			Amount:      s.openField(item.Amount),
		}

		if view.Amount.OK() {
			if value, err := decimal.NewFromString(strings.TrimSpace(view.Amount.Plaintext)); err == nil {
				view.Value = value
				view.ValueOK = true
				summary.Total = summary.Total.Add(value)
			}
		}

		summary.Items = append(summary.Items, view)
	}

	return summary, nil
}

// sealItem validates the inputs against the budget and encrypts both fields.
func (s *BudgetService) sealItem(ctx context.Context, budgetID int64, desc, amount string) (descToken, amountToken string, err error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", "", ErrEmptyName
	}
	amount = strings.TrimSpace(amount)
	if _, err := decimal.NewFromString(amount); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	budget, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return "", "", err
	}
	if budget == nil {
		return "", "", fmt.Errorf("budget %d: %w", budgetID, driven.ErrBudgetNotFound)
	}

	descToken, err = s.cipher.Encrypt(desc)
	if err != nil {
		return "", "", fmt.Errorf("encrypt description: %w", err)
	}
	amountToken, err = s.cipher.Encrypt(amount)
	if err != nil {
		return "", "", fmt.Errorf("encrypt amount: %w", err)
	}

	return descToken, amountToken, nil
}

func (s *BudgetService) openField(token string) model.Field {
	plaintext, err := s.cipher.Decrypt(token)
	if err != nil {
		return model.Field{Err: err}
	}
	return model.Field{Plaintext: plaintext}
}
