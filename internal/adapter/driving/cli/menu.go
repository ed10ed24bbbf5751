// Package cli implements the interactive terminal menu, the driving adapter
// of the application. All input and output flows through injected streams so
// sessions can be scripted in tests.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ericfisherdev/budgetvault/internal/application"
	"github.com/ericfisherdev/budgetvault/internal/domain/model"
	"github.com/ericfisherdev/budgetvault/internal/domain/port/driven"
)

var (
	heading    = color.New(color.FgCyan, color.Bold)
	errMarker  = color.New(color.FgRed)
	warnMarker = color.New(color.FgYellow)
)

// Menu drives an interactive budgeting session.
type Menu struct {
	svc    *application.BudgetService
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

// New creates a Menu reading commands from in and printing to out.
func New(svc *application.BudgetService, in io.Reader, out io.Writer, logger *slog.Logger) *Menu {
	return &Menu{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run loops over the top-level menu until the user exits, input ends, or the
// context is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		fmt.Fprintln(m.out)
		heading.Fprintln(m.out, "=== Encrypted Budget Manager ===")
		fmt.Fprintln(m.out, "1. Create new budget")
		fmt.Fprintln(m.out, "2. Manage budgets")
		fmt.Fprintln(m.out, "3. Exit")

		choice, ok := m.prompt("Select option: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			m.createBudget(ctx)
		case "2":
			if ok := m.budgetsMenu(ctx); !ok {
				return nil
			}
		case "3":
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(m.out, "Unknown option.")
		}
	}
	return nil
}

func (m *Menu) createBudget(ctx context.Context) {
	name, ok := m.prompt("Enter unique budget name: ")
	if !ok {
		return
	}

	budget, err := m.svc.CreateBudget(ctx, name)
	switch {
	case errors.Is(err, driven.ErrBudgetNameTaken):
		fmt.Fprintln(m.out, "Error: budget name already exists.")
	case errors.Is(err, application.ErrEmptyName):
		fmt.Fprintln(m.out, "Error: budget name must not be empty.")
	case err != nil:
		m.logger.Error("create budget failed", "error", err)
		fmt.Fprintln(m.out, "Error: could not create budget.")
	default:
		fmt.Fprintf(m.out, "Budget %q created.\n", budget.Name)
	}
}

// budgetsMenu lists budgets and dispatches open/rename/delete commands.
// It returns false when input ended and the whole session should stop.
func (m *Menu) budgetsMenu(ctx context.Context) bool {
	for ctx.Err() == nil {
		budgets, err := m.svc.ListBudgets(ctx)
		if err != nil {
			m.logger.Error("list budgets failed", "error", err)
			fmt.Fprintln(m.out, "Error: could not list budgets.")
			return true
		}
		if len(budgets) == 0 {
			fmt.Fprintln(m.out, "No budgets found.")
			return true
		}

		fmt.Fprintln(m.out)
		heading.Fprintln(m.out, "--- Budgets ---")
		for _, b := range budgets {
			fmt.Fprintf(m.out, "  %d  %s\n", b.ID, b.Name)
		}
		fmt.Fprintln(m.out, "Actions: [O]pen <id>, [R]ename <id>, [D]elete <id>, [B]ack")

		line, ok := m.prompt("Command (e.g. 'O 1'): ")
		if !ok {
			return false
		}

		action, id, hasID := parseCommand(line)
		if action == "B" {
			return true
		}
		if !hasID {
			fmt.Fprintln(m.out, "Please provide an id (e.g. 'O 1').")
			continue
		}

		budget := findBudget(budgets, id)
		if budget == nil {
			fmt.Fprintln(m.out, "Invalid budget id.")
			continue
		}

		switch action {
		case "O":
			if ok := m.budgetScreen(ctx, *budget); !ok {
				return false
			}
		case "R":
			if ok := m.renameBudget(ctx, *budget); !ok {
				return false
			}
		case "D":
			if ok := m.deleteBudget(ctx, *budget); !ok {
				return false
			}
		default:
			fmt.Fprintln(m.out, "Unknown action.")
		}
	}
	return true
}

func (m *Menu) renameBudget(ctx context.Context, budget model.Budget) bool {
	newName, ok := m.prompt(fmt.Sprintf("Rename %q to: ", budget.Name))
	if !ok {
		return false
	}

	err := m.svc.RenameBudget(ctx, budget.ID, newName)
	switch {
	case errors.Is(err, driven.ErrBudgetNameTaken):
		fmt.Fprintln(m.out, "Error: budget name already exists.")
	case errors.Is(err, application.ErrEmptyName):
		fmt.Fprintln(m.out, "Error: budget name must not be empty.")
	case err != nil:
		m.logger.Error("rename budget failed", "budget_id", budget.ID, "error", err)
		fmt.Fprintln(m.out, "Error: could not rename budget.")
	default:
		fmt.Fprintln(m.out, "Budget renamed.")
	}
	return true
}

func (m *Menu) deleteBudget(ctx context.Context, budget model.Budget) bool {
	confirm, ok := m.prompt(fmt.Sprintf("Delete %q and ALL its items? (y/n): ", budget.Name))
	if !ok {
		return false
	}
	if !strings.EqualFold(confirm, "y") {
		return true
	}

	if err := m.svc.DeleteBudget(ctx, budget.ID); err != nil {
		m.logger.Error("delete budget failed", "budget_id", budget.ID, "error", err)
		fmt.Fprintln(m.out, "Error: could not delete budget.")
		return true
	}
	fmt.Fprintln(m.out, "Budget deleted.")
	return true
}

// budgetScreen shows the decrypted item table of one budget and handles item
// commands. Returns false when input ended.
func (m *Menu) budgetScreen(ctx context.Context, budget model.Budget) bool {
	for ctx.Err() == nil {
		summary, err := m.svc.Summary(ctx, budget.ID)
		if errors.Is(err, driven.ErrBudgetNotFound) {
			return true
		}
		if err != nil {
			m.logger.Error("load budget failed", "budget_id", budget.ID, "error", err)
			fmt.Fprintln(m.out, "Error: could not load budget.")
			return true
		}

		fmt.Fprintln(m.out)
		heading.Fprintf(m.out, ">>> %s <<<\n", summary.Budget.Name)
		m.renderItems(summary)

		fmt.Fprintln(m.out, "Actions: [A]dd, [E]dit <id>, [D]elete <id>, [B]ack")
		line, ok := m.prompt("Command: ")
		if !ok {
			return false
		}

		action, id, hasID := parseCommand(line)
		switch action {
		case "B":
			return true
		case "A":
			if ok := m.addItem(ctx, summary.Budget.ID); !ok {
				return false
			}
		case "E", "D":
			if !hasID {
				fmt.Fprintln(m.out, "Please provide an item id.")
				continue
			}
			if !hasItem(summary.Items, id) {
				fmt.Fprintln(m.out, "Item id not found in this budget.")
				continue
			}
			if action == "E" {
				if ok := m.editItem(ctx, summary.Budget.ID, id); !ok {
					return false
				}
			} else {
				if err := m.svc.DeleteItem(ctx, id); err != nil {
					m.logger.Error("delete item failed", "item_id", id, "error", err)
					fmt.Fprintln(m.out, "Error: could not delete item.")
				} else {
					fmt.Fprintln(m.out, "Item deleted.")
				}
			}
		default:
			fmt.Fprintln(m.out, "Unknown action.")
		}
	}
	return true
}

func (m *Menu) renderItems(summary model.BudgetSummary) {
	w := tabwriter.NewWriter(m.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDescription\tAmount")

	for _, item := range summary.Items {
		desc := item.Description.Plaintext
		if !item.Description.OK() {
			desc = errMarker.Sprint("[decryption error]")
		}

		var amount string
		switch {
		case !item.Amount.OK():
			amount = errMarker.Sprint("[decryption error]")
		case !item.ValueOK:
			amount = warnMarker.Sprint("[invalid amount]")
		default:
			amount = item.Value.StringFixed(2)
		}

		fmt.Fprintf(w, "%d\t%s\t%s\n", item.ID, desc, amount)
	}

	fmt.Fprintf(w, "\tTOTAL\t%s\n", summary.Total.StringFixed(2))
	if err := w.Flush(); err != nil {
		m.logger.Error("render items failed", "error", err)
	}
}

func (m *Menu) addItem(ctx context.Context, budgetID int64) bool {
	desc, ok := m.prompt("Description: ")
	if !ok {
		return false
	}
	amount, ok := m.prompt("Amount: ")
	if !ok {
		return false
	}

	_, err := m.svc.AddItem(ctx, budgetID, desc, amount)
	switch {
	case errors.Is(err, application.ErrEmptyName):
		fmt.Fprintln(m.out, "Error: description must not be empty.")
	case errors.Is(err, application.ErrInvalidAmount):
		fmt.Fprintln(m.out, "Error: amount must be a decimal number, e.g. 3.50.")
	case err != nil:
		m.logger.Error("add item failed", "budget_id", budgetID, "error", err)
		fmt.Fprintln(m.out, "Error: could not add item.")
	default:
		fmt.Fprintln(m.out, "Item added.")
	}
	return true
}

func (m *Menu) editItem(ctx context.Context, budgetID, itemID int64) bool {
	desc, ok := m.prompt("New description: ")
	if !ok {
		return false
	}
	amount, ok := m.prompt("New amount: ")
	if !ok {
		return false
	}

	err := m.svc.UpdateItem(ctx, budgetID, itemID, desc, amount)
	switch {
	case errors.Is(err, application.ErrEmptyName):
		fmt.Fprintln(m.out, "Error: description must not be empty.")
	case errors.Is(err, application.ErrInvalidAmount):
		fmt.Fprintln(m.out, "Error: amount must be a decimal number, e.g. 3.50.")
	case err != nil:
		m.logger.Error("edit item failed", "item_id", itemID, "error", err)
		fmt.Fprintln(m.out, "Error: could not edit item.")
	default:
		fmt.Fprintln(m.out, "Item updated.")
	}
	return true
}

// prompt prints a prompt and reads one trimmed line. ok is false once input
// is exhausted.
func (m *Menu) prompt(text string) (line string, ok bool) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// parseCommand splits commands like "O 1" into an upper-cased action and an
// id. hasID is false when no valid id followed the action.
func parseCommand(line string) (action string, id int64, hasID bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, false
	}

	action = strings.ToUpper(fields[0])
	if len(fields) < 2 {
		return action, 0, false
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return action, 0, false
	}
	return action, id, true
}

func findBudget(budgets []model.Budget, id int64) *model.Budget {
	for i := range budgets {
		if budgets[i].ID == id {
			return &budgets[i]
		}
	}
	return nil
}

func hasItem(items []model.ItemView, id int64) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
