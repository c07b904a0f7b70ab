// Package store defines the persistence ports the services are written
// against. The document-store access pattern is deliberately narrow:
// per-user queries, point create/update, and find-by-natural-key so the
// services can emulate compound-key upserts with find-then-create-or-update.
package store

import (
	"context"
	"errors"

	"github.com/PatricioAlv/adminGastos/internal/core"
)

// ErrNotFound is returned for point lookups and updates against ids that
// do not exist (or belong to another user). Absence of a settlement record
// for a natural key is NOT an error: FindPayment returns nil instead.
var ErrNotFound = errors.New("not found")

// FixedExpenseUpdate is a partial update; nil fields are left untouched.
type FixedExpenseUpdate struct {
	Description *string
	Category    *core.Category
	Amount      *core.Money
	DueDay      *int
	Active      *bool
}

// PaymentUpdate is a partial update for a settlement record.
type PaymentUpdate struct {
	Amount      *core.Money
	PaymentDate *core.Date
	Paid        *bool
}

// ExpenseUpdate is a partial update for a variable expense.
type ExpenseUpdate struct {
	Description *string
	Category    *core.Category
	Amount      *core.Money
	Date        *core.Date
}

type FixedExpenseStore interface {
	CreateFixedExpense(ctx context.Context, f core.FixedExpense) error
	GetFixedExpense(ctx context.Context, id, userID string) (core.FixedExpense, error)
	// ListFixedExpenses returns the user's definitions ordered by due day
	// ascending, insertion order on ties. activeOnly filters to Active=true.
	ListFixedExpenses(ctx context.Context, userID string, activeOnly bool) ([]core.FixedExpense, error)
	UpdateFixedExpense(ctx context.Context, id, userID string, u FixedExpenseUpdate) error
}

type PaymentStore interface {
	CreatePayment(ctx context.Context, p core.Payment) error
	// FindPayment looks up the record for a natural key; nil means absent.
	FindPayment(ctx context.Context, fixedExpenseID, userID string, month, year int) (*core.Payment, error)
	ListPayments(ctx context.Context, userID string, month, year int) ([]core.Payment, error)
	UpdatePayment(ctx context.Context, id, userID string, u PaymentUpdate) error
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.Expense) error
	// ListExpenses returns the user's expenses newest first, capped at limit
	// (0 means no cap).
	ListExpenses(ctx context.Context, userID string, limit int) ([]core.Expense, error)
	ListExpensesByMonth(ctx context.Context, userID string, month, year int) ([]core.Expense, error)
	UpdateExpense(ctx context.Context, id, userID string, u ExpenseUpdate) error
	DeleteExpense(ctx context.Context, id, userID string) error
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, b core.Budget) error
	// FindBudget looks up the budget for (user, month, year); nil means absent.
	FindBudget(ctx context.Context, userID string, month, year int) (*core.Budget, error)
	UpdateBudgetLimit(ctx context.Context, id, userID string, limit core.Money) error
}

type UserStore interface {
	UpsertUser(ctx context.Context, u core.User) error
	GetUser(ctx context.Context, id string) (core.User, error)
}

// Store is the full persistence surface a backend must provide.
type Store interface {
	FixedExpenseStore
	PaymentStore
	ExpenseStore
	BudgetStore
	UserStore
	Close() error
}
