package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

// SummaryService derives the month views. Nothing here is cached or
// persisted; every call recomputes from the stores so the numbers always
// reflect the current ledger.
type SummaryService struct {
	store store.Store
}

func NewSummaryService(s store.Store) *SummaryService {
	return &SummaryService{store: s}
}

// Month joins the active definitions against the month's settlement records.
func (s *SummaryService) Month(ctx context.Context, userID string, month, year int) (core.MonthlySummary, error) {
	if !core.ValidMonth(month) {
		return core.MonthlySummary{}, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return core.MonthlySummary{}, core.ErrInvalidYear
	}

	var (
		active   []core.FixedExpense
		payments []core.Payment
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.store.ListFixedExpenses(ctx, userID, true)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.store.ListPayments(ctx, userID, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.MonthlySummary{}, fmt.Errorf("load summary inputs: %w", err)
	}

	return core.Summarize(month, year, active, payments), nil
}

// Dashboard builds the month overview: variable spend, fixed commitments
// and position against the budget limit.
func (s *SummaryService) Dashboard(ctx context.Context, userID string, month, year int) (core.DashboardStats, error) {
	if !core.ValidMonth(month) {
		return core.DashboardStats{}, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return core.DashboardStats{}, core.ErrInvalidYear
	}

	var (
		expenses []core.Expense
		active   []core.FixedExpense
		budget   *core.Budget
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByMonth(ctx, userID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		active, err = s.store.ListFixedExpenses(ctx, userID, true)
		return err
	})
	g.Go(func() error {
		var err error
		budget, err = s.store.FindBudget(ctx, userID, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.DashboardStats{}, fmt.Errorf("load dashboard inputs: %w", err)
	}

	var limit core.Money
	if budget != nil {
		limit = budget.Limit
	}
	return core.ComputeDashboard(month, year, expenses, active, limit), nil
}
