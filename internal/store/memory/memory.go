// Package memory provides the in-memory store backend. It is the default
// when no SQLite path is configured and doubles as the test double for the
// service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

type Store struct {
	mu       sync.Mutex
	fixed    []core.FixedExpense
	payments []core.Payment
	expenses []core.Expense
	budgets  []core.Budget
	users    map[string]core.User
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{users: make(map[string]core.User)}
}

func (s *Store) Close() error { return nil }

// --- fixed expense definitions ---

func (s *Store) CreateFixedExpense(_ context.Context, f core.FixedExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixed = append(s.fixed, f)
	return nil
}

func (s *Store) GetFixedExpense(_ context.Context, id, userID string) (core.FixedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.fixed {
		if f.ID == id && f.UserID == userID {
			return f, nil
		}
	}
	return core.FixedExpense{}, store.ErrNotFound
}

func (s *Store) ListFixedExpenses(_ context.Context, userID string, activeOnly bool) ([]core.FixedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.FixedExpense
	for _, f := range s.fixed {
		if f.UserID != userID {
			continue
		}
		if activeOnly && !f.Active {
			continue
		}
		out = append(out, f)
	}
	// Due day ascending; SliceStable keeps insertion order on ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDay < out[j].DueDay })
	return out, nil
}

func (s *Store) UpdateFixedExpense(_ context.Context, id, userID string, u store.FixedExpenseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fixed {
		if s.fixed[i].ID != id || s.fixed[i].UserID != userID {
			continue
		}
		if u.Description != nil {
			s.fixed[i].Description = *u.Description
		}
		if u.Category != nil {
			s.fixed[i].Category = *u.Category
		}
		if u.Amount != nil {
			s.fixed[i].Amount = *u.Amount
		}
		if u.DueDay != nil {
			s.fixed[i].DueDay = *u.DueDay
		}
		if u.Active != nil {
			s.fixed[i].Active = *u.Active
		}
		s.fixed[i].UpdatedAt = time.Now().UTC()
		return nil
	}
	return store.ErrNotFound
}

// --- settlement records ---

func (s *Store) CreatePayment(_ context.Context, p core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
	return nil
}

func (s *Store) FindPayment(_ context.Context, fixedExpenseID, userID string, month, year int) (*core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		p := s.payments[i]
		if p.FixedExpenseID == fixedExpenseID && p.UserID == userID && p.Month == month && p.Year == year {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) ListPayments(_ context.Context, userID string, month, year int) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Payment
	for _, p := range s.payments {
		if p.UserID == userID && p.Month == month && p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) UpdatePayment(_ context.Context, id, userID string, u store.PaymentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID != id || s.payments[i].UserID != userID {
			continue
		}
		if u.Amount != nil {
			s.payments[i].Amount = *u.Amount
		}
		if u.PaymentDate != nil {
			s.payments[i].PaymentDate = *u.PaymentDate
		}
		if u.Paid != nil {
			s.payments[i].Paid = *u.Paid
		}
		s.payments[i].UpdatedAt = time.Now().UTC()
		return nil
	}
	return store.ErrNotFound
}

// --- variable expenses ---

func (s *Store) CreateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) ListExpenses(_ context.Context, userID string, limit int) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListExpensesByMonth(_ context.Context, userID string, month, year int) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserID == userID && e.Date.Month() == month && e.Date.Year() == year {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out, nil
}

func (s *Store) UpdateExpense(_ context.Context, id, userID string, u store.ExpenseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID != id || s.expenses[i].UserID != userID {
			continue
		}
		if u.Description != nil {
			s.expenses[i].Description = *u.Description
		}
		if u.Category != nil {
			s.expenses[i].Category = *u.Category
		}
		if u.Amount != nil {
			s.expenses[i].Amount = *u.Amount
		}
		if u.Date != nil {
			s.expenses[i].Date = *u.Date
		}
		s.expenses[i].UpdatedAt = time.Now().UTC()
		return nil
	}
	return store.ErrNotFound
}

func (s *Store) DeleteExpense(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id && s.expenses[i].UserID == userID {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// --- budgets ---

func (s *Store) CreateBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, b)
	return nil
}

func (s *Store) FindBudget(_ context.Context, userID string, month, year int) (*core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		b := s.budgets[i]
		if b.UserID == userID && b.Month == month && b.Year == year {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateBudgetLimit(_ context.Context, id, userID string, limit core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.budgets {
		if s.budgets[i].ID == id && s.budgets[i].UserID == userID {
			s.budgets[i].Limit = limit
			s.budgets[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return store.ErrNotFound
}

// --- users ---

func (s *Store) UpsertUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, store.ErrNotFound
	}
	return u, nil
}
