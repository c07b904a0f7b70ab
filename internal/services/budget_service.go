package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

// BudgetService keeps the monthly spending limits, one per (user, month, year).
type BudgetService struct {
	store store.BudgetStore
	now   func() time.Time
}

func NewBudgetService(s store.BudgetStore) *BudgetService {
	return &BudgetService{store: s, now: time.Now}
}

// SetLimit upserts the limit for a month by natural key.
func (s *BudgetService) SetLimit(ctx context.Context, userID string, month, year int, limit core.Money) (core.Budget, error) {
	candidate := core.Budget{
		UserID: userID,
		Month:  month,
		Year:   year,
		Limit:  limit,
	}
	if err := candidate.Validate(); err != nil {
		return core.Budget{}, err
	}

	existing, err := s.store.FindBudget(ctx, userID, month, year)
	if err != nil {
		return core.Budget{}, fmt.Errorf("find budget: %w", err)
	}

	now := s.now().UTC()
	if existing == nil {
		candidate.ID = uuid.NewString()
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		if err := s.store.CreateBudget(ctx, candidate); err != nil {
			return core.Budget{}, fmt.Errorf("create budget: %w", err)
		}
		return candidate, nil
	}

	if err := s.store.UpdateBudgetLimit(ctx, existing.ID, userID, limit); err != nil {
		return core.Budget{}, fmt.Errorf("update budget limit: %w", err)
	}
	candidate.ID = existing.ID
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = now
	return candidate, nil
}

// Get returns the budget for a month, nil when none was set.
func (s *BudgetService) Get(ctx context.Context, userID string, month, year int) (*core.Budget, error) {
	if !core.ValidMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return nil, core.ErrInvalidYear
	}
	return s.store.FindBudget(ctx, userID, month, year)
}
