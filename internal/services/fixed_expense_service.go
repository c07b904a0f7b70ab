// Package services holds the use-case layer between HTTP and the stores.
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

// FixedExpenseInput is what a client supplies to create a definition.
type FixedExpenseInput struct {
	Description string
	Category    core.Category
	Amount      core.Money
	DueDay      int
}

// FixedExpenseUpdateInput is a partial update; nil fields stay as they are.
type FixedExpenseUpdateInput struct {
	Description *string
	Category    *core.Category
	Amount      *core.Money
	DueDay      *int
	Active      *bool
}

// DueProjection pairs a definition with its next calendar due date.
type DueProjection struct {
	FixedExpense core.FixedExpense
	NextDue      time.Time
	DaysLeft     int
}

// FixedExpenseService manages the recurring bill definitions.
type FixedExpenseService struct {
	store store.FixedExpenseStore
	now   func() time.Time
}

func NewFixedExpenseService(s store.FixedExpenseStore) *FixedExpenseService {
	return &FixedExpenseService{store: s, now: time.Now}
}

func (s *FixedExpenseService) Create(ctx context.Context, userID string, in FixedExpenseInput) (core.FixedExpense, error) {
	now := s.now().UTC()
	f := core.FixedExpense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		DueDay:      in.DueDay,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := f.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	if err := s.store.CreateFixedExpense(ctx, f); err != nil {
		return core.FixedExpense{}, fmt.Errorf("create fixed expense: %w", err)
	}
	return f, nil
}

func (s *FixedExpenseService) Get(ctx context.Context, userID, id string) (core.FixedExpense, error) {
	return s.store.GetFixedExpense(ctx, id, userID)
}

// List returns the user's definitions sorted by due day.
func (s *FixedExpenseService) List(ctx context.Context, userID string, activeOnly bool) ([]core.FixedExpense, error) {
	return s.store.ListFixedExpenses(ctx, userID, activeOnly)
}

func (s *FixedExpenseService) Update(ctx context.Context, userID, id string, in FixedExpenseUpdateInput) (core.FixedExpense, error) {
	current, err := s.store.GetFixedExpense(ctx, id, userID)
	if err != nil {
		return core.FixedExpense{}, err
	}

	// Validate the merged result before touching the store.
	merged := current
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.Category != nil {
		merged.Category = *in.Category
	}
	if in.Amount != nil {
		merged.Amount = *in.Amount
	}
	if in.DueDay != nil {
		merged.DueDay = *in.DueDay
	}
	if in.Active != nil {
		merged.Active = *in.Active
	}
	if err := merged.Validate(); err != nil {
		return core.FixedExpense{}, err
	}

	update := store.FixedExpenseUpdate{
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		DueDay:      in.DueDay,
		Active:      in.Active,
	}
	if err := s.store.UpdateFixedExpense(ctx, id, userID, update); err != nil {
		return core.FixedExpense{}, fmt.Errorf("update fixed expense: %w", err)
	}
	merged.UpdatedAt = s.now().UTC()
	return merged, nil
}

// Deactivate retires a definition without touching its settlement history.
// Past paid records keep counting in their months; the definition simply
// stops appearing in active lists and pending counts.
func (s *FixedExpenseService) Deactivate(ctx context.Context, userID, id string) error {
	inactive := false
	if err := s.store.UpdateFixedExpense(ctx, id, userID, store.FixedExpenseUpdate{Active: &inactive}); err != nil {
		return fmt.Errorf("deactivate fixed expense: %w", err)
	}
	return nil
}

// Upcoming projects each active definition onto its next due date,
// soonest first.
func (s *FixedExpenseService) Upcoming(ctx context.Context, userID string) ([]DueProjection, error) {
	defs, err := s.store.ListFixedExpenses(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}

	today := s.now().UTC()
	out := make([]DueProjection, 0, len(defs))
	for _, f := range defs {
		out = append(out, DueProjection{
			FixedExpense: f,
			NextDue:      core.NextDueDate(f.DueDay, today),
			DaysLeft:     core.DaysUntilDue(f.DueDay, today),
		})
	}
	// Definitions already arrive ordered by due day; order by actual
	// proximity instead, since a due day earlier in the month may have
	// rolled to the next month.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDue.Before(out[j].NextDue)
	})
	return out, nil
}
