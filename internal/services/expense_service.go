package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PatricioAlv/adminGastos/internal/amqp"
	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

// ExpenseInput is what a client supplies to record a variable expense.
type ExpenseInput struct {
	Description string
	Category    core.Category
	Amount      core.Money
	Date        core.Date
}

// ExpenseUpdateInput is a partial update; nil fields stay as they are.
type ExpenseUpdateInput struct {
	Description *string
	Category    *core.Category
	Amount      *core.Money
	Date        *core.Date
}

// ExpenseService records one-off variable expenses.
type ExpenseService struct {
	store     store.ExpenseStore
	publisher amqp.Publisher
	now       func() time.Time
}

func NewExpenseService(s store.ExpenseStore, publisher amqp.Publisher) *ExpenseService {
	if publisher == nil {
		publisher = amqp.NopPublisher{}
	}
	return &ExpenseService{store: s, publisher: publisher, now: time.Now}
}

func (s *ExpenseService) Create(ctx context.Context, userID string, in ExpenseInput) (core.Expense, error) {
	now := s.now().UTC()
	date := in.Date
	if date.IsEmpty() {
		date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	}

	e := core.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.store.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	if err := s.publisher.PublishActivity(ctx, &amqp.ActivityEvent{
		Kind:        amqp.EventExpenseRecorded,
		UserID:      userID,
		RefID:       e.ID,
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount.Decimal(),
		Month:       date.Month(),
		Year:        date.Year(),
		Timestamp:   now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish activity event",
			"kind", amqp.EventExpenseRecorded, "refId", e.ID, "error", err)
	}

	return e, nil
}

// List returns the user's expenses newest first, capped at limit (0 = all).
func (s *ExpenseService) List(ctx context.Context, userID string, limit int) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, userID, limit)
}

func (s *ExpenseService) ListMonth(ctx context.Context, userID string, month, year int) ([]core.Expense, error) {
	if !core.ValidMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return nil, core.ErrInvalidYear
	}
	return s.store.ListExpensesByMonth(ctx, userID, month, year)
}

func (s *ExpenseService) Update(ctx context.Context, userID, id string, in ExpenseUpdateInput) error {
	if in.Description != nil || in.Category != nil || in.Amount != nil || in.Date != nil {
		if in.Amount != nil {
			if err := in.Amount.Validate(); err != nil {
				return err
			}
		}
		if in.Category != nil && !in.Category.Valid() {
			return core.ErrInvalidCategory
		}
		if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
			return core.ErrEmptyDescription
		}
		if in.Description != nil && len(*in.Description) > 200 {
			return core.ErrDescriptionTooLong
		}
	}

	update := store.ExpenseUpdate{
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        in.Date,
	}
	if err := s.store.UpdateExpense(ctx, id, userID, update); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete removes a variable expense permanently. Unlike fixed expense
// definitions there is no history hanging off these, so a hard delete
// is safe.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteExpense(ctx, id, userID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
