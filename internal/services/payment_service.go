package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PatricioAlv/adminGastos/internal/amqp"
	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

// PaymentService keeps the per-month settlement ledger for fixed expenses.
// Each (definition, month, year) cycle has at most one record; marking paid
// or pending is an upsert against that natural key.
type PaymentService struct {
	store     store.PaymentStore
	defs      store.FixedExpenseStore
	publisher amqp.Publisher
	now       func() time.Time
}

func NewPaymentService(payments store.PaymentStore, defs store.FixedExpenseStore, publisher amqp.Publisher) *PaymentService {
	if publisher == nil {
		publisher = amqp.NopPublisher{}
	}
	return &PaymentService{
		store:     payments,
		defs:      defs,
		publisher: publisher,
		now:       time.Now,
	}
}

// MarkPaid settles one cycle. Repeat calls overwrite amount and date
// (last write wins); they never create a second record for the cycle.
func (s *PaymentService) MarkPaid(ctx context.Context, userID, fixedExpenseID string, month, year int, amount core.Money, paymentDate core.Date) (core.Payment, error) {
	if paymentDate.IsEmpty() {
		now := s.now().UTC()
		paymentDate = core.NewDate(now.Year(), int(now.Month()), now.Day())
	}

	// Validate before any store access so a bad request never costs a read.
	candidate := core.Payment{
		FixedExpenseID: fixedExpenseID,
		UserID:         userID,
		Month:          month,
		Year:           year,
		Amount:         amount,
		PaymentDate:    paymentDate,
		Paid:           true,
	}
	if err := candidate.Validate(); err != nil {
		return core.Payment{}, err
	}

	def, err := s.defs.GetFixedExpense(ctx, fixedExpenseID, userID)
	if err != nil {
		return core.Payment{}, err
	}

	existing, err := s.store.FindPayment(ctx, fixedExpenseID, userID, month, year)
	if err != nil {
		return core.Payment{}, fmt.Errorf("find payment: %w", err)
	}

	now := s.now().UTC()
	if existing == nil {
		candidate.ID = uuid.NewString()
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		if err := s.store.CreatePayment(ctx, candidate); err != nil {
			return core.Payment{}, fmt.Errorf("create payment: %w", err)
		}
	} else {
		paid := true
		update := store.PaymentUpdate{Amount: &amount, PaymentDate: &paymentDate, Paid: &paid}
		if err := s.store.UpdatePayment(ctx, existing.ID, userID, update); err != nil {
			return core.Payment{}, fmt.Errorf("update payment: %w", err)
		}
		candidate.ID = existing.ID
		candidate.CreatedAt = existing.CreatedAt
		candidate.UpdatedAt = now
	}

	s.publish(ctx, &amqp.ActivityEvent{
		Kind:        amqp.EventPaymentSettled,
		UserID:      userID,
		RefID:       candidate.ID,
		Description: def.Description,
		Category:    string(def.Category),
		Amount:      amount.Decimal(),
		Month:       month,
		Year:        year,
		Timestamp:   now,
	})

	return candidate, nil
}

// MarkPending reverts a cycle to unpaid. The recorded amount and payment
// date are preserved so re-settling keeps its history; only the paid flag
// flips. Reverting an absent cycle materializes an explicit pending record.
func (s *PaymentService) MarkPending(ctx context.Context, userID, fixedExpenseID string, month, year int) (core.Payment, error) {
	if !core.ValidMonth(month) {
		return core.Payment{}, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return core.Payment{}, core.ErrInvalidYear
	}

	def, err := s.defs.GetFixedExpense(ctx, fixedExpenseID, userID)
	if err != nil {
		return core.Payment{}, err
	}

	existing, err := s.store.FindPayment(ctx, fixedExpenseID, userID, month, year)
	if err != nil {
		return core.Payment{}, fmt.Errorf("find payment: %w", err)
	}

	now := s.now().UTC()
	var result core.Payment
	if existing == nil {
		result = core.Payment{
			ID:             uuid.NewString(),
			FixedExpenseID: fixedExpenseID,
			UserID:         userID,
			Month:          month,
			Year:           year,
			Paid:           false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.store.CreatePayment(ctx, result); err != nil {
			return core.Payment{}, fmt.Errorf("create payment: %w", err)
		}
	} else {
		paid := false
		if err := s.store.UpdatePayment(ctx, existing.ID, userID, store.PaymentUpdate{Paid: &paid}); err != nil {
			return core.Payment{}, fmt.Errorf("update payment: %w", err)
		}
		result = *existing
		result.Paid = false
		result.UpdatedAt = now
	}

	s.publish(ctx, &amqp.ActivityEvent{
		Kind:        amqp.EventPaymentReverted,
		UserID:      userID,
		RefID:       result.ID,
		Description: def.Description,
		Category:    string(def.Category),
		Amount:      result.Amount.Decimal(),
		Month:       month,
		Year:        year,
		Timestamp:   now,
	})

	return result, nil
}

// Find returns the settlement record for one cycle, nil when absent.
func (s *PaymentService) Find(ctx context.Context, userID, fixedExpenseID string, month, year int) (*core.Payment, error) {
	if !core.ValidMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return nil, core.ErrInvalidYear
	}
	return s.store.FindPayment(ctx, fixedExpenseID, userID, month, year)
}

// ListMonth returns all of a user's settlement records for one month.
func (s *PaymentService) ListMonth(ctx context.Context, userID string, month, year int) ([]core.Payment, error) {
	if !core.ValidMonth(month) {
		return nil, core.ErrInvalidMonth
	}
	if !core.ValidYear(year) {
		return nil, core.ErrInvalidYear
	}
	return s.store.ListPayments(ctx, userID, month, year)
}

func (s *PaymentService) publish(ctx context.Context, event *amqp.ActivityEvent) {
	if err := s.publisher.PublishActivity(ctx, event); err != nil {
		// The ledger write already committed; the export stream is best effort.
		slog.ErrorContext(ctx, "failed to publish activity event",
			"kind", event.Kind, "refId", event.RefID, "error", err)
	}
}
