package services

import (
	"context"
	"errors"
	"testing"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store/memory"
)

func TestBudgetSetLimitUpserts(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewBudgetService(mem)

	first, err := svc.SetLimit(ctx, "u1", 8, 2024, core.Money{Cents: 150000})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	second, err := svc.SetLimit(ctx, "u1", 8, 2024, core.Money{Cents: 180000})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if second.ID != first.ID {
		t.Error("resetting a month's limit must reuse the record")
	}

	got, err := svc.Get(ctx, "u1", 8, 2024)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Limit.Cents != 180000 {
		t.Errorf("Limit = %+v, want 180000", got)
	}

	// Another month is a distinct record.
	other, err := svc.SetLimit(ctx, "u1", 9, 2024, core.Money{Cents: 100000})
	if err != nil {
		t.Fatalf("set other month: %v", err)
	}
	if other.ID == first.ID {
		t.Error("different months must not share a record")
	}
}

func TestBudgetValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewBudgetService(memory.New())

	if _, err := svc.SetLimit(ctx, "u1", 13, 2024, core.Money{Cents: 100}); !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("err = %v, want ErrInvalidMonth", err)
	}
	if _, err := svc.SetLimit(ctx, "u1", 8, 2024, core.Money{}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}

	got, err := svc.Get(ctx, "u1", 8, 2024)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("rejected limit must not create a record")
	}
}
