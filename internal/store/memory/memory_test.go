package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"
)

func TestListFixedExpensesOrderingAndScoping(t *testing.T) {
	ctx := context.Background()
	s := New()

	defs := []core.FixedExpense{
		{ID: "netflix", UserID: "u1", DueDay: 15, Active: true},
		{ID: "rent", UserID: "u1", DueDay: 1, Active: true},
		{ID: "gym", UserID: "u1", DueDay: 15, Active: true}, // tie with netflix
		{ID: "paused", UserID: "u1", DueDay: 5, Active: false},
		{ID: "other-user", UserID: "u2", DueDay: 2, Active: true},
	}
	for _, f := range defs {
		if err := s.CreateFixedExpense(ctx, f); err != nil {
			t.Fatalf("create %s: %v", f.ID, err)
		}
	}

	got, err := s.ListFixedExpenses(ctx, "u1", true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"rent", "netflix", "gym"}
	if len(got) != len(want) {
		t.Fatalf("got %d definitions, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}

	all, err := s.ListFixedExpenses(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all definitions = %d, want 4 (inactive included)", len(all))
	}
}

func TestFindPaymentAbsentIsNil(t *testing.T) {
	ctx := context.Background()
	s := New()

	p, err := s.FindPayment(ctx, "rent", "u1", 8, 2024)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p != nil {
		t.Error("absent payment should be nil, not an error")
	}
}

func TestUpdateFixedExpensePartial(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateFixedExpense(ctx, core.FixedExpense{
		ID: "rent", UserID: "u1", Description: "Alquiler", DueDay: 1, Active: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	active := false
	if err := s.UpdateFixedExpense(ctx, "rent", "u1", store.FixedExpenseUpdate{Active: &active}); err != nil {
		t.Fatalf("update: %v", err)
	}

	f, err := s.GetFixedExpense(ctx, "rent", "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if f.Active {
		t.Error("Active should be false after update")
	}
	if f.Description != "Alquiler" {
		t.Errorf("Description = %q, untouched field changed", f.Description)
	}

	if err := s.UpdateFixedExpense(ctx, "rent", "u2", store.FixedExpenseUpdate{Active: &active}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user update = %v, want ErrNotFound", err)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	e := core.Expense{
		ID: "e1", UserID: "u1", Description: "Nafta",
		Category: core.CategoryTransport, Amount: core.Money{Cents: 4000},
		Date: core.NewDate(2024, 8, 3),
	}
	if err := s.CreateExpense(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	byMonth, err := s.ListExpensesByMonth(ctx, "u1", 8, 2024)
	if err != nil {
		t.Fatalf("list by month: %v", err)
	}
	if len(byMonth) != 1 {
		t.Fatalf("expenses in month = %d, want 1", len(byMonth))
	}

	if err := s.DeleteExpense(ctx, "e1", "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteExpense(ctx, "e1", "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestUpsertUserKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := core.User{ID: "u1", Email: "a@b.c", Name: "Ana"}
	first.CreatedAt = core.NewDate(2024, 1, 1).Time
	if err := s.UpsertUser(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := first
	second.Name = "Ana Maria"
	second.CreatedAt = core.NewDate(2024, 8, 1).Time
	if err := s.UpsertUser(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ana Maria" {
		t.Errorf("Name = %q, want updated name", got.Name)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Error("CreatedAt should survive upserts")
	}
}
