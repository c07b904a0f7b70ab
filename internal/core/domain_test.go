package core

import (
	"errors"
	"testing"
	"time"
)

func validFixedExpense() FixedExpense {
	return FixedExpense{
		ID:          "rent",
		UserID:      "user-1",
		Description: "Alquiler",
		Category:    CategoryHome,
		Amount:      Money{Cents: 120000},
		DueDay:      1,
		Active:      true,
	}
}

func TestFixedExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FixedExpense)
		wantErr error
	}{
		{name: "valid", mutate: func(*FixedExpense) {}},
		{name: "empty user", mutate: func(f *FixedExpense) { f.UserID = "  " }, wantErr: ErrEmptyUserID},
		{name: "empty description", mutate: func(f *FixedExpense) { f.Description = "   " }, wantErr: ErrEmptyDescription},
		{name: "unknown category", mutate: func(f *FixedExpense) { f.Category = "mascotas" }, wantErr: ErrInvalidCategory},
		{name: "zero amount", mutate: func(f *FixedExpense) { f.Amount = Money{} }, wantErr: ErrInvalidAmount},
		{name: "due day zero", mutate: func(f *FixedExpense) { f.DueDay = 0 }, wantErr: ErrInvalidDueDay},
		{name: "due day 32", mutate: func(f *FixedExpense) { f.DueDay = 32 }, wantErr: ErrInvalidDueDay},
		{name: "due day 31 allowed", mutate: func(f *FixedExpense) { f.DueDay = 31 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFixedExpense()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaymentValidate(t *testing.T) {
	paid := Payment{
		ID:             "p1",
		FixedExpenseID: "rent",
		UserID:         "user-1",
		Month:          8,
		Year:           2024,
		Amount:         Money{Cents: 120000},
		PaymentDate:    NewDate(2024, 8, 1),
		Paid:           true,
	}

	t.Run("valid paid record", func(t *testing.T) {
		if err := paid.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("pending record with zero amount is valid", func(t *testing.T) {
		p := paid
		p.Paid = false
		p.Amount = Money{}
		p.PaymentDate = Date{}
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("paid without amount", func(t *testing.T) {
		p := paid
		p.Amount = Money{}
		if !errors.Is(p.Validate(), ErrInvalidAmount) {
			t.Error("expected ErrInvalidAmount for paid record without amount")
		}
	})

	t.Run("paid without date", func(t *testing.T) {
		p := paid
		p.PaymentDate = Date{}
		if p.Validate() == nil {
			t.Error("expected error for paid record without payment date")
		}
	})

	t.Run("month out of range", func(t *testing.T) {
		p := paid
		p.Month = 13
		if !errors.Is(p.Validate(), ErrInvalidMonth) {
			t.Error("expected ErrInvalidMonth")
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		p := paid
		p.Paid = false
		p.Amount = Money{Cents: -1}
		if !errors.Is(p.Validate(), ErrInvalidAmount) {
			t.Error("expected ErrInvalidAmount for negative amount")
		}
	})
}

func TestExpenseValidate(t *testing.T) {
	e := Expense{
		ID:          "e1",
		UserID:      "user-1",
		Description: "Supermercado",
		Category:    CategoryFood,
		Amount:      Money{Cents: 3550},
		Date:        NewDate(2024, 8, 12),
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	e.Date = Date{}
	if e.Validate() == nil {
		t.Error("expected error for zero date")
	}
}

func TestBudgetValidate(t *testing.T) {
	b := Budget{ID: "b1", UserID: "user-1", Month: 8, Year: 2024, Limit: Money{Cents: 5000000}}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	b.Year = 1990
	if !errors.Is(b.Validate(), ErrInvalidYear) {
		t.Error("expected ErrInvalidYear")
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-08-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := d.String(); got != "2024-08-01" {
		t.Errorf("String() = %q, want 2024-08-01", got)
	}
	if d.Time.Location() != time.UTC {
		t.Error("parsed date should be UTC")
	}

	empty, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate(\"\"): %v", err)
	}
	if !empty.IsEmpty() {
		t.Error("empty string should parse to the zero date")
	}
	if got := empty.String(); got != "" {
		t.Errorf("zero date String() = %q, want empty", got)
	}
}
