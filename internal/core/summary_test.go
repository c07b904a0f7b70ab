package core

import "testing"

func TestSummarize(t *testing.T) {
	rent := FixedExpense{ID: "rent", UserID: "u", DueDay: 1, Active: true}
	netflix := FixedExpense{ID: "netflix", UserID: "u", DueDay: 15, Active: true}

	rentPaid := Payment{
		FixedExpenseID: "rent", UserID: "u", Month: 8, Year: 2024,
		Amount: Money{Cents: 120000}, PaymentDate: NewDate(2024, 8, 1), Paid: true,
	}

	t.Run("no records yields all pending", func(t *testing.T) {
		got := Summarize(8, 2024, []FixedExpense{rent, netflix}, nil)
		if got.TotalPaid.Cents != 0 || got.PaidCount != 0 || got.PendingCount != 2 {
			t.Errorf("got %+v, want totalPaid=0 paid=0 pending=2", got)
		}
	})

	t.Run("one paid record", func(t *testing.T) {
		got := Summarize(8, 2024, []FixedExpense{rent, netflix}, []Payment{rentPaid})
		if got.TotalPaid.Cents != 120000 {
			t.Errorf("TotalPaid = %d, want 120000", got.TotalPaid.Cents)
		}
		if got.PaidCount != 1 || got.PendingCount != 1 {
			t.Errorf("counts = %d/%d, want 1/1", got.PaidCount, got.PendingCount)
		}
	})

	t.Run("pending counts active definitions only", func(t *testing.T) {
		// netflix deactivated: rent paid leaves nothing pending, even
		// though an unpaid record for netflix exists.
		netflixPending := Payment{FixedExpenseID: "netflix", UserID: "u", Month: 8, Year: 2024}
		got := Summarize(8, 2024, []FixedExpense{rent}, []Payment{rentPaid, netflixPending})
		if got.PendingCount != 0 {
			t.Errorf("PendingCount = %d, want 0", got.PendingCount)
		}
	})

	t.Run("pending records do not add to total", func(t *testing.T) {
		pending := Payment{FixedExpenseID: "rent", UserID: "u", Month: 8, Year: 2024, Amount: Money{Cents: 999}}
		got := Summarize(8, 2024, []FixedExpense{rent}, []Payment{pending})
		if got.TotalPaid.Cents != 0 || got.PaidCount != 0 {
			t.Errorf("got %+v, want nothing counted", got)
		}
	})

	t.Run("records for other months ignored", func(t *testing.T) {
		july := rentPaid
		july.Month = 7
		got := Summarize(8, 2024, []FixedExpense{rent}, []Payment{july})
		if got.PaidCount != 0 || got.PendingCount != 1 {
			t.Errorf("got %+v, want paid=0 pending=1", got)
		}
	})

	t.Run("orphan paid record never yields negative pending", func(t *testing.T) {
		orphan := rentPaid
		orphan.FixedExpenseID = "deleted-def"
		got := Summarize(8, 2024, []FixedExpense{rent}, []Payment{rentPaid, orphan})
		if got.PaidCount != 2 {
			t.Errorf("PaidCount = %d, want 2", got.PaidCount)
		}
		if got.PendingCount != 0 {
			t.Errorf("PendingCount = %d, want 0 (clamped)", got.PendingCount)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		a := Summarize(8, 2024, []FixedExpense{rent, netflix}, []Payment{rentPaid})
		b := Summarize(8, 2024, []FixedExpense{rent, netflix}, []Payment{rentPaid})
		if a != b {
			t.Errorf("Summarize not deterministic: %+v vs %+v", a, b)
		}
	})
}

func TestComputeDashboard(t *testing.T) {
	expenses := []Expense{
		{UserID: "u", Amount: Money{Cents: 3500}, Date: NewDate(2024, 8, 3)},
		{UserID: "u", Amount: Money{Cents: 1500}, Date: NewDate(2024, 8, 20)},
		{UserID: "u", Amount: Money{Cents: 9999}, Date: NewDate(2024, 7, 20)}, // other month
	}
	active := []FixedExpense{
		{ID: "rent", Amount: Money{Cents: 120000}, Active: true},
		{ID: "netflix", Amount: Money{Cents: 5000}, Active: true},
	}

	got := ComputeDashboard(8, 2024, expenses, active, Money{Cents: 200000})

	if got.VariableTotal.Cents != 5000 {
		t.Errorf("VariableTotal = %d, want 5000", got.VariableTotal.Cents)
	}
	if got.ExpenseCount != 2 {
		t.Errorf("ExpenseCount = %d, want 2", got.ExpenseCount)
	}
	if got.FixedTotal.Cents != 125000 {
		t.Errorf("FixedTotal = %d, want 125000", got.FixedTotal.Cents)
	}
	if got.Spent.Cents != 130000 {
		t.Errorf("Spent = %d, want 130000", got.Spent.Cents)
	}
	if got.Available.Cents != 70000 {
		t.Errorf("Available = %d, want 70000", got.Available.Cents)
	}
	if got.PercentUsed != 65 {
		t.Errorf("PercentUsed = %v, want 65", got.PercentUsed)
	}

	t.Run("no budget leaves percent at zero", func(t *testing.T) {
		d := ComputeDashboard(8, 2024, expenses, active, Money{})
		if d.PercentUsed != 0 {
			t.Errorf("PercentUsed = %v, want 0", d.PercentUsed)
		}
		if d.Available.Cents != -130000 {
			t.Errorf("Available = %d, want -130000", d.Available.Cents)
		}
	})
}
