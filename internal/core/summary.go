package core

// MonthlySummary is the derived budget-vs-settlement view for one month.
// It is recomputed on demand and never persisted.
type MonthlySummary struct {
	Month        int
	Year         int
	TotalPaid    Money
	PaidCount    int
	PendingCount int
}

// Summarize joins the active definitions against the month's settlement
// records. Paid records are counted regardless of whether their definition
// is still active (orphans are tolerated); the pending count is derived
// from active definitions only and never goes negative.
func Summarize(month, year int, active []FixedExpense, payments []Payment) MonthlySummary {
	s := MonthlySummary{Month: month, Year: year}
	for _, p := range payments {
		if p.Month != month || p.Year != year || !p.Paid {
			continue
		}
		s.TotalPaid.Cents += p.Amount.Cents
		s.PaidCount++
	}
	s.PendingCount = len(active) - s.PaidCount
	if s.PendingCount < 0 {
		s.PendingCount = 0
	}
	return s
}

// DashboardStats is the month overview shown on the home screen: variable
// spend plus fixed commitments measured against the month's budget limit.
type DashboardStats struct {
	Month         int
	Year          int
	VariableTotal Money
	FixedTotal    Money // sum of active definition amounts
	Spent         Money
	BudgetLimit   Money
	Available     Money
	PercentUsed   float64
	ExpenseCount  int
}

// ComputeDashboard derives the overview from the month's variable expenses,
// the active fixed definitions and the budget limit (zero when none is set).
func ComputeDashboard(month, year int, expenses []Expense, active []FixedExpense, limit Money) DashboardStats {
	d := DashboardStats{Month: month, Year: year, BudgetLimit: limit}
	for _, e := range expenses {
		if e.Date.Month() != month || e.Date.Year() != year {
			continue
		}
		d.VariableTotal.Cents += e.Amount.Cents
		d.ExpenseCount++
	}
	for _, f := range active {
		d.FixedTotal.Cents += f.Amount.Cents
	}
	d.Spent.Cents = d.VariableTotal.Cents + d.FixedTotal.Cents
	d.Available.Cents = limit.Cents - d.Spent.Cents
	if limit.Cents > 0 {
		d.PercentUsed = float64(d.Spent.Cents) / float64(limit.Cents) * 100
	}
	return d
}
