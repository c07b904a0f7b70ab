package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/services"
)

type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type fixedExpenseView struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	DueDay      int        `json:"dueDay"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type paymentView struct {
	ID             string     `json:"id"`
	FixedExpenseID string     `json:"fixedExpenseId"`
	Month          int        `json:"month"`
	Year           int        `json:"year"`
	Amount         core.Money `json:"amount"`
	PaymentDate    core.Date  `json:"paymentDate"`
	Paid           bool       `json:"paid"`
}

type expenseView struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	Date        core.Date  `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type budgetView struct {
	ID    string     `json:"id"`
	Month int        `json:"month"`
	Year  int        `json:"year"`
	Limit core.Money `json:"limit"`
}

type summaryView struct {
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	TotalPaid    core.Money `json:"totalPaid"`
	PaidCount    int        `json:"paidCount"`
	PendingCount int        `json:"pendingCount"`
}

type dashboardView struct {
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	VariableTotal core.Money `json:"variableTotal"`
	FixedTotal    core.Money `json:"fixedTotal"`
	Spent         core.Money `json:"spent"`
	BudgetLimit   core.Money `json:"budgetLimit"`
	Available     core.Money `json:"available"`
	PercentUsed   float64    `json:"percentUsed"`
	ExpenseCount  int        `json:"expenseCount"`
}

type dueProjectionView struct {
	FixedExpense fixedExpenseView `json:"fixedExpense"`
	NextDue      string           `json:"nextDue"`
	DaysLeft     int              `json:"daysLeft"`
}

func toUserView(u core.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toFixedExpenseView(f core.FixedExpense) fixedExpenseView {
	return fixedExpenseView{
		ID:          f.ID,
		Description: f.Description,
		Category:    string(f.Category),
		Amount:      f.Amount,
		DueDay:      f.DueDay,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toPaymentView(p core.Payment) paymentView {
	return paymentView{
		ID:             p.ID,
		FixedExpenseID: p.FixedExpenseID,
		Month:          p.Month,
		Year:           p.Year,
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate,
		Paid:           p.Paid,
	}
}

func toExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Description: e.Description,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func toBudgetView(b core.Budget) budgetView {
	return budgetView{ID: b.ID, Month: b.Month, Year: b.Year, Limit: b.Limit}
}

func toDueProjectionView(p services.DueProjection) dueProjectionView {
	return dueProjectionView{
		FixedExpense: toFixedExpenseView(p.FixedExpense),
		NextDue:      p.NextDue.Format("2006-01-02"),
		DaysLeft:     p.DaysLeft,
	}
}

// monthYearParams reads month and year from the query string, defaulting to
// the current month in UTC when omitted.
func monthYearParams(r *http.Request) (int, int) {
	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()
	if v := r.URL.Query().Get("month"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	return month, year
}
