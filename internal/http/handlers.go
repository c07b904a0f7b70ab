package http

import (
	"net/http"
	"strconv"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/services"
)

// --- auth ---

type loginRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "email is required"})
		return
	}

	result, err := s.accounts.Login(r.Context(), services.LoginInput{
		UserID: req.UserID,
		Email:  req.Email,
		Name:   req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: result.Token, User: toUserView(result.User)})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	user, err := s.accounts.Profile(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(user))
}

// --- variable expenses ---

type expenseRequest struct {
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	Date        core.Date  `json:"date"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e, err := s.expenses.Create(r.Context(), identity.UserID, services.ExpenseInput{
		Description: req.Description,
		Category:    core.Category(req.Category),
		Amount:      req.Amount,
		Date:        req.Date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseView(e))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var (
		list []core.Expense
		err  error
	)
	q := r.URL.Query()
	if q.Get("month") != "" || q.Get("year") != "" {
		month, year := monthYearParams(r)
		list, err = s.expenses.ListMonth(r.Context(), identity.UserID, month, year)
	} else {
		limit := 0
		if v := q.Get("limit"); v != "" {
			if n, perr := strconv.Atoi(v); perr == nil && n > 0 {
				limit = n
			}
		}
		list, err = s.expenses.List(r.Context(), identity.UserID, limit)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]expenseView, 0, len(list))
	for _, e := range list {
		views = append(views, toExpenseView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

type expenseUpdateRequest struct {
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Amount      *core.Money `json:"amount"`
	Date        *core.Date  `json:"date"`
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req expenseUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := services.ExpenseUpdateInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	}
	if req.Category != nil {
		c := core.Category(*req.Category)
		in.Category = &c
	}
	if err := s.expenses.Update(r.Context(), identity.UserID, r.PathValue("id"), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	if err := s.expenses.Delete(r.Context(), identity.UserID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- fixed expense definitions ---

type fixedExpenseRequest struct {
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	DueDay      int        `json:"dueDay"`
}

func (s *Server) handleCreateFixedExpense(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req fixedExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	f, err := s.defs.Create(r.Context(), identity.UserID, services.FixedExpenseInput{
		Description: req.Description,
		Category:    core.Category(req.Category),
		Amount:      req.Amount,
		DueDay:      req.DueDay,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFixedExpenseView(f))
}

func (s *Server) handleListFixedExpenses(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	activeOnly := r.URL.Query().Get("all") != "true"

	list, err := s.defs.List(r.Context(), identity.UserID, activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]fixedExpenseView, 0, len(list))
	for _, f := range list {
		views = append(views, toFixedExpenseView(f))
	}
	writeJSON(w, http.StatusOK, views)
}

type fixedExpenseUpdateRequest struct {
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Amount      *core.Money `json:"amount"`
	DueDay      *int        `json:"dueDay"`
	Active      *bool       `json:"active"`
}

func (s *Server) handleUpdateFixedExpense(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req fixedExpenseUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := services.FixedExpenseUpdateInput{
		Description: req.Description,
		Amount:      req.Amount,
		DueDay:      req.DueDay,
		Active:      req.Active,
	}
	if req.Category != nil {
		c := core.Category(*req.Category)
		in.Category = &c
	}

	f, err := s.defs.Update(r.Context(), identity.UserID, r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFixedExpenseView(f))
}

func (s *Server) handleDeactivateFixedExpense(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	if err := s.defs.Deactivate(r.Context(), identity.UserID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	projections, err := s.defs.Upcoming(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]dueProjectionView, 0, len(projections))
	for _, p := range projections {
		views = append(views, toDueProjectionView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- settlement ledger ---

type markPaidRequest struct {
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	Amount      core.Money `json:"amount"`
	PaymentDate core.Date  `json:"paymentDate"`
}

func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req markPaidRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.payments.MarkPaid(r.Context(), identity.UserID, r.PathValue("id"),
		req.Month, req.Year, req.Amount, req.PaymentDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentView(p))
}

type markPendingRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (s *Server) handleMarkPending(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req markPendingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := s.payments.MarkPending(r.Context(), identity.UserID, r.PathValue("id"), req.Month, req.Year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentView(p))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	month, year := monthYearParams(r)

	list, err := s.payments.ListMonth(r.Context(), identity.UserID, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]paymentView, 0, len(list))
	for _, p := range list {
		views = append(views, toPaymentView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- derived views ---

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	month, year := monthYearParams(r)

	sum, err := s.summary.Month(r.Context(), identity.UserID, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryView{
		Month:        sum.Month,
		Year:         sum.Year,
		TotalPaid:    sum.TotalPaid,
		PaidCount:    sum.PaidCount,
		PendingCount: sum.PendingCount,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	month, year := monthYearParams(r)

	d, err := s.summary.Dashboard(r.Context(), identity.UserID, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardView{
		Month:         d.Month,
		Year:          d.Year,
		VariableTotal: d.VariableTotal,
		FixedTotal:    d.FixedTotal,
		Spent:         d.Spent,
		BudgetLimit:   d.BudgetLimit,
		Available:     d.Available,
		PercentUsed:   d.PercentUsed,
		ExpenseCount:  d.ExpenseCount,
	})
}

// --- budget ---

type budgetRequest struct {
	Month int        `json:"month"`
	Year  int        `json:"year"`
	Limit core.Money `json:"limit"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	var req budgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := s.budgets.SetLimit(r.Context(), identity.UserID, req.Month, req.Year, req.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetView(b))
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	month, year := monthYearParams(r)

	b, err := s.budgets.Get(r.Context(), identity.UserID, month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if b == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetView(*b))
}
