// Package http exposes the finance tracker as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/PatricioAlv/adminGastos/internal/auth"
	"github.com/PatricioAlv/adminGastos/internal/services"
)

type Server struct {
	http.Server

	accounts *services.AccountService
	defs     *services.FixedExpenseService
	payments *services.PaymentService
	expenses *services.ExpenseService
	budgets  *services.BudgetService
	summary  *services.SummaryService
	tokens   *auth.TokenIssuer

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

type Services struct {
	Accounts *services.AccountService
	Defs     *services.FixedExpenseService
	Payments *services.PaymentService
	Expenses *services.ExpenseService
	Budgets  *services.BudgetService
	Summary  *services.SummaryService
}

// NewServer wires the routes and returns a ready-to-run server.
func NewServer(addr string, svcs Services, tokens *auth.TokenIssuer) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		accounts:    svcs.Accounts,
		defs:        svcs.Defs,
		payments:    svcs.Payments,
		expenses:    svcs.Expenses,
		budgets:     svcs.Budgets,
		summary:     svcs.Summary,
		tokens:      tokens,
		rateLimiter: newRateLimiter(60),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/login", s.withCommon(s.handleLogin))
	mux.HandleFunc("GET /api/profile", s.withCommon(s.withAuth(s.handleProfile)))

	mux.HandleFunc("GET /api/expenses", s.withCommon(s.withAuth(s.handleListExpenses)))
	mux.HandleFunc("POST /api/expenses", s.withCommon(s.withAuth(s.handleCreateExpense)))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withCommon(s.withAuth(s.handleUpdateExpense)))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withCommon(s.withAuth(s.handleDeleteExpense)))

	mux.HandleFunc("GET /api/fixed-expenses", s.withCommon(s.withAuth(s.handleListFixedExpenses)))
	mux.HandleFunc("POST /api/fixed-expenses", s.withCommon(s.withAuth(s.handleCreateFixedExpense)))
	mux.HandleFunc("PUT /api/fixed-expenses/{id}", s.withCommon(s.withAuth(s.handleUpdateFixedExpense)))
	mux.HandleFunc("DELETE /api/fixed-expenses/{id}", s.withCommon(s.withAuth(s.handleDeactivateFixedExpense)))
	mux.HandleFunc("GET /api/fixed-expenses/upcoming", s.withCommon(s.withAuth(s.handleUpcoming)))
	mux.HandleFunc("POST /api/fixed-expenses/{id}/pay", s.withCommon(s.withAuth(s.handleMarkPaid)))
	mux.HandleFunc("POST /api/fixed-expenses/{id}/pending", s.withCommon(s.withAuth(s.handleMarkPending)))

	mux.HandleFunc("GET /api/payments", s.withCommon(s.withAuth(s.handleListPayments)))
	mux.HandleFunc("GET /api/summary", s.withCommon(s.withAuth(s.handleSummary)))
	mux.HandleFunc("GET /api/dashboard", s.withCommon(s.withAuth(s.handleDashboard)))

	mux.HandleFunc("GET /api/budget", s.withCommon(s.withAuth(s.handleGetBudget)))
	mux.HandleFunc("PUT /api/budget", s.withCommon(s.withAuth(s.handleSetBudget)))

	return s
}

// Shutdown stops background goroutines and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
