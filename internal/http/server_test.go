package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PatricioAlv/adminGastos/internal/auth"
	"github.com/PatricioAlv/adminGastos/internal/services"
	"github.com/PatricioAlv/adminGastos/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	mem := memory.New()
	issuer := auth.NewTokenIssuer("test-secret-at-least-16", time.Hour)

	s := NewServer(":0", Services{
		Accounts: services.NewAccountService(mem, issuer),
		Defs:     services.NewFixedExpenseService(mem),
		Payments: services.NewPaymentService(mem, mem, nil),
		Expenses: services.NewExpenseService(mem, nil),
		Budgets:  services.NewBudgetService(mem),
		Summary:  services.NewSummaryService(mem),
	}, issuer)

	token, err := issuer.Issue(auth.Identity{UserID: "u1", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return s, token
}

func doJSON(t *testing.T, s *Server, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestAuthRequired(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "", http.MethodGet, "/api/expenses", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, "garbage", http.MethodGet, "/api/expenses", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, "", http.MethodPost, "/api/login", map[string]string{
		"email": "ana@example.com",
		"name":  "Ana",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeInto(t, rec, &resp)
	if resp.Token == "" || resp.User.ID == "" {
		t.Fatalf("incomplete login response: %+v", resp)
	}

	rec = doJSON(t, s, resp.Token, http.MethodGet, "/api/profile", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("profile with fresh token status = %d", rec.Code)
	}
}

func TestFixedExpenseSettlementFlow(t *testing.T) {
	s, token := newTestServer(t)

	rec := doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses", map[string]any{
		"description": "Alquiler",
		"category":    "hogar",
		"amount":      "1200.00",
		"dueDay":      1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
	}
	decodeInto(t, rec, &created)
	if created.Amount != "1200.00" {
		t.Errorf("Amount = %q, want decimal string 1200.00", created.Amount)
	}

	// Settle the August cycle.
	rec = doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses/"+created.ID+"/pay", map[string]any{
		"month":       8,
		"year":        2024,
		"amount":      "1200.00",
		"paymentDate": "2024-08-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("pay status = %d: %s", rec.Code, rec.Body.String())
	}
	var paid struct {
		ID   string `json:"id"`
		Paid bool   `json:"paid"`
	}
	decodeInto(t, rec, &paid)
	if !paid.Paid {
		t.Error("record should be paid")
	}

	// Settling again reuses the record.
	rec = doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses/"+created.ID+"/pay", map[string]any{
		"month":       8,
		"year":        2024,
		"amount":      "1250.00",
		"paymentDate": "2024-08-02",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("re-pay status = %d: %s", rec.Code, rec.Body.String())
	}
	var repaid struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
	}
	decodeInto(t, rec, &repaid)
	if repaid.ID != paid.ID {
		t.Error("re-settling must reuse the settlement record")
	}
	if repaid.Amount != "1250.00" {
		t.Errorf("Amount = %q, want last write 1250.00", repaid.Amount)
	}

	rec = doJSON(t, s, token, http.MethodGet, "/api/summary?month=8&year=2024", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rec.Code)
	}
	var sum struct {
		TotalPaid    string `json:"totalPaid"`
		PaidCount    int    `json:"paidCount"`
		PendingCount int    `json:"pendingCount"`
	}
	decodeInto(t, rec, &sum)
	if sum.TotalPaid != "1250.00" || sum.PaidCount != 1 || sum.PendingCount != 0 {
		t.Errorf("summary = %+v, want 1250.00 / 1 / 0", sum)
	}

	// Revert to pending.
	rec = doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses/"+created.ID+"/pending", map[string]any{
		"month": 8,
		"year":  2024,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("pending status = %d: %s", rec.Code, rec.Body.String())
	}
	var reverted struct {
		Paid   bool   `json:"paid"`
		Amount string `json:"amount"`
	}
	decodeInto(t, rec, &reverted)
	if reverted.Paid {
		t.Error("record should be pending after revert")
	}
	if reverted.Amount != "1250.00" {
		t.Errorf("Amount = %q, revert must preserve the recorded amount", reverted.Amount)
	}
}

func TestErrorMapping(t *testing.T) {
	s, token := newTestServer(t)

	t.Run("unknown definition is 404", func(t *testing.T) {
		rec := doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses/nope/pay", map[string]any{
			"month": 8, "year": 2024, "amount": "10.00", "paymentDate": "2024-08-01",
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("invalid amount is 422", func(t *testing.T) {
		rec := doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses", map[string]any{
			"description": "x", "category": "hogar", "amount": "abc", "dueDay": 1,
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("due day out of range is 422", func(t *testing.T) {
		rec := doJSON(t, s, token, http.MethodPost, "/api/fixed-expenses", map[string]any{
			"description": "x", "category": "hogar", "amount": "10.00", "dueDay": 32,
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString("{nope"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestBudgetRoundTrip(t *testing.T) {
	s, token := newTestServer(t)

	rec := doJSON(t, s, token, http.MethodGet, "/api/budget?month=8&year=2024", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "null" {
		t.Errorf("unset budget body = %s, want null", body)
	}

	rec = doJSON(t, s, token, http.MethodPut, "/api/budget", map[string]any{
		"month": 8, "year": 2024, "limit": "2000.00",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, token, http.MethodGet, "/api/budget?month=8&year=2024", nil)
	var b struct {
		Limit string `json:"limit"`
	}
	decodeInto(t, rec, &b)
	if b.Limit != "2000.00" {
		t.Errorf("Limit = %q, want 2000.00", b.Limit)
	}
}

func TestExpenseCRUDAndDashboard(t *testing.T) {
	s, token := newTestServer(t)

	rec := doJSON(t, s, token, http.MethodPost, "/api/expenses", map[string]any{
		"description": "Supermercado",
		"category":    "alimentacion",
		"amount":      "250.00",
		"date":        "2024-08-03",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeInto(t, rec, &created)

	rec = doJSON(t, s, token, http.MethodGet, "/api/dashboard?month=8&year=2024", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	var d struct {
		VariableTotal string `json:"variableTotal"`
		ExpenseCount  int    `json:"expenseCount"`
	}
	decodeInto(t, rec, &d)
	if d.VariableTotal != "250.00" || d.ExpenseCount != 1 {
		t.Errorf("dashboard = %+v, want 250.00 / 1", d)
	}

	rec = doJSON(t, s, token, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, s, token, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, s, "", http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
