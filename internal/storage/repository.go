// Package storage implements the store ports on SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PatricioAlv/adminGastos/internal/core"
	"github.com/PatricioAlv/adminGastos/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- fixed expense definitions ---

func (r *SQLiteRepository) CreateFixedExpense(ctx context.Context, f core.FixedExpense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fixed_expenses (id, user_id, description, category, amount_cents, due_day, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.Description, string(f.Category), f.Amount.Cents, f.DueDay, boolToInt(f.Active), f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert fixed expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetFixedExpense(ctx context.Context, id, userID string) (core.FixedExpense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, description, category, amount_cents, due_day, active, created_at, updated_at
		FROM fixed_expenses WHERE id = ? AND user_id = ?`, id, userID)
	f, err := scanFixedExpense(row)
	if err == sql.ErrNoRows {
		return core.FixedExpense{}, store.ErrNotFound
	}
	if err != nil {
		return core.FixedExpense{}, fmt.Errorf("get fixed expense: %w", err)
	}
	return f, nil
}

func (r *SQLiteRepository) ListFixedExpenses(ctx context.Context, userID string, activeOnly bool) ([]core.FixedExpense, error) {
	query := `
		SELECT id, user_id, description, category, amount_cents, due_day, active, created_at, updated_at
		FROM fixed_expenses WHERE user_id = ?`
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY due_day ASC, created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}
	defer rows.Close()

	var out []core.FixedExpense
	for rows.Next() {
		f, err := scanFixedExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fixed expense: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateFixedExpense(ctx context.Context, id, userID string, u store.FixedExpenseUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*u.Category))
	}
	if u.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, u.Amount.Cents)
	}
	if u.DueDay != nil {
		sets = append(sets, "due_day = ?")
		args = append(args, *u.DueDay)
	}
	if u.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, boolToInt(*u.Active))
	}
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE fixed_expenses SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update fixed expense: %w", err)
	}
	return requireRow(res)
}

// --- settlement records ---

func (r *SQLiteRepository) CreatePayment(ctx context.Context, p core.Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fixed_expense_payments (id, fixed_expense_id, user_id, month, year, amount_cents, payment_date, paid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FixedExpenseID, p.UserID, p.Month, p.Year, p.Amount.Cents, p.PaymentDate.String(), boolToInt(p.Paid), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindPayment(ctx context.Context, fixedExpenseID, userID string, month, year int) (*core.Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, fixed_expense_id, user_id, month, year, amount_cents, payment_date, paid, created_at, updated_at
		FROM fixed_expense_payments
		WHERE fixed_expense_id = ? AND user_id = ? AND month = ? AND year = ?`,
		fixedExpenseID, userID, month, year)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil // absence is a valid state, not a failure
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) ListPayments(ctx context.Context, userID string, month, year int) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fixed_expense_id, user_id, month, year, amount_cents, payment_date, paid, created_at, updated_at
		FROM fixed_expense_payments
		WHERE user_id = ? AND month = ? AND year = ?
		ORDER BY created_at ASC, id ASC`,
		userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []core.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdatePayment(ctx context.Context, id, userID string, u store.PaymentUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if u.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, u.Amount.Cents)
	}
	if u.PaymentDate != nil {
		sets = append(sets, "payment_date = ?")
		args = append(args, u.PaymentDate.String())
	}
	if u.Paid != nil {
		sets = append(sets, "paid = ?")
		args = append(args, boolToInt(*u.Paid))
	}
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE fixed_expense_payments SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return requireRow(res)
}

// --- variable expenses ---

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, description, category, amount_cents, expense_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Description, string(e.Category), e.Amount.Cents, e.Date.String(), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID string, limit int) ([]core.Expense, error) {
	query := `
		SELECT id, user_id, description, category, amount_cents, expense_date, created_at, updated_at
		FROM expenses WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *SQLiteRepository) ListExpensesByMonth(ctx context.Context, userID string, month, year int) ([]core.Expense, error) {
	first := core.NewDate(year, month, 1)
	last := core.NewDate(year, month, lastDayOf(year, month))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, category, amount_cents, expense_date, created_at, updated_at
		FROM expenses
		WHERE user_id = ? AND expense_date >= ? AND expense_date <= ?
		ORDER BY expense_date DESC, id DESC`,
		userID, first.String(), last.String())
	if err != nil {
		return nil, fmt.Errorf("list expenses by month: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id, userID string, u store.ExpenseUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*u.Category))
	}
	if u.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, u.Amount.Cents)
	}
	if u.Date != nil {
		sets = append(sets, "expense_date = ?")
		args = append(args, u.Date.String())
	}
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE expenses SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

// --- budgets ---

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, month, year, limit_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Month, b.Year, b.Limit.Cents, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindBudget(ctx context.Context, userID string, month, year int) (*core.Budget, error) {
	var b core.Budget
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, month, year, limit_cents, created_at, updated_at
		FROM budgets WHERE user_id = ? AND month = ? AND year = ?`,
		userID, month, year).
		Scan(&b.ID, &b.UserID, &b.Month, &b.Year, &b.Limit.Cents, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return &b, nil
}

func (r *SQLiteRepository) UpdateBudgetLimit(ctx context.Context, id, userID string, limit core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET limit_cents = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		limit.Cents, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("update budget limit: %w", err)
	}
	return requireRow(res)
}

// --- users ---

func (r *SQLiteRepository) UpsertUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, name = excluded.name, updated_at = excluded.updated_at`,
		u.ID, u.Email, u.Name, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return core.User{}, store.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFixedExpense(row rowScanner) (core.FixedExpense, error) {
	var (
		f        core.FixedExpense
		category string
		active   int
	)
	err := row.Scan(&f.ID, &f.UserID, &f.Description, &category, &f.Amount.Cents, &f.DueDay, &active, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return core.FixedExpense{}, err
	}
	f.Category = core.Category(category)
	f.Active = active != 0
	return f, nil
}

func scanPayment(row rowScanner) (core.Payment, error) {
	var (
		p    core.Payment
		date string
		paid int
	)
	err := row.Scan(&p.ID, &p.FixedExpenseID, &p.UserID, &p.Month, &p.Year, &p.Amount.Cents, &date, &paid, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return core.Payment{}, err
	}
	p.Paid = paid != 0
	p.PaymentDate, err = core.ParseDate(date)
	if err != nil {
		return core.Payment{}, fmt.Errorf("parse payment date %q: %w", date, err)
	}
	return p, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		var (
			e        core.Expense
			category string
			date     string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &category, &e.Amount.Cents, &date, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Category = core.Category(category)
		parsed, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse expense date %q: %w", date, err)
		}
		e.Date = parsed
		out = append(out, e)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func lastDayOf(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
