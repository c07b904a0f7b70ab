package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood          Category = "alimentacion"
	CategoryTransport     Category = "transporte"
	CategoryEntertainment Category = "entretenimiento"
	CategoryHealth        Category = "salud"
	CategoryEducation     Category = "educacion"
	CategoryHome          Category = "hogar"
	CategoryClothing      Category = "ropa"
	CategoryOther         Category = "otros"
)

type (
	// Category is one of the predefined expense tags.
	Category string

	// Date is a calendar date with day precision. The zero value means
	// "no date", which is how unpaid settlement records carry it.
	Date struct {
		time.Time
	}

	// Money is an amount in cents to avoid floating point drift.
	Money struct {
		Cents int64
	}

	// FixedExpense is a recurring bill definition: it has a due day of
	// month and a monthly amount, independent of whether any given month
	// was actually paid.
	FixedExpense struct {
		ID          string
		UserID      string
		Description string
		Category    Category
		Amount      Money
		DueDay      int // 1-31, calendar day number regardless of month length
		Active      bool
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Payment is the settlement record for one (fixed expense, month, year)
	// cycle. At most one exists per natural key. An absent record and an
	// explicit Paid=false record are both valid representations of
	// "unpaid" and callers must treat them as equivalent.
	Payment struct {
		ID             string
		FixedExpenseID string
		UserID         string
		Month          int // 1-12
		Year           int
		Amount         Money // amount actually paid; 0 while pending
		PaymentDate    Date  // zero while unpaid
		Paid           bool
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}

	// Expense is a one-off variable expense.
	Expense struct {
		ID          string
		UserID      string
		Description string
		Category    Category
		Amount      Money
		Date        Date
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Budget is the spending limit for one (user, month, year). Upserted
	// by natural key like payments.
	Budget struct {
		ID        string
		UserID    string
		Month     int
		Year      int
		Limit     Money
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// User mirrors the identity provider's profile; upserted on login.
	User struct {
		ID        string
		Email     string
		Name      string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDueDay      = errors.New("invalid due day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidYear        = errors.New("invalid year")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyUserID        = errors.New("empty user id")
	ErrEmptyReference     = errors.New("empty fixed expense id")
	ErrMissingPaymentDate = errors.New("paid record requires a payment date")
	ErrMissingDate        = errors.New("date cannot be zero")
)

// KnownCategories returns the predefined category tags in display order.
func KnownCategories() []Category {
	return []Category{
		CategoryFood, CategoryTransport, CategoryEntertainment,
		CategoryHealth, CategoryEducation, CategoryHome,
		CategoryClothing, CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment,
		CategoryHealth, CategoryEducation, CategoryHome,
		CategoryClothing, CategoryOther:
		return true
	}
	return false
}

// NewDate creates a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date carries no value.
func (d Date) IsEmpty() bool { return d.IsZero() }

func (d Date) Day() int   { return d.Time.Day() }
func (d Date) Month() int { return int(d.Time.Month()) }
func (d Date) Year() int  { return d.Time.Year() }

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidMonth reports whether month is a calendar month number.
func ValidMonth(month int) bool { return month >= 1 && month <= 12 }

// ValidYear bounds year to a plausible range for a personal finance app.
func ValidYear(year int) bool { return year >= 2000 && year <= 2200 }

func (f FixedExpense) Validate() error {
	if strings.TrimSpace(f.UserID) == "" {
		return ErrEmptyUserID
	}
	if len(strings.TrimSpace(f.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(f.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !f.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := f.Amount.Validate(); err != nil {
		return err
	}
	if f.DueDay < 1 || f.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(p.FixedExpenseID) == "" {
		return ErrEmptyReference
	}
	if !ValidMonth(p.Month) {
		return ErrInvalidMonth
	}
	if !ValidYear(p.Year) {
		return ErrInvalidYear
	}
	if p.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if p.Paid {
		// A paid cycle always records what was paid and when.
		if err := p.Amount.Validate(); err != nil {
			return err
		}
		if p.PaymentDate.IsEmpty() {
			return ErrMissingPaymentDate
		}
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEmptyUserID
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Date.IsEmpty() {
		return ErrMissingDate
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	if !ValidMonth(b.Month) {
		return ErrInvalidMonth
	}
	if !ValidYear(b.Year) {
		return ErrInvalidYear
	}
	return b.Limit.Validate()
}
