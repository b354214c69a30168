package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage layout of an expense date.
const DateLayout = "2006-01-02"

// Expense is a single spend recorded by a user.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal

	CategoryID      string
	PaymentMethodID string

	// ExpenseDate is the calendar day of the spend, at midnight UTC.
	ExpenseDate time.Time
	CreatedAt   time.Time

	// UserID is the owner. It is set on creation and never changes.
	UserID string

	// CategoryName and PaymentMethodName are populated on reads only.
	CategoryName      string
	PaymentMethodName string
}

// ExpenseFilter narrows an expense listing. Zero values mean "no bound".
type ExpenseFilter struct {
	From       time.Time
	To         time.Time
	CategoryID string
}
