package models

import "time"

// RefKind identifies a kind of shared reference data.
type RefKind int

const (
	KindCategory RefKind = iota + 1
	KindPaymentMethod
)

// String returns the human-readable name of the kind.
func (k RefKind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindPaymentMethod:
		return "payment method"
	default:
		return "unknown"
	}
}

// Reference is a named reference record. Categories and payment methods share
// this shape and differ only in the table that holds them.
type Reference struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Category classifies expenses (e.g. "Food & Dining").
type Category = Reference

// PaymentMethod records how an expense was paid (e.g. "Credit Card").
type PaymentMethod = Reference

// DefaultCategories are seeded into a fresh database.
var DefaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Bills & Utilities",
	"Entertainment",
	"Shopping",
	"Healthcare",
	"Education",
	"Travel",
}

// DefaultPaymentMethods are seeded into a fresh database.
var DefaultPaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Bank Transfer",
	"Mobile Payment",
	"Cheque",
}
