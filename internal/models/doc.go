// Package models defines the core domain models for spendtrack.
//
// # Models
//
//   - User: a registered account, owner of expenses
//   - Category, PaymentMethod: global reference data, shared by all users
//   - Expense: a single spend owned by exactly one user
//
// Relationships are expressed with ID strings rather than pointers. Reads of an
// Expense carry the names of its category and payment method for display, but
// those names are never written back through an Expense.
package models
