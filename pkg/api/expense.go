package api

import (
	"time"

	"github.com/mmynk/spendtrack/pkg/money"
)

// Reference is a category or payment method.
type Reference struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type (
	Category      = Reference
	PaymentMethod = Reference
)

type Expense struct {
	ID              string        `json:"id"`
	Description     string        `json:"description"`
	Amount          money.Amount  `json:"amount"`
	CategoryID      string        `json:"categoryId"`
	PaymentMethodID string        `json:"paymentMethodId"`
	ExpenseDate     string        `json:"expenseDate"`
	CreatedAt       time.Time     `json:"createdAt"`
	UserID          string        `json:"userId"`
	Category        Category      `json:"category"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
}

// ListExpensesRequest lists the caller's expenses. From and To are inclusive
// calendar dates; empty means unbounded.
type ListExpensesRequest struct {
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

func (r *ListExpensesRequest) Validate() error {
	var errs fieldErrors
	errs.date("from", r.From, false)
	errs.date("to", r.To, false)
	if r.From != "" && r.To != "" {
		from, ferr := ParseDate(r.From)
		to, terr := ParseDate(r.To)
		if ferr == nil && terr == nil && to.Before(from) {
			errs.add("to", "must not be before from")
		}
	}
	return errs.err()
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

// ExpenseInput holds the editable fields of an expense. Amount is a pointer so
// a missing amount can be told apart from zero.
type ExpenseInput struct {
	Description     string        `json:"description"`
	Amount          *money.Amount `json:"amount"`
	CategoryID      string        `json:"categoryId"`
	PaymentMethodID string        `json:"paymentMethodId"`
	ExpenseDate     string        `json:"expenseDate"`
}

func (in *ExpenseInput) validate(errs *fieldErrors) {
	errs.required("description", in.Description)
	if in.Amount == nil {
		errs.add("amount", "is required")
	} else if err := money.Validate(in.Amount.Decimal); err != nil {
		errs.add("amount", err.Error())
	}
	errs.required("categoryId", in.CategoryID)
	errs.required("paymentMethodId", in.PaymentMethodID)
	errs.date("expenseDate", in.ExpenseDate, true)
}

type CreateExpenseRequest struct {
	ExpenseInput
}

func (r *CreateExpenseRequest) Validate() error {
	var errs fieldErrors
	r.validate(&errs)
	return errs.err()
}

type UpdateExpenseRequest struct {
	ID string `json:"id"`
	ExpenseInput
}

func (r *UpdateExpenseRequest) Validate() error {
	var errs fieldErrors
	errs.required("id", r.ID)
	r.validate(&errs)
	return errs.err()
}

// DeleteRequest deletes the record with the given ID.
type DeleteRequest struct {
	ID string `json:"id"`
}

func (r *DeleteRequest) Validate() error {
	var errs fieldErrors
	errs.required("id", r.ID)
	return errs.err()
}

type DeleteResponse struct{}
