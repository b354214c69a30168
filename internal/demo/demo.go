// Package demo generates plausible fake expenses for trying out a fresh
// installation.
package demo

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/mmynk/spendtrack/internal/models"
)

// maxCents bounds a generated amount to 250.00.
const maxCents = 25000

// Expenses returns n expenses owned by userID, spread over the year ending at
// now. The same seed always yields the same expenses. categories and
// paymentMethods must be non-empty. A non-positive n yields nil.
func Expenses(seed uint64, userID string, categories, paymentMethods []models.Reference, now time.Time, n int) []models.Expense {
	if n <= 0 {
		return nil
	}
	faker := gofakeit.New(seed)
	now = now.UTC()
	start := now.AddDate(-1, 0, 0)

	out := make([]models.Expense, 0, n)
	for range n {
		cents := int64(faker.IntN(maxCents) + 1)
		day := faker.DateRange(start, now).UTC()
		out = append(out, models.Expense{
			Description:     description(faker),
			Amount:          decimal.New(cents, -2),
			CategoryID:      categories[faker.IntN(len(categories))].ID,
			PaymentMethodID: paymentMethods[faker.IntN(len(paymentMethods))].ID,
			ExpenseDate:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			UserID:          userID,
		})
	}
	return out
}

func description(f *gofakeit.Faker) string {
	patterns := []func(*gofakeit.Faker) string{
		func(f *gofakeit.Faker) string { return fmt.Sprintf("%s %s", f.Adjective(), f.Noun()) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("%s at %s", f.Noun(), f.Company()) },
		func(f *gofakeit.Faker) string { return f.Company() },
	}
	return patterns[f.IntN(len(patterns))](f)
}
