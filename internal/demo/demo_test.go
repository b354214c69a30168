package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/pkg/money"
)

func TestExpenses(t *testing.T) {
	categories := []models.Reference{{ID: "c1"}, {ID: "c2"}}
	methods := []models.Reference{{ID: "p1"}}
	now := time.Date(2024, time.March, 20, 15, 4, 5, 0, time.UTC)

	got := Expenses(42, "u1", categories, methods, now, 50)
	require.Len(t, got, 50)

	for _, e := range got {
		assert.Equal(t, "u1", e.UserID)
		assert.NotEmpty(t, e.Description)
		assert.NoError(t, money.Validate(e.Amount))
		assert.Contains(t, []string{"c1", "c2"}, e.CategoryID)
		assert.Equal(t, "p1", e.PaymentMethodID)
		assert.False(t, e.ExpenseDate.After(now))
		assert.False(t, e.ExpenseDate.Before(now.AddDate(-1, 0, -1)))
		assert.Zero(t, e.ExpenseDate.Hour())
	}

	assert.Equal(t, got, Expenses(42, "u1", categories, methods, now, 50))
	assert.NotEqual(t, got, Expenses(43, "u1", categories, methods, now, 50))

	assert.Empty(t, Expenses(42, "u1", categories, methods, now, 0))
	assert.Empty(t, Expenses(42, "u1", categories, methods, now, -1))
}
