package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
)

const expenseSelect = `
	SELECT e.id, e.description, e.amount, e.category_id, e.payment_method_id,
	       e.expense_date, e.created_at, e.user_id, c.name, p.name
	FROM expenses e
	JOIN categories c ON c.id = e.category_id
	JOIN payment_methods p ON p.id = e.payment_method_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		e             models.Expense
		date, created int64
	)
	err := row.Scan(
		&e.ID,
		&e.Description,
		&e.Amount,
		&e.CategoryID,
		&e.PaymentMethodID,
		&date,
		&created,
		&e.UserID,
		&e.CategoryName,
		&e.PaymentMethodName,
	)
	if err != nil {
		return nil, err
	}
	e.ExpenseDate = fromUnix(date)
	e.CreatedAt = fromUnix(created)
	return &e, nil
}

// ListExpenses returns the user's expenses, most recent expense date first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string, filter models.ExpenseFilter) ([]models.Expense, error) {
	var (
		where = []string{"e.user_id = ?"}
		args  = []any{userID}
	)
	if !filter.From.IsZero() {
		where = append(where, "e.expense_date >= ?")
		args = append(args, unix(filter.From))
	}
	if !filter.To.IsZero() {
		where = append(where, "e.expense_date <= ?")
		args = append(args, unix(filter.To))
	}
	if filter.CategoryID != "" {
		where = append(where, "e.category_id = ?")
		args = append(args, filter.CategoryID)
	}

	query := expenseSelect +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY e.expense_date DESC, e.created_at DESC, e.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// GetExpense returns the expense with id if it belongs to userID.
func (s *SQLiteStore) GetExpense(ctx context.Context, userID, id string) (*models.Expense, error) {
	e, err := scanExpense(s.db.QueryRowContext(ctx,
		expenseSelect+" WHERE e.id = ? AND e.user_id = ?", id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// CreateExpense inserts expense, generating ID and CreatedAt, and fills in the
// category and payment method names.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.UserID == "" {
		return errors.New("expense has no owner")
	}
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = nowUTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, description, amount, category_id, payment_method_id, expense_date, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.Description,
		expense.Amount.String(),
		expense.CategoryID,
		expense.PaymentMethodID,
		unix(expense.ExpenseDate),
		unix(expense.CreatedAt),
		expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", mapError(err))
	}
	return s.fillNames(ctx, expense)
}

// UpdateExpense overwrites the editable fields of an expense owned by
// expense.UserID. The owner itself is never changed.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET description = ?, amount = ?, category_id = ?, payment_method_id = ?, expense_date = ?
		WHERE id = ? AND user_id = ?`,
		expense.Description,
		expense.Amount.String(),
		expense.CategoryID,
		expense.PaymentMethodID,
		unix(expense.ExpenseDate),
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", mapError(err))
	}
	if err := requireRow(res); err != nil {
		return err
	}

	updated, err := s.GetExpense(ctx, expense.UserID, expense.ID)
	if err != nil {
		return err
	}
	*expense = *updated
	return nil
}

// DeleteExpense removes the expense if it belongs to userID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) fillNames(ctx context.Context, expense *models.Expense) error {
	err := s.db.QueryRowContext(ctx, `
		SELECT c.name, p.name
		FROM categories c, payment_methods p
		WHERE c.id = ? AND p.id = ?`,
		expense.CategoryID, expense.PaymentMethodID,
	).Scan(&expense.CategoryName, &expense.PaymentMethodName)
	if err != nil {
		return fmt.Errorf("failed to read expense references: %w", err)
	}
	return nil
}
