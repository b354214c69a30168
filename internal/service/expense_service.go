package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
	"github.com/mmynk/spendtrack/pkg/api"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
	"github.com/mmynk/spendtrack/pkg/money"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the ExpenseService RPC interface. Every call is
// scoped to the session user; other users' expenses are reported as not found.
type ExpenseService struct {
	store  storage.Expenses
	logger *slog.Logger
}

func NewExpenseService(store storage.Expenses, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// ListExpenses returns the caller's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := expenseFilter(req.Msg.From, req.Msg.To, req.Msg.CategoryID)
	if err != nil {
		return nil, invalidArgument(err)
	}

	expenses, err := s.store.ListExpenses(ctx, user.ID, filter)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	out := make([]api.Expense, 0, len(expenses))
	for i := range expenses {
		out = append(out, toAPIExpense(&expenses[i]))
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// CreateExpense records a new expense owned by the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.Expense], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := fromExpenseInput(&req.Msg.ExpenseInput)
	if err != nil {
		return nil, invalidArgument(err)
	}
	expense.UserID = user.ID

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	s.logger.InfoContext(ctx, "Expense created", "user_id", user.ID, "expense_id", expense.ID, "amount", money.Format(expense.Amount))
	out := toAPIExpense(expense)
	return connect.NewResponse(&out), nil
}

// UpdateExpense overwrites an expense the caller owns.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.Expense], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := fromExpenseInput(&req.Msg.ExpenseInput)
	if err != nil {
		return nil, invalidArgument(err)
	}
	expense.ID = req.Msg.ID
	expense.UserID = user.ID

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	s.logger.InfoContext(ctx, "Expense updated", "user_id", user.ID, "expense_id", expense.ID)
	out := toAPIExpense(expense)
	return connect.NewResponse(&out), nil
}

// DeleteExpense removes an expense the caller owns.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, user.ID, req.Msg.ID); err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	s.logger.InfoContext(ctx, "Expense deleted", "user_id", user.ID, "expense_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteResponse{}), nil
}

func expenseFilter(from, to, categoryID string) (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{CategoryID: strings.TrimSpace(categoryID)}
	var err error
	if from != "" {
		if filter.From, err = api.ParseDate(from); err != nil {
			return filter, err
		}
	}
	if to != "" {
		if filter.To, err = api.ParseDate(to); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func fromExpenseInput(in *api.ExpenseInput) (*models.Expense, error) {
	if in.Amount == nil {
		return nil, money.ErrInvalidAmount
	}
	if err := money.Validate(in.Amount.Decimal); err != nil {
		return nil, err
	}
	date, err := api.ParseDate(in.ExpenseDate)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		Description:     strings.TrimSpace(in.Description),
		Amount:          in.Amount.Decimal,
		CategoryID:      in.CategoryID,
		PaymentMethodID: in.PaymentMethodID,
		ExpenseDate:     date,
	}, nil
}

func toAPIExpense(e *models.Expense) api.Expense {
	return api.Expense{
		ID:              e.ID,
		Description:     e.Description,
		Amount:          money.NewAmount(e.Amount),
		CategoryID:      e.CategoryID,
		PaymentMethodID: e.PaymentMethodID,
		ExpenseDate:     api.FormatDate(e.ExpenseDate),
		CreatedAt:       e.CreatedAt,
		UserID:          e.UserID,
		Category:        api.Category{ID: e.CategoryID, Name: e.CategoryName},
		PaymentMethod:   api.PaymentMethod{ID: e.PaymentMethodID, Name: e.PaymentMethodName},
	}
}
