package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/calculator"
	"github.com/mmynk/spendtrack/internal/storage"
	"github.com/mmynk/spendtrack/pkg/api"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
	"github.com/mmynk/spendtrack/pkg/money"
)

var _ apiconnect.SummaryServiceHandler = (*SummaryService)(nil)

// SummaryService implements the SummaryService RPC interface.
type SummaryService struct {
	store  storage.Expenses
	now    func() time.Time
	logger *slog.Logger
}

func NewSummaryService(store storage.Expenses, logger *slog.Logger) *SummaryService {
	return &SummaryService{store: store, now: time.Now, logger: logger}
}

// GetSummary aggregates the caller's expenses within the optional date range.
func (s *SummaryService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.Summary], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := expenseFilter(req.Msg.From, req.Msg.To, "")
	if err != nil {
		return nil, invalidArgument(err)
	}
	months := req.Msg.Months
	if months == 0 {
		months = api.DefaultSummaryMonths
	}

	expenses, err := s.store.ListExpenses(ctx, user.ID, filter)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	sum := calculator.Summarize(expenses, s.now(), months)
	return connect.NewResponse(toAPISummary(sum)), nil
}

func toAPISummary(sum calculator.Summary) *api.Summary {
	out := &api.Summary{
		Total:             money.NewAmount(sum.Total),
		Count:             sum.Count,
		CurrentMonthTotal: money.NewAmount(sum.CurrentMonthTotal),
		MonthlyTrend:      make([]api.MonthTotal, 0, len(sum.MonthlyTrend)),
		Categories:        make([]api.CategoryTotal, 0, len(sum.Categories)),
	}
	for _, m := range sum.MonthlyTrend {
		out.MonthlyTrend = append(out.MonthlyTrend, api.MonthTotal{Month: m.Month, Total: money.NewAmount(m.Total)})
	}
	for _, c := range sum.Categories {
		out.Categories = append(out.Categories, api.CategoryTotal{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Total:      money.NewAmount(c.Total),
			Count:      c.Count,
		})
	}
	return out
}
