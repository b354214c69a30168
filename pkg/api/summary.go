package api

import "github.com/mmynk/spendtrack/pkg/money"

// MaxSummaryMonths bounds the monthly trend.
const MaxSummaryMonths = 24

// DefaultSummaryMonths is used when GetSummaryRequest.Months is zero.
const DefaultSummaryMonths = 6

type GetSummaryRequest struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Months int    `json:"months,omitempty"`
}

func (r *GetSummaryRequest) Validate() error {
	var errs fieldErrors
	errs.date("from", r.From, false)
	errs.date("to", r.To, false)
	if r.Months < 0 || r.Months > MaxSummaryMonths {
		errs.add("months", "must be between 0 and 24")
	}
	return errs.err()
}

type MonthTotal struct {
	Month string       `json:"month"`
	Total money.Amount `json:"total"`
}

type CategoryTotal struct {
	CategoryID string       `json:"categoryId"`
	Name       string       `json:"name"`
	Total      money.Amount `json:"total"`
	Count      int          `json:"count"`
}

type Summary struct {
	Total             money.Amount    `json:"total"`
	Count             int             `json:"count"`
	CurrentMonthTotal money.Amount    `json:"currentMonthTotal"`
	MonthlyTrend      []MonthTotal    `json:"monthlyTrend"`
	Categories        []CategoryTotal `json:"categories"`
}
