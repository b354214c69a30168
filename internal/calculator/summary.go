// Package calculator aggregates expenses into the dashboard views: overall
// total, monthly trend and per-category breakdown. All arithmetic is decimal.
package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendtrack/internal/models"
)

// MonthLayout is the key format of a trend month.
const MonthLayout = "2006-01"

// MonthTotal is the spend within one calendar month.
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

// CategoryTotal is the spend within one category.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Total      decimal.Decimal
	Count      int
}

// Summary is the aggregate view over a set of expenses.
type Summary struct {
	Total             decimal.Decimal
	Count             int
	CurrentMonthTotal decimal.Decimal
	MonthlyTrend      []MonthTotal
	Categories        []CategoryTotal
}

// Summarize aggregates expenses relative to now. The trend covers the given
// number of months ending with the month of now, oldest first, including
// months with no spend. Categories are ordered by total descending, then name.
func Summarize(expenses []models.Expense, now time.Time, months int) Summary {
	now = now.UTC()
	current := now.Format(MonthLayout)

	summary := Summary{
		Total:             decimal.Zero,
		CurrentMonthTotal: decimal.Zero,
		MonthlyTrend:      trendMonths(now, months),
	}
	trendIndex := make(map[string]int, len(summary.MonthlyTrend))
	for i, m := range summary.MonthlyTrend {
		trendIndex[m.Month] = i
	}
	byCategory := make(map[string]*CategoryTotal)

	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++

		month := e.ExpenseDate.UTC().Format(MonthLayout)
		if month == current {
			summary.CurrentMonthTotal = summary.CurrentMonthTotal.Add(e.Amount)
		}
		if i, ok := trendIndex[month]; ok {
			summary.MonthlyTrend[i].Total = summary.MonthlyTrend[i].Total.Add(e.Amount)
		}

		cat, ok := byCategory[e.CategoryID]
		if !ok {
			cat = &CategoryTotal{CategoryID: e.CategoryID, Name: e.CategoryName, Total: decimal.Zero}
			byCategory[e.CategoryID] = cat
		}
		cat.Total = cat.Total.Add(e.Amount)
		cat.Count++
	}

	summary.Categories = make([]CategoryTotal, 0, len(byCategory))
	for _, cat := range byCategory {
		summary.Categories = append(summary.Categories, *cat)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	return summary
}

// trendMonths returns zeroed buckets for the n months ending with now's month.
func trendMonths(now time.Time, n int) []MonthTotal {
	if n <= 0 {
		return []MonthTotal{}
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]MonthTotal, n)
	for i := range n {
		out[i] = MonthTotal{
			Month: first.AddDate(0, i-(n-1), 0).Format(MonthLayout),
			Total: decimal.Zero,
		}
	}
	return out
}
