package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/pkg/api"
)

func TestGetSummary(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	// testNow is 2024-03-20.
	createExpense(t, env, env.ann, "0.10", "2024-03-01", env.food)
	createExpense(t, env, env.ann, "0.20", "2024-03-10", env.food)
	createExpense(t, env, env.ann, "5.00", "2024-02-10", env.travel)
	createExpense(t, env, env.ann, "1.00", "2023-01-10", env.travel)
	createExpense(t, env, env.bob, "99.99", "2024-03-10", env.food)

	resp, err := env.summary.GetSummary(ctx, as(env.ann, &api.GetSummaryRequest{Months: 3}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	sum := resp.Msg

	if sum.Total.String() != "6.30" {
		t.Errorf("Expected total 6.30, got %s", sum.Total)
	}
	if sum.Count != 4 {
		t.Errorf("Expected count 4, got %d", sum.Count)
	}
	if sum.CurrentMonthTotal.String() != "0.30" {
		t.Errorf("Expected current month total 0.30, got %s", sum.CurrentMonthTotal)
	}

	wantTrend := []struct{ month, total string }{
		{"2024-01", "0.00"},
		{"2024-02", "5.00"},
		{"2024-03", "0.30"},
	}
	if len(sum.MonthlyTrend) != len(wantTrend) {
		t.Fatalf("Expected %d trend months, got %d", len(wantTrend), len(sum.MonthlyTrend))
	}
	for i, want := range wantTrend {
		got := sum.MonthlyTrend[i]
		if got.Month != want.month || got.Total.String() != want.total {
			t.Errorf("Trend %d: expected %s=%s, got %s=%s", i, want.month, want.total, got.Month, got.Total)
		}
	}

	if len(sum.Categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(sum.Categories))
	}
	if sum.Categories[0].Name != "Travel" || sum.Categories[0].Total.String() != "6.00" || sum.Categories[0].Count != 2 {
		t.Errorf("Unexpected top category: %+v", sum.Categories[0])
	}
	if sum.Categories[1].Name != "Food" || sum.Categories[1].Total.String() != "0.30" {
		t.Errorf("Unexpected second category: %+v", sum.Categories[1])
	}
}

func TestGetSummaryDefaultsAndRange(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	createExpense(t, env, env.ann, "2", "2024-03-01", env.food)
	createExpense(t, env, env.ann, "3", "2024-01-01", env.food)

	resp, err := env.summary.GetSummary(ctx, as(env.ann, &api.GetSummaryRequest{From: "2024-02-01"}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if len(resp.Msg.MonthlyTrend) != api.DefaultSummaryMonths {
		t.Errorf("Expected %d trend months, got %d", api.DefaultSummaryMonths, len(resp.Msg.MonthlyTrend))
	}
	if resp.Msg.Total.String() != "2.00" {
		t.Errorf("Expected range total 2.00, got %s", resp.Msg.Total)
	}

	_, err = env.summary.GetSummary(ctx, as(env.ann, &api.GetSummaryRequest{Months: 25}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetSummaryEmpty(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.summary.GetSummary(context.Background(), as(env.bob, &api.GetSummaryRequest{}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if resp.Msg.Total.String() != "0.00" || resp.Msg.Count != 0 || len(resp.Msg.Categories) != 0 {
		t.Errorf("Expected empty summary, got %+v", resp.Msg)
	}
}
