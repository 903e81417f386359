package http

import (
	"math"
	"time"

	"heiyubudget/internal/core"
)

type entryResponse struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Category  string `json:"category"`
	Text      string `json:"text,omitempty"`
	CreatedAt string `json:"created_at"`
}

func buildEntryResponse(e core.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Type:      string(e.Type),
		Amount:    e.Amount,
		Category:  e.Category,
		Text:      e.Text,
		CreatedAt: e.CreatedAt.Format(time.RFC3339Nano),
	}
}

func buildEntryListResponse(entries []core.Entry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = buildEntryResponse(e)
	}
	return out
}

type periodTotalsResponse struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

type summaryResponse struct {
	Income    periodTotalsResponse `json:"income"`
	Expense   periodTotalsResponse `json:"expense"`
	WeekStart string               `json:"week_start"`
}

// round2 applies the 2-digit display rounding. The aggregator itself always
// returns full-precision sums; rounding lives here, at the edge.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func buildSummaryResponse(s core.Summary, weekStart time.Weekday) summaryResponse {
	build := func(t core.PeriodTotals) periodTotalsResponse {
		return periodTotalsResponse{
			Today: round2(t.Today),
			Week:  round2(t.Week),
			Month: round2(t.Month),
		}
	}
	return summaryResponse{
		Income:    build(s.Income),
		Expense:   build(s.Expense),
		WeekStart: weekStart.String(),
	}
}

type categoriesResponse struct {
	IncomeCategories  []string `json:"income_categories"`
	ExpenseCategories []string `json:"expense_categories"`
}

func buildCategoriesResponse(set core.CategorySet) categoriesResponse {
	return categoriesResponse{
		IncomeCategories:  set.IncomeCategories,
		ExpenseCategories: set.ExpenseCategories,
	}
}

type recurringResponse struct {
	ID          int64  `json:"id"`
	Label       string `json:"label"`
	Amount      string `json:"amount"`
	Frequency   string `json:"frequency"`
	NextPayDate string `json:"next_pay_date"`
	CreatedAt   string `json:"created_at"`
}

func buildRecurringResponse(ri core.RecurringIncome) recurringResponse {
	return recurringResponse{
		ID:          ri.ID,
		Label:       ri.Label,
		Amount:      ri.Amount,
		Frequency:   string(ri.Frequency),
		NextPayDate: ri.NextPayDate.Format("2006-01-02"),
		CreatedAt:   ri.CreatedAt.Format(time.RFC3339Nano),
	}
}
