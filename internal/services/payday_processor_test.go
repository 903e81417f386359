package services

import (
	"context"
	"testing"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger/memory"
)

func TestProcessDueCreatesEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.New(nil)
	svc := NewEntryService(store, nil)
	proc := NewPaydayProcessor(store, svc)

	pay := time.Date(2026, time.April, 3, 9, 0, 0, 0, time.UTC)
	if _, err := store.AddRecurringIncome(ctx, core.RecurringIncome{
		Label: "Friday payout", Amount: "250", Frequency: core.Weekly, NextPayDate: pay,
	}); err != nil {
		t.Fatalf("AddRecurringIncome: %v", err)
	}

	now := pay.Add(time.Hour)
	created, err := proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if created != 1 {
		t.Fatalf("created = %d, want 1", created)
	}

	entries, _ := store.ListEntries(ctx)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Type != core.Income || e.Amount != "250" || e.Category != "Friday Payout" {
		t.Errorf("materialized entry = %+v", e)
	}
	if !e.CreatedAt.Equal(pay) {
		t.Errorf("entry dated %v, want pay date %v", e.CreatedAt, pay)
	}

	// template advanced one week
	templates, _ := store.ListRecurringIncomes(ctx)
	if want := pay.AddDate(0, 0, 7); !templates[0].NextPayDate.Equal(want) {
		t.Errorf("NextPayDate = %v, want %v", templates[0].NextPayDate, want)
	}

	// second run with the same clock is a no-op
	created, err = proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatalf("second ProcessDue: %v", err)
	}
	if created != 0 {
		t.Errorf("second run created %d entries", created)
	}
}

func TestProcessDueCatchesUpMissedPeriods(t *testing.T) {
	ctx := context.Background()
	store := memory.New(nil)
	proc := NewPaydayProcessor(store, NewEntryService(store, nil))

	pay := time.Date(2026, time.April, 3, 9, 0, 0, 0, time.UTC)
	if _, err := store.AddRecurringIncome(ctx, core.RecurringIncome{
		Label: "Payout", Amount: "100", Frequency: core.Weekly, NextPayDate: pay,
	}); err != nil {
		t.Fatalf("AddRecurringIncome: %v", err)
	}

	// three weeks later: three missed paydays
	created, err := proc.ProcessDue(ctx, pay.AddDate(0, 0, 15))
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if created != 3 {
		t.Errorf("created = %d, want 3 catch-up entries", created)
	}
}

func TestProcessDueSkipsBrokenTemplates(t *testing.T) {
	ctx := context.Background()
	store := memory.New(nil)
	proc := NewPaydayProcessor(store, NewEntryService(store, nil))
	pay := time.Date(2026, time.April, 3, 9, 0, 0, 0, time.UTC)

	if _, err := store.AddRecurringIncome(ctx, core.RecurringIncome{
		Label: "", Amount: "100", Frequency: core.Weekly, NextPayDate: pay,
	}); err != nil {
		t.Fatalf("add broken template: %v", err)
	}
	if _, err := store.AddRecurringIncome(ctx, core.RecurringIncome{
		Label: "Good", Amount: "100", Frequency: core.Weekly, NextPayDate: pay,
	}); err != nil {
		t.Fatalf("add good template: %v", err)
	}

	created, err := proc.ProcessDue(ctx, pay.Add(time.Hour))
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if created != 1 {
		t.Errorf("created = %d, want 1 (broken template skipped)", created)
	}
}

func TestProcessDueNotInitialized(t *testing.T) {
	proc := NewPaydayProcessor(nil, nil)
	if _, err := proc.ProcessDue(context.Background(), time.Now()); err == nil {
		t.Error("expected error for uninitialized processor")
	}
}
