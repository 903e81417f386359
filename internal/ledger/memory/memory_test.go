package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger"
)

func newEntry(t *testing.T, typ core.EntryType, amount string, at time.Time) core.Entry {
	t.Helper()
	e, err := core.NewEntry(typ, amount, "Fuel", "", at)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	return e
}

func TestEntryCRUD(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	at := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)

	saved, err := s.AddEntry(ctx, newEntry(t, core.Expense, "3.60", at))
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("AddEntry did not assign an ID")
	}

	got, err := s.GetEntry(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got != saved {
		t.Errorf("GetEntry = %+v, want %+v", got, saved)
	}

	saved.Amount = "4"
	if _, err := s.UpdateEntry(ctx, saved); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	got, _ = s.GetEntry(ctx, saved.ID)
	if got.Amount != "4" {
		t.Errorf("Amount after update = %q, want 4", got.Amount)
	}

	if err := s.DeleteEntry(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := s.GetEntry(ctx, saved.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("GetEntry after delete err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteEntry(ctx, saved.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	base := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := s.AddEntry(ctx, newEntry(t, core.Income, "10", base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	list, err := s.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Errorf("entries not newest-first: %v before %v", list[i-1].CreatedAt, list[i].CreatedAt)
		}
	}
}

func TestCategoriesSeededAndIsolated(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	cats, err := s.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("LoadCategories: %v", err)
	}
	if len(cats.IncomeCategories) != 4 || len(cats.ExpenseCategories) != 7 {
		t.Fatalf("seeded catalogs: %+v", cats)
	}

	// mutating the returned copy must not leak into the store
	cats.IncomeCategories[0] = "Mutated"
	again, _ := s.LoadCategories(ctx)
	if again.IncomeCategories[0] != "Salary" {
		t.Error("LoadCategories returned shared state")
	}

	cats.Add(core.Income, "Side Hustle")
	if err := s.SaveCategories(ctx, cats); err != nil {
		t.Fatalf("SaveCategories: %v", err)
	}
	again, _ = s.LoadCategories(ctx)
	if len(again.IncomeCategories) != 5 {
		t.Errorf("saved catalog not persisted: %v", again.IncomeCategories)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	if _, ok, err := s.GetSetting(ctx, "currency"); err != nil || ok {
		t.Fatalf("unset key: ok=%v err=%v", ok, err)
	}
	if err := s.SetSetting(ctx, "currency", "$"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	v, ok, err := s.GetSetting(ctx, "currency")
	if err != nil || !ok || v != "$" {
		t.Errorf("GetSetting = %q/%v/%v", v, ok, err)
	}
}

func TestRecurringIncomes(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	pay := time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC)

	ri, err := s.AddRecurringIncome(ctx, core.RecurringIncome{
		Label: "Friday payout", Amount: "250", Frequency: core.Weekly, NextPayDate: pay,
	})
	if err != nil {
		t.Fatalf("AddRecurringIncome: %v", err)
	}
	if ri.ID == 0 || ri.CreatedAt.IsZero() {
		t.Fatalf("template not initialized: %+v", ri)
	}

	ri.NextPayDate = pay.AddDate(0, 0, 7)
	if _, err := s.UpdateRecurringIncome(ctx, ri); err != nil {
		t.Fatalf("UpdateRecurringIncome: %v", err)
	}
	list, _ := s.ListRecurringIncomes(ctx)
	if len(list) != 1 || !list[0].NextPayDate.Equal(ri.NextPayDate) {
		t.Errorf("list = %+v", list)
	}

	if err := s.DeleteRecurringIncome(ctx, ri.ID); err != nil {
		t.Fatalf("DeleteRecurringIncome: %v", err)
	}
	if err := s.DeleteRecurringIncome(ctx, ri.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}

func TestPendingSync(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	at := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)

	var ids []int64
	for i := 0; i < 3; i++ {
		e, _ := s.AddEntry(ctx, newEntry(t, core.Income, "10", at))
		ids = append(ids, e.ID)
	}

	pending, err := s.ListPendingSync(ctx, 2)
	if err != nil {
		t.Fatalf("ListPendingSync: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2 (limit)", len(pending))
	}

	if err := s.MarkSynced(ctx, ids[0]); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, _ = s.ListPendingSync(ctx, 10)
	if len(pending) != 2 {
		t.Errorf("pending after mark = %d, want 2", len(pending))
	}
	for _, e := range pending {
		if e.ID == ids[0] {
			t.Error("synced entry still listed as pending")
		}
	}

	// update flips the entry back to pending
	e, _ := s.GetEntry(ctx, ids[0])
	e.Amount = "11"
	if _, err := s.UpdateEntry(ctx, e); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	pending, _ = s.ListPendingSync(ctx, 10)
	if len(pending) != 3 {
		t.Errorf("pending after update = %d, want 3", len(pending))
	}

	if err := s.MarkSynced(ctx, 9999); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("MarkSynced missing id err = %v", err)
	}
}
