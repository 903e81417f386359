package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	at := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)

	e, err := NewEntry(Income, "12,50", "street cash", "Income 12,50 street cash", at)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if e.Amount != "12.50" {
		t.Errorf("Amount = %q, want %q", e.Amount, "12.50")
	}
	if e.Category != "Street Cash" {
		t.Errorf("Category = %q, want %q", e.Category, "Street Cash")
	}

	e, err = NewEntry(Expense, "5", "", "", at)
	if err != nil {
		t.Fatalf("NewEntry empty category: %v", err)
	}
	if e.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", e.Category, DefaultCategory)
	}

	if _, err := NewEntry("Transfer", "5", "", "", at); !errors.Is(err, ErrInvalidType) {
		t.Errorf("invalid type err = %v, want ErrInvalidType", err)
	}
	if _, err := NewEntry(Income, "-3", "", "", at); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount err = %v, want ErrInvalidAmount", err)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"street cash", "Street Cash"},
		{"GROCERY shopping", "Grocery Shopping"},
		{"fuel", "Fuel"},
		{"  spaced   out  ", "Spaced Out"},
		{"", ""},
	}
	for i, tt := range tests {
		if got := TitleCase(tt.input); got != tt.want {
			t.Errorf("case %d: TitleCase(%q) = %q, want %q", i, tt.input, got, tt.want)
		}
	}
}

func TestDefaultCategories(t *testing.T) {
	cs := DefaultCategories()
	if len(cs.IncomeCategories) != 4 {
		t.Errorf("income defaults = %v", cs.IncomeCategories)
	}
	if len(cs.ExpenseCategories) != 7 {
		t.Errorf("expense defaults = %v", cs.ExpenseCategories)
	}
	if cs.IncomeCategories[0] != "Salary" || cs.ExpenseCategories[0] != "Food" {
		t.Errorf("unexpected seed order: %v / %v", cs.IncomeCategories, cs.ExpenseCategories)
	}
}

func TestCategorySetAdd(t *testing.T) {
	cs := DefaultCategories()
	if !cs.Add(Income, "side hustle") {
		t.Fatal("Add returned false for a new name")
	}
	got := cs.IncomeCategories[len(cs.IncomeCategories)-1]
	if got != "Side Hustle" {
		t.Errorf("appended = %q, want %q", got, "Side Hustle")
	}
	if cs.Add(Income, "SIDE HUSTLE") {
		t.Error("Add accepted a duplicate after formatting")
	}
	if cs.Add(Income, "   ") {
		t.Error("Add accepted a blank name")
	}
}

func TestCategorySetDelete(t *testing.T) {
	cs := DefaultCategories()
	if !cs.Delete(Expense, "Rent") {
		t.Fatal("Delete returned false for an existing name")
	}
	for _, n := range cs.ExpenseCategories {
		if n == "Rent" {
			t.Error("Rent still present after delete")
		}
	}
	if cs.Delete(Expense, "Rent") {
		t.Error("Delete returned true for a missing name")
	}
	want := []string{"Food", "Transport", "Utilities", "Entertainment", "Health", "Other"}
	for i, n := range want {
		if cs.ExpenseCategories[i] != n {
			t.Fatalf("order broken after delete: %v", cs.ExpenseCategories)
		}
	}
}

func TestCategorySetRename(t *testing.T) {
	cs := DefaultCategories()
	if !cs.Rename(Expense, "Food", "groceries") {
		t.Fatal("Rename returned false")
	}
	if cs.ExpenseCategories[0] != "Groceries" {
		t.Errorf("rename did not preserve position: %v", cs.ExpenseCategories)
	}
	if cs.Rename(Expense, "Transport", "Groceries") {
		t.Error("Rename accepted a colliding name")
	}
	if cs.Rename(Expense, "Nope", "Whatever") {
		t.Error("Rename returned true for a missing name")
	}
	// renaming to itself with different casing is allowed
	if !cs.Rename(Expense, "Rent", "RENT") {
		t.Error("Rename rejected a same-name case change")
	}
	if cs.ExpenseCategories[2] != "Rent" {
		t.Errorf("case-change rename result: %v", cs.ExpenseCategories)
	}
}
