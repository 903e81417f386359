package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger/memory"
)

type recordingPublisher struct {
	ids  []int64
	fail bool
}

func (p *recordingPublisher) PublishEntrySync(ctx context.Context, id int64) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.ids = append(p.ids, id)
	return nil
}

func TestCreateFromUtterance(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewEntryService(memory.New(nil), pub)
	now := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)

	entry, err := svc.CreateFromUtterance(ctx, "Expense 12,50 euro fuel", now)
	if err != nil {
		t.Fatalf("CreateFromUtterance: %v", err)
	}
	if entry.ID == 0 {
		t.Error("entry not persisted")
	}
	if entry.Type != core.Expense || entry.Amount != "12.50" || entry.Category != "Fuel" {
		t.Errorf("parsed entry = %+v", entry)
	}
	if entry.Text != "Expense 12,50 euro fuel" {
		t.Errorf("utterance not preserved: %q", entry.Text)
	}
	if len(pub.ids) != 1 || pub.ids[0] != entry.ID {
		t.Errorf("sync not published: %v", pub.ids)
	}
}

func TestCreateFromUtteranceParseError(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(memory.New(nil), nil)

	_, err := svc.CreateFromUtterance(ctx, "hello world", time.Now())
	var parseErr *core.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *core.ParseError", err)
	}
	if parseErr.Kind != core.MissingTypeKeyword {
		t.Errorf("kind = %q", parseErr.Kind)
	}

	// nothing should have been stored
	list, _ := svc.ListEntries(ctx)
	if len(list) != 0 {
		t.Errorf("store not empty after parse failure: %d entries", len(list))
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(memory.New(nil), &recordingPublisher{fail: true})

	entry, err := svc.CreateEntry(ctx, core.Income, "20", "tips", "", time.Now())
	if err != nil {
		t.Fatalf("CreateEntry should not fail on publish error: %v", err)
	}
	if entry.ID == 0 {
		t.Error("entry not persisted")
	}
}

func TestUpdateEntryRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(memory.New(nil), nil)
	created := time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)
	edited := created.Add(48 * time.Hour)

	entry, err := svc.CreateEntry(ctx, core.Expense, "5", "food", "", created)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	updated, err := svc.UpdateEntry(ctx, entry.ID, core.Expense, "7", "food", "", edited)
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if updated.ID != entry.ID {
		t.Errorf("identity changed: %d -> %d", entry.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(edited) {
		t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, edited)
	}
	if updated.Amount != "7" {
		t.Errorf("Amount = %q, want 7", updated.Amount)
	}
}

func TestSummaryUsesWeekStartArgument(t *testing.T) {
	ctx := context.Background()
	svc := NewEntryService(memory.New(nil), nil)
	// Sunday 2026-03-15
	sunday := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC) // Wednesday

	if _, err := svc.CreateEntry(ctx, core.Income, "100", "", "", sunday); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	mondayWeek, err := svc.Summary(ctx, now, time.Monday)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if mondayWeek.Income.Week != 0 {
		t.Errorf("Monday-start week should exclude Sunday entry, got %v", mondayWeek.Income.Week)
	}

	sundayWeek, _ := svc.Summary(ctx, now, time.Sunday)
	if sundayWeek.Income.Week != 100 {
		t.Errorf("Sunday-start week should include Sunday entry, got %v", sundayWeek.Income.Week)
	}
	if mondayWeek.Income.Month != 100 || sundayWeek.Income.Month != 100 {
		t.Error("month window should include the entry regardless of week start")
	}
}
