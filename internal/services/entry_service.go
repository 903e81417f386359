// Package services provides business logic and orchestration between the
// storage ports, the parser and the messaging layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger"
)

// SyncPublisher notifies the backup worker that an entry needs mirroring.
// Publish failures never fail the originating request: the periodic pending
// sweep in the worker picks up anything a lost message would have covered.
type SyncPublisher interface {
	PublishEntrySync(ctx context.Context, id int64) error
}

// EntryService orchestrates entry operations across the ledger store and
// the sync pipeline.
type EntryService struct {
	store     ledger.Store
	publisher SyncPublisher
}

func NewEntryService(store ledger.Store, publisher SyncPublisher) *EntryService {
	return &EntryService{
		store:     store,
		publisher: publisher,
	}
}

// CreateFromUtterance parses a spoken or typed sentence and saves the
// resulting entry. Parse failures come back as *core.ParseError so the
// handler can surface the hint.
func (s *EntryService) CreateFromUtterance(ctx context.Context, utterance string, now time.Time) (core.Entry, error) {
	parsed, err := core.ParseUtterance(utterance)
	if err != nil {
		return core.Entry{}, err
	}

	entry, err := core.NewEntry(parsed.Type, parsed.Amount, parsed.Category, parsed.Text, now)
	if err != nil {
		return core.Entry{}, fmt.Errorf("build entry: %w", err)
	}
	return s.save(ctx, entry)
}

// CreateEntry validates and saves a manually composed entry.
func (s *EntryService) CreateEntry(ctx context.Context, t core.EntryType, amount, category, text string, now time.Time) (core.Entry, error) {
	entry, err := core.NewEntry(t, amount, category, text, now)
	if err != nil {
		return core.Entry{}, err
	}
	return s.save(ctx, entry)
}

func (s *EntryService) save(ctx context.Context, entry core.Entry) (core.Entry, error) {
	saved, err := s.store.AddEntry(ctx, entry)
	if err != nil {
		return core.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	s.publishSync(ctx, saved.ID)
	return saved, nil
}

// UpdateEntry replaces an entry's fields wholesale, keeping its identity.
// The edit refreshes created_at, so an edited entry moves to the top of the
// history and re-buckets under the new timestamp.
func (s *EntryService) UpdateEntry(ctx context.Context, id int64, t core.EntryType, amount, category, text string, now time.Time) (core.Entry, error) {
	entry, err := core.NewEntry(t, amount, category, text, now)
	if err != nil {
		return core.Entry{}, err
	}
	entry.ID = id

	updated, err := s.store.UpdateEntry(ctx, entry)
	if err != nil {
		return core.Entry{}, fmt.Errorf("update entry %d: %w", id, err)
	}
	s.publishSync(ctx, id)
	return updated, nil
}

// DeleteEntry removes an entry from the ledger. The spreadsheet backup is
// append-only audit history, so deletions stay local.
func (s *EntryService) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

// ListEntries returns the full history, newest first.
func (s *EntryService) ListEntries(ctx context.Context) ([]core.Entry, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Summary aggregates the ledger over the day, week and month containing
// now. A store failure degrades to an empty summary: availability over
// strictness, matching the lenient aggregation policy.
func (s *EntryService) Summary(ctx context.Context, now time.Time, weekStart time.Weekday) (core.Summary, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Summary falling back to empty entry list", "error", err)
		entries = nil
	}
	return core.Summarize(entries, now, weekStart), nil
}

func (s *EntryService) publishSync(ctx context.Context, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEntrySync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// request already succeeded locally; the pending sweep will catch up
	}
}
