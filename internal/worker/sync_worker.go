// Package worker mirrors ledger entries to the external backup target.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"heiyubudget/internal/amqp"
	"heiyubudget/internal/ledger"
)

// SyncWorker copies entries from the ledger to the backup appender. It is
// driven two ways: AMQP sync messages for near-real-time mirroring, and a
// periodic pending sweep that recovers anything a lost message missed.
type SyncWorker struct {
	store     ledger.Store
	backup    ledger.EntryAppender
	batchSize int
}

func NewSyncWorker(store ledger.Store, backup ledger.EntryAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single entry sync message from AMQP. The
// entry is always re-read from the store so the backup reflects the latest
// edit, not the state at publish time. A message for an entry deleted in
// the meantime is dropped without error.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	entry, err := w.store.GetEntry(ctx, msg.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		slog.InfoContext(ctx, "Entry deleted before sync, dropping message", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get entry from storage: %w", err)
	}

	if err := w.syncEntry(ctx, entry.ID); err != nil {
		return fmt.Errorf("sync entry: %w", err)
	}
	return nil
}

// ProcessPending mirrors up to one batch of not-yet-synced entries. This is
// the backup mechanism for lost AMQP messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.ListPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending entries: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending entries", "count", len(pending))

	for _, e := range pending {
		if err := w.syncEntry(ctx, e.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending entry", "id", e.ID, "error", err)
			continue
		}
	}
	return nil
}

// StartupSyncCheck drains a larger pending backlog once at worker startup,
// recovering from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.store.ListPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list pending entries for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending entries on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, e := range pending {
		if err := w.syncEntry(ctx, e.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync entry during startup",
				"id", e.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) syncEntry(ctx context.Context, id int64) error {
	entry, err := w.store.GetEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry %d: %w", id, err)
	}

	if err := w.backup.AppendEntry(ctx, entry); err != nil {
		return fmt.Errorf("append to backup: %w", err)
	}

	if err := w.store.MarkSynced(ctx, id); err != nil {
		// the backup write succeeded; the sweep will retry the mark
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Successfully synced entry",
		"id", entry.ID,
		"type", string(entry.Type),
		"amount", entry.Amount)
	return nil
}
