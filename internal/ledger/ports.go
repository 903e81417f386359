// Package ledger defines the storage ports the application is written
// against. Backends (in-memory, SQLite) implement these interfaces; the
// HTTP layer and the workers never touch a concrete store directly.
package ledger

import (
	"context"
	"errors"

	"heiyubudget/internal/core"
)

// ErrNotFound is returned when an entry, category or recurring income does
// not exist in the store.
var ErrNotFound = errors.New("not found")

// EntryStore persists financial entries. Implementations assign IDs on Add.
// Callers treat an empty list as "zero entries", never as a fatal condition.
type EntryStore interface {
	ListEntries(ctx context.Context) ([]core.Entry, error)
	GetEntry(ctx context.Context, id int64) (core.Entry, error)
	AddEntry(ctx context.Context, entry core.Entry) (core.Entry, error)
	UpdateEntry(ctx context.Context, entry core.Entry) (core.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// CategoryStore persists the per-type category catalogs. Load on an empty
// store returns the seeded defaults.
type CategoryStore interface {
	LoadCategories(ctx context.Context) (core.CategorySet, error)
	SaveCategories(ctx context.Context, set core.CategorySet) error
}

// SettingsStore is a small key-value store for user preferences (currency
// symbol, display options). Get returns ok=false when the key is unset.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// RecurringIncomeStore persists recurring-income templates consumed by the
// payday worker.
type RecurringIncomeStore interface {
	ListRecurringIncomes(ctx context.Context) ([]core.RecurringIncome, error)
	AddRecurringIncome(ctx context.Context, ri core.RecurringIncome) (core.RecurringIncome, error)
	UpdateRecurringIncome(ctx context.Context, ri core.RecurringIncome) (core.RecurringIncome, error)
	DeleteRecurringIncome(ctx context.Context, id int64) error
}

// SyncTracker exposes the backup-sync bookkeeping used by the sync worker:
// entries not yet mirrored to the external backup, and the mark that flips
// once they are.
type SyncTracker interface {
	ListPendingSync(ctx context.Context, limit int) ([]core.Entry, error)
	MarkSynced(ctx context.Context, id int64) error
}

// EntryAppender is the outbound backup target the sync worker writes to.
type EntryAppender interface {
	AppendEntry(ctx context.Context, entry core.Entry) error
}

// Store aggregates everything a full backend provides.
type Store interface {
	EntryStore
	CategoryStore
	SettingsStore
	RecurringIncomeStore
	SyncTracker
}
