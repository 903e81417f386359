// Package memory provides an in-memory ledger backend used for local
// development and tests. All data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger"
	"heiyubudget/internal/log"
)

// Store is a mutex-guarded in-memory implementation of ledger.Store.
type Store struct {
	mu         sync.RWMutex
	entries    map[int64]core.Entry
	synced     map[int64]bool
	categories core.CategorySet
	settings   map[string]string
	recurring  map[int64]core.RecurringIncome
	nextID     int64
	logger     *log.Logger
}

// New creates an empty in-memory store seeded with the default category
// catalogs.
func New(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Store{
		entries:    make(map[int64]core.Entry),
		synced:     make(map[int64]bool),
		categories: core.DefaultCategories(),
		settings:   make(map[string]string),
		recurring:  make(map[int64]core.RecurringIncome),
		nextID:     1,
		logger:     logger.WithComponent(log.ComponentLedger),
	}
}

func (s *Store) ListEntries(ctx context.Context) ([]core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	// newest first, stable for equal timestamps
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return core.Entry{}, ledger.ErrNotFound
	}
	return e, nil
}

func (s *Store) AddEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	s.entries[entry.ID] = entry

	s.logger.InfoContext(ctx, "entry added",
		log.FieldOperation, log.OpCreate,
		log.FieldEntryID, entry.ID,
		log.FieldEntryType, string(entry.Type),
		log.FieldAmount, entry.Amount)
	return entry, nil
}

func (s *Store) UpdateEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[entry.ID]; !ok {
		return core.Entry{}, ledger.ErrNotFound
	}
	s.entries[entry.ID] = entry
	s.synced[entry.ID] = false
	return entry, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ledger.ErrNotFound
	}
	delete(s.entries, id)
	delete(s.synced, id)

	s.logger.InfoContext(ctx, "entry deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntryID, id)
	return nil
}

func (s *Store) LoadCategories(ctx context.Context) (core.CategorySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// copy so callers cannot mutate shared state
	out := core.CategorySet{
		IncomeCategories:  append([]string(nil), s.categories.IncomeCategories...),
		ExpenseCategories: append([]string(nil), s.categories.ExpenseCategories...),
	}
	return out, nil
}

func (s *Store) SaveCategories(ctx context.Context, set core.CategorySet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = core.CategorySet{
		IncomeCategories:  append([]string(nil), set.IncomeCategories...),
		ExpenseCategories: append([]string(nil), set.ExpenseCategories...),
	}
	return nil
}

func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return nil
}

func (s *Store) ListRecurringIncomes(ctx context.Context) ([]core.RecurringIncome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.RecurringIncome, 0, len(s.recurring))
	for _, ri := range s.recurring {
		out = append(out, ri)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) AddRecurringIncome(ctx context.Context, ri core.RecurringIncome) (core.RecurringIncome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ri.ID = s.nextID
	s.nextID++
	if ri.CreatedAt.IsZero() {
		ri.CreatedAt = time.Now()
	}
	s.recurring[ri.ID] = ri
	return ri, nil
}

func (s *Store) UpdateRecurringIncome(ctx context.Context, ri core.RecurringIncome) (core.RecurringIncome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recurring[ri.ID]; !ok {
		return core.RecurringIncome{}, ledger.ErrNotFound
	}
	s.recurring[ri.ID] = ri
	return ri, nil
}

func (s *Store) DeleteRecurringIncome(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recurring[id]; !ok {
		return ledger.ErrNotFound
	}
	delete(s.recurring, id)
	return nil
}

func (s *Store) ListPendingSync(ctx context.Context, limit int) ([]core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.entries))
	for id := range s.entries {
		if !s.synced[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]core.Entry, 0, limit)
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		out = append(out, s.entries[id])
	}
	return out, nil
}

func (s *Store) MarkSynced(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ledger.ErrNotFound
	}
	s.synced[id] = true
	return nil
}
