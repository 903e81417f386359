// Package storage provides the SQLite-backed ledger implementation.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func scanEntry(row interface{ Scan(...any) error }) (core.Entry, error) {
	var e core.Entry
	var createdAt string
	if err := row.Scan(&e.ID, &e.Type, &e.Amount, &e.Category, &e.Text, &createdAt); err != nil {
		return core.Entry{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return core.Entry{}, fmt.Errorf("parse created_at: %w", err)
	}
	e.CreatedAt = t
	return e, nil
}

func (r *SQLiteRepository) ListEntries(ctx context.Context) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount, category, text, created_at
		 FROM entries ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, type, amount, category, text, created_at FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

func (r *SQLiteRepository) AddEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (type, amount, category, text, created_at, synced)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		string(entry.Type), entry.Amount, entry.Category, entry.Text,
		entry.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Entry{}, fmt.Errorf("entry id: %w", err)
	}
	entry.ID = id

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", entry.ID,
		"type", string(entry.Type),
		"amount", entry.Amount,
		"category", entry.Category)
	return entry, nil
}

func (r *SQLiteRepository) UpdateEntry(ctx context.Context, entry core.Entry) (core.Entry, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE entries SET type = ?, amount = ?, category = ?, text = ?, created_at = ?, synced = 0
		 WHERE id = ?`,
		string(entry.Type), entry.Amount, entry.Category, entry.Text,
		entry.CreatedAt.Format(timeLayout), entry.ID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("update entry %d: %w", entry.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Entry{}, ledger.ErrNotFound
	}
	return entry, nil
}

func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) LoadCategories(ctx context.Context) (core.CategorySet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_type, name FROM categories ORDER BY entry_type, position`)
	if err != nil {
		return core.CategorySet{}, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var set core.CategorySet
	count := 0
	for rows.Next() {
		var entryType, name string
		if err := rows.Scan(&entryType, &name); err != nil {
			return core.CategorySet{}, fmt.Errorf("scan category: %w", err)
		}
		if core.EntryType(entryType) == core.Income {
			set.IncomeCategories = append(set.IncomeCategories, name)
		} else {
			set.ExpenseCategories = append(set.ExpenseCategories, name)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return core.CategorySet{}, fmt.Errorf("iterate categories: %w", err)
	}

	// first run: seed and persist the defaults
	if count == 0 {
		set = core.DefaultCategories()
		if err := r.SaveCategories(ctx, set); err != nil {
			return core.CategorySet{}, fmt.Errorf("seed categories: %w", err)
		}
	}
	return set, nil
}

func (r *SQLiteRepository) SaveCategories(ctx context.Context, set core.CategorySet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin categories tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	insert := func(t core.EntryType, names []string) error {
		for i, name := range names {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO categories (entry_type, name, position) VALUES (?, ?, ?)`,
				string(t), name, i); err != nil {
				return fmt.Errorf("insert category %q: %w", name, err)
			}
		}
		return nil
	}
	if err := insert(core.Income, set.IncomeCategories); err != nil {
		return err
	}
	if err := insert(core.Expense, set.ExpenseCategories); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) ListRecurringIncomes(ctx context.Context) ([]core.RecurringIncome, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, amount, frequency, next_pay_date, created_at
		 FROM recurring_incomes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recurring incomes: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringIncome
	for rows.Next() {
		var ri core.RecurringIncome
		var nextPay, createdAt string
		if err := rows.Scan(&ri.ID, &ri.Label, &ri.Amount, &ri.Frequency, &nextPay, &createdAt); err != nil {
			return nil, fmt.Errorf("scan recurring income: %w", err)
		}
		if ri.NextPayDate, err = time.Parse(timeLayout, nextPay); err != nil {
			return nil, fmt.Errorf("parse next_pay_date: %w", err)
		}
		if ri.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring incomes: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) AddRecurringIncome(ctx context.Context, ri core.RecurringIncome) (core.RecurringIncome, error) {
	if ri.CreatedAt.IsZero() {
		ri.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_incomes (label, amount, frequency, next_pay_date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ri.Label, ri.Amount, string(ri.Frequency),
		ri.NextPayDate.Format(timeLayout), ri.CreatedAt.Format(timeLayout))
	if err != nil {
		return core.RecurringIncome{}, fmt.Errorf("insert recurring income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.RecurringIncome{}, fmt.Errorf("recurring income id: %w", err)
	}
	ri.ID = id
	return ri, nil
}

func (r *SQLiteRepository) UpdateRecurringIncome(ctx context.Context, ri core.RecurringIncome) (core.RecurringIncome, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recurring_incomes SET label = ?, amount = ?, frequency = ?, next_pay_date = ?
		 WHERE id = ?`,
		ri.Label, ri.Amount, string(ri.Frequency), ri.NextPayDate.Format(timeLayout), ri.ID)
	if err != nil {
		return core.RecurringIncome{}, fmt.Errorf("update recurring income %d: %w", ri.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.RecurringIncome{}, ledger.ErrNotFound
	}
	return ri, nil
}

func (r *SQLiteRepository) DeleteRecurringIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recurring_incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recurring income %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount, category, text, created_at
		 FROM entries WHERE synced = 0 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE entries SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark synced %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}
