package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heiyubudget/internal/core"
	"heiyubudget/internal/ledger"
)

// PaydayProcessor materializes due recurring-income templates into regular
// Income entries and advances their next pay date.
type PaydayProcessor struct {
	store   ledger.Store
	entries *EntryService
}

func NewPaydayProcessor(store ledger.Store, entries *EntryService) *PaydayProcessor {
	return &PaydayProcessor{
		store:   store,
		entries: entries,
	}
}

// ProcessDue walks all recurring-income templates and creates one Income
// entry per elapsed pay period, dated at the period's pay date. Returns the
// number of entries created. One broken template does not stop the others.
func (p *PaydayProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil || p.entries == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	templates, err := p.store.ListRecurringIncomes(ctx)
	if err != nil {
		return 0, fmt.Errorf("list recurring incomes: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring incomes",
		"total", len(templates),
		"processing_date", now.Format("2006-01-02"))

	created := 0
	for _, ri := range templates {
		n, err := p.processTemplate(ctx, ri, now)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to process recurring income",
				"id", ri.ID,
				"label", ri.Label,
				"error", err)
			continue
		}
		created += n
	}

	slog.InfoContext(ctx, "Recurring income processing complete",
		"created", created,
		"total_checked", len(templates))

	return created, nil
}

func (p *PaydayProcessor) processTemplate(ctx context.Context, ri core.RecurringIncome, now time.Time) (int, error) {
	if err := ri.Validate(); err != nil {
		return 0, fmt.Errorf("invalid template: %w", err)
	}

	created := 0
	for ri.Due(now) {
		entry, err := p.entries.CreateEntry(ctx, core.Income, ri.Amount, ri.Label, ri.Label, ri.NextPayDate)
		if err != nil {
			return created, fmt.Errorf("create income entry: %w", err)
		}

		ri.NextPayDate = ri.Advance()
		if _, err := p.store.UpdateRecurringIncome(ctx, ri); err != nil {
			// entry exists but the template did not advance; bail out so the
			// next run does not double-create past this point without a trace
			return created, fmt.Errorf("advance template after entry %d: %w", entry.ID, err)
		}

		created++
		slog.InfoContext(ctx, "Created income from recurring template",
			"recurring_id", ri.ID,
			"label", ri.Label,
			"amount", ri.Amount,
			"next_pay_date", ri.NextPayDate.Format("2006-01-02"))
	}
	return created, nil
}
