package core

import (
	"fmt"
	"time"
)

// Frequency is how often a recurring income pays out.
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	Monthly     Frequency = "monthly"
)

// Validate checks the frequency value.
func (f Frequency) Validate() error {
	switch f {
	case Weekly, Fortnightly, Monthly:
		return nil
	default:
		return fmt.Errorf("unknown frequency: %s", f)
	}
}

// RecurringIncome is a template for income that arrives on a schedule
// (a weekly gig payout, a monthly salary). The payday worker materializes
// each template into a regular Income entry whenever NextPayDate is reached,
// then advances NextPayDate by one period.
type RecurringIncome struct {
	ID          int64
	Label       string
	Amount      string
	Frequency   Frequency
	NextPayDate time.Time
	CreatedAt   time.Time
}

// Validate checks the template invariants.
func (ri RecurringIncome) Validate() error {
	if ri.Label == "" {
		return ErrEmptyLabel
	}
	if _, err := NormalizeAmount(ri.Amount); err != nil {
		return err
	}
	if err := ri.Frequency.Validate(); err != nil {
		return err
	}
	if ri.NextPayDate.IsZero() {
		return fmt.Errorf("next pay date cannot be zero")
	}
	return nil
}

// Due reports whether the template should be materialized at now.
func (ri RecurringIncome) Due(now time.Time) bool {
	return !ri.NextPayDate.After(now)
}

// Advance returns the next pay date one period after the current one.
// Monthly advancement is calendar-aware: Jan 31 advances to the last day of
// February, per time.AddDate normalization being re-clamped here.
func (ri RecurringIncome) Advance() time.Time {
	switch ri.Frequency {
	case Weekly:
		return ri.NextPayDate.AddDate(0, 0, 7)
	case Fortnightly:
		return ri.NextPayDate.AddDate(0, 0, 14)
	case Monthly:
		d := ri.NextPayDate
		next := d.AddDate(0, 1, 0)
		// AddDate rolls Jan 31 into Mar 2/3; clamp to the last day of the
		// intended month instead
		if next.Day() != d.Day() {
			next = time.Date(d.Year(), d.Month()+2, 0, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
		}
		return next
	default:
		return ri.NextPayDate
	}
}
