package http

import (
	"fmt"
	"time"

	"heiyubudget/internal/core"
)

// voiceRequest carries one utterance from speech-to-text or manual typing.
type voiceRequest struct {
	Text string `json:"text"`
}

// entryRequest is the manual create/update payload.
type entryRequest struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

func (req *entryRequest) parse() (core.EntryType, string, string, string, error) {
	t := core.EntryType(sanitizeInput(req.Type))
	if err := t.Validate(); err != nil {
		return "", "", "", "", fmt.Errorf("type must be Income or Expense")
	}
	amount := sanitizeInput(req.Amount)
	if amount == "" {
		return "", "", "", "", fmt.Errorf("amount is required")
	}
	return t, amount, sanitizeInput(req.Category), sanitizeInput(req.Text), nil
}

// categoryRequest adds or deletes one catalog name.
type categoryRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func (req *categoryRequest) parse() (core.EntryType, string, error) {
	t := core.EntryType(sanitizeInput(req.Type))
	if err := t.Validate(); err != nil {
		return "", "", fmt.Errorf("type must be Income or Expense")
	}
	name := sanitizeInput(req.Name)
	if name == "" {
		return "", "", fmt.Errorf("name is required")
	}
	return t, name, nil
}

// renameRequest renames one catalog entry in place.
type renameRequest struct {
	Type    string `json:"type"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

func (req *renameRequest) parse() (core.EntryType, string, string, error) {
	t := core.EntryType(sanitizeInput(req.Type))
	if err := t.Validate(); err != nil {
		return "", "", "", fmt.Errorf("type must be Income or Expense")
	}
	oldName := sanitizeInput(req.OldName)
	newName := sanitizeInput(req.NewName)
	if oldName == "" || newName == "" {
		return "", "", "", fmt.Errorf("old_name and new_name are required")
	}
	return t, oldName, newName, nil
}

// recurringRequest creates or updates a recurring-income template.
type recurringRequest struct {
	Label       string `json:"label"`
	Amount      string `json:"amount"`
	Frequency   string `json:"frequency"`
	NextPayDate string `json:"next_pay_date"`
}

func (req *recurringRequest) parse() (core.RecurringIncome, error) {
	nextPay, err := parseDate(req.NextPayDate)
	if err != nil {
		return core.RecurringIncome{}, fmt.Errorf("next_pay_date: %w", err)
	}
	ri := core.RecurringIncome{
		Label:       sanitizeInput(req.Label),
		Amount:      sanitizeInput(req.Amount),
		Frequency:   core.Frequency(sanitizeInput(req.Frequency)),
		NextPayDate: nextPay,
	}
	if err := ri.Validate(); err != nil {
		return core.RecurringIncome{}, err
	}
	return ri, nil
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", s)
	}
	return t, nil
}
