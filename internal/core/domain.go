package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	Income  EntryType = "Income"
	Expense EntryType = "Expense"
)

// DefaultCategory is used when an utterance or form leaves the category blank.
const DefaultCategory = "Uncategorized"

type (
	EntryType string

	// Entry is one recorded income or expense event. Amount is kept as an
	// exact-precision decimal string to avoid floating-point currency drift;
	// CreatedAt is the sole ordering and bucketing key.
	Entry struct {
		ID        int64
		Type      EntryType
		Amount    string
		Category  string
		Text      string
		CreatedAt time.Time
	}

	// CategorySet holds the per-type category catalogs offered for
	// autocomplete. Names are unique within a set; insertion order is
	// preserved for display.
	CategorySet struct {
		IncomeCategories  []string
		ExpenseCategories []string
	}
)

var (
	ErrInvalidType   = errors.New("invalid entry type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyLabel    = errors.New("empty label")
)

// Validate checks the entry type value.
func (t EntryType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// NewEntry is the strict constructor used for entries created by the parser
// or by direct user input. The amount must normalize to a finite,
// non-negative decimal; otherwise no entry is constructed. Historical or
// imported entries that bypassed this constructor are tolerated by the
// aggregation layer instead.
func NewEntry(t EntryType, amount, category, text string, createdAt time.Time) (Entry, error) {
	if err := t.Validate(); err != nil {
		return Entry{}, err
	}
	canonical, err := NormalizeAmount(amount)
	if err != nil {
		return Entry{}, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Entry{
		Type:      t,
		Amount:    canonical,
		Category:  TitleCase(category),
		Text:      text,
		CreatedAt: createdAt,
	}, nil
}

// Validate re-checks an entry against the strict invariants. Used on the
// manual create and edit paths.
func (e Entry) Validate() error {
	if err := e.Type.Validate(); err != nil {
		return err
	}
	if _, err := NormalizeAmount(e.Amount); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}
	return nil
}

// TitleCase capitalizes the first letter of each whitespace-separated word
// and lowercases the rest, rejoining with single spaces.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// DefaultCategories returns the seeded category catalogs.
func DefaultCategories() CategorySet {
	return CategorySet{
		IncomeCategories:  []string{"Salary", "Freelance", "Gift", "Other"},
		ExpenseCategories: []string{"Food", "Transport", "Rent", "Utilities", "Entertainment", "Health", "Other"},
	}
}

// ForType returns the catalog for the given entry type.
func (cs CategorySet) ForType(t EntryType) []string {
	if t == Income {
		return cs.IncomeCategories
	}
	return cs.ExpenseCategories
}

func (cs *CategorySet) setForType(t EntryType, names []string) {
	if t == Income {
		cs.IncomeCategories = names
	} else {
		cs.ExpenseCategories = names
	}
}

// Add inserts a title-cased category name at the end of the catalog for the
// given type. Returns false if the name is empty or already present.
func (cs *CategorySet) Add(t EntryType, name string) bool {
	formatted := TitleCase(strings.TrimSpace(name))
	if formatted == "" {
		return false
	}
	names := cs.ForType(t)
	for _, n := range names {
		if n == formatted {
			return false
		}
	}
	cs.setForType(t, append(names, formatted))
	return true
}

// Delete removes a category name from the catalog for the given type.
// Entries already recorded under the name are left untouched.
func (cs *CategorySet) Delete(t EntryType, name string) bool {
	names := cs.ForType(t)
	for i, n := range names {
		if n == name {
			cs.setForType(t, append(names[:i:i], names[i+1:]...))
			return true
		}
	}
	return false
}

// Rename replaces a catalog name in place, preserving its position.
// Renaming only updates the catalog: entries recorded under the old name
// keep it, which is the intended product behavior rather than a defect.
// Returns false if the old name is missing or the new name would collide.
func (cs *CategorySet) Rename(t EntryType, oldName, newName string) bool {
	formatted := TitleCase(strings.TrimSpace(newName))
	if formatted == "" {
		return false
	}
	names := cs.ForType(t)
	idx := -1
	for i, n := range names {
		if n == formatted && n != oldName {
			return false
		}
		if n == oldName {
			idx = i
		}
	}
	if idx < 0 {
		return false
	}
	names[idx] = formatted
	return true
}
