package core

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseErrorKind discriminates the recoverable utterance-parse failures.
type ParseErrorKind string

const (
	MissingTypeKeyword ParseErrorKind = "missing_type_keyword"
	MissingAmount      ParseErrorKind = "missing_amount"
)

// ParseError is a user-correctable input error. Hint is safe to display
// verbatim to the speaker so they can rephrase.
type ParseError struct {
	Kind ParseErrorKind
	Hint string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse utterance: %s", e.Kind)
}

// ParsedEntry is the structured result of a successful parse. Amount is the
// canonical decimal string (comma separator already normalized to a dot);
// Text preserves the original utterance verbatim.
type ParsedEntry struct {
	Type     EntryType
	Amount   string
	Category string
	Text     string
}

var (
	// one or more digits, optionally a comma or dot and 1-2 more digits
	amountPattern = regexp.MustCompile(`\d+([.,]\d{1,2})?`)

	currencyPattern = regexp.MustCompile(`(?i)^(dollar|dollars|euro|euros|pound|pounds|yen|yuan|peso|rupee|€|\$|£|¥)\s*`)
)

// ParseUtterance converts one free-form spoken or typed sentence into the
// fields of an entry, or fails with a *ParseError the caller can show to the
// user. The function is pure and deterministic: the same input always yields
// the same result regardless of whether it came from speech transcription or
// manual typing.
//
// The sentence must start with "income" or "expense" (case-insensitive
// prefix match). The amount is the first numeric substring in the original
// text; everything after it, minus a single leading currency word or symbol,
// becomes the category. An empty remainder defaults to "Uncategorized".
func ParseUtterance(spokenText string) (ParsedEntry, error) {
	lower := strings.ToLower(spokenText)

	var entryType EntryType
	switch {
	case strings.HasPrefix(lower, "income"):
		entryType = Income
	case strings.HasPrefix(lower, "expense"):
		entryType = Expense
	default:
		return ParsedEntry{}, &ParseError{
			Kind: MissingTypeKeyword,
			Hint: "Please start with 'Income' or 'Expense'.\nExample: Income 20 Street cash",
		}
	}

	loc := amountPattern.FindStringIndex(spokenText)
	if loc == nil {
		return ParsedEntry{}, &ParseError{
			Kind: MissingAmount,
			Hint: "No amount found. Say: Income 20 Street cash",
		}
	}
	rawAmount := spokenText[loc[0]:loc[1]]
	amount := strings.Replace(rawAmount, ",", ".", 1)

	// Category is everything after the first occurrence of the raw amount.
	// If the free text itself contains a number before the real amount, the
	// split follows whichever numeric substring appears first; that is the
	// documented contract, not something to second-guess here.
	category := strings.TrimSpace(spokenText[loc[1]:])
	category = currencyPattern.ReplaceAllString(category, "")
	if category == "" {
		category = DefaultCategory
	}

	return ParsedEntry{
		Type:     entryType,
		Amount:   amount,
		Category: TitleCase(category),
		Text:     spokenText,
	}, nil
}
