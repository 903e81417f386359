// Package core provides the pure domain logic for the budget tracker:
// entry and category types, amount normalization, the utterance parser and
// the period aggregator.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeAmount validates a decimal amount string and returns its
// canonical form with a dot decimal separator. It accepts both dot (12.34)
// and comma (12,34) separators and at most two fractional digits. The value
// must be finite and non-negative.
//
// Examples:
//
//	NormalizeAmount("20")     -> "20", nil
//	NormalizeAmount("12,50")  -> "12.50", nil
//	NormalizeAmount("3.60")   -> "3.60", nil
//	NormalizeAmount("-1")     -> "", ErrInvalidAmount
func NormalizeAmount(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only non-negative values allowed
		return "", ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return "", ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" || len(fracPart) > 2 || (len(parts) == 2 && fracPart == "") {
		return "", ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return "", ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return "", ErrInvalidAmount
		}
	}
	if fracPart == "" {
		return intPart, nil
	}
	return intPart + "." + fracPart, nil
}

// AmountValue is the lenient companion to NormalizeAmount used during
// aggregation. It parses an amount string as a float and reports whether the
// result is a usable finite number. Entries that fail this parse are skipped
// rather than rejected, so a summary stays available even when historical or
// imported data carries malformed amounts.
func AmountValue(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
