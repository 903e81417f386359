package core

import (
	"errors"
	"testing"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"20", "20"},
		{"3.60", "3.60"},
		{"12,50", "12.50"},
		{"0", "0"},
		{"5.1", "5.1"},
		{" 7 ", "7"},
		{"1000000", "1000000"},
	}

	for i, tt := range tests {
		got, err := NormalizeAmount(tt.input)
		if err != nil {
			t.Fatalf("case %d: NormalizeAmount(%q) error: %v", i, tt.input, err)
		}
		if got != tt.want {
			t.Errorf("case %d: NormalizeAmount(%q) = %q, want %q", i, tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAmountInvalid(t *testing.T) {
	inputs := []string{
		"", "-1", "+5", "abc", "1.234", "1,234", "1.2.3", "12.", ".", "12x", "1e5", "NaN", "Inf",
	}
	for i, input := range inputs {
		if _, err := NormalizeAmount(input); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("case %d: NormalizeAmount(%q) err = %v, want ErrInvalidAmount", i, input, err)
		}
	}
}

func TestAmountValue(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"20", 20, true},
		{"3.60", 3.6, true},
		{"12,50", 12.5, true},
		{"-5", -5, true}, // lenient: legacy data may carry negatives
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for i, tt := range tests {
		got, ok := AmountValue(tt.input)
		if ok != tt.wantOK {
			t.Fatalf("case %d: AmountValue(%q) ok = %v, want %v", i, tt.input, ok, tt.wantOK)
		}
		if got != tt.want {
			t.Errorf("case %d: AmountValue(%q) = %v, want %v", i, tt.input, got, tt.want)
		}
	}
}
