package format

import (
	"testing"
	"time"
)

func TestValue_EmptyShortCircuit(t *testing.T) {
	codes := []string{
		"currency0", "currency1", "currency2", "percent0", "percent1",
		"percent2", "integer", "decimal1", "decimal2", "date_mdy",
		"date_short", "text_number", "text", "bogus",
	}
	for _, code := range codes {
		// Prefix and suffix must not be applied to the empty fallback.
		if got := Value(nil, code, "pre-", "-suf", "N/A"); got != "N/A" {
			t.Errorf("Value(nil, %q) = %q, want %q", code, got, "N/A")
		}
		if got := Value("   ", code, "pre-", "-suf", ""); got != "" {
			t.Errorf("Value(blank, %q) = %q, want empty", code, got)
		}
	}
}

func TestValue_Currency(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		code string
		want string
	}{
		{"millions no decimals", 7500000, "currency0", "$7,500,000"},
		{"float input", 5000.0, "currency0", "$5,000"},
		{"one decimal", 5000.25, "currency1", "$5,000.2"},
		{"two decimals", 5000.0, "currency2", "$5,000.00"},
		{"negative sign before symbol", -1234.0, "currency0", "-$1,234"},
		{"parenthesis negative", "(500)", "currency0", "-$500"},
		{"string with separators", "$1,234,567", "currency0", "$1,234,567"},
		{"unparsable falls back", "n/a", "currency0", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.raw, tt.code, "", "", ""); got != tt.want {
				t.Errorf("Value(%v, %q) = %q, want %q", tt.raw, tt.code, got, tt.want)
			}
		})
	}
}

func TestValue_Percent(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		code string
		want string
	}{
		{"fraction multiplied", 0.325, "percent1", "32.5%"},
		{"boundary one multiplied", 1.0, "percent0", "100%"},
		{"already percent not multiplied", 42.0, "percent1", "42.0%"},
		{"zero not multiplied", 0.0, "percent1", "0.0%"},
		{"negative fraction", -0.05, "percent1", "-5.0%"},
		{"string with percent sign", "13.3%", "percent1", "13.3%"},
		{"two decimals", 0.1333, "percent2", "13.33%"},
		{"unparsable falls back", "none", "percent1", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.raw, tt.code, "", "", ""); got != tt.want {
				t.Errorf("Value(%v, %q) = %q, want %q", tt.raw, tt.code, got, tt.want)
			}
		})
	}
}

func TestValue_IntegerAndDecimal(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		code   string
		prefix string
		want   string
	}{
		{"integer with prefix", 1850, "integer", "Total: ", "Total: 1,850"},
		{"integer rounds", 10000.6, "integer", "", "10,001"},
		{"integer from string", "10,000", "integer", "", "10,000"},
		{"decimal1", 1234.56, "decimal1", "", "1,234.6"},
		{"decimal2", 5.0, "decimal2", "", "5.00"},
		{"decimal2 fallback", "abc", "decimal2", "", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.raw, tt.code, tt.prefix, "", ""); got != tt.want {
				t.Errorf("Value(%v, %q) = %q, want %q", tt.raw, tt.code, got, tt.want)
			}
		})
	}
}

func TestValue_Dates(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		code string
		want string
	}{
		{"serial date", 44287, "date_mdy", "April 1, 2021"},
		// Only native numeric values are serials; a numeric string that
		// matches no layout passes through unchanged.
		{"numeric string is not a serial", "44287", "date_mdy", "44287"},
		{"numeric string short unchanged", "44287", "date_short", "44287"},
		{"iso string", "2021-04-01", "date_mdy", "April 1, 2021"},
		{"us slash wins over eu", "01/02/2021", "date_mdy", "January 2, 2021"},
		{"eu slash when us impossible", "13/02/2021", "date_mdy", "February 13, 2021"},
		{"long form", "April 1, 2021", "date_mdy", "April 1, 2021"},
		{"time value", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "date_mdy", "December 31, 2024"},
		{"unparsable string unchanged", "sometime soon", "date_mdy", "sometime soon"},
		{"short from serial", 44287, "date_short", "4/2021"},
		{"short from iso", "2027-01-15", "date_short", "1/2027"},
		{"short ignores long form", "April 1, 2021", "date_short", "April 1, 2021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.raw, tt.code, "", "", ""); got != tt.want {
				t.Errorf("Value(%v, %q) = %q, want %q", tt.raw, tt.code, got, tt.want)
			}
		})
	}
}

func TestValue_TextNumber(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{0, "Zero"},
		{10, "Ten"},
		{20, "Twenty"},
		{"10", "Ten"},
		{21, "21"},
		{-1, "-1"},
		{"many", "many"},
	}
	for _, tt := range tests {
		if got := Value(tt.raw, "text_number", "", "", ""); got != tt.want {
			t.Errorf("Value(%v, text_number) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestValue_TextAndUnknown(t *testing.T) {
	if got := Value("hello", "text", "", "", ""); got != "hello" {
		t.Errorf("text passthrough = %q", got)
	}
	if got := Value("hello", "no_such_format", "<", ">", ""); got != "<hello>" {
		t.Errorf("unknown code = %q, want %q", got, "<hello>")
	}
	if got := Value(true, "text", "", "", ""); got != "true" {
		t.Errorf("bool stringified = %q", got)
	}
	// Codes are case-insensitive.
	if got := Value(1850, " INTEGER ", "", "", ""); got != "1,850" {
		t.Errorf("case-insensitive code = %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw    any
		want   float64
		wantOK bool
	}{
		{42, 42, true},
		{42.5, 42.5, true},
		{"1,234.5", 1234.5, true},
		{"$99", 99, true},
		{"15%", 15, true},
		{"(500)", -500, true},
		{"( 1,000 )", -1000, true},
		{" 12 ", 12, true},
		{"", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.raw)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseNumber(%v) = (%v, %v), want (%v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
