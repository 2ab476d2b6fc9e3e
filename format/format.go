// Package format converts raw spreadsheet cell values into display strings
// according to a small set of format codes. Formatting never fails: any value
// that cannot be handled by its format code degrades to the value's plain
// string form.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SheetsEpoch is the spreadsheet date epoch. Date cells arrive as serial
// numbers counted in days since this date.
var SheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Code enumerates the known format codes. Unrecognized strings map to
// CodeText.
type Code int

const (
	CodeText Code = iota
	CodeCurrency0
	CodeCurrency1
	CodeCurrency2
	CodePercent0
	CodePercent1
	CodePercent2
	CodeInteger
	CodeDecimal1
	CodeDecimal2
	CodeDateMDY
	CodeDateShort
	CodeTextNumber
)

// ParseCode maps a format string to its Code. Matching is case-insensitive
// and tolerant of surrounding whitespace; anything unknown is CodeText.
func ParseCode(s string) Code {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "currency0":
		return CodeCurrency0
	case "currency1":
		return CodeCurrency1
	case "currency2":
		return CodeCurrency2
	case "percent0":
		return CodePercent0
	case "percent1":
		return CodePercent1
	case "percent2":
		return CodePercent2
	case "integer":
		return CodeInteger
	case "decimal1":
		return CodeDecimal1
	case "decimal2":
		return CodeDecimal2
	case "date_mdy":
		return CodeDateMDY
	case "date_short":
		return CodeDateShort
	case "text_number":
		return CodeTextNumber
	default:
		return CodeText
	}
}

// grouped renders numbers with English thousands separators.
var grouped = message.NewPrinter(language.English)

var numberWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen", "Twenty",
}

// Value formats raw according to the given format code and wraps the result
// in prefix and suffix. A nil or blank raw value short-circuits to emptyValue
// with no prefix or suffix applied.
func Value(raw any, formatCode, prefix, suffix, emptyValue string) string {
	if isEmpty(raw) {
		return emptyValue
	}

	var result string
	switch ParseCode(formatCode) {
	case CodeCurrency0:
		result = currencyOr(raw, 0)
	case CodeCurrency1:
		result = currencyOr(raw, 1)
	case CodeCurrency2:
		result = currencyOr(raw, 2)
	case CodePercent0:
		result = percentOr(raw, 0)
	case CodePercent1:
		result = percentOr(raw, 1)
	case CodePercent2:
		result = percentOr(raw, 2)
	case CodeInteger:
		if n, ok := ParseNumber(raw); ok {
			result = grouped.Sprintf("%d", int64(math.Round(n)))
		} else {
			result = Stringify(raw)
		}

	case CodeDecimal1:
		result = decimalOr(raw, 1)
	case CodeDecimal2:
		result = decimalOr(raw, 2)
	case CodeDateMDY:
		result = dateMDY(raw)
	case CodeDateShort:
		result = dateShort(raw)
	case CodeTextNumber:
		result = textNumber(raw)
	default:
		result = Stringify(raw)
	}

	return prefix + result + suffix
}

// ParseNumber parses a raw cell value into a float64. String inputs are
// cleaned of thousands separators, currency symbols, percent signs and
// spaces; a surrounding parenthesis pair becomes a negative sign (accounting
// convention). The second return is false when the value is not numeric.
func ParseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.ReplaceAll(cleaned, "$", "")
		cleaned = strings.ReplaceAll(cleaned, "%", "")
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
			cleaned = "-" + cleaned[1:len(cleaned)-1]
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Stringify renders a raw value's plain string form, the universal fallback
// for values a format code cannot handle.
func Stringify(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", raw)
}

func isEmpty(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// groupedFixed renders a float with thousands separators and a fixed number
// of decimal places (0, 1 or 2).
func groupedFixed(v float64, decimals int) string {
	switch decimals {
	case 0:
		return grouped.Sprintf("%.0f", v)
	case 1:
		return grouped.Sprintf("%.1f", v)
	default:
		return grouped.Sprintf("%.2f", v)
	}
}

func currencyOr(raw any, decimals int) string {
	n, ok := ParseNumber(raw)
	if !ok {
		return Stringify(raw)
	}
	formatted := groupedFixed(math.Abs(n), decimals)
	if n < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

func percentOr(raw any, decimals int) string {
	n, ok := ParseNumber(raw)
	if !ok {
		return Stringify(raw)
	}
	// Values in (0, 1] are fractions and get multiplied by 100; anything
	// larger is already a percentage. |v| == 1 counts as a fraction.
	if abs := math.Abs(n); abs > 0 && abs <= 1 {
		n *= 100
	}
	return fmt.Sprintf("%.*f%%", decimals, n)
}

func decimalOr(raw any, decimals int) string {
	n, ok := ParseNumber(raw)
	if !ok {
		return Stringify(raw)
	}
	return groupedFixed(n, decimals)
}

// mdyLayouts is the authoritative order in which date strings are tried.
// Ambiguous strings such as "01/02/2021" resolve to the first match (US).
var mdyLayouts = []string{"2006-01-02", "01/02/2006", "02/01/2006", "January 2, 2006"}

var shortLayouts = []string{"2006-01-02", "01/02/2006", "02/01/2006"}

func parseDate(raw any, layouts []string) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		if n, ok := ParseNumber(raw); ok {
			return SheetsEpoch.AddDate(0, 0, int(n)), true
		}
		return time.Time{}, false
	}
}

func dateMDY(raw any) string {
	t, ok := parseDate(raw, mdyLayouts)
	if !ok {
		return Stringify(raw)
	}
	return fmt.Sprintf("%s %d, %d", t.Month(), t.Day(), t.Year())
}

func dateShort(raw any) string {
	t, ok := parseDate(raw, shortLayouts)
	if !ok {
		return Stringify(raw)
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Year())
}

func textNumber(raw any) string {
	n, ok := ParseNumber(raw)
	if !ok {
		return Stringify(raw)
	}
	i := int(math.Round(n))
	if i < 0 || i >= len(numberWords) {
		return Stringify(raw)
	}
	return numberWords[i]
}
