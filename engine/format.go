package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// FORMATTING UTILITIES: presentation boundary
// ============================================================================
// Rounding is half away from zero everywhere (decimal.Round), applied to the
// shortest decimal representation of the float, so 12.25 → 12.3 and
// 0.15 → 0.2 regardless of binary representation.
// ============================================================================

// Round rounds v to places decimal places, half away from zero.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// FormatPercent formats v (already in percent units) with places decimals.
func FormatPercent(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places) + "%"
}

// FormatINR formats a rupee amount in whole rupees with Indian digit
// grouping: 1250000 → "₹12,50,000".
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	negative := d.IsNegative()
	digits := d.Abs().StringFixed(0)

	result := "₹" + groupIndian(digits)
	if negative {
		result = "-" + result
	}
	return result
}

// groupIndian inserts separators after the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return strconv.Itoa(n)
	}
	return FormatInt(n/1000) + "," + leftPad3(n%1000)
}

func leftPad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// LabelForField turns a snake_case key into a title: "risk_level" → "Risk Level".
func LabelForField(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
