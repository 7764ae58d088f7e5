package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToTitleCase renders enum-like API values for display: lowercase the input,
// replace underscores with spaces and capitalise each word.
// "CREDIT_CARD" -> "Credit Card", "UPI" -> "Upi".
func ToTitleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(strings.ToLower(s), "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Money formats a currency amount with two decimal places.
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// Litres formats a fuel volume with two decimal places.
func Litres(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// CostPerLitre derives the displayed unit cost from amount and litres.
// The unit cost is never stored independently; it is always recomputed here.
// Returns "0.00" whenever litres is not a positive quantity.
func CostPerLitre(amount, litres float64) string {
	if litres <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", amount/litres)
}

// CostPerLitreStrings is the form-input variant of CostPerLitre: both fields
// arrive as raw text and non-numeric input degrades to "0.00" rather than
// erroring while the user is still typing.
func CostPerLitreStrings(amount, litres string) string {
	a, errA := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	l, errL := strconv.ParseFloat(strings.TrimSpace(litres), 64)
	if errA != nil || errL != nil {
		return "0.00"
	}
	return CostPerLitre(a, l)
}

// Day renders a timestamp as a short calendar date, or an empty string for
// the zero time so unparseable upstream dates never render as garbage.
func Day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}
