package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PETROL", "Petrol"},
		{"CREDIT_CARD", "Credit Card"},
		{"DEBIT_CARD", "Debit Card"},
		{"UPI", "Upi"},
		{"CNG", "Cng"},
		{"", ""},
		{"already lower", "Already Lower"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ToTitleCase(tc.in), "input %q", tc.in)
	}
}

func TestCostPerLitre(t *testing.T) {
	assert.Equal(t, "25.00", CostPerLitre(1000, 40))
	assert.Equal(t, "0.00", CostPerLitre(1000, 0))
	assert.Equal(t, "0.00", CostPerLitre(1000, -5))
	assert.Equal(t, "1.67", CostPerLitre(5, 3))
}

func TestCostPerLitreStrings(t *testing.T) {
	assert.Equal(t, "25.00", CostPerLitreStrings("1000", "40"))
	assert.Equal(t, "0.00", CostPerLitreStrings("1000", ""))
	assert.Equal(t, "0.00", CostPerLitreStrings("abc", "40"))
	assert.Equal(t, "0.00", CostPerLitreStrings("1000", "0"))
	assert.Equal(t, "25.00", CostPerLitreStrings(" 1000 ", " 40 "))
}

func TestDay(t *testing.T) {
	assert.Equal(t, "", Day(time.Time{}))
	assert.Equal(t, "05 Mar 2024", Day(time.Date(2024, 3, 5, 13, 30, 0, 0, time.UTC)))
}
