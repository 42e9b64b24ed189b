package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name              string
		interest          string
		principal         string
		payment           string
		expectedInterest  string
		expectedPrincipal string
		expectedUnused    string
	}{
		{
			name:              "covers interest and part of principal",
			interest:          "50",
			principal:         "500",
			payment:           "80",
			expectedInterest:  "0",
			expectedPrincipal: "470",
			expectedUnused:    "0",
		},
		{
			name:              "partial interest only",
			interest:          "50",
			principal:         "500",
			payment:           "20",
			expectedInterest:  "30",
			expectedPrincipal: "500",
			expectedUnused:    "0",
		},
		{
			name:              "exactly interest",
			interest:          "50",
			principal:         "500",
			payment:           "50",
			expectedInterest:  "0",
			expectedPrincipal: "500",
			expectedUnused:    "0",
		},
		{
			name:              "pays off everything",
			interest:          "50",
			principal:         "500",
			payment:           "550",
			expectedInterest:  "0",
			expectedPrincipal: "0",
			expectedUnused:    "0",
		},
		{
			name:              "overpayment is reported as unused",
			interest:          "50",
			principal:         "500",
			payment:           "600",
			expectedInterest:  "0",
			expectedPrincipal: "0",
			expectedUnused:    "50",
		},
		{
			name:              "no interest goes straight to principal",
			interest:          "0",
			principal:         "100",
			payment:           "40.50",
			expectedInterest:  "0",
			expectedPrincipal: "59.50",
			expectedUnused:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Allocate(d(tt.interest), d(tt.principal), d(tt.payment))
			assert.True(t, a.Interest.Equal(d(tt.expectedInterest)), "interest: want %s got %s", tt.expectedInterest, a.Interest)
			assert.True(t, a.Principal.Equal(d(tt.expectedPrincipal)), "principal: want %s got %s", tt.expectedPrincipal, a.Principal)
			assert.True(t, a.Unused.Equal(d(tt.expectedUnused)), "unused: want %s got %s", tt.expectedUnused, a.Unused)
		})
	}
}

func TestAllocate_Properties(t *testing.T) {
	values := []string{"0", "0.01", "10", "49.99", "50", "100", "1000.5"}
	for _, interest := range values {
		for _, principal := range values {
			for _, payment := range values[1:] {
				i, p, pay := d(interest), d(principal), d(payment)
				a := Allocate(i, p, pay)

				total := a.InterestApplied.Add(a.PrincipalApplied).Add(a.Unused)
				assert.True(t, total.Equal(pay), "applied parts must sum to payment: i=%s p=%s pay=%s", interest, principal, payment)

				if pay.LessThanOrEqual(i) {
					assert.True(t, a.Principal.Equal(p), "principal touched while interest remains: i=%s p=%s pay=%s", interest, principal, payment)
				}

				assert.False(t, a.Interest.IsNegative())
				assert.False(t, a.Principal.IsNegative())
				assert.True(t, a.Interest.Equal(i.Sub(a.InterestApplied)))
				assert.True(t, a.Principal.Equal(p.Sub(a.PrincipalApplied)))
				assert.True(t, a.Unused.GreaterThanOrEqual(decimal.Zero))
			}
		}
	}
}
