package ledger

import (
	"time"

	"github.com/segyhp/lending-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateInterest returns simple interest on principal for the whole days
// between lastAccrual and asOf.
//
//	interest = round(principal * (monthlyRate / 30) * days / 100, 2)
//
// It is zero when no whole day has elapsed, or when principal or rate is not
// positive. The checkpoint is not touched; that is the caller's decision.
func CalculateInterest(principal, monthlyRate decimal.Decimal, lastAccrual, asOf time.Time) decimal.Decimal {
	days := utils.WholeDaysBetween(lastAccrual, asOf)
	if days <= 0 || !utils.IsPositive(principal) || !utils.IsPositive(monthlyRate) {
		return decimal.Zero
	}

	// Multiply before dividing so 2/30 does not get truncated early.
	interest := principal.
		Mul(monthlyRate).
		Mul(decimal.NewFromInt(days)).
		Div(utils.DaysInMonth).
		Div(hundred)

	return utils.RoundCents(interest)
}

// Accrue folds interest pending since the checkpoint into s.Interest and moves
// the checkpoint to asOf. The pending amount is returned alongside.
func Accrue(s State, asOf time.Time) (State, decimal.Decimal) {
	pending := CalculateInterest(s.Principal, s.MonthlyRate, s.LastInterestDate, asOf)
	s.Interest = s.Interest.Add(pending)
	return s.advance(asOf), pending
}
