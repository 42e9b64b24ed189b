package ledger

import "github.com/shopspring/decimal"

// Allocation is the outcome of applying one payment to a balance.
type Allocation struct {
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	InterestApplied  decimal.Decimal `json:"interest_applied"`
	PrincipalApplied decimal.Decimal `json:"principal_applied"`
	Unused           decimal.Decimal `json:"unused"`
}

// Allocate applies payment to outstanding interest first, then principal.
// Whatever is left once both are zero is reported as Unused; the allocator
// does not decide what happens to it.
func Allocate(interest, principal, payment decimal.Decimal) Allocation {
	remaining := payment

	toInterest := decimal.Min(remaining, interest)
	if toInterest.IsNegative() {
		toInterest = decimal.Zero
	}
	remaining = remaining.Sub(toInterest)

	toPrincipal := decimal.Min(remaining, principal)
	if toPrincipal.IsNegative() {
		toPrincipal = decimal.Zero
	}
	remaining = remaining.Sub(toPrincipal)

	return Allocation{
		Interest:         interest.Sub(toInterest),
		Principal:        principal.Sub(toPrincipal),
		InterestApplied:  toInterest,
		PrincipalApplied: toPrincipal,
		Unused:           remaining,
	}
}
