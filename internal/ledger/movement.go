package ledger

import (
	"time"

	customError "github.com/segyhp/lending-ledger/pkg/errors"
	"github.com/segyhp/lending-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// Verb is a financial action against a party.
type Verb string

const (
	// VerbDisburse is "give loan" for customers and "take loan" for investors.
	VerbDisburse Verb = "disburse"
	// VerbRepay is "receive deposit" for customers and "return loan" for investors.
	VerbRepay Verb = "repay"
	// VerbCapitalize moves all interest, pending included, into principal.
	VerbCapitalize Verb = "capitalize"
)

// Event is one financial event. Both the party side and the bank side of a
// Movement are derived from it.
type Event struct {
	Kind   Kind
	Verb   Verb
	Amount decimal.Decimal
	// Rate is the new monthly rate; only read by VerbDisburse.
	Rate decimal.Decimal
	AsOf time.Time
}

// Movement is the result of applying an Event to a party State.
type Movement struct {
	Before          State
	After           State
	PendingInterest decimal.Decimal
	// Allocation is set for VerbRepay only.
	Allocation *Allocation

	TransactionType TransactionType
	// Amount is the party-side amount written on the transaction record.
	Amount decimal.Decimal

	// BankDelta is the signed change to the linked bank account; zero when
	// the verb has no bank side.
	BankDelta           decimal.Decimal
	BankTransactionType BankTransactionType
}

// HasBankSide reports whether the movement touches a bank account.
func (m Movement) HasBankSide() bool {
	return m.BankTransactionType != ""
}

// Apply runs e against s. It validates the event, accrues pending interest up
// to e.AsOf and returns the new state with the matching record types. s is not
// modified.
func Apply(s State, e Event) (Movement, error) {
	switch e.Verb {
	case VerbDisburse:
		return disburse(s, e)
	case VerbRepay:
		return repay(s, e)
	case VerbCapitalize:
		return capitalize(s, e)
	default:
		return Movement{}, customError.WrapInvalidRequest("unknown ledger verb " + string(e.Verb))
	}
}

func disburse(s State, e Event) (Movement, error) {
	if !utils.IsPositive(e.Amount) {
		return Movement{}, customError.WrapInvalidAmount(e.Amount.String())
	}
	if e.Rate.IsNegative() {
		return Movement{}, customError.WrapInvalidInterestRate(e.Rate.String())
	}

	after, pending := Accrue(s, e.AsOf)
	after.Principal = after.Principal.Add(e.Amount)
	// Single rate per party: a new tranche replaces the rate, it is not blended.
	after.MonthlyRate = e.Rate

	m := Movement{
		Before:          s,
		After:           after,
		PendingInterest: pending,
		Amount:          e.Amount,
	}

	switch e.Kind {
	case KindCustomer:
		m.TransactionType = TransactionLoan
		m.BankDelta = e.Amount.Neg()
		m.BankTransactionType = BankWithdraw
	case KindInvestor:
		m.TransactionType = TransactionLoanTaken
		m.BankDelta = e.Amount
		m.BankTransactionType = BankDeposit
	default:
		return Movement{}, customError.WrapInvalidRequest("unknown party kind " + string(e.Kind))
	}

	return m, nil
}

func repay(s State, e Event) (Movement, error) {
	if !utils.IsPositive(e.Amount) {
		return Movement{}, customError.WrapInvalidAmount(e.Amount.String())
	}

	accrued, pending := Accrue(s, e.AsOf)

	totalDue := accrued.TotalDue()
	if !utils.IsPositive(totalDue) {
		return Movement{}, customError.WrapNothingOwed()
	}
	if e.Amount.GreaterThan(totalDue) {
		return Movement{}, customError.WrapOverpayment(e.Amount.StringFixed(2), totalDue.StringFixed(2))
	}

	alloc := Allocate(accrued.Interest, accrued.Principal, e.Amount)
	after := accrued
	after.Interest = alloc.Interest
	after.Principal = alloc.Principal

	m := Movement{
		Before:          s,
		After:           after,
		PendingInterest: pending,
		Allocation:      &alloc,
		Amount:          e.Amount,
	}

	switch e.Kind {
	case KindCustomer:
		m.TransactionType = TransactionDeposit
		m.BankDelta = e.Amount
		m.BankTransactionType = BankDeposit
	case KindInvestor:
		m.TransactionType = TransactionLoanReturn
		m.BankDelta = e.Amount.Neg()
		m.BankTransactionType = BankWithdraw
	default:
		return Movement{}, customError.WrapInvalidRequest("unknown party kind " + string(e.Kind))
	}

	return m, nil
}

func capitalize(s State, e Event) (Movement, error) {
	if !e.Kind.Valid() {
		return Movement{}, customError.WrapInvalidRequest("unknown party kind " + string(e.Kind))
	}

	accrued, pending := Accrue(s, e.AsOf)
	total := accrued.Interest
	if !utils.IsPositive(total) {
		return Movement{}, customError.WrapNoInterest()
	}

	after := accrued
	after.Principal = accrued.Principal.Add(total)
	after.Interest = decimal.Zero

	return Movement{
		Before:          s,
		After:           after,
		PendingInterest: pending,
		TransactionType: TransactionInterestAdd,
		Amount:          total,
	}, nil
}

// ResetRate changes the monthly rate. Pending interest is dropped, not
// capitalized: the checkpoint restarts at asOf.
func ResetRate(s State, rate decimal.Decimal, asOf time.Time) (State, error) {
	if rate.IsNegative() {
		return State{}, customError.WrapInvalidInterestRate(rate.String())
	}
	s.MonthlyRate = rate
	s.LastInterestDate = asOf
	return s, nil
}

// ApplyBankDelta returns balance+delta, refusing to take a balance below zero.
func ApplyBankDelta(balance, delta decimal.Decimal) (decimal.Decimal, error) {
	next := balance.Add(delta)
	if next.IsNegative() {
		return balance, customError.WrapInsufficientBalance(balance.StringFixed(2), delta.Abs().StringFixed(2))
	}
	return next, nil
}
