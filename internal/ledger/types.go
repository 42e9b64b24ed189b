// Package ledger holds the interest and balance arithmetic shared by
// customers and investors. Nothing in here touches storage or the clock;
// callers pass the as-of instant explicitly.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags which side of the book a party sits on.
type Kind string

const (
	// KindCustomer borrows from the company.
	KindCustomer Kind = "customer"
	// KindInvestor lends to the company.
	KindInvestor Kind = "investor"
)

// Valid reports whether k is a known party kind.
func (k Kind) Valid() bool {
	return k == KindCustomer || k == KindInvestor
}

// TransactionType is the type written on a party ledger record.
type TransactionType string

const (
	TransactionLoan        TransactionType = "LOAN"
	TransactionDeposit     TransactionType = "DEPOSIT"
	TransactionInterestAdd TransactionType = "INTEREST_ADD"
	TransactionLoanTaken   TransactionType = "LOAN_TAKEN"
	TransactionLoanReturn  TransactionType = "LOAN_RETURN"
)

// BankTransactionType is the type written on a bank account record.
type BankTransactionType string

const (
	BankDeposit  BankTransactionType = "DEPOSIT"
	BankWithdraw BankTransactionType = "WITHDRAW"
)

// State is the part of a party the arithmetic works on.
type State struct {
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	MonthlyRate      decimal.Decimal
	LastInterestDate time.Time
}

// TotalDue is principal plus accumulated interest.
func (s State) TotalDue() decimal.Decimal {
	return s.Principal.Add(s.Interest)
}

// advance moves the checkpoint forward to asOf. It never moves backwards so a
// back-dated operation cannot make the same days accrue twice.
func (s State) advance(asOf time.Time) State {
	if asOf.After(s.LastInterestDate) {
		s.LastInterestDate = asOf
	}
	return s
}
