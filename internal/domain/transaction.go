package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// PartyTransaction is the audit record of one financial event against a
// party. It is never read back into the accrual arithmetic.
type PartyTransaction struct {
	ID             uuid.UUID              `json:"id" db:"id"`
	PartyID        uuid.UUID              `json:"party_id" db:"party_id"`
	CompanyID      uuid.UUID              `json:"company_id" db:"company_id"`
	BankAccountID  uuid.NullUUID          `json:"bank_account_id" db:"bank_account_id"`
	Type           ledger.TransactionType `json:"type" db:"type"`
	Amount         decimal.Decimal        `json:"amount" db:"amount"`
	InterestRate   decimal.NullDecimal    `json:"interest_rate" db:"interest_rate"`
	Description    string                 `json:"description" db:"description"`
	PrincipalAfter decimal.Decimal        `json:"principal_after" db:"principal_after"`
	InterestAfter  decimal.Decimal        `json:"interest_after" db:"interest_after"`
	Date           time.Time              `json:"date" db:"transaction_date"`
	CreatedAt      time.Time              `json:"created_at" db:"created_at"`
}

// MovementResult is what every financial verb hands back to its caller.
type MovementResult struct {
	Party           *Party             `json:"party"`
	Transaction     *PartyTransaction  `json:"transaction"`
	BankAccount     *BankAccount       `json:"bank_account,omitempty"`
	BankTransaction *BankTransaction   `json:"bank_transaction,omitempty"`
	Allocation      *ledger.Allocation `json:"allocation,omitempty"`
}

// BankMovementResult is returned by direct bank deposits and withdrawals.
type BankMovementResult struct {
	BankAccount *BankAccount     `json:"bank_account"`
	Transaction *BankTransaction `json:"transaction"`
}

// TransferResult is returned by a bank-to-bank transfer.
type TransferResult struct {
	FromAccount     *BankAccount     `json:"from_account"`
	ToAccount       *BankAccount     `json:"to_account"`
	FromTransaction *BankTransaction `json:"from_transaction"`
	ToTransaction   *BankTransaction `json:"to_transaction"`
}

// AccrualSummary is returned by the accumulate-interest-for-all batch.
type AccrualSummary struct {
	Kind                     ledger.Kind     `json:"kind"`
	UpdatedCount             int             `json:"updated_count"`
	TotalInterestAccumulated decimal.Decimal `json:"total_interest_accumulated"`
}
