package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// BankAccount is a company-held account that funds loans and receives
// repayments.
type BankAccount struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	CompanyID     uuid.UUID       `json:"company_id" db:"company_id"`
	BankName      string          `json:"bank_name" db:"bank_name"`
	AccountNumber *string         `json:"account_number,omitempty" db:"account_number"`
	OwnerName     string          `json:"owner_name" db:"owner_name"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// BankAccountSummary is a list row: the account plus how many movements it has.
type BankAccountSummary struct {
	BankAccount
	TransactionCount int `json:"transaction_count" db:"transaction_count"`
}

// BankAccountDetail is an account with its movements, newest first.
type BankAccountDetail struct {
	*BankAccount
	Transactions []*BankTransaction `json:"transactions"`
}

// BankTransaction is an append-only bank account movement.
type BankTransaction struct {
	ID            uuid.UUID                  `json:"id" db:"id"`
	BankAccountID uuid.UUID                  `json:"bank_account_id" db:"bank_account_id"`
	Type          ledger.BankTransactionType `json:"type" db:"type"`
	Amount        decimal.Decimal            `json:"amount" db:"amount"`
	Description   string                     `json:"description" db:"description"`
	BalanceAfter  decimal.Decimal            `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time                  `json:"created_at" db:"created_at"`
}
