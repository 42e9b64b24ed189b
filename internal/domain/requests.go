package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs for requests

type CreatePartyRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone" validate:"required"`
	Address       *string `json:"address"`
	IDNumber      *string `json:"id_number"`
	AadhaarNumber *string `json:"aadhaar_number"`
	PanNumber     *string `json:"pan_number"`
	Photo         *string `json:"photo"`
	Signature     *string `json:"signature"`
	AadhaarImage  *string `json:"aadhaar_image"`
	PanImage      *string `json:"pan_image"`
}

// UpdatePartyRequest only changes the fields that are set.
type UpdatePartyRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,min=1"`
	Address       *string `json:"address"`
	IDNumber      *string `json:"id_number"`
	AadhaarNumber *string `json:"aadhaar_number"`
	PanNumber     *string `json:"pan_number"`
	Photo         *string `json:"photo"`
	Signature     *string `json:"signature"`
	AadhaarImage  *string `json:"aadhaar_image"`
	PanImage      *string `json:"pan_image"`
}

type DeletePartyRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoanRequest gives a loan to a customer or takes one from an investor.
type LoanRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	InterestRate  decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0"`
	Description   string          `json:"description"`
	BankAccountID uuid.UUID       `json:"bank_account_id" validate:"required"`
	Date          *time.Time      `json:"date"`
}

// RepaymentRequest receives a customer deposit or returns an investor loan.
type RepaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Description   string          `json:"description"`
	BankAccountID uuid.UUID       `json:"bank_account_id" validate:"required"`
	Date          *time.Time      `json:"date"`
}

type CapitalizeRequest struct {
	Date *time.Time `json:"date"`
}

type UpdateInterestRateRequest struct {
	MonthlyInterestRate decimal.Decimal `json:"monthly_interest_rate" validate:"decimal_gte=0"`
}

type CreateBankAccountRequest struct {
	BankName       string          `json:"bank_name" validate:"required"`
	AccountNumber  *string         `json:"account_number"`
	OwnerName      string          `json:"owner_name" validate:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"decimal_gte=0"`
}

type UpdateBankAccountRequest struct {
	BankName      *string `json:"bank_name" validate:"omitempty,min=1"`
	AccountNumber *string `json:"account_number"`
	OwnerName     *string `json:"owner_name" validate:"omitempty,min=1"`
}

type BankMovementRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Description string          `json:"description"`
}

type TransferRequest struct {
	FromAccountID uuid.UUID       `json:"from_account_id" validate:"required"`
	ToAccountID   uuid.UUID       `json:"to_account_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Description   string          `json:"description"`
}
