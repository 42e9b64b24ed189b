package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
)

// PartyService is the customer/investor record surface the handlers need.
type PartyService interface {
	Create(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, req *domain.CreatePartyRequest) (*domain.Party, error)
	List(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error)
	Get(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.PartyDetail, error)
	Update(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID, req *domain.UpdatePartyRequest) (*domain.Party, error)
	Delete(ctx context.Context, caller domain.Principal, kind ledger.Kind, id uuid.UUID, req *domain.DeletePartyRequest) error
}

// LedgerService is the money-moving surface the handlers need.
type LedgerService interface {
	Disburse(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.LoanRequest) (*domain.MovementResult, error)
	Repay(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.RepaymentRequest) (*domain.MovementResult, error)
	Capitalize(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.CapitalizeRequest) (*domain.MovementResult, error)
	UpdateInterestRate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.UpdateInterestRateRequest) (*domain.Party, error)
	GetWithInterest(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID) (*domain.PartyDetail, error)
	ListTransactions(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID) ([]*domain.PartyTransaction, error)
	AccrueAll(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (*domain.AccrualSummary, error)
}

type BankService interface {
	Create(ctx context.Context, companyID uuid.UUID, req *domain.CreateBankAccountRequest) (*domain.BankAccount, error)
	List(ctx context.Context, companyID uuid.UUID) ([]*domain.BankAccountSummary, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*domain.BankAccountDetail, error)
	Update(ctx context.Context, companyID, id uuid.UUID, req *domain.UpdateBankAccountRequest) (*domain.BankAccount, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	Deposit(ctx context.Context, companyID, id uuid.UUID, req *domain.BankMovementRequest) (*domain.BankMovementResult, error)
	Withdraw(ctx context.Context, companyID, id uuid.UUID, req *domain.BankMovementRequest) (*domain.BankMovementResult, error)
	Transfer(ctx context.Context, companyID uuid.UUID, req *domain.TransferRequest) (*domain.TransferResult, error)
}

// TokenParser turns a bearer token into the authenticated caller.
type TokenParser interface {
	ParseToken(token string) (*domain.Principal, error)
}
