package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
)

type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) Create(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, req *domain.CreatePartyRequest) (*domain.Party, error) {
	args := m.Called(ctx, companyID, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) List(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Party), args.Error(1)
}

func (m *MockPartyService) Get(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.PartyDetail, error) {
	args := m.Called(ctx, companyID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartyDetail), args.Error(1)
}

func (m *MockPartyService) Update(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID, req *domain.UpdatePartyRequest) (*domain.Party, error) {
	args := m.Called(ctx, companyID, kind, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyService) Delete(ctx context.Context, caller domain.Principal, kind ledger.Kind, id uuid.UUID, req *domain.DeletePartyRequest) error {
	args := m.Called(ctx, caller, kind, id, req)
	return args.Error(0)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Disburse(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.LoanRequest) (*domain.MovementResult, error) {
	args := m.Called(ctx, companyID, kind, partyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

func (m *MockLedgerService) Repay(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.RepaymentRequest) (*domain.MovementResult, error) {
	args := m.Called(ctx, companyID, kind, partyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

func (m *MockLedgerService) Capitalize(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.CapitalizeRequest) (*domain.MovementResult, error) {
	args := m.Called(ctx, companyID, kind, partyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementResult), args.Error(1)
}

func (m *MockLedgerService) UpdateInterestRate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.UpdateInterestRateRequest) (*domain.Party, error) {
	args := m.Called(ctx, companyID, kind, partyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockLedgerService) GetWithInterest(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID) (*domain.PartyDetail, error) {
	args := m.Called(ctx, companyID, kind, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartyDetail), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID) ([]*domain.PartyTransaction, error) {
	args := m.Called(ctx, companyID, kind, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PartyTransaction), args.Error(1)
}

func (m *MockLedgerService) AccrueAll(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (*domain.AccrualSummary, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualSummary), args.Error(1)
}

type MockBankService struct {
	mock.Mock
}

func (m *MockBankService) Create(ctx context.Context, companyID uuid.UUID, req *domain.CreateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankService) List(ctx context.Context, companyID uuid.UUID) ([]*domain.BankAccountSummary, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccountSummary), args.Error(1)
}

func (m *MockBankService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.BankAccountDetail, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccountDetail), args.Error(1)
}

func (m *MockBankService) Update(ctx context.Context, companyID, id uuid.UUID, req *domain.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockBankService) Deposit(ctx context.Context, companyID, id uuid.UUID, req *domain.BankMovementRequest) (*domain.BankMovementResult, error) {
	args := m.Called(ctx, companyID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankMovementResult), args.Error(1)
}

func (m *MockBankService) Withdraw(ctx context.Context, companyID, id uuid.UUID, req *domain.BankMovementRequest) (*domain.BankMovementResult, error) {
	args := m.Called(ctx, companyID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankMovementResult), args.Error(1)
}

func (m *MockBankService) Transfer(ctx context.Context, companyID uuid.UUID, req *domain.TransferRequest) (*domain.TransferResult, error) {
	args := m.Called(ctx, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) ParseToken(token string) (*domain.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}
