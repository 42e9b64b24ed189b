package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/internal/repository"
)

// MockStore runs RunInTx callbacks directly against its mock repositories.
// TxCount counts how many units of work were started.
type MockStore struct {
	Parties      *MockPartyRepository
	BankAccounts *MockBankAccountRepository
	Transactions *MockTransactionRepository
	Users        *MockUserRepository
	Companies    *MockCompanyRepository
	TxCount      int
}

func NewMockStore() *MockStore {
	return &MockStore{
		Parties:      &MockPartyRepository{},
		BankAccounts: &MockBankAccountRepository{},
		Transactions: &MockTransactionRepository{},
		Users:        &MockUserRepository{},
		Companies:    &MockCompanyRepository{},
	}
}

func (m *MockStore) Repos() repository.Repositories {
	return repository.Repositories{
		Parties:      m.Parties,
		BankAccounts: m.BankAccounts,
		Transactions: m.Transactions,
		Users:        m.Users,
		Companies:    m.Companies,
	}
}

func (m *MockStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	m.TxCount++
	return fn(ctx, m.Repos())
}

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) GetByID(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error) {
	args := m.Called(ctx, companyID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) GetByIDForUpdate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error) {
	args := m.Called(ctx, companyID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) GetByPhone(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, phone string) (*domain.Party, error) {
	args := m.Called(ctx, companyID, kind, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) List(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListForUpdate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) Update(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateProfile(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) Delete(ctx context.Context, companyID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) GetByID(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) GetByIDForUpdate(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) List(ctx context.Context, companyID uuid.UUID) ([]*domain.BankAccountSummary, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccountSummary), args.Error(1)
}

func (m *MockBankAccountRepository) Update(ctx context.Context, account *domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateDetails(ctx context.Context, account *domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, companyID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockBankAccountRepository) CreateTransaction(ctx context.Context, tx *domain.BankTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBankAccountRepository) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*domain.BankTransaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankTransaction), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.PartyTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByParty(ctx context.Context, companyID uuid.UUID, partyID uuid.UUID) ([]*domain.PartyTransaction, error) {
	args := m.Called(ctx, companyID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PartyTransaction), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Company), args.Error(1)
}
