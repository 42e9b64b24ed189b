package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
)

// PartyRepository defines the interface for customer and investor data operations.
// Every lookup is scoped to a company; a party of another tenant is reported
// as sql.ErrNoRows.
type PartyRepository interface {
	// Create creates a new party
	Create(ctx context.Context, party *domain.Party) error

	// GetByID retrieves a party by id
	GetByID(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error)

	// GetByIDForUpdate retrieves a party and locks its row until the enclosing transaction ends
	GetByIDForUpdate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error)

	// GetByPhone retrieves a party by phone number
	GetByPhone(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, phone string) (*domain.Party, error)

	// List returns all parties of a kind, newest first
	List(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error)

	// ListForUpdate returns all parties of a kind and locks their rows
	ListForUpdate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error)

	// Update writes the principal, interest, rate and accrual checkpoint
	Update(ctx context.Context, party *domain.Party) error

	// UpdateProfile writes contact and document columns only
	UpdateProfile(ctx context.Context, party *domain.Party) error

	// Delete hard-deletes a party and its ledger records
	Delete(ctx context.Context, companyID uuid.UUID, id uuid.UUID) error
}

// BankAccountRepository defines the interface for bank account data operations
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	GetByID(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error)
	GetByIDForUpdate(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error)
	List(ctx context.Context, companyID uuid.UUID) ([]*domain.BankAccountSummary, error)

	// Update writes the balance only
	Update(ctx context.Context, account *domain.BankAccount) error

	// UpdateDetails writes the bank name, account number and owner name only
	UpdateDetails(ctx context.Context, account *domain.BankAccount) error

	Delete(ctx context.Context, companyID uuid.UUID, id uuid.UUID) error

	// CreateTransaction appends a bank movement record
	CreateTransaction(ctx context.Context, tx *domain.BankTransaction) error

	// ListTransactions returns the movements of an account, newest first
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*domain.BankTransaction, error)
}

// TransactionRepository defines the interface for party ledger records
type TransactionRepository interface {
	// Create appends a ledger record
	Create(ctx context.Context, tx *domain.PartyTransaction) error

	// ListByParty returns the records of a party, newest first
	ListByParty(ctx context.Context, companyID uuid.UUID, partyID uuid.UUID) ([]*domain.PartyTransaction, error)
}

// UserRepository defines the interface for user lookups
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// CompanyRepository defines the interface for tenant lookups
type CompanyRepository interface {
	List(ctx context.Context) ([]*domain.Company, error)
}

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Parties      PartyRepository
	BankAccounts BankAccountRepository
	Transactions TransactionRepository
	Users        UserRepository
	Companies    CompanyRepository
}

// Store hands out repositories and runs atomic units of work.
type Store interface {
	// Repos returns repositories bound to the connection pool.
	Repos() Repositories

	// RunInTx runs fn with repositories bound to one database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
