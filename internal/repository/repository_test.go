package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestStore(t *testing.T) (Store, uuid.UUID) {
	t.Helper()

	db, err := sqlx.Connect(DriverSQLite, ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	companyID := uuid.New()
	_, err = db.Exec(`INSERT INTO companies (id, name, created_at) VALUES (?, ?, ?)`, companyID, "Acme Finance", time.Now().UTC())
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewStore(db, logger), companyID
}

func newTestParty(companyID uuid.UUID, kind ledger.Kind, phone string) *domain.Party {
	now := time.Now().UTC()
	return &domain.Party{
		ID:                  uuid.New(),
		CompanyID:           companyID,
		Kind:                kind,
		Name:                "Ravi",
		Phone:               phone,
		PrincipalAmount:     decimal.RequireFromString("1000.50"),
		AccumulatedInterest: decimal.RequireFromString("12.25"),
		MonthlyInterestRate: decimal.RequireFromString("2"),
		LastInterestDate:    now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func TestPartyRepository_CreateAndGet(t *testing.T) {
	store, companyID := setupTestStore(t)
	repo := store.Repos().Parties
	ctx := context.Background()

	email := "ravi@example.com"
	party := newTestParty(companyID, ledger.KindCustomer, "9000000001")
	party.Email = &email

	require.NoError(t, repo.Create(ctx, party))

	result, err := repo.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	require.NoError(t, err)
	assert.Equal(t, party.ID, result.ID)
	assert.Equal(t, ledger.KindCustomer, result.Kind)
	assert.Equal(t, "Ravi", result.Name)
	require.NotNil(t, result.Email)
	assert.Equal(t, email, *result.Email)
	assert.Nil(t, result.Address)
	assert.True(t, party.PrincipalAmount.Equal(result.PrincipalAmount))
	assert.True(t, party.AccumulatedInterest.Equal(result.AccumulatedInterest))
	assert.True(t, party.MonthlyInterestRate.Equal(result.MonthlyInterestRate))
	assert.True(t, party.LastInterestDate.Equal(result.LastInterestDate))
}

func TestPartyRepository_ScopedByTenantAndKind(t *testing.T) {
	store, companyID := setupTestStore(t)
	repo := store.Repos().Parties
	ctx := context.Background()

	party := newTestParty(companyID, ledger.KindInvestor, "9000000002")
	require.NoError(t, repo.Create(ctx, party))

	_, err := repo.GetByID(ctx, uuid.New(), ledger.KindInvestor, party.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.GetByIDForUpdate(ctx, companyID, ledger.KindInvestor, party.ID)
	assert.NoError(t, err)
}

func TestPartyRepository_DuplicatePhone(t *testing.T) {
	store, companyID := setupTestStore(t)
	repo := store.Repos().Parties
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestParty(companyID, ledger.KindCustomer, "9000000003")))

	err := repo.Create(ctx, newTestParty(companyID, ledger.KindCustomer, "9000000003"))
	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrValidation)
	assert.Equal(t, customError.ErrCodeDuplicatePhone, customError.Code(err))

	// same phone is fine for the other kind
	assert.NoError(t, repo.Create(ctx, newTestParty(companyID, ledger.KindInvestor, "9000000003")))

	found, err := repo.GetByPhone(ctx, companyID, ledger.KindCustomer, "9000000003")
	require.NoError(t, err)
	assert.Equal(t, ledger.KindCustomer, found.Kind)
}

func TestPartyRepository_UpdateListDelete(t *testing.T) {
	store, companyID := setupTestStore(t)
	repos := store.Repos()
	ctx := context.Background()

	first := newTestParty(companyID, ledger.KindCustomer, "9000000004")
	second := newTestParty(companyID, ledger.KindCustomer, "9000000005")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repos.Parties.Create(ctx, first))
	require.NoError(t, repos.Parties.Create(ctx, second))

	first.PrincipalAmount = decimal.RequireFromString("470")
	first.AccumulatedInterest = decimal.Zero
	require.NoError(t, repos.Parties.Update(ctx, first))

	list, err := repos.Parties.List(ctx, companyID, ledger.KindCustomer)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.True(t, list[1].PrincipalAmount.Equal(decimal.RequireFromString("470")))

	locked, err := repos.Parties.ListForUpdate(ctx, companyID, ledger.KindCustomer)
	require.NoError(t, err)
	assert.Len(t, locked, 2)

	require.NoError(t, repos.Transactions.Create(ctx, &domain.PartyTransaction{
		ID:             uuid.New(),
		PartyID:        first.ID,
		CompanyID:      companyID,
		Type:           ledger.TransactionInterestAdd,
		Amount:         decimal.RequireFromString("5"),
		PrincipalAfter: decimal.RequireFromString("475"),
		InterestAfter:  decimal.Zero,
		Date:           time.Now().UTC(),
		CreatedAt:      time.Now().UTC(),
	}))

	require.NoError(t, repos.Parties.Delete(ctx, companyID, first.ID))
	_, err = repos.Parties.GetByID(ctx, companyID, ledger.KindCustomer, first.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	txs, err := repos.Transactions.ListByParty(ctx, companyID, first.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)

	assert.ErrorIs(t, repos.Parties.Delete(ctx, companyID, first.ID), sql.ErrNoRows)
	assert.ErrorIs(t, repos.Parties.Update(ctx, first), sql.ErrNoRows)
}

func TestBankAccountRepository(t *testing.T) {
	store, companyID := setupTestStore(t)
	repo := store.Repos().BankAccounts
	ctx := context.Background()

	number := "0012345"
	now := time.Now().UTC()
	account := &domain.BankAccount{
		ID:            uuid.New(),
		CompanyID:     companyID,
		BankName:      "SBI",
		AccountNumber: &number,
		OwnerName:     "Acme",
		Balance:       decimal.RequireFromString("1000"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(ctx, account))

	for i, amount := range []string{"1000", "250.75"} {
		require.NoError(t, repo.CreateTransaction(ctx, &domain.BankTransaction{
			ID:            uuid.New(),
			BankAccountID: account.ID,
			Type:          ledger.BankDeposit,
			Amount:        decimal.RequireFromString(amount),
			Description:   "deposit",
			BalanceAfter:  decimal.RequireFromString("1000"),
			CreatedAt:     now.Add(time.Duration(i) * time.Second),
		}))
	}

	summaries, err := repo.List(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].TransactionCount)
	assert.Equal(t, "SBI", summaries[0].BankName)

	txs, err := repo.ListTransactions(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("250.75")), "newest first")

	account.Balance = decimal.RequireFromString("1250.75")
	require.NoError(t, repo.Update(ctx, account))

	got, err := repo.GetByIDForUpdate(ctx, companyID, account.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("1250.75")))

	_, err = repo.GetByID(ctx, uuid.New(), account.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, repo.Delete(ctx, companyID, account.ID))
	_, err = repo.GetByID(ctx, companyID, account.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTransactionRepository_NullableColumns(t *testing.T) {
	store, companyID := setupTestStore(t)
	repos := store.Repos()
	ctx := context.Background()

	party := newTestParty(companyID, ledger.KindCustomer, "9000000006")
	require.NoError(t, repos.Parties.Create(ctx, party))

	bankID := uuid.New()
	now := time.Now().UTC()
	require.NoError(t, repos.BankAccounts.Create(ctx, &domain.BankAccount{
		ID: bankID, CompanyID: companyID, BankName: "HDFC", OwnerName: "Acme", Balance: decimal.Zero, CreatedAt: now, UpdatedAt: now,
	}))

	loan := &domain.PartyTransaction{
		ID:             uuid.New(),
		PartyID:        party.ID,
		CompanyID:      companyID,
		BankAccountID:  uuid.NullUUID{UUID: bankID, Valid: true},
		Type:           ledger.TransactionLoan,
		Amount:         decimal.RequireFromString("200"),
		InterestRate:   decimal.NewNullDecimal(decimal.RequireFromString("2")),
		Description:    "Loan given",
		PrincipalAfter: decimal.RequireFromString("1200.50"),
		InterestAfter:  decimal.RequireFromString("12.25"),
		Date:           now,
		CreatedAt:      now,
	}
	capitalized := &domain.PartyTransaction{
		ID:             uuid.New(),
		PartyID:        party.ID,
		CompanyID:      companyID,
		Type:           ledger.TransactionInterestAdd,
		Amount:         decimal.RequireFromString("12.25"),
		PrincipalAfter: decimal.RequireFromString("1212.75"),
		InterestAfter:  decimal.Zero,
		Date:           now,
		CreatedAt:      now.Add(time.Second),
	}
	require.NoError(t, repos.Transactions.Create(ctx, loan))
	require.NoError(t, repos.Transactions.Create(ctx, capitalized))

	txs, err := repos.Transactions.ListByParty(ctx, companyID, party.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, capitalized.ID, txs[0].ID)
	assert.False(t, txs[0].BankAccountID.Valid)
	assert.False(t, txs[0].InterestRate.Valid)

	assert.Equal(t, bankID, txs[1].BankAccountID.UUID)
	assert.True(t, txs[1].InterestRate.Valid)
	assert.True(t, txs[1].InterestRate.Decimal.Equal(decimal.RequireFromString("2")))
	assert.Equal(t, ledger.TransactionLoan, txs[1].Type)
}

func TestStore_RunInTxRollsBack(t *testing.T) {
	store, companyID := setupTestStore(t)
	ctx := context.Background()

	party := newTestParty(companyID, ledger.KindCustomer, "9000000007")
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Parties.Create(ctx, party); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Repos().Parties.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = store.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		return repos.Parties.Create(ctx, party)
	})
	require.NoError(t, err)

	_, err = store.Repos().Parties.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	assert.NoError(t, err)
}

func TestCompanyRepository_List(t *testing.T) {
	store, companyID := setupTestStore(t)

	companies, err := store.Repos().Companies.List(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, companyID, companies[0].ID)
}

func TestPartyRepository_UpdateProfileKeepsBalances(t *testing.T) {
	store, companyID := setupTestStore(t)
	repos := store.Repos()
	ctx := context.Background()

	party := newTestParty(companyID, ledger.KindCustomer, "9000000010")
	require.NoError(t, repos.Parties.Create(ctx, party))

	stale, err := repos.Parties.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	require.NoError(t, err)

	// a loan lands after the edit was read
	moved, err := repos.Parties.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	require.NoError(t, err)
	moved.PrincipalAmount = decimal.RequireFromString("1200.50")
	moved.MonthlyInterestRate = decimal.RequireFromString("3")
	require.NoError(t, repos.Parties.Update(ctx, moved))

	stale.Name = "Ravi Kumar"
	stale.Phone = "9000000011"
	require.NoError(t, repos.Parties.UpdateProfile(ctx, stale))

	got, err := repos.Parties.GetByID(ctx, companyID, ledger.KindCustomer, party.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", got.Name)
	assert.Equal(t, "9000000011", got.Phone)
	assert.True(t, got.PrincipalAmount.Equal(decimal.RequireFromString("1200.50")), "principal %s", got.PrincipalAmount)
	assert.True(t, got.MonthlyInterestRate.Equal(decimal.RequireFromString("3")))
	assert.True(t, got.AccumulatedInterest.Equal(decimal.RequireFromString("12.25")))
}

func TestPartyRepository_UpdateProfileDuplicatePhone(t *testing.T) {
	store, companyID := setupTestStore(t)
	repos := store.Repos()
	ctx := context.Background()

	first := newTestParty(companyID, ledger.KindCustomer, "9000000012")
	second := newTestParty(companyID, ledger.KindCustomer, "9000000013")
	require.NoError(t, repos.Parties.Create(ctx, first))
	require.NoError(t, repos.Parties.Create(ctx, second))

	second.Phone = first.Phone
	err := repos.Parties.UpdateProfile(ctx, second)
	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestBankAccountRepository_UpdateDetailsKeepsBalance(t *testing.T) {
	store, companyID := setupTestStore(t)
	repo := store.Repos().BankAccounts
	ctx := context.Background()

	now := time.Now().UTC()
	account := &domain.BankAccount{
		ID:        uuid.New(),
		CompanyID: companyID,
		BankName:  "SBI",
		OwnerName: "Acme",
		Balance:   decimal.RequireFromString("1000"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, account))

	stale, err := repo.GetByID(ctx, companyID, account.ID)
	require.NoError(t, err)

	// a deposit lands after the rename was read
	moved, err := repo.GetByID(ctx, companyID, account.ID)
	require.NoError(t, err)
	moved.Balance = decimal.RequireFromString("1500")
	require.NoError(t, repo.Update(ctx, moved))

	stale.BankName = "State Bank of India"
	require.NoError(t, repo.UpdateDetails(ctx, stale))

	got, err := repo.GetByID(ctx, companyID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "State Bank of India", got.BankName)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("1500")), "balance %s", got.Balance)

	assert.ErrorIs(t, repo.UpdateDetails(ctx, &domain.BankAccount{ID: uuid.New(), CompanyID: companyID}), sql.ErrNoRows)
}
