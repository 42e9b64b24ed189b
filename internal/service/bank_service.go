package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/internal/repository"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
	"github.com/segyhp/lending-ledger/pkg/utils"
)

// BankService manages company bank accounts and their direct movements.
type BankService struct {
	store  repository.Store
	logger *logrus.Logger
	now    func() time.Time
}

func NewBankService(store repository.Store, logger *logrus.Logger) *BankService {
	return &BankService{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create opens an account. A positive initial balance is recorded as an
// "Initial deposit" movement.
func (s *BankService) Create(ctx context.Context, companyID uuid.UUID, req *domain.CreateBankAccountRequest) (*domain.BankAccount, error) {
	if req.InitialBalance.IsNegative() {
		return nil, customError.WrapInvalidAmount(req.InitialBalance.String())
	}

	now := s.now()
	account := &domain.BankAccount{
		ID:            uuid.New(),
		CompanyID:     companyID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		OwnerName:     req.OwnerName,
		Balance:       req.InitialBalance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.BankAccounts.Create(ctx, account); err != nil {
			return err
		}

		if !utils.IsPositive(account.Balance) {
			return nil
		}

		return repos.BankAccounts.CreateTransaction(ctx, &domain.BankTransaction{
			ID:            uuid.New(),
			BankAccountID: account.ID,
			Type:          ledger.BankDeposit,
			Amount:        account.Balance,
			Description:   "Initial deposit",
			BalanceAfter:  account.Balance,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	return account, nil
}

func (s *BankService) List(ctx context.Context, companyID uuid.UUID) ([]*domain.BankAccountSummary, error) {
	accounts, err := s.store.Repos().BankAccounts.List(ctx, companyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return accounts, nil
}

func (s *BankService) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.BankAccountDetail, error) {
	repos := s.store.Repos()

	account, err := repos.BankAccounts.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, translate(err, customError.WrapBankAccountNotFound(id.String()))
	}

	movements, err := repos.BankAccounts.ListTransactions(ctx, account.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.BankAccountDetail{BankAccount: account, Transactions: movements}, nil
}

// Update renames an account. The balance only changes through movements.
func (s *BankService) Update(ctx context.Context, companyID, id uuid.UUID, req *domain.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	var account *domain.BankAccount

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		account, err = repos.BankAccounts.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return translate(err, customError.WrapBankAccountNotFound(id.String()))
		}

		if req.BankName != nil {
			account.BankName = *req.BankName
		}
		if req.OwnerName != nil {
			account.OwnerName = *req.OwnerName
		}
		setIfPresent(&account.AccountNumber, req.AccountNumber)

		return translate(repos.BankAccounts.UpdateDetails(ctx, account), customError.WrapBankAccountNotFound(id.String()))
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	return account, nil
}

func (s *BankService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.BankAccounts.Delete(ctx, companyID, id)
	})
	if err != nil {
		return translate(err, customError.WrapBankAccountNotFound(id.String()))
	}

	s.logger.WithFields(logrus.Fields{
		"company_id":      companyID,
		"bank_account_id": id,
	}).Info("Bank account deleted")
	return nil
}

// Deposit credits an account directly, outside any party movement.
func (s *BankService) Deposit(ctx context.Context, companyID, id uuid.UUID, req *domain.BankMovementRequest) (*domain.BankMovementResult, error) {
	description := orDefault(req.Description, fmt.Sprintf("Deposit: ₹%s", req.Amount.StringFixed(2)))
	return s.adjust(ctx, companyID, id, req.Amount, ledger.BankDeposit, description)
}

// Withdraw debits an account directly. The balance may not go below zero.
func (s *BankService) Withdraw(ctx context.Context, companyID, id uuid.UUID, req *domain.BankMovementRequest) (*domain.BankMovementResult, error) {
	description := orDefault(req.Description, fmt.Sprintf("Withdrawal: ₹%s", req.Amount.StringFixed(2)))
	return s.adjust(ctx, companyID, id, req.Amount, ledger.BankWithdraw, description)
}

func (s *BankService) adjust(ctx context.Context, companyID, id uuid.UUID, amount decimal.Decimal, kind ledger.BankTransactionType, description string) (*domain.BankMovementResult, error) {
	if !utils.IsPositive(amount) {
		return nil, customError.WrapInvalidAmount(amount.String())
	}

	delta := amount
	if kind == ledger.BankWithdraw {
		delta = amount.Neg()
	}

	var result *domain.BankMovementResult
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		account, err := repos.BankAccounts.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return translate(err, customError.WrapBankAccountNotFound(id.String()))
		}

		movement, err := s.post(ctx, repos, account, delta, kind, description)
		if err != nil {
			return err
		}

		result = &domain.BankMovementResult{BankAccount: account, Transaction: movement}
		return nil
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	return result, nil
}

// Transfer moves money between two accounts of the same company in one
// database transaction.
func (s *BankService) Transfer(ctx context.Context, companyID uuid.UUID, req *domain.TransferRequest) (*domain.TransferResult, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, customError.WrapSameAccount()
	}
	if !utils.IsPositive(req.Amount) {
		return nil, customError.WrapInvalidAmount(req.Amount.String())
	}

	var result *domain.TransferResult
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		// Lock in a fixed order so opposite transfers cannot deadlock.
		first, second := req.FromAccountID, req.ToAccountID
		if second.String() < first.String() {
			first, second = second, first
		}

		locked := make(map[uuid.UUID]*domain.BankAccount, 2)
		for _, id := range []uuid.UUID{first, second} {
			account, err := repos.BankAccounts.GetByIDForUpdate(ctx, companyID, id)
			if err != nil {
				return translate(err, customError.WrapBankAccountNotFound(id.String()))
			}
			locked[id] = account
		}
		from, to := locked[req.FromAccountID], locked[req.ToAccountID]

		amount := req.Amount.StringFixed(2)
		out, err := s.post(ctx, repos, from, req.Amount.Neg(), ledger.BankWithdraw,
			orDefault(req.Description, fmt.Sprintf("Transfer to %s - %s: ₹%s", to.BankName, to.OwnerName, amount)))
		if err != nil {
			return err
		}
		in, err := s.post(ctx, repos, to, req.Amount, ledger.BankDeposit,
			orDefault(req.Description, fmt.Sprintf("Transfer from %s - %s: ₹%s", from.BankName, from.OwnerName, amount)))
		if err != nil {
			return err
		}

		result = &domain.TransferResult{
			FromAccount:     from,
			ToAccount:       to,
			FromTransaction: out,
			ToTransaction:   in,
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"from":       req.FromAccountID,
		"to":         req.ToAccountID,
		"amount":     req.Amount.StringFixed(2),
	}).Info("Bank transfer recorded")

	return result, nil
}

// post applies delta to a locked account and appends the movement record.
func (s *BankService) post(ctx context.Context, repos repository.Repositories, account *domain.BankAccount, delta decimal.Decimal, kind ledger.BankTransactionType, description string) (*domain.BankTransaction, error) {
	balance, err := ledger.ApplyBankDelta(account.Balance, delta)
	if err != nil {
		return nil, err
	}

	account.Balance = balance
	if err := repos.BankAccounts.Update(ctx, account); err != nil {
		return nil, translate(err, nil)
	}

	movement := &domain.BankTransaction{
		ID:            uuid.New(),
		BankAccountID: account.ID,
		Type:          kind,
		Amount:        delta.Abs(),
		Description:   description,
		BalanceAfter:  balance,
		CreatedAt:     s.now(),
	}
	if err := repos.BankAccounts.CreateTransaction(ctx, movement); err != nil {
		return nil, translate(err, nil)
	}

	return movement, nil
}
