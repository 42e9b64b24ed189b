package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-ledger/internal/cache"
	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/internal/repository"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
	"github.com/segyhp/lending-ledger/pkg/utils"
)

// LedgerService runs the financial verbs against customers and investors.
// Each verb is one database transaction: the party row and the linked bank
// row are locked, both sides are validated, then every write happens.
type LedgerService struct {
	store  repository.Store
	lock   cache.AccrualLock
	logger *logrus.Logger
	now    func() time.Time
}

func NewLedgerService(store repository.Store, lock cache.AccrualLock, logger *logrus.Logger) *LedgerService {
	return &LedgerService{
		store:  store,
		lock:   lock,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Disburse gives a loan to a customer or takes a loan from an investor.
func (s *LedgerService) Disburse(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.LoanRequest) (*domain.MovementResult, error) {
	event := ledger.Event{
		Kind:   kind,
		Verb:   ledger.VerbDisburse,
		Amount: req.Amount,
		Rate:   req.InterestRate,
		AsOf:   s.asOf(req.Date),
	}
	return s.move(ctx, companyID, partyID, req.BankAccountID, event, req.Description)
}

// Repay receives a customer deposit or returns an investor loan. The payment
// settles interest first, then principal.
func (s *LedgerService) Repay(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.RepaymentRequest) (*domain.MovementResult, error) {
	event := ledger.Event{
		Kind:   kind,
		Verb:   ledger.VerbRepay,
		Amount: req.Amount,
		AsOf:   s.asOf(req.Date),
	}
	return s.move(ctx, companyID, partyID, req.BankAccountID, event, req.Description)
}

// Capitalize moves all interest, pending included, into principal.
func (s *LedgerService) Capitalize(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.CapitalizeRequest) (*domain.MovementResult, error) {
	event := ledger.Event{
		Kind: kind,
		Verb: ledger.VerbCapitalize,
		AsOf: s.asOf(req.Date),
	}
	return s.move(ctx, companyID, partyID, uuid.Nil, event, "")
}

func (s *LedgerService) move(ctx context.Context, companyID, partyID, bankAccountID uuid.UUID, e ledger.Event, description string) (*domain.MovementResult, error) {
	var result *domain.MovementResult

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		party, err := repos.Parties.GetByIDForUpdate(ctx, companyID, e.Kind, partyID)
		if err != nil {
			return translate(err, customError.WrapPartyNotFound(string(e.Kind), partyID.String()))
		}

		m, err := ledger.Apply(party.State(), e)
		if err != nil {
			return err
		}

		now := s.now()
		result = &domain.MovementResult{Party: party, Allocation: m.Allocation}

		// Check the bank side before anything is written.
		var account *domain.BankAccount
		var balance decimal.Decimal
		if m.HasBankSide() {
			account, err = repos.BankAccounts.GetByIDForUpdate(ctx, companyID, bankAccountID)
			if err != nil {
				return translate(err, customError.WrapBankAccountNotFound(bankAccountID.String()))
			}
			balance, err = ledger.ApplyBankDelta(account.Balance, m.BankDelta)
			if err != nil {
				return err
			}
		}

		party.ApplyState(m.After)
		if err := repos.Parties.Update(ctx, party); err != nil {
			return translate(err, nil)
		}

		record := &domain.PartyTransaction{
			ID:             uuid.New(),
			PartyID:        party.ID,
			CompanyID:      companyID,
			Type:           m.TransactionType,
			Amount:         m.Amount,
			Description:    orDefault(description, partyDescription(e, m)),
			PrincipalAfter: m.After.Principal,
			InterestAfter:  m.After.Interest,
			Date:           e.AsOf,
			CreatedAt:      now,
		}
		if e.Verb == ledger.VerbDisburse {
			record.InterestRate = decimal.NewNullDecimal(e.Rate)
		}

		if account != nil {
			account.Balance = balance
			if err := repos.BankAccounts.Update(ctx, account); err != nil {
				return translate(err, nil)
			}

			bankTx := &domain.BankTransaction{
				ID:            uuid.New(),
				BankAccountID: account.ID,
				Type:          m.BankTransactionType,
				Amount:        m.BankDelta.Abs(),
				Description:   orDefault(description, bankDescription(m, party.Name)),
				BalanceAfter:  balance,
				CreatedAt:     now,
			}
			if err := repos.BankAccounts.CreateTransaction(ctx, bankTx); err != nil {
				return translate(err, nil)
			}

			record.BankAccountID = uuid.NullUUID{UUID: account.ID, Valid: true}
			result.BankAccount = account
			result.BankTransaction = bankTx
		}

		if err := repos.Transactions.Create(ctx, record); err != nil {
			return translate(err, nil)
		}
		result.Transaction = record

		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"company_id": companyID,
			"kind":       e.Kind,
			"party_id":   partyID,
			"verb":       e.Verb,
		}).Warn("Ledger movement rejected")
		return nil, translate(err, nil)
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"party_id":   partyID,
		"type":       result.Transaction.Type,
		"amount":     result.Transaction.Amount.StringFixed(2),
	}).Info("Ledger movement recorded")

	return result, nil
}

// UpdateInterestRate sets a new monthly rate. Pending interest at the old rate
// is dropped and accrual restarts now.
func (s *LedgerService) UpdateInterestRate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID, req *domain.UpdateInterestRateRequest) (*domain.Party, error) {
	var party *domain.Party

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		party, err = repos.Parties.GetByIDForUpdate(ctx, companyID, kind, partyID)
		if err != nil {
			return translate(err, customError.WrapPartyNotFound(string(kind), partyID.String()))
		}

		state, err := ledger.ResetRate(party.State(), req.MonthlyInterestRate, s.now())
		if err != nil {
			return err
		}
		party.ApplyState(state)

		return translate(repos.Parties.Update(ctx, party), nil)
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	return party, nil
}

// GetWithInterest refreshes a party's accrued interest up to now, persisting
// it when anything accrued, and returns the party with its ledger history.
func (s *LedgerService) GetWithInterest(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID) (*domain.PartyDetail, error) {
	var detail *domain.PartyDetail

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		party, err := repos.Parties.GetByIDForUpdate(ctx, companyID, kind, partyID)
		if err != nil {
			return translate(err, customError.WrapPartyNotFound(string(kind), partyID.String()))
		}

		state, pending := ledger.Accrue(party.State(), s.now())
		if utils.IsPositive(pending) {
			party.ApplyState(state)
			if err := repos.Parties.Update(ctx, party); err != nil {
				return translate(err, nil)
			}
		}

		records, err := repos.Transactions.ListByParty(ctx, companyID, party.ID)
		if err != nil {
			return translate(err, nil)
		}

		detail = &domain.PartyDetail{Party: party, Transactions: records}
		return nil
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	return detail, nil
}

// ListTransactions returns a party's ledger records, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, partyID uuid.UUID) ([]*domain.PartyTransaction, error) {
	repos := s.store.Repos()

	if _, err := repos.Parties.GetByID(ctx, companyID, kind, partyID); err != nil {
		return nil, translate(err, customError.WrapPartyNotFound(string(kind), partyID.String()))
	}

	records, err := repos.Transactions.ListByParty(ctx, companyID, partyID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return records, nil
}

// AccrueAll brings every party of one kind in a company up to date. Only
// parties with a non-zero pending amount are written. Concurrent runs for the
// same company and kind are refused.
func (s *LedgerService) AccrueAll(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (*domain.AccrualSummary, error) {
	if !kind.Valid() {
		return nil, customError.WrapInvalidRequest("unknown party kind " + string(kind))
	}

	release, err := s.lock.Acquire(ctx, companyID, kind)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			return nil, customError.WrapAccrualInProgress(fmt.Sprintf("%s/%s", companyID, kind))
		}
		return nil, customError.WrapCacheError(err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WithError(err).Warn("Failed to release accrual lock")
		}
	}()

	asOf := s.now()
	summary := &domain.AccrualSummary{Kind: kind, TotalInterestAccumulated: decimal.Zero}

	err = s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		parties, err := repos.Parties.ListForUpdate(ctx, companyID, kind)
		if err != nil {
			return translate(err, nil)
		}

		for _, party := range parties {
			state, pending := ledger.Accrue(party.State(), asOf)
			if !utils.IsPositive(pending) {
				continue
			}

			party.ApplyState(state)
			if err := repos.Parties.Update(ctx, party); err != nil {
				return translate(err, nil)
			}

			summary.UpdatedCount++
			summary.TotalInterestAccumulated = summary.TotalInterestAccumulated.Add(pending)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"company_id": companyID,
			"kind":       kind,
		}).Error("Interest accrual failed")
		return nil, translate(err, nil)
	}

	s.logger.WithFields(logrus.Fields{
		"company_id":    companyID,
		"kind":          kind,
		"updated_count": summary.UpdatedCount,
		"total":         summary.TotalInterestAccumulated.StringFixed(2),
	}).Info("Interest accrued")

	return summary, nil
}

func (s *LedgerService) asOf(date *time.Time) time.Time {
	return utils.AsOfOrNow(date, s.now()).UTC()
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func partyDescription(e ledger.Event, m ledger.Movement) string {
	amount := m.Amount.StringFixed(2)
	switch m.TransactionType {
	case ledger.TransactionLoan:
		return fmt.Sprintf("Loan given: ₹%s at %s%% monthly", amount, e.Rate.String())
	case ledger.TransactionLoanTaken:
		return fmt.Sprintf("Loan taken: ₹%s at %s%% monthly", amount, e.Rate.String())
	case ledger.TransactionDeposit:
		return fmt.Sprintf("Deposit received: ₹%s", amount)
	case ledger.TransactionLoanReturn:
		return fmt.Sprintf("Loan returned: ₹%s", amount)
	case ledger.TransactionInterestAdd:
		return fmt.Sprintf("Interest ₹%s added to principal", amount)
	default:
		return string(m.TransactionType)
	}
}

func bankDescription(m ledger.Movement, partyName string) string {
	amount := m.Amount.StringFixed(2)
	switch m.TransactionType {
	case ledger.TransactionLoan:
		return fmt.Sprintf("Loan given to customer %s: ₹%s", partyName, amount)
	case ledger.TransactionLoanTaken:
		return fmt.Sprintf("Loan taken from investor %s: ₹%s", partyName, amount)
	case ledger.TransactionDeposit:
		return fmt.Sprintf("Deposit received from customer %s: ₹%s", partyName, amount)
	case ledger.TransactionLoanReturn:
		return fmt.Sprintf("Loan returned to investor %s: ₹%s", partyName, amount)
	default:
		return string(m.BankTransactionType)
	}
}
