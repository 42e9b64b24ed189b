package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

const bankAccountColumns = `id, company_id, bank_name, account_number, owner_name, balance, created_at, updated_at`

type bankAccountRepository struct {
	db sqlx.ExtContext
}

func (r *bankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		account.ID,
		account.CompanyID,
		account.BankName,
		account.AccountNumber,
		account.OwnerName,
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

func (r *bankAccountRepository) GetByID(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error) {
	return r.get(ctx, "", companyID, id)
}

func (r *bankAccountRepository) GetByIDForUpdate(ctx context.Context, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error) {
	return r.get(ctx, forUpdate(r.db), companyID, id)
}

func (r *bankAccountRepository) get(ctx context.Context, lock string, companyID uuid.UUID, id uuid.UUID) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE id = ? AND company_id = ?` + lock

	var account domain.BankAccount
	err := sqlx.GetContext(ctx, r.db, &account, r.db.Rebind(query), id, companyID)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *bankAccountRepository) List(ctx context.Context, companyID uuid.UUID) ([]*domain.BankAccountSummary, error) {
	query := `
		SELECT a.id, a.company_id, a.bank_name, a.account_number, a.owner_name, a.balance, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM bank_transactions t WHERE t.bank_account_id = a.id) AS transaction_count
		FROM bank_accounts a
		WHERE a.company_id = ?
		ORDER BY a.created_at DESC
	`

	accounts := []*domain.BankAccountSummary{}
	err := sqlx.SelectContext(ctx, r.db, &accounts, r.db.Rebind(query), companyID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *bankAccountRepository) Update(ctx context.Context, account *domain.BankAccount) error {
	query := `UPDATE bank_accounts SET balance = ?, updated_at = ? WHERE id = ? AND company_id = ?`

	account.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		account.Balance,
		account.UpdatedAt,
		account.ID,
		account.CompanyID,
	)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (r *bankAccountRepository) UpdateDetails(ctx context.Context, account *domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET bank_name = ?, account_number = ?, owner_name = ?, updated_at = ?
		WHERE id = ? AND company_id = ?
	`

	account.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		account.BankName,
		account.AccountNumber,
		account.OwnerName,
		account.UpdatedAt,
		account.ID,
		account.CompanyID,
	)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (r *bankAccountRepository) Delete(ctx context.Context, companyID uuid.UUID, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM bank_transactions WHERE bank_account_id = ?`), id)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`UPDATE party_transactions SET bank_account_id = NULL WHERE bank_account_id = ?`), id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM bank_accounts WHERE id = ? AND company_id = ?`), id, companyID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (r *bankAccountRepository) CreateTransaction(ctx context.Context, tx *domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (id, bank_account_id, type, amount, description, balance_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		tx.ID,
		tx.BankAccountID,
		string(tx.Type),
		tx.Amount,
		tx.Description,
		tx.BalanceAfter,
		tx.CreatedAt,
	)

	return err
}

func (r *bankAccountRepository) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*domain.BankTransaction, error) {
	query := `
		SELECT id, bank_account_id, type, amount, description, balance_after, created_at
		FROM bank_transactions
		WHERE bank_account_id = ?
		ORDER BY created_at DESC
	`

	transactions := []*domain.BankTransaction{}
	err := sqlx.SelectContext(ctx, r.db, &transactions, r.db.Rebind(query), accountID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
