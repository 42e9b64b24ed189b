package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type transactionRepository struct {
	db sqlx.ExtContext
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.PartyTransaction) error {
	query := `
		INSERT INTO party_transactions (id, party_id, company_id, bank_account_id, type, amount, interest_rate,
			description, principal_after, interest_after, transaction_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		tx.ID,
		tx.PartyID,
		tx.CompanyID,
		tx.BankAccountID,
		string(tx.Type),
		tx.Amount,
		tx.InterestRate,
		tx.Description,
		tx.PrincipalAfter,
		tx.InterestAfter,
		tx.Date,
		tx.CreatedAt,
	)

	return err
}

func (r *transactionRepository) ListByParty(ctx context.Context, companyID uuid.UUID, partyID uuid.UUID) ([]*domain.PartyTransaction, error) {
	query := `
		SELECT id, party_id, company_id, bank_account_id, type, amount, interest_rate,
			description, principal_after, interest_after, transaction_date, created_at
		FROM party_transactions
		WHERE party_id = ? AND company_id = ?
		ORDER BY created_at DESC
	`

	transactions := []*domain.PartyTransaction{}
	err := sqlx.SelectContext(ctx, r.db, &transactions, r.db.Rebind(query), partyID, companyID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
