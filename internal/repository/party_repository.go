package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	customError "github.com/segyhp/lending-ledger/pkg/errors"

	"github.com/jmoiron/sqlx"
)

const partyColumns = `id, company_id, kind, name, email, phone, address, id_number, aadhaar_number, pan_number,
		photo, signature, aadhaar_image, pan_image,
		principal_amount, accumulated_interest, monthly_interest_rate, last_interest_date,
		created_at, updated_at`

type partyRepository struct {
	db sqlx.ExtContext
}

func (r *partyRepository) Create(ctx context.Context, party *domain.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		party.ID,
		party.CompanyID,
		string(party.Kind),
		party.Name,
		party.Email,
		party.Phone,
		party.Address,
		party.IDNumber,
		party.AadhaarNumber,
		party.PanNumber,
		party.Photo,
		party.Signature,
		party.AadhaarImage,
		party.PanImage,
		party.PrincipalAmount,
		party.AccumulatedInterest,
		party.MonthlyInterestRate,
		party.LastInterestDate,
		party.CreatedAt,
		party.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return customError.WrapDuplicatePhone(party.Phone)
	}

	return err
}

func (r *partyRepository) GetByID(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error) {
	return r.get(ctx, "", companyID, kind, id)
}

func (r *partyRepository) GetByIDForUpdate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error) {
	return r.get(ctx, forUpdate(r.db), companyID, kind, id)
}

func (r *partyRepository) get(ctx context.Context, lock string, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE id = ? AND company_id = ? AND kind = ?` + lock

	var party domain.Party
	err := sqlx.GetContext(ctx, r.db, &party, r.db.Rebind(query), id, companyID, string(kind))
	if err != nil {
		return nil, err
	}

	return &party, nil
}

func (r *partyRepository) GetByPhone(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, phone string) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = ? AND kind = ? AND phone = ?
	`

	var party domain.Party
	err := sqlx.GetContext(ctx, r.db, &party, r.db.Rebind(query), companyID, string(kind), phone)
	if err != nil {
		return nil, err
	}

	return &party, nil
}

func (r *partyRepository) List(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	return r.list(ctx, "", companyID, kind)
}

func (r *partyRepository) ListForUpdate(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	return r.list(ctx, forUpdate(r.db), companyID, kind)
}

func (r *partyRepository) list(ctx context.Context, lock string, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE company_id = ? AND kind = ?
		ORDER BY created_at DESC` + lock

	parties := []*domain.Party{}
	err := sqlx.SelectContext(ctx, r.db, &parties, r.db.Rebind(query), companyID, string(kind))
	if err != nil {
		return nil, err
	}

	return parties, nil
}

func (r *partyRepository) Update(ctx context.Context, party *domain.Party) error {
	query := `
		UPDATE parties
		SET principal_amount = ?, accumulated_interest = ?, monthly_interest_rate = ?, last_interest_date = ?,
			updated_at = ?
		WHERE id = ? AND company_id = ?
	`

	party.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		party.PrincipalAmount,
		party.AccumulatedInterest,
		party.MonthlyInterestRate,
		party.LastInterestDate,
		party.UpdatedAt,
		party.ID,
		party.CompanyID,
	)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (r *partyRepository) UpdateProfile(ctx context.Context, party *domain.Party) error {
	query := `
		UPDATE parties
		SET name = ?, email = ?, phone = ?, address = ?, id_number = ?, aadhaar_number = ?, pan_number = ?,
			photo = ?, signature = ?, aadhaar_image = ?, pan_image = ?,
			updated_at = ?
		WHERE id = ? AND company_id = ?
	`

	party.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		party.Name,
		party.Email,
		party.Phone,
		party.Address,
		party.IDNumber,
		party.AadhaarNumber,
		party.PanNumber,
		party.Photo,
		party.Signature,
		party.AadhaarImage,
		party.PanImage,
		party.UpdatedAt,
		party.ID,
		party.CompanyID,
	)
	if isUniqueViolation(err) {
		return customError.WrapDuplicatePhone(party.Phone)
	}
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

func (r *partyRepository) Delete(ctx context.Context, companyID uuid.UUID, id uuid.UUID) error {
	// SQLite does not enforce ON DELETE CASCADE unless foreign keys are enabled.
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM party_transactions WHERE party_id = ? AND company_id = ?`), id, companyID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM parties WHERE id = ? AND company_id = ?`), id, companyID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}
