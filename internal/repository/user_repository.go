package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db sqlx.ExtContext
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, company_id, email, password_hash, role, created_at
		FROM users
		WHERE id = ?
	`

	var user domain.User
	err := sqlx.GetContext(ctx, r.db, &user, r.db.Rebind(query), id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type companyRepository struct {
	db sqlx.ExtContext
}

func (r *companyRepository) List(ctx context.Context) ([]*domain.Company, error) {
	query := `
		SELECT id, name, created_at
		FROM companies
		ORDER BY created_at
	`

	companies := []*domain.Company{}
	err := sqlx.SelectContext(ctx, r.db, &companies, query)
	if err != nil {
		return nil, err
	}

	return companies, nil
}
