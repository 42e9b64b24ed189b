package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-ledger/internal/documents"
	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/internal/repository"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
)

// PasswordVerifier re-authenticates the caller before destructive actions.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error
}

// PartyService handles customer and investor records outside the money flow.
type PartyService struct {
	store  repository.Store
	auth   PasswordVerifier
	docs   documents.Store
	logger *logrus.Logger
	now    func() time.Time
}

func NewPartyService(store repository.Store, auth PasswordVerifier, docs documents.Store, logger *logrus.Logger) *PartyService {
	return &PartyService{
		store:  store,
		auth:   auth,
		docs:   docs,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a party with zero balances. Phone numbers are unique per
// company and kind.
func (s *PartyService) Create(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, req *domain.CreatePartyRequest) (*domain.Party, error) {
	if !kind.Valid() {
		return nil, customError.WrapInvalidRequest("unknown party kind " + string(kind))
	}

	repos := s.store.Repos()
	if err := s.ensurePhoneFree(ctx, repos, companyID, kind, req.Phone, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	party := &domain.Party{
		ID:                  uuid.New(),
		CompanyID:           companyID,
		Kind:                kind,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		IDNumber:            req.IDNumber,
		AadhaarNumber:       req.AadhaarNumber,
		PanNumber:           req.PanNumber,
		Photo:               req.Photo,
		Signature:           req.Signature,
		AadhaarImage:        req.AadhaarImage,
		PanImage:            req.PanImage,
		PrincipalAmount:     decimal.Zero,
		AccumulatedInterest: decimal.Zero,
		MonthlyInterestRate: decimal.Zero,
		LastInterestDate:    now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := repos.Parties.Create(ctx, party); err != nil {
		return nil, translate(err, nil)
	}

	s.logger.WithFields(logrus.Fields{
		"company_id": companyID,
		"kind":       kind,
		"party_id":   party.ID,
	}).Info("Party created")

	return party, nil
}

func (s *PartyService) List(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) ([]*domain.Party, error) {
	parties, err := s.store.Repos().Parties.List(ctx, companyID, kind)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return parties, nil
}

// Get returns a party with its ledger history as stored, without accruing.
func (s *PartyService) Get(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID) (*domain.PartyDetail, error) {
	repos := s.store.Repos()

	party, err := repos.Parties.GetByID(ctx, companyID, kind, id)
	if err != nil {
		return nil, translate(err, customError.WrapPartyNotFound(string(kind), id.String()))
	}

	records, err := repos.Transactions.ListByParty(ctx, companyID, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.PartyDetail{Party: party, Transactions: records}, nil
}

// Update changes contact and document fields. Balances are never touched
// here. Document files replaced by a new path are removed once the row is
// written.
func (s *PartyService) Update(ctx context.Context, companyID uuid.UUID, kind ledger.Kind, id uuid.UUID, req *domain.UpdatePartyRequest) (*domain.Party, error) {
	var (
		party    *domain.Party
		replaced []string
	)

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		party, err = repos.Parties.GetByIDForUpdate(ctx, companyID, kind, id)
		if err != nil {
			return translate(err, customError.WrapPartyNotFound(string(kind), id.String()))
		}

		if req.Phone != nil && *req.Phone != party.Phone {
			if err := s.ensurePhoneFree(ctx, repos, companyID, kind, *req.Phone, party.ID); err != nil {
				return err
			}
			party.Phone = *req.Phone
		}
		if req.Name != nil {
			party.Name = *req.Name
		}
		setIfPresent(&party.Email, req.Email)
		setIfPresent(&party.Address, req.Address)
		setIfPresent(&party.IDNumber, req.IDNumber)
		setIfPresent(&party.AadhaarNumber, req.AadhaarNumber)
		setIfPresent(&party.PanNumber, req.PanNumber)

		replaced = replaceDocument(&party.Photo, req.Photo, replaced)
		replaced = replaceDocument(&party.Signature, req.Signature, replaced)
		replaced = replaceDocument(&party.AadhaarImage, req.AadhaarImage, replaced)
		replaced = replaceDocument(&party.PanImage, req.PanImage, replaced)

		return translate(repos.Parties.UpdateProfile(ctx, party), customError.WrapPartyNotFound(string(kind), id.String()))
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	if len(replaced) > 0 {
		removed := s.docs.Remove(replaced...)
		s.logger.WithFields(logrus.Fields{
			"company_id":        companyID,
			"party_id":          party.ID,
			"documents_removed": removed,
		}).Info("Replaced party documents")
	}

	return party, nil
}

// Delete removes a party, its ledger records and its document files. The
// caller must confirm with their password.
func (s *PartyService) Delete(ctx context.Context, caller domain.Principal, kind ledger.Kind, id uuid.UUID, req *domain.DeletePartyRequest) error {
	if err := s.auth.VerifyPassword(ctx, caller.UserID, req.Password); err != nil {
		return err
	}

	var party *domain.Party
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		party, err = repos.Parties.GetByIDForUpdate(ctx, caller.CompanyID, kind, id)
		if err != nil {
			return translate(err, customError.WrapPartyNotFound(string(kind), id.String()))
		}

		return translate(repos.Parties.Delete(ctx, caller.CompanyID, party.ID), customError.WrapPartyNotFound(string(kind), id.String()))
	})
	if err != nil {
		return translate(err, nil)
	}

	removed := s.docs.Remove(party.Documents()...)

	s.logger.WithFields(logrus.Fields{
		"company_id":        caller.CompanyID,
		"kind":              kind,
		"party_id":          party.ID,
		"deleted_by":        caller.UserID,
		"documents_removed": removed,
	}).Info("Party deleted")

	return nil
}

func (s *PartyService) ensurePhoneFree(ctx context.Context, repos repository.Repositories, companyID uuid.UUID, kind ledger.Kind, phone string, self uuid.UUID) error {
	existing, err := repos.Parties.GetByPhone(ctx, companyID, kind, phone)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return customError.WrapDatabaseError(err)
	case existing.ID != self:
		return customError.WrapDuplicatePhone(phone)
	}
	return nil
}

func setIfPresent(dst **string, value *string) {
	if value != nil {
		*dst = value
	}
}

// replaceDocument sets *dst to value and appends the previous path to
// replaced when it is being swapped for a different one.
func replaceDocument(dst **string, value *string, replaced []string) []string {
	if value == nil {
		return replaced
	}
	if old := *dst; old != nil && *old != "" && *old != *value {
		replaced = append(replaced, *old)
	}
	*dst = value
	return replaced
}
