package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// Party is a customer (borrower) or an investor (lender). Both kinds share
// the same columns; Kind decides the economic sign of their movements.
type Party struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	CompanyID uuid.UUID   `json:"company_id" db:"company_id"`
	Kind      ledger.Kind `json:"kind" db:"kind"`

	Name          string  `json:"name" db:"name"`
	Email         *string `json:"email,omitempty" db:"email"`
	Phone         string  `json:"phone" db:"phone"`
	Address       *string `json:"address,omitempty" db:"address"`
	IDNumber      *string `json:"id_number,omitempty" db:"id_number"`
	AadhaarNumber *string `json:"aadhaar_number,omitempty" db:"aadhaar_number"`
	PanNumber     *string `json:"pan_number,omitempty" db:"pan_number"`

	// Identity document paths, relative to the upload directory.
	Photo        *string `json:"photo,omitempty" db:"photo"`
	Signature    *string `json:"signature,omitempty" db:"signature"`
	AadhaarImage *string `json:"aadhaar_image,omitempty" db:"aadhaar_image"`
	PanImage     *string `json:"pan_image,omitempty" db:"pan_image"`

	PrincipalAmount     decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	AccumulatedInterest decimal.Decimal `json:"accumulated_interest" db:"accumulated_interest"`
	MonthlyInterestRate decimal.Decimal `json:"monthly_interest_rate" db:"monthly_interest_rate"`
	LastInterestDate    time.Time       `json:"last_interest_date" db:"last_interest_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// State returns the balance fields the ledger arithmetic works on.
func (p *Party) State() ledger.State {
	return ledger.State{
		Principal:        p.PrincipalAmount,
		Interest:         p.AccumulatedInterest,
		MonthlyRate:      p.MonthlyInterestRate,
		LastInterestDate: p.LastInterestDate,
	}
}

// ApplyState copies s back onto the party.
func (p *Party) ApplyState(s ledger.State) {
	p.PrincipalAmount = s.Principal
	p.AccumulatedInterest = s.Interest
	p.MonthlyInterestRate = s.MonthlyRate
	p.LastInterestDate = s.LastInterestDate
}

// Documents returns the non-empty identity document paths.
func (p *Party) Documents() []string {
	var paths []string
	for _, doc := range []*string{p.Photo, p.Signature, p.AadhaarImage, p.PanImage} {
		if doc != nil && *doc != "" {
			paths = append(paths, *doc)
		}
	}
	return paths
}

// PartyDetail is a party with its ledger history, newest first.
type PartyDetail struct {
	*Party
	Transactions []*PartyTransaction `json:"transactions"`
}
