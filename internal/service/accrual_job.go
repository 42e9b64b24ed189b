package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/internal/repository"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
)

// Accruer runs the batch accrual for one company and kind.
type Accruer interface {
	AccrueAll(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (*domain.AccrualSummary, error)
}

// AccrualJob is the scheduled accrue-for-all over every tenant.
type AccrualJob struct {
	store   repository.Store
	accruer Accruer
	logger  *logrus.Logger
}

func NewAccrualJob(store repository.Store, accruer Accruer, logger *logrus.Logger) *AccrualJob {
	return &AccrualJob{
		store:   store,
		accruer: accruer,
		logger:  logger,
	}
}

// Run accrues customers and investors of every company. A failure for one
// company does not stop the others; all failures are returned joined.
func (j *AccrualJob) Run(ctx context.Context) error {
	companies, err := j.store.Repos().Companies.List(ctx)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	var errs []error
	for _, company := range companies {
		for _, kind := range []ledger.Kind{ledger.KindCustomer, ledger.KindInvestor} {
			if ctx.Err() != nil {
				return errors.Join(append(errs, ctx.Err())...)
			}

			summary, err := j.accruer.AccrueAll(ctx, company.ID, kind)
			if err != nil {
				j.logger.WithError(err).WithFields(logrus.Fields{
					"company_id": company.ID,
					"kind":       kind,
				}).Error("Scheduled accrual failed")
				errs = append(errs, fmt.Errorf("company %s %s: %w", company.ID, kind, err))
				continue
			}

			j.logger.WithFields(logrus.Fields{
				"company":       company.Name,
				"kind":          kind,
				"updated_count": summary.UpdatedCount,
			}).Debug("Scheduled accrual finished")
		}
	}

	return errors.Join(errs...)
}
