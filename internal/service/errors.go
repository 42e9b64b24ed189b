package service

import (
	"database/sql"
	"errors"

	customError "github.com/segyhp/lending-ledger/pkg/errors"
)

// translate maps a repository error onto the business taxonomy. BusinessErrors
// pass through, sql.ErrNoRows becomes notFound when given, anything else is a
// database failure.
func translate(err error, notFound *customError.BusinessError) error {
	if err == nil {
		return nil
	}

	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}

	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	return customError.WrapDatabaseError(err)
}
