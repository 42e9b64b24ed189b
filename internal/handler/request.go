package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/segyhp/lending-ledger/internal/domain"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
)

// decode reads a JSON body into dst and validates it. An empty body is
// accepted when optional is set.
func decode(r *http.Request, v *validator.Validate, dst interface{}, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(optional && errors.Is(err, io.EOF)) {
			return customError.WrapInvalidRequest("Invalid JSON body: " + err.Error())
		}
	}

	if err := v.Struct(dst); err != nil {
		return customError.WrapInvalidRequest(err.Error())
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, customError.WrapInvalidRequest("Invalid " + name)
	}
	return id, nil
}

func principal(r *http.Request) (domain.Principal, error) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		return domain.Principal{}, customError.WrapInvalidToken(errors.New("no authenticated caller"))
	}
	return p, nil
}
