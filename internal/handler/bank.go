package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/pkg/response"
)

type BankHandler struct {
	banks     BankService
	validator *validator.Validate
}

func NewBankHandler(banks BankService) *BankHandler {
	return &BankHandler{
		banks:     banks,
		validator: NewValidator(),
	}
}

func (h *BankHandler) RegisterRoutes(api *mux.Router) {
	sub := api.PathPrefix("/banks").Subrouter()

	sub.HandleFunc("", h.Create).Methods(http.MethodPost)
	sub.HandleFunc("", h.List).Methods(http.MethodGet)
	sub.HandleFunc("/transfer", h.Transfer).Methods(http.MethodPost)
	sub.HandleFunc("/{id}", h.Get).Methods(http.MethodGet)
	sub.HandleFunc("/{id}", h.Update).Methods(http.MethodPut)
	sub.HandleFunc("/{id}", h.Delete).Methods(http.MethodDelete)
	sub.HandleFunc("/{id}/deposit", h.Deposit).Methods(http.MethodPost)
	sub.HandleFunc("/{id}/withdraw", h.Withdraw).Methods(http.MethodPost)
}

func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.CreateBankAccountRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	account, err := h.banks.Create(r.Context(), caller.CompanyID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, account)
}

func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	accounts, err := h.banks.List(r.Context(), caller.CompanyID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, accounts)
}

func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.target(w, r)
	if !ok {
		return
	}

	detail, err := h.banks.Get(r.Context(), caller.CompanyID, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *BankHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req domain.UpdateBankAccountRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	account, err := h.banks.Update(r.Context(), caller.CompanyID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, account)
}

func (h *BankHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.banks.Delete(r.Context(), caller.CompanyID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, "Bank account deleted successfully")
}

func (h *BankHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req domain.BankMovementRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.banks.Deposit(r.Context(), caller.CompanyID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *BankHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req domain.BankMovementRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.banks.Withdraw(r.Context(), caller.CompanyID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *BankHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.TransferRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.banks.Transfer(r.Context(), caller.CompanyID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}

// target resolves the caller and the {id} path variable, writing the error
// response itself when either is missing.
func (h *BankHandler) target(w http.ResponseWriter, r *http.Request) (domain.Principal, uuid.UUID, bool) {
	caller, err := principal(r)
	if err != nil {
		response.FromError(w, err)
		return domain.Principal{}, uuid.Nil, false
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return domain.Principal{}, uuid.Nil, false
	}

	return caller, id, true
}
