package handler

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/pkg/response"
)

// PartyHandler serves /customers and /investors. Both kinds share every
// handler; the route decides the kind.
type PartyHandler struct {
	parties   PartyService
	ledger    LedgerService
	validator *validator.Validate
}

func NewPartyHandler(parties PartyService, ledgerService LedgerService) *PartyHandler {
	return &PartyHandler{
		parties:   parties,
		ledger:    ledgerService,
		validator: NewValidator(),
	}
}

type kindHandlerFunc func(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind)

// RegisterRoutes mounts the customer and investor routes on an authenticated router.
func (h *PartyHandler) RegisterRoutes(api *mux.Router) {
	routes := []struct {
		prefix   string
		kind     ledger.Kind
		disburse string
		repay    string
	}{
		{"/customers", ledger.KindCustomer, "/{id}/loan", "/{id}/deposit"},
		{"/investors", ledger.KindInvestor, "/{id}/take-loan", "/{id}/return-loan"},
	}

	for _, rt := range routes {
		sub := api.PathPrefix(rt.prefix).Subrouter()

		sub.HandleFunc("", h.bind(rt.kind, h.Create)).Methods(http.MethodPost)
		sub.HandleFunc("", h.bind(rt.kind, h.List)).Methods(http.MethodGet)
		sub.HandleFunc("/accumulate-interest", h.bind(rt.kind, h.AccrueAll)).Methods(http.MethodPost)

		sub.HandleFunc("/{id}", h.bind(rt.kind, h.Get)).Methods(http.MethodGet)
		sub.HandleFunc("/{id}", h.bind(rt.kind, h.Update)).Methods(http.MethodPut)
		sub.HandleFunc("/{id}", h.bind(rt.kind, h.Delete)).Methods(http.MethodDelete)
		sub.HandleFunc("/{id}/with-interest", h.bind(rt.kind, h.GetWithInterest)).Methods(http.MethodGet)
		sub.HandleFunc("/{id}/transactions", h.bind(rt.kind, h.ListTransactions)).Methods(http.MethodGet)
		sub.HandleFunc("/{id}/interest-rate", h.bind(rt.kind, h.UpdateInterestRate)).Methods(http.MethodPut)
		sub.HandleFunc("/{id}/add-interest", h.bind(rt.kind, h.Capitalize)).Methods(http.MethodPost)
		sub.HandleFunc(rt.disburse, h.bind(rt.kind, h.Disburse)).Methods(http.MethodPost)
		sub.HandleFunc(rt.repay, h.bind(rt.kind, h.Repay)).Methods(http.MethodPost)
	}
}

func (h *PartyHandler) bind(kind ledger.Kind, next kindHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := principal(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		next(w, r, caller, kind)
	}
}

func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	var req domain.CreatePartyRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	party, err := h.parties.Create(r.Context(), caller.CompanyID, kind, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, party)
}

func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	parties, err := h.parties.List(r.Context(), caller.CompanyID, kind)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, parties)
}

func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	detail, err := h.parties.Get(r.Context(), caller.CompanyID, kind, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.UpdatePartyRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	party, err := h.parties.Update(r.Context(), caller.CompanyID, kind, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, party)
}

// Delete requires the caller's password in the body.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.DeletePartyRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.parties.Delete(r.Context(), caller, kind, id, &req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Message(w, fmt.Sprintf("%s deleted successfully", kind))
}

func (h *PartyHandler) GetWithInterest(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	detail, err := h.ledger.GetWithInterest(r.Context(), caller.CompanyID, kind, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *PartyHandler) ListTransactions(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	records, err := h.ledger.ListTransactions(r.Context(), caller.CompanyID, kind, id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *PartyHandler) UpdateInterestRate(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.UpdateInterestRateRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	party, err := h.ledger.UpdateInterestRate(r.Context(), caller.CompanyID, kind, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, party)
}

func (h *PartyHandler) Disburse(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.LoanRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.ledger.Disburse(r.Context(), caller.CompanyID, kind, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *PartyHandler) Repay(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.RepaymentRequest
	if err := decode(r, h.validator, &req, false); err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.ledger.Repay(r.Context(), caller.CompanyID, kind, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}

// Capitalize accepts an empty body; the as-of date is optional.
func (h *PartyHandler) Capitalize(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.CapitalizeRequest
	if err := decode(r, h.validator, &req, true); err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.ledger.Capitalize(r.Context(), caller.CompanyID, kind, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}

type accrualResponse struct {
	Message string `json:"message"`
	*domain.AccrualSummary
}

func (h *PartyHandler) AccrueAll(w http.ResponseWriter, r *http.Request, caller domain.Principal, kind ledger.Kind) {
	summary, err := h.ledger.AccrueAll(r.Context(), caller.CompanyID, kind)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, accrualResponse{
		Message:        fmt.Sprintf("Interest accumulated for %d %s(s)", summary.UpdatedCount, kind),
		AccrualSummary: summary,
	})
}
