package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
	"github.com/segyhp/lending-ledger/internal/mocks"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
)

const testToken = "valid-token"

var testCaller = domain.Principal{
	UserID:    uuid.MustParse("5a0f1c9e-7f0a-4c1e-8a51-3c2b1d0e9f11"),
	CompanyID: uuid.MustParse("0b7c6f0e-6d1f-4b8e-9c55-2a8f3f0a9e01"),
	Role:      domain.RoleAdmin,
}

type testServer struct {
	router  *mux.Router
	parties *mocks.MockPartyService
	ledger  *mocks.MockLedgerService
	banks   *mocks.MockBankService
}

func newTestServer() *testServer {
	tokens := &mocks.MockTokenParser{}
	tokens.On("ParseToken", testToken).Return(&testCaller, nil)
	tokens.On("ParseToken", mock.Anything).Return(nil, customError.WrapInvalidToken(errors.New("bad signature")))

	s := &testServer{
		router:  mux.NewRouter(),
		parties: &mocks.MockPartyService{},
		ledger:  &mocks.MockLedgerService{},
		banks:   &mocks.MockBankService{},
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))
	NewPartyHandler(s.parties, s.ledger).RegisterRoutes(api)
	NewBankHandler(s.banks).RegisterRoutes(api)

	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPartyHandler_KindRouting(t *testing.T) {
	partyID := uuid.New()
	bankID := uuid.New()
	result := &domain.MovementResult{Party: &domain.Party{ID: partyID}}

	tests := []struct {
		name   string
		path   string
		verb   string
		kind   ledger.Kind
		body   string
		status int
	}{
		{"customer loan", "/api/v1/customers/" + partyID.String() + "/loan", "Disburse", ledger.KindCustomer,
			`{"amount": 500, "interest_rate": "2", "bank_account_id": "` + bankID.String() + `"}`, http.StatusCreated},
		{"investor take loan", "/api/v1/investors/" + partyID.String() + "/take-loan", "Disburse", ledger.KindInvestor,
			`{"amount": "1000", "interest_rate": 0, "bank_account_id": "` + bankID.String() + `"}`, http.StatusCreated},
		{"customer deposit", "/api/v1/customers/" + partyID.String() + "/deposit", "Repay", ledger.KindCustomer,
			`{"amount": 80, "bank_account_id": "` + bankID.String() + `"}`, http.StatusCreated},
		{"investor return loan", "/api/v1/investors/" + partyID.String() + "/return-loan", "Repay", ledger.KindInvestor,
			`{"amount": 80, "bank_account_id": "` + bankID.String() + `", "date": "2024-02-01T00:00:00Z"}`, http.StatusCreated},
		{"add interest without body", "/api/v1/investors/" + partyID.String() + "/add-interest", "Capitalize", ledger.KindInvestor,
			"", http.StatusOK},
		{"customer add interest", "/api/v1/customers/" + partyID.String() + "/add-interest", "Capitalize", ledger.KindCustomer,
			`{"date": "2024-02-01T00:00:00Z"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.ledger.On(tt.verb, mock.Anything, testCaller.CompanyID, tt.kind, partyID, mock.Anything).Return(result, nil)

			rec := s.do(t, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			s.ledger.AssertExpectations(t)
		})
	}
}

func TestPartyHandler_RepayPassesRequest(t *testing.T) {
	s := newTestServer()
	partyID := uuid.New()
	bankID := uuid.New()

	s.ledger.On("Repay", mock.Anything, testCaller.CompanyID, ledger.KindCustomer, partyID,
		mock.MatchedBy(func(req *domain.RepaymentRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(80)) &&
				req.BankAccountID == bankID &&
				req.Date != nil && req.Date.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		})).Return(&domain.MovementResult{}, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/customers/"+partyID.String()+"/deposit",
		`{"amount": "80.00", "bank_account_id": "`+bankID.String()+`", "date": "2024-02-01T00:00:00Z"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	s.ledger.AssertExpectations(t)
}

func TestPartyHandler_ValidationErrors(t *testing.T) {
	partyID := uuid.New().String()
	bankID := uuid.New().String()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"zero amount", "/api/v1/customers/" + partyID + "/loan", `{"amount": 0, "interest_rate": 2, "bank_account_id": "` + bankID + `"}`},
		{"negative rate", "/api/v1/customers/" + partyID + "/loan", `{"amount": 10, "interest_rate": -1, "bank_account_id": "` + bankID + `"}`},
		{"missing bank account", "/api/v1/customers/" + partyID + "/deposit", `{"amount": 10}`},
		{"malformed json", "/api/v1/investors/" + partyID + "/return-loan", `{"amount": `},
		{"bad party id", "/api/v1/customers/not-a-uuid/deposit", `{"amount": 10, "bank_account_id": "` + bankID + `"}`},
		{"missing phone", "/api/v1/customers", `{"name": "Ravi"}`},
		{"bad email", "/api/v1/investors", `{"name": "Meera", "phone": "9000000001", "email": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()

			rec := s.do(t, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, customError.ErrCodeInvalidRequest, decodeBody(t, rec)["code"])
			s.ledger.AssertNotCalled(t, "Disburse", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			s.ledger.AssertNotCalled(t, "Repay", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			s.parties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPartyHandler_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"insufficient balance", customError.WrapInsufficientBalance("150.00", "200.00"), http.StatusUnprocessableEntity},
		{"overpayment", customError.WrapOverpayment("600.00", "550.00"), http.StatusBadRequest},
		{"party missing", customError.WrapPartyNotFound("customer", "x"), http.StatusNotFound},
		{"database", customError.WrapDatabaseError(errors.New("conn reset")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			partyID := uuid.New()
			s.ledger.On("Repay", mock.Anything, testCaller.CompanyID, ledger.KindCustomer, partyID, mock.Anything).Return(nil, tt.err)

			rec := s.do(t, http.MethodPost, "/api/v1/customers/"+partyID.String()+"/deposit",
				`{"amount": 200, "bank_account_id": "`+uuid.NewString()+`"}`)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"invalid token", "Bearer forged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	s.parties.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestPartyHandler_ListAndGet(t *testing.T) {
	s := newTestServer()
	party := &domain.Party{ID: uuid.New(), Name: "Meera", Kind: ledger.KindInvestor}

	s.parties.On("List", mock.Anything, testCaller.CompanyID, ledger.KindInvestor).Return([]*domain.Party{party}, nil)
	s.ledger.On("GetWithInterest", mock.Anything, testCaller.CompanyID, ledger.KindInvestor, party.ID).
		Return(&domain.PartyDetail{Party: party, Transactions: []*domain.PartyTransaction{}}, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/investors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]interface{})
	assert.Len(t, data, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/investors/"+party.ID.String()+"/with-interest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Meera", detail["name"])
	assert.NotNil(t, detail["transactions"])
}

func TestPartyHandler_AccrueAll(t *testing.T) {
	s := newTestServer()
	s.ledger.On("AccrueAll", mock.Anything, testCaller.CompanyID, ledger.KindCustomer).Return(&domain.AccrualSummary{
		Kind:                     ledger.KindCustomer,
		UpdatedCount:             3,
		TotalInterestAccumulated: decimal.RequireFromString("42.5"),
	}, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/customers/accumulate-interest", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Interest accumulated for 3 customer(s)", data["message"])
	assert.Equal(t, float64(3), data["updated_count"])
	assert.Equal(t, "42.5", data["total_interest_accumulated"])
}

func TestPartyHandler_Delete(t *testing.T) {
	s := newTestServer()
	partyID := uuid.New()

	s.parties.On("Delete", mock.Anything, testCaller, ledger.KindCustomer, partyID,
		mock.MatchedBy(func(req *domain.DeletePartyRequest) bool { return req.Password == "wrong" })).
		Return(customError.WrapInvalidPassword())

	rec := s.do(t, http.MethodDelete, "/api/v1/customers/"+partyID.String(), `{"password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, customError.ErrCodeInvalidPassword, decodeBody(t, rec)["code"])

	rec = s.do(t, http.MethodDelete, "/api/v1/customers/"+partyID.String(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBankHandler_Routes(t *testing.T) {
	s := newTestServer()
	account := &domain.BankAccount{ID: uuid.New(), BankName: "HDFC", Balance: decimal.NewFromInt(1000)}
	other := uuid.New()

	s.banks.On("Create", mock.Anything, testCaller.CompanyID, mock.AnythingOfType("*domain.CreateBankAccountRequest")).Return(account, nil)
	s.banks.On("Withdraw", mock.Anything, testCaller.CompanyID, account.ID, mock.Anything).
		Return(nil, customError.WrapInsufficientBalance("1000.00", "1500.00"))
	s.banks.On("Transfer", mock.Anything, testCaller.CompanyID, mock.MatchedBy(func(req *domain.TransferRequest) bool {
		return req.FromAccountID == account.ID && req.ToAccountID == other
	})).Return(&domain.TransferResult{}, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/banks", `{"bank_name": "HDFC", "owner_name": "Acme", "initial_balance": 1000}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/banks", `{"bank_name": "HDFC", "owner_name": "Acme", "initial_balance": -5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/banks/"+account.ID.String()+"/withdraw", `{"amount": 1500}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/banks/transfer",
		`{"from_account_id": "`+account.ID.String()+`", "to_account_id": "`+other.String()+`", "amount": 300}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	s.banks.AssertExpectations(t)
}

func TestNewValidator_Decimal(t *testing.T) {
	v := NewValidator()

	type sample struct {
		Amount decimal.Decimal `validate:"decimal_gt=0"`
		Rate   decimal.Decimal `validate:"decimal_gte=0"`
	}

	tests := []struct {
		name    string
		amount  string
		rate    string
		wantErr bool
	}{
		{"valid", "0.01", "0", false},
		{"zero amount", "0", "1", true},
		{"negative amount", "-3", "1", true},
		{"negative rate", "5", "-0.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(sample{
				Amount: decimal.RequireFromString(tt.amount),
				Rate:   decimal.RequireFromString(tt.rate),
			})
			assert.Equal(t, tt.wantErr, err != nil, "err: %v", err)
		})
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   int
	}{
		{
			name: "all up",
			checks: map[string]CheckFunc{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			want: http.StatusOK,
		},
		{
			name: "redis down",
			checks: map[string]CheckFunc{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			want: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			NewHealthHandlerWithChecks(tt.checks, time.Second).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
