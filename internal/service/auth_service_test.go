package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/mocks"
	customError "github.com/segyhp/lending-ledger/pkg/errors"
	"github.com/segyhp/lending-ledger/pkg/logger"
)

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(mocks.NewMockStore(), "test-secret", logger.Discard())

	want := domain.Principal{UserID: uuid.New(), CompanyID: testCompany, Role: domain.RoleAdmin}
	token, err := svc.GenerateToken(want, time.Hour)
	require.NoError(t, err)

	got, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc := NewAuthService(mocks.NewMockStore(), "test-secret", logger.Discard())
	other := NewAuthService(mocks.NewMockStore(), "other-secret", logger.Discard())
	principal := domain.Principal{UserID: uuid.New(), CompanyID: testCompany, Role: domain.RoleEmployee}

	wrongSecret, err := other.GenerateToken(principal, time.Hour)
	require.NoError(t, err)

	expired, err := svc.GenerateToken(principal, -time.Minute)
	require.NoError(t, err)

	badCompany, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		CompanyID:        "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", wrongSecret},
		{"expired", expired},
		{"bad company id", badCompany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.ParseToken(tt.token)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, customError.ErrUnauthorized)
			assert.Equal(t, customError.ErrCodeInvalidToken, customError.Code(err))
		})
	}
}

func TestAuthService_VerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	missingID := uuid.New()

	store := mocks.NewMockStore()
	store.Users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, PasswordHash: string(hash)}, nil)
	store.Users.On("GetByID", mock.Anything, missingID).Return(nil, sql.ErrNoRows)

	svc := NewAuthService(store, "test-secret", logger.Discard())

	assert.NoError(t, svc.VerifyPassword(context.Background(), userID, "s3cret"))

	err = svc.VerifyPassword(context.Background(), userID, "wrong")
	assert.ErrorIs(t, err, customError.ErrUnauthorized)
	assert.Equal(t, customError.ErrCodeInvalidPassword, customError.Code(err))

	err = svc.VerifyPassword(context.Background(), missingID, "s3cret")
	assert.ErrorIs(t, err, customError.ErrNotFound)
}
