package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/lending-ledger/internal/cache"
	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/internal/ledger"
)

type MockAccrualLock struct {
	mock.Mock
	Released int
}

func (m *MockAccrualLock) Acquire(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (cache.ReleaseFunc, error) {
	args := m.Called(ctx, companyID, kind)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.Released++
		return nil
	}, nil
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Remove(paths ...string) int {
	args := m.Called(paths)
	return args.Int(0)
}

type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

type MockAccruer struct {
	mock.Mock
}

func (m *MockAccruer) AccrueAll(ctx context.Context, companyID uuid.UUID, kind ledger.Kind) (*domain.AccrualSummary, error) {
	args := m.Called(ctx, companyID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccrualSummary), args.Error(1)
}
