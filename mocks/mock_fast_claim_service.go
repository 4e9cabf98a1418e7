package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockFastClaimService is a mock implementation of service.FastClaimService.
type MockFastClaimService struct {
	mock.Mock
}

func (m *MockFastClaimService) GenerateFused(ctx context.Context, docs *domain.DocumentSet) (*domain.FusedClaimResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FusedClaimResult), args.Error(1)
}
