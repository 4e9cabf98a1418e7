package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockClassifierService is a mock implementation of service.ClassifierService.
type MockClassifierService struct {
	mock.Mock
}

func (m *MockClassifierService) Classify(ctx context.Context, docs *domain.DocumentSet) (domain.ClassificationResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ClassificationResult), args.Error(1)
}
