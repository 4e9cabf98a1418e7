package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockExtractorService is a mock implementation of service.ExtractorService.
type MockExtractorService struct {
	mock.Mock
}

func (m *MockExtractorService) ExtractBatch(ctx context.Context, classification domain.ClassificationResult, docs *domain.DocumentSet) (*domain.ExtractionReport, error) {
	args := m.Called(ctx, classification, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionReport), args.Error(1)
}
