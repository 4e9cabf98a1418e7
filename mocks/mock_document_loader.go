package mocks

import (
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
)

// MockDocumentLoader is a mock implementation of port.DocumentLoader.
type MockDocumentLoader struct {
	mock.Mock
}

func (m *MockDocumentLoader) LoadPages(sourceFileID string, raw []byte) ([]domain.Page, error) {
	args := m.Called(sourceFileID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Page), args.Error(1)
}
