package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockStructuredGenerator is a mock implementation of port.StructuredGenerator.
type MockStructuredGenerator struct {
	mock.Mock
}

func (m *MockStructuredGenerator) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
