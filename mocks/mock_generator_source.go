package mocks

import (
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/port"
)

// MockGeneratorSource is a mock implementation of port.GeneratorSource.
type MockGeneratorSource struct {
	mock.Mock
}

func (m *MockGeneratorSource) For(spec port.SchemaSpec) (port.StructuredGenerator, error) {
	args := m.Called(spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.StructuredGenerator), args.Error(1)
}
