package registry

import (
	"context"

	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockSecretRegistry mocks the interfaces.SecretRegistry interface
type MockSecretRegistry struct {
	mock.Mock
}

// Name mocks the Name method
func (m *MockSecretRegistry) Name() string {
	args := m.Called()
	return args.String(0)
}

// ListAll mocks the ListAll method
func (m *MockSecretRegistry) ListAll(ctx context.Context) ([]interfaces.SecretDescriptor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.SecretDescriptor), args.Error(1)
}

// SearchByText mocks the SearchByText method
func (m *MockSecretRegistry) SearchByText(ctx context.Context, query string) ([]interfaces.SecretDescriptor, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.SecretDescriptor), args.Error(1)
}

// FilterByTag mocks the FilterByTag method
func (m *MockSecretRegistry) FilterByTag(ctx context.Context, filter interfaces.TagFilter) ([]interfaces.SecretDescriptor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.SecretDescriptor), args.Error(1)
}

// MockBackend mocks the Backend interface
type MockBackend struct {
	mock.Mock
}

// Name mocks the Name method
func (m *MockBackend) Name() string {
	args := m.Called()
	return args.String(0)
}

// List mocks the List method
func (m *MockBackend) List(ctx context.Context) ([]interfaces.SecretDescriptor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.SecretDescriptor), args.Error(1)
}
