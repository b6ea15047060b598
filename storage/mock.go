package storage

import (
	"context"

	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore mocks the interfaces.RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

// Name mocks the Name method
func (m *MockRecordStore) Name() string {
	args := m.Called()
	return args.String(0)
}

// ListAll mocks the ListAll method
func (m *MockRecordStore) ListAll(ctx context.Context) ([]interfaces.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.Record), args.Error(1)
}

// Get mocks the Get method
func (m *MockRecordStore) Get(ctx context.Context, id string) (*interfaces.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Record), args.Error(1)
}

// Put mocks the Put method
func (m *MockRecordStore) Put(ctx context.Context, record interfaces.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Delete mocks the Delete method
func (m *MockRecordStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
