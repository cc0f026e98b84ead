package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ObjectStorage is a mock type for the ObjectStorage type
type ObjectStorage struct {
	mock.Mock
}

// Put provides a mock function with given fields: ctx, key, data, contentType
func (m *ObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

// Delete provides a mock function with given fields: ctx, key
func (m *ObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
