// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Resolve(requestPath string) (string, error) {
	args := m.Called(requestPath)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Load(ctx context.Context, requestPath string) (*model.File, error) {
	args := m.Called(ctx, requestPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileStore) Save(ctx context.Context, requestPath string, data []byte) (string, error) {
	args := m.Called(ctx, requestPath, data)
	return args.String(0), args.Error(1)
}
