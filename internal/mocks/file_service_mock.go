// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/lru-webserver/internal/cache"
	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Get(ctx context.Context, requestPath string) (*model.FileResult, error) {
	args := m.Called(ctx, requestPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileResult), args.Error(1)
}

func (m *MockFileService) NotFoundPage(ctx context.Context) *model.File {
	args := m.Called(ctx)
	return args.Get(0).(*model.File)
}

func (m *MockFileService) Save(ctx context.Context, requestPath string, body []byte) error {
	args := m.Called(ctx, requestPath, body)
	return args.Error(0)
}

func (m *MockFileService) CacheStats() cache.Metrics {
	args := m.Called()
	return args.Get(0).(cache.Metrics)
}

func (m *MockFileService) Roll() int {
	args := m.Called()
	return args.Int(0)
}
