package mocks

import (
	"context"

	"releaseapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDownloadRepository struct {
	mock.Mock
}

func (m *MockDownloadRepository) Increment(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockDownloadRepository) Sum(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDownloadRepository) ListCounts(ctx context.Context) ([]model.DownloadCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DownloadCount), args.Error(1)
}
