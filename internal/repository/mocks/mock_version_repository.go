package mocks

import (
	"context"

	"releaseapi/internal/model"
	"releaseapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) Create(ctx context.Context, v *model.ReleaseVersion, makeLatest bool) (*model.ReleaseVersion, error) {
	args := m.Called(ctx, v, makeLatest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReleaseVersion), args.Error(1)
}

func (m *MockVersionRepository) FindByID(ctx context.Context, id string) (*model.ReleaseVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReleaseVersion), args.Error(1)
}

func (m *MockVersionRepository) FindLatest(ctx context.Context) (*model.ReleaseVersion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReleaseVersion), args.Error(1)
}

func (m *MockVersionRepository) SetLatest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVersionRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ReleaseVersion], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ReleaseVersion]), args.Error(1)
}
