package mocks

import (
	"context"
	"io"

	"releaseapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockReleaseService struct {
	mock.Mock
}

func (m *MockReleaseService) Upload(ctx context.Context, r io.Reader, p service.UploadParams) (*service.UploadResult, error) {
	args := m.Called(ctx, r, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockReleaseService) SetLatest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReleaseService) ResolveLatestDownload(ctx context.Context) (*service.DownloadInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadInfo), args.Error(1)
}

func (m *MockReleaseService) TotalDownloads(ctx context.Context) int64 {
	args := m.Called(ctx)
	return args.Get(0).(int64)
}

func (m *MockReleaseService) List(ctx context.Context, limit, offset int) (*service.VersionListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VersionListResult), args.Error(1)
}
